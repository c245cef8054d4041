// Package offers holds the static offer catalog of the OCS provisioning
// system. The catalog does not change during a session; authoritative
// pricing lives in the OCS itself.
package offers

// OfferBalance is one balance allocation included in an offer.
type OfferBalance struct {
	Type              string `json:"type"`
	Amount            int64  `json:"amount"`
	Unit              string `json:"unit"`
	Recurring         bool   `json:"recurring"`
	CycleLength       int    `json:"cycleLength"`
	CycleUnit         string `json:"cycleUnit"`
	RolloverAllowed   bool   `json:"rolloverAllowed"`
	MaxRolloverAmount int64  `json:"maxRolloverAmount"`
	Description       string `json:"description"`
}

// Offer is a catalog template defining subscription type, cycle, priority
// and balance allocations. Lower priority numbers are consumed first when
// charging usage.
type Offer struct {
	OfferID            string         `json:"offerId"`
	OfferName          string         `json:"offerName"`
	Description        string         `json:"description"`
	Price              float64        `json:"price"`
	Type               string         `json:"type"`
	Recurring          bool           `json:"recurring"`
	Paid               bool           `json:"paid"`
	GroupOffer         bool           `json:"groupOffer"`
	MaxRecurringCycles *int           `json:"maxRecurringCycles"`
	CycleLength        int            `json:"cycleLength"`
	CycleUnit          string         `json:"cycleUnit"`
	Priority           int            `json:"priority"`
	Balances           []OfferBalance `json:"balances"`
}

// NotFound is the structured miss payload for unknown offer ids.
type NotFound struct {
	Error         string   `json:"error"`
	ValidOfferIDs []string `json:"validOfferIds"`
}

var catalog = []Offer{
	{
		OfferID:     "1000",
		OfferName:   "Basic prepaid plan",
		Description: "Basic prepaid priceplan, which covers all type of services",
		Price:       7.99,
		Type:        "PREPAID",
		Recurring:   true,
		Paid:        true,
		CycleLength: 0,
		CycleUnit:   "MONTH",
		Priority:    5000,
		Balances: []OfferBalance{
			{
				Type:        "ALLOWANCE",
				Amount:      3600,
				Unit:        "SECONDS",
				Recurring:   true,
				CycleLength: 1,
				CycleUnit:   "MONTH",
				Description: "Prepaid base balance for voice service",
			},
			{
				Type:        "ALLOWANCE",
				Amount:      1000,
				Unit:        "EVENTS",
				Recurring:   true,
				CycleLength: 1,
				CycleUnit:   "MONTH",
				Description: "Prepaid base balance for SMS and MMS service",
			},
			{
				Type:        "ALLOWANCE",
				Amount:      10737418240,
				Unit:        "BYTES",
				Recurring:   true,
				CycleLength: 1,
				CycleUnit:   "MONTH",
				Description: "Prepaid base balance for data service",
			},
		},
	},
	{
		OfferID:     "1001",
		OfferName:   "Basic postpaid plan",
		Description: "Basic postpaid priceplan, which covers all type of services",
		Price:       15.99,
		Type:        "POSTPAID",
		Recurring:   true,
		Paid:        true,
		CycleLength: 0,
		CycleUnit:   "MONTH",
		Priority:    5000,
		Balances: []OfferBalance{
			{
				Type:        "ALLOWANCE",
				Amount:      86600,
				Unit:        "SECONDS",
				Recurring:   true,
				CycleLength: 1,
				CycleUnit:   "MONTH",
				Description: "Postpaid base balance for voice service",
			},
			{
				Type:        "ALLOWANCE",
				Amount:      5000,
				Unit:        "EVENTS",
				Recurring:   true,
				CycleLength: 1,
				CycleUnit:   "MONTH",
				Description: "Postpaid base balance for SMS and MMS service",
			},
			{
				Type:        "ALLOWANCE",
				Amount:      10737418240,
				Unit:        "BYTES",
				Recurring:   true,
				CycleLength: 1,
				CycleUnit:   "MONTH",
				Description: "Postpaid base balance for data service",
			},
		},
	},
	{
		OfferID:     "1002",
		OfferName:   "Weekly data bundle 5GB",
		Description: "Prepaid weekly data bundle – 5GB",
		Price:       4.99,
		Type:        "PREPAID",
		Recurring:   true,
		Paid:        true,
		CycleLength: 4,
		CycleUnit:   "WEEK",
		Priority:    1000,
		Balances: []OfferBalance{
			{
				Type:              "ALLOWANCE",
				Amount:            5368709120,
				Unit:              "BYTES",
				Recurring:         true,
				CycleLength:       1,
				CycleUnit:         "WEEK",
				RolloverAllowed:   true,
				MaxRolloverAmount: 5368709120,
				Description:       "Prepaid 5GB weekly balance",
			},
		},
	},
	{
		OfferID:     "1003",
		OfferName:   "Monthly data bundle 25GB",
		Description: "Prepaid monthly data bundle – 25GB",
		Price:       12.99,
		Type:        "PREPAID",
		Recurring:   false,
		Paid:        true,
		CycleLength: 1,
		CycleUnit:   "MONTH",
		Priority:    1000,
		Balances: []OfferBalance{
			{
				Type:            "ALLOWANCE",
				Amount:          26843545600,
				Unit:            "BYTES",
				Recurring:       false,
				CycleLength:     1,
				CycleUnit:       "MONTH",
				RolloverAllowed: true,
				Description:     "Prepaid 25GB one time monthly balance",
			},
		},
	},
	{
		OfferID:     "1010",
		OfferName:   "Premium prepaid plan",
		Description: "Premium prepaid price plan, which contains more free units for all type of services",
		Price:       9.99,
		Type:        "PREPAID",
		Recurring:   true,
		Paid:        true,
		CycleLength: 0,
		CycleUnit:   "MONTH",
		Priority:    4000,
		Balances: []OfferBalance{
			{
				Type:              "ALLOWANCE",
				Amount:            18000,
				Unit:              "SECONDS",
				Recurring:         true,
				CycleLength:       1,
				CycleUnit:         "MONTH",
				RolloverAllowed:   true,
				MaxRolloverAmount: 7200,
				Description:       "5 hours prepaid balance for voice service with 2 hours rollover",
			},
			{
				Type:              "ALLOWANCE",
				Amount:            5000,
				Unit:              "EVENTS",
				Recurring:         true,
				CycleLength:       1,
				CycleUnit:         "MONTH",
				RolloverAllowed:   true,
				MaxRolloverAmount: 2000,
				Description:       "5000 events prepaid balance for SMS and MMS services with 2000 events rollover",
			},
			{
				Type:              "ALLOWANCE",
				Amount:            21474836480,
				Unit:              "BYTES",
				Recurring:         true,
				CycleLength:       1,
				CycleUnit:         "MONTH",
				RolloverAllowed:   true,
				MaxRolloverAmount: 10737418240,
				Description:       "20GB prepaid balance for data service with 10GB rollover",
			},
		},
	},
}

// All returns the complete offer catalog.
func All() []Offer {
	return catalog
}

// ByID returns the offer with the given id via linear scan.
func ByID(id string) (Offer, bool) {
	for _, offer := range catalog {
		if offer.OfferID == id {
			return offer, true
		}
	}
	return Offer{}, false
}

// ValidIDs enumerates the catalog's offer ids in catalog order.
func ValidIDs() []string {
	ids := make([]string, 0, len(catalog))
	for _, offer := range catalog {
		ids = append(ids, offer.OfferID)
	}
	return ids
}
