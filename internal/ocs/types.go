package ocs

import "time"

// Record shapes for the OCS provisioning API. The OCS owns the full
// lifecycle of these entities; this process only marshals requests, so
// every field beyond the identifiers is optional on the wire.

// SubscriberState is the lifecycle state of a subscriber line.
type SubscriberState string

const (
	SubscriberStatePreProvisioned SubscriberState = "pre-provisioned"
	SubscriberStateActive         SubscriberState = "active"
	SubscriberStateSuspended      SubscriberState = "suspended"
	SubscriberStateDeactivated    SubscriberState = "deactivated"
	SubscriberStateTerminated     SubscriberState = "terminated"
)

// SubscriberStates lists the valid subscriber states in lifecycle order.
func SubscriberStates() []string {
	return []string{
		string(SubscriberStatePreProvisioned),
		string(SubscriberStateActive),
		string(SubscriberStateSuspended),
		string(SubscriberStateDeactivated),
		string(SubscriberStateTerminated),
	}
}

// Valid reports whether the state is a known subscriber state.
func (s SubscriberState) Valid() bool {
	switch s {
	case SubscriberStatePreProvisioned, SubscriberStateActive, SubscriberStateSuspended,
		SubscriberStateDeactivated, SubscriberStateTerminated:
		return true
	}
	return false
}

// SubscriptionState is the lifecycle state of a subscription.
type SubscriptionState string

const (
	SubscriptionStatePending   SubscriptionState = "pending"
	SubscriptionStateActive    SubscriptionState = "active"
	SubscriptionStateSuspended SubscriptionState = "suspended"
	SubscriptionStateCancelled SubscriptionState = "cancelled"
	SubscriptionStateExpired   SubscriptionState = "expired"
)

// SubscriptionStates lists the valid subscription states.
func SubscriptionStates() []string {
	return []string{
		string(SubscriptionStatePending),
		string(SubscriptionStateActive),
		string(SubscriptionStateSuspended),
		string(SubscriptionStateCancelled),
		string(SubscriptionStateExpired),
	}
}

// Valid reports whether the state is a known subscription state.
func (s SubscriptionState) Valid() bool {
	switch s {
	case SubscriptionStatePending, SubscriptionStateActive, SubscriptionStateSuspended,
		SubscriptionStateCancelled, SubscriptionStateExpired:
		return true
	}
	return false
}

// BalanceUnitType is the unit a balance counter is measured in.
type BalanceUnitType string

const (
	UnitBytes      BalanceUnitType = "BYTES"
	UnitEvents     BalanceUnitType = "EVENTS"
	UnitSeconds    BalanceUnitType = "SECONDS"
	UnitMicrocents BalanceUnitType = "MICROCENTS"
	UnitMicrounits BalanceUnitType = "MICROUNITS"
)

// Valid reports whether the unit type is known.
func (u BalanceUnitType) Valid() bool {
	switch u {
	case UnitBytes, UnitEvents, UnitSeconds, UnitMicrocents, UnitMicrounits:
		return true
	}
	return false
}

// EntityType identifies what an account history entry refers to.
type EntityType string

const (
	EntitySubscriber EntityType = "SUBSCRIBER"
	EntityGroup      EntityType = "GROUP"
	EntityAccount    EntityType = "ACCOUNT"
)

// Valid reports whether the entity type is known.
func (e EntityType) Valid() bool {
	switch e {
	case EntitySubscriber, EntityGroup, EntityAccount:
		return true
	}
	return false
}

// UsageType classifies a charging event.
type UsageType string

const (
	UsageVoice UsageType = "VOICE"
	UsageData  UsageType = "DATA"
	UsageSMS   UsageType = "SMS"
	UsageMMS   UsageType = "MMS"
)

// Valid reports whether the usage type is known.
func (u UsageType) Valid() bool {
	switch u {
	case UsageVoice, UsageData, UsageSMS, UsageMMS:
		return true
	}
	return false
}

// RecordType classifies a usage record within a session.
type RecordType string

const (
	RecordStart   RecordType = "START"
	RecordInterim RecordType = "INTERIM"
	RecordStop    RecordType = "STOP"
	RecordEvent   RecordType = "EVENT"
)

// Valid reports whether the record type is known.
func (r RecordType) Valid() bool {
	switch r {
	case RecordStart, RecordInterim, RecordStop, RecordEvent:
		return true
	}
	return false
}

// PatchOperation is a single field update. FieldName supports dot notation
// for nested fields (e.g. "personalInfo.email").
type PatchOperation struct {
	FieldName  string `json:"fieldName"`
	FieldValue any    `json:"fieldValue"`
}

// Subscriber is the identity record for a line.
type Subscriber struct {
	SubscriberID          string            `json:"subscriberId"`
	BusinessAccountID     string            `json:"businessAccountId,omitempty"`
	MSISDN                string            `json:"msisdn,omitempty"`
	IMSI                  string            `json:"imsi,omitempty"`
	ICCID                 string            `json:"iccId,omitempty"`
	CurrentState          SubscriberState   `json:"currentState,omitempty"`
	PreviousState         SubscriberState   `json:"previousState,omitempty"`
	CreationDate          *time.Time        `json:"creationDate,omitempty"`
	LastTransitionDate    *time.Time        `json:"lastTransitionDate,omitempty"`
	ActivationDate        *time.Time        `json:"activationDate,omitempty"`
	ExpirationDate        *time.Time        `json:"expirationDate,omitempty"`
	LanguageID            string            `json:"languageId,omitempty"`
	CarrierID             string            `json:"carrierId,omitempty"`
	SubscriberType        string            `json:"subscriberType,omitempty"`
	PersonalInfo          map[string]any    `json:"personalInfo,omitempty"`
	Billing               map[string]any    `json:"billing,omitempty"`
	Groups                []string          `json:"groups,omitempty"`
	Subscriptions         []string          `json:"subscriptions,omitempty"`
	NotificationAddresses []string          `json:"notificationAddresses,omitempty"`
	Services              map[string]any    `json:"services,omitempty"`
	CustomFields          map[string]string `json:"customFields,omitempty"`
	LastModifiedDate      *time.Time        `json:"lastModifiedDate,omitempty"`
}

// Subscription links a subscriber to an offer.
type Subscription struct {
	SubscriberID             string            `json:"subscriberId,omitempty"`
	SubscriptionID           string            `json:"subscriptionId"`
	SubscriptionType         string            `json:"subscriptionType,omitempty"`
	OfferID                  string            `json:"offerId,omitempty"`
	OfferName                string            `json:"offerName,omitempty"`
	State                    SubscriptionState `json:"state,omitempty"`
	CreationDate             *time.Time        `json:"creationDate,omitempty"`
	ActivationDate           *time.Time        `json:"activationDate,omitempty"`
	ExpirationDate           *time.Time        `json:"expirationDate,omitempty"`
	RenewalDate              *time.Time        `json:"renewalDate,omitempty"`
	Recurring                *bool             `json:"recurring,omitempty"`
	PaidFlag                 *bool             `json:"paidFlag,omitempty"`
	IsGroup                  *bool             `json:"isGroup,omitempty"`
	MaxRecurringCycles       *int              `json:"maxRecurringCycles,omitempty"`
	RecurringCyclesCompleted *int              `json:"recurringCyclesCompleted,omitempty"`
	CycleLengthUnits         *int              `json:"cycleLengthUnits,omitempty"`
	CycleLengthType          string            `json:"cycleLengthType,omitempty"`
	CustomParameters         map[string]string `json:"customParameters,omitempty"`
	Balances                 []string          `json:"balances,omitempty"`
	LastModifiedDate         *time.Time        `json:"lastModifiedDate,omitempty"`
}

// Balance is a consumable quota counter owned by a subscription.
type Balance struct {
	SubscriptionID           string          `json:"subscriptionId,omitempty"`
	BalanceID                string          `json:"balanceId,omitempty"`
	EffectiveDate            *time.Time      `json:"effectiveDate,omitempty"`
	ExpirationDate           *time.Time      `json:"expirationDate,omitempty"`
	CreationDate             *time.Time      `json:"creationDate,omitempty"`
	LastModifiedDate         *time.Time      `json:"lastModifiedDate,omitempty"`
	BalanceType              string          `json:"balanceType,omitempty"`
	UnitType                 BalanceUnitType `json:"unitType,omitempty"`
	BalanceAmount            *float64        `json:"balanceAmount,omitempty"`
	BalanceAvailable         *float64        `json:"balanceAvailable,omitempty"`
	IsGroupBalance           *bool           `json:"isGroupBalance,omitempty"`
	IsRecurring              *bool           `json:"isRecurring,omitempty"`
	CycleLengthType          string          `json:"cycleLengthType,omitempty"`
	CycleLengthUnits         *int            `json:"cycleLengthUnits,omitempty"`
	MaxRecurringCycles       *int            `json:"maxRecurringCycles,omitempty"`
	RecurringCyclesCompleted *int            `json:"recurringCyclesCompleted,omitempty"`
	MaxRolloverAmount        *float64        `json:"maxRolloverAmount,omitempty"`
	RolloverAmount           *float64        `json:"rolloverAmount,omitempty"`
	IsRolloverAllowed        *bool           `json:"isRolloverAllowed,omitempty"`
}

// Usage is an immutable charging event. Before/after balance values are
// populated by the OCS, never computed here.
type Usage struct {
	UsageID            string     `json:"usageId"`
	UsageTimestamp     time.Time  `json:"usageTimestamp"`
	ChargedPartyID     string     `json:"chargedPartyId"`
	ChargedMSISDN      string     `json:"chargedMsisdn"`
	AParty             string     `json:"aParty"`
	BParty             string     `json:"bParty"`
	UsageType          UsageType  `json:"usageType"`
	RecordType         RecordType `json:"recordType"`
	RecordOpeningTime  *time.Time `json:"recordOpeningTime,omitempty"`
	RecordClosingTime  *time.Time `json:"recordClosingTime,omitempty"`
	DurationSeconds    *int       `json:"durationSeconds,omitempty"`
	VolumeUsage        float64    `json:"volumeUsage"`
	ImpactedBalanceID  string     `json:"impactedBalanceId"`
	BalanceValueBefore *float64   `json:"balanceValueBefore,omitempty"`
	BalanceValueAfter  *float64   `json:"balanceValueAfter,omitempty"`
	OfferID            string     `json:"offerId"`
}

// AccountHistory is an immutable audit record.
type AccountHistory struct {
	InteractionID    string         `json:"interactionId"`
	EntityID         string         `json:"entityId"`
	EntityType       EntityType     `json:"entityType"`
	CreationDate     time.Time      `json:"creationDate"`
	Description      string         `json:"description,omitempty"`
	Direction        string         `json:"direction,omitempty"`
	Reason           string         `json:"reason,omitempty"`
	Status           string         `json:"status,omitempty"`
	StatusChangeDate *time.Time     `json:"statusChangeDate,omitempty"`
	Attachment       map[string]any `json:"attachment,omitempty"`
	Channel          string         `json:"channel,omitempty"`
}
