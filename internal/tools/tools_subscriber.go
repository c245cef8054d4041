package tools

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/ocs"
)

func (e *Executor) registerSubscriberTools() {
	e.registry.Register(mcp.Tool{
		Name:        "lookup_subscriber",
		Description: "Lookup subscriberId by MSISDN, IMSI or first and last name",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"msisdn":         {Type: "string", Description: "MSISDN number to lookup"},
				"imsi":           {Type: "string", Description: "IMSI to lookup"},
				"first_name":     {Type: "string", Description: "Subscriber first name (requires last_name)"},
				"last_name":      {Type: "string", Description: "Subscriber last name (requires first_name)"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
		},
	}, handleLookupSubscriber)

	e.registry.Register(mcp.Tool{
		Name:        "create_subscriber",
		Description: "Create a new subscriber. When no MSISDN is supplied, a free number is generated and verified against the OCS before creation",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":          {Type: "string", Description: "Unique subscriber ID"},
				"msisdn":                 {Type: "string", Description: "MSISDN in international format; generated when omitted"},
				"imsi":                   {Type: "string", Description: "IMSI"},
				"first_name":             {Type: "string", Description: "First name (helper for personalInfo)"},
				"last_name":              {Type: "string", Description: "Last name (helper for personalInfo)"},
				"email":                  {Type: "string", Description: "Email address (helper for personalInfo)"},
				"subscriber_type":        {Type: "string", Description: "Type of subscriber (PREPAID or POSTPAID)"},
				"language_id":            {Type: "string", Description: "Language ID"},
				"notification_addresses": {Type: "array", Description: "List of notification addresses"},
				"personal_info":          {Type: "object", Description: "Full personal info object (overrides helpers)"},
				"billing":                {Type: "object", Description: "Billing information object"},
				"services":               {Type: "object", Description: "Services configuration object"},
				"custom_fields":          {Type: "object", Description: "Custom fields dictionary"},
				"transaction_id":         {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id"},
		},
	}, handleCreateSubscriber)

	e.registry.Register(mcp.Tool{
		Name:        "get_subscriber",
		Description: "Get subscriber by ID",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id"},
		},
	}, handleGetSubscriber)

	e.registry.Register(mcp.Tool{
		Name:        "update_subscriber",
		Description: "Update subscriber fields using {fieldName, fieldValue} patch operations",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"patches":        {Type: "array", Description: "List of patch operations, e.g. [{\"fieldName\": \"personalInfo.email\", \"fieldValue\": \"new@example.com\"}]"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id", "patches"},
		},
	}, handleUpdateSubscriber)

	e.registry.Register(mcp.Tool{
		Name:        "delete_subscriber",
		Description: "Delete subscriber",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id"},
		},
	}, handleDeleteSubscriber)

	e.registry.Register(mcp.Tool{
		Name:        "change_subscriber_state",
		Description: "Change subscriber lifecycle state",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"state":          {Type: "string", Description: "Target state", Enum: ocs.SubscriberStates()},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id", "state"},
		},
	}, handleChangeSubscriberState)
}

func handleLookupSubscriber(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	query := url.Values{}
	if v := stringArg(args, "msisdn"); v != "" {
		query.Set("msisdn", v)
	}
	if v := stringArg(args, "imsi"); v != "" {
		query.Set("imsi", v)
	}
	if v := stringArg(args, "first_name"); v != "" {
		query.Set("firstName", v)
	}
	if v := stringArg(args, "last_name"); v != "" {
		query.Set("lastName", v)
	}
	if len(query) == 0 {
		return mcp.NewErrorResult(errors.New("at least one of msisdn, imsi or first_name/last_name is required"))
	}

	raw, err := e.client.Get(ctx, "/subscribers/lookup", query, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "{}")
}

func handleCreateSubscriber(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	subscriber := ocs.Subscriber{
		SubscriberID:   subscriberID,
		MSISDN:         stringArg(args, "msisdn"),
		IMSI:           stringArg(args, "imsi"),
		SubscriberType: stringArg(args, "subscriber_type"),
		LanguageID:     stringArg(args, "language_id"),
	}

	if _, ok := args["notification_addresses"]; ok {
		if err := decodeArg(args, "notification_addresses", &subscriber.NotificationAddresses); err != nil {
			return mcp.NewErrorResult(err)
		}
	}
	if _, ok := args["billing"]; ok {
		if err := decodeArg(args, "billing", &subscriber.Billing); err != nil {
			return mcp.NewErrorResult(err)
		}
	}
	if _, ok := args["services"]; ok {
		if err := decodeArg(args, "services", &subscriber.Services); err != nil {
			return mcp.NewErrorResult(err)
		}
	}
	if _, ok := args["custom_fields"]; ok {
		if err := decodeArg(args, "custom_fields", &subscriber.CustomFields); err != nil {
			return mcp.NewErrorResult(err)
		}
	}

	// A full personal_info object wins over the individual helpers.
	if _, ok := args["personal_info"]; ok {
		if err := decodeArg(args, "personal_info", &subscriber.PersonalInfo); err != nil {
			return mcp.NewErrorResult(err)
		}
	} else {
		info := map[string]any{}
		if v := stringArg(args, "first_name"); v != "" {
			info["firstName"] = v
		}
		if v := stringArg(args, "last_name"); v != "" {
			info["lastName"] = v
		}
		if v := stringArg(args, "email"); v != "" {
			info["email"] = v
		}
		if len(info) > 0 {
			subscriber.PersonalInfo = info
		}
	}

	transactionID := txID(args)
	if subscriber.MSISDN == "" {
		msisdn, err := e.findAvailableMSISDN(ctx, transactionID)
		if err != nil {
			return errorResult(err)
		}
		subscriber.MSISDN = msisdn
	}

	raw, err := e.client.Post(ctx, "/subscribers", subscriber, transactionID)
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Subscriber %s created successfully", subscriberID))
}

// findAvailableMSISDN generates candidate numbers and probes the lookup
// endpoint until the OCS reports one as unknown. Sequential attempts, no
// backoff; the attempt cap bounds the loop.
func (e *Executor) findAvailableMSISDN(ctx context.Context, transactionID string) (string, error) {
	for attempt := 1; attempt <= e.msisdnAttempts; attempt++ {
		candidate := e.msisdnPrefix + randomDigits(7)

		query := url.Values{}
		query.Set("msisdn", candidate)
		_, err := e.client.Get(ctx, "/subscribers/lookup", query, transactionID)
		if err == nil {
			// Number already assigned, try another.
			log.Debug().Str("msisdn", candidate).Int("attempt", attempt).Msg("candidate MSISDN already in use")
			continue
		}

		var apiErr *ocs.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			log.Debug().Str("msisdn", candidate).Int("attempt", attempt).Msg("found available MSISDN")
			return candidate, nil
		}
		return "", err
	}
	return "", &ocs.APIError{
		StatusCode: http.StatusConflict,
		Message:    fmt.Sprintf("could not find an available MSISDN after %d attempts", e.msisdnAttempts),
	}
}

func randomDigits(n int) string {
	digits := make([]byte, n)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return string(digits)
}

func handleGetSubscriber(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	raw, err := e.client.Get(ctx, "/subscribers/"+subscriberID, nil, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "{}")
}

func handleUpdateSubscriber(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}
	patches, err := decodePatches(args)
	if err != nil {
		return mcp.NewErrorResult(err)
	}

	raw, err := e.client.Patch(ctx, "/subscribers/"+subscriberID, patches, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Subscriber %s updated successfully", subscriberID))
}

func handleDeleteSubscriber(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	if _, err := e.client.Delete(ctx, "/subscribers/"+subscriberID, txID(args)); err != nil {
		return errorResult(err)
	}
	return mcp.NewTextResult(fmt.Sprintf("Subscriber %s deleted successfully", subscriberID))
}

func handleChangeSubscriberState(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	state := ocs.SubscriberState(stringArg(args, "state"))
	if !state.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid subscriber state: %s", state),
			"validStates", ocs.SubscriberStates())
	}

	patches := []ocs.PatchOperation{{FieldName: "currentState", FieldValue: state}}
	raw, err := e.client.Patch(ctx, "/subscribers/"+subscriberID, patches, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Subscriber %s state changed to %s", subscriberID, state))
}
