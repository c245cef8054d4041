package tools

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/ocs"
)

const (
	defaultUsageLimit  = 100
	defaultUsageOffset = 0
)

func (e *Executor) registerUsageTools() {
	e.registry.Register(mcp.Tool{
		Name:        "record_usage",
		Description: "Record service usage for a subscriber, charging the specified balance",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"usage":          {Type: "object", Description: "Usage object (usageId, usageTimestamp, chargedPartyId, chargedMsisdn, aParty, bParty, usageType, recordType, volumeUsage, impactedBalanceId, offerId)"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"usage"},
		},
	}, handleRecordUsage)

	e.registry.Register(mcp.Tool{
		Name:        "list_usage_for_subscriber",
		Description: "List usage records for a subscriber with pagination",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"limit":          {Type: "integer", Description: "Maximum records to return", Default: defaultUsageLimit},
				"offset":         {Type: "integer", Description: "Records to skip for pagination", Default: defaultUsageOffset},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id"},
		},
	}, handleListUsageForSubscriber)
}

func handleRecordUsage(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	var usage ocs.Usage
	if err := decodeArg(args, "usage", &usage); err != nil {
		return mcp.NewErrorResult(err)
	}

	switch {
	case usage.UsageID == "":
		return mcp.NewErrorResult(errors.New("usage.usageId is required"))
	case usage.ChargedPartyID == "":
		return mcp.NewErrorResult(errors.New("usage.chargedPartyId is required"))
	case usage.ImpactedBalanceID == "":
		return mcp.NewErrorResult(errors.New("usage.impactedBalanceId is required"))
	case usage.VolumeUsage < 0:
		return mcp.NewErrorResult(errors.New("usage.volumeUsage must not be negative"))
	}
	if !usage.UsageType.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid usage type: %s", usage.UsageType),
			"validUsageTypes", []string{
				string(ocs.UsageVoice), string(ocs.UsageData), string(ocs.UsageSMS), string(ocs.UsageMMS),
			})
	}
	if !usage.RecordType.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid record type: %s", usage.RecordType),
			"validRecordTypes", []string{
				string(ocs.RecordStart), string(ocs.RecordInterim), string(ocs.RecordStop), string(ocs.RecordEvent),
			})
	}

	raw, err := e.client.Post(ctx, "/usage", usage, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Usage record %s created successfully", usage.UsageID))
}

func handleListUsageForSubscriber(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(intArg(args, "limit", defaultUsageLimit)))
	query.Set("offset", strconv.Itoa(intArg(args, "offset", defaultUsageOffset)))

	raw, err := e.client.Get(ctx, "/subscribers/"+subscriberID+"/usage", query, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "[]")
}
