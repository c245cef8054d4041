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
	defaultHistoryLimit  = 10
	defaultHistoryOffset = 0
)

func (e *Executor) registerHistoryTools() {
	e.registry.Register(mcp.Tool{
		Name:        "create_account_history",
		Description: "Create a new account history entry for the audit trail",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"account_history": {Type: "object", Description: "Account history object (interactionId, entityId, entityType, creationDate plus optional description, channel, status, reason)"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"account_history"},
		},
	}, handleCreateAccountHistory)

	e.registry.Register(mcp.Tool{
		Name:        "list_account_history",
		Description: "List account history entries by entity ID with pagination",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"entity_id":      {Type: "string", Description: "The entity ID (usually a subscriber ID)"},
				"limit":          {Type: "integer", Description: "Maximum entries to return", Default: defaultHistoryLimit},
				"offset":         {Type: "integer", Description: "Entries to skip for pagination", Default: defaultHistoryOffset},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"entity_id"},
		},
	}, handleListAccountHistory)

	e.registry.Register(mcp.Tool{
		Name:        "get_account_history",
		Description: "Get account history entry by interaction ID",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"interaction_id": {Type: "string", Description: "The interaction ID"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"interaction_id"},
		},
	}, handleGetAccountHistory)

	e.registry.Register(mcp.Tool{
		Name:        "update_account_history",
		Description: "Update account history entry using {fieldName, fieldValue} patch operations",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"interaction_id": {Type: "string", Description: "The interaction ID"},
				"patches":        {Type: "array", Description: "List of patch operations"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"interaction_id", "patches"},
		},
	}, handleUpdateAccountHistory)
}

func handleCreateAccountHistory(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	var history ocs.AccountHistory
	if err := decodeArg(args, "account_history", &history); err != nil {
		return mcp.NewErrorResult(err)
	}
	if history.InteractionID == "" {
		return mcp.NewErrorResult(errors.New("account_history.interactionId is required"))
	}
	if history.EntityID == "" {
		return mcp.NewErrorResult(errors.New("account_history.entityId is required"))
	}
	if !history.EntityType.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid entity type: %s", history.EntityType),
			"validEntityTypes", []string{
				string(ocs.EntitySubscriber), string(ocs.EntityGroup), string(ocs.EntityAccount),
			})
	}

	raw, err := e.client.Post(ctx, "/accountHistory", history, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Account history entry %s created successfully", history.InteractionID))
}

func handleListAccountHistory(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	entityID := stringArg(args, "entity_id")
	if entityID == "" {
		return mcp.NewErrorResult(errors.New("entity_id is required"))
	}

	query := url.Values{}
	query.Set("entityId", entityID)
	query.Set("limit", strconv.Itoa(intArg(args, "limit", defaultHistoryLimit)))
	query.Set("offset", strconv.Itoa(intArg(args, "offset", defaultHistoryOffset)))

	raw, err := e.client.Get(ctx, "/accountHistory", query, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "[]")
}

func handleGetAccountHistory(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	interactionID := stringArg(args, "interaction_id")
	if interactionID == "" {
		return mcp.NewErrorResult(errors.New("interaction_id is required"))
	}

	raw, err := e.client.Get(ctx, "/accountHistory/"+interactionID, nil, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "{}")
}

func handleUpdateAccountHistory(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	interactionID := stringArg(args, "interaction_id")
	if interactionID == "" {
		return mcp.NewErrorResult(errors.New("interaction_id is required"))
	}
	patches, err := decodePatches(args)
	if err != nil {
		return mcp.NewErrorResult(err)
	}

	raw, err := e.client.Patch(ctx, "/accountHistory/"+interactionID, patches, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Account history entry %s updated successfully", interactionID))
}
