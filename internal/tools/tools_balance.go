package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/ocs"
)

func (e *Executor) registerBalanceTools() {
	e.registry.Register(mcp.Tool{
		Name:        "create_balance",
		Description: "Create a balance for a subscription",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"balance":         {Type: "object", Description: "Balance object (balanceType, unitType, balanceAmount, cycle and rollover fields)"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id", "balance"},
		},
	}, handleCreateBalance)

	e.registry.Register(mcp.Tool{
		Name:        "list_balances",
		Description: "Get all balances for a subscription",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id"},
		},
	}, handleListBalances)

	e.registry.Register(mcp.Tool{
		Name:        "delete_balances",
		Description: "Delete all balances for a subscription",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id"},
		},
	}, handleDeleteBalances)
}

func handleCreateBalance(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}

	var balance ocs.Balance
	if err := decodeArg(args, "balance", &balance); err != nil {
		return mcp.NewErrorResult(err)
	}
	if balance.UnitType != "" && !balance.UnitType.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid balance unit type: %s", balance.UnitType),
			"validUnitTypes", []string{
				string(ocs.UnitBytes), string(ocs.UnitEvents), string(ocs.UnitSeconds),
				string(ocs.UnitMicrocents), string(ocs.UnitMicrounits),
			})
	}

	raw, err := e.client.Post(ctx, "/subscriptions/"+subscriptionID+"/balances", balance, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Balance created successfully for subscription %s", subscriptionID))
}

func handleListBalances(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}

	raw, err := e.client.Get(ctx, "/subscriptions/"+subscriptionID+"/balances", nil, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "[]")
}

func handleDeleteBalances(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}

	if _, err := e.client.Delete(ctx, "/subscriptions/"+subscriptionID+"/balances", txID(args)); err != nil {
		return errorResult(err)
	}
	return mcp.NewTextResult(fmt.Sprintf("Balances for subscription %s deleted successfully", subscriptionID))
}
