package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/ocs"
)

func (e *Executor) registerSubscriptionTools() {
	e.registry.Register(mcp.Tool{
		Name:        "create_subscription",
		Description: "Create a subscription for a subscriber",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"subscription":   {Type: "object", Description: "Subscription object (subscriptionId, offerId, state, cycle fields)"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id", "subscription"},
		},
	}, handleCreateSubscription)

	e.registry.Register(mcp.Tool{
		Name:        "list_subscriptions",
		Description: "List subscriptions for a subscriber",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscriber_id":  {Type: "string", Description: "The subscriber ID"},
				"transaction_id": {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscriber_id"},
		},
	}, handleListSubscriptions)

	e.registry.Register(mcp.Tool{
		Name:        "get_subscription",
		Description: "Get subscription by ID",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id"},
		},
	}, handleGetSubscription)

	e.registry.Register(mcp.Tool{
		Name:        "update_subscription",
		Description: "Update subscription fields using {fieldName, fieldValue} patch operations",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"patches":         {Type: "array", Description: "List of patch operations"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id", "patches"},
		},
	}, handleUpdateSubscription)

	e.registry.Register(mcp.Tool{
		Name:        "change_subscription_state",
		Description: "Change subscription lifecycle state",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"state":           {Type: "string", Description: "Target state", Enum: ocs.SubscriptionStates()},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id", "state"},
		},
	}, handleChangeSubscriptionState)

	e.registry.Register(mcp.Tool{
		Name:        "delete_subscription",
		Description: "Delete subscription",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"subscription_id": {Type: "string", Description: "The subscription ID"},
				"transaction_id":  {Type: "string", Description: "Optional unique transaction ID"},
			},
			Required: []string{"subscription_id"},
		},
	}, handleDeleteSubscription)
}

func handleCreateSubscription(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	var subscription ocs.Subscription
	if err := decodeArg(args, "subscription", &subscription); err != nil {
		return mcp.NewErrorResult(err)
	}
	if subscription.SubscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription.subscriptionId is required"))
	}
	if subscription.State != "" && !subscription.State.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid subscription state: %s", subscription.State),
			"validStates", ocs.SubscriptionStates())
	}

	raw, err := e.client.Post(ctx, "/subscribers/"+subscriberID+"/subscriptions", subscription, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Subscription %s created successfully", subscription.SubscriptionID))
}

func handleListSubscriptions(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriberID := stringArg(args, "subscriber_id")
	if subscriberID == "" {
		return mcp.NewErrorResult(errors.New("subscriber_id is required"))
	}

	raw, err := e.client.Get(ctx, "/subscribers/"+subscriberID+"/subscriptions", nil, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "[]")
}

func handleGetSubscription(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}

	raw, err := e.client.Get(ctx, "/subscriptions/"+subscriptionID, nil, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, "{}")
}

func handleUpdateSubscription(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}
	patches, err := decodePatches(args)
	if err != nil {
		return mcp.NewErrorResult(err)
	}

	raw, err := e.client.Patch(ctx, "/subscriptions/"+subscriptionID, patches, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Subscription %s updated successfully", subscriptionID))
}

func handleChangeSubscriptionState(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}

	state := ocs.SubscriptionState(stringArg(args, "state"))
	if !state.Valid() {
		return invalidValueResult(
			fmt.Sprintf("Invalid subscription state: %s", state),
			"validStates", ocs.SubscriptionStates())
	}

	patches := []ocs.PatchOperation{{FieldName: "state", FieldValue: state}}
	raw, err := e.client.Patch(ctx, "/subscriptions/"+subscriptionID, patches, txID(args))
	if err != nil {
		return errorResult(err)
	}
	return rawResult(raw, fmt.Sprintf("Subscription %s state changed to %s", subscriptionID, state))
}

func handleDeleteSubscription(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	subscriptionID := stringArg(args, "subscription_id")
	if subscriptionID == "" {
		return mcp.NewErrorResult(errors.New("subscription_id is required"))
	}

	if _, err := e.client.Delete(ctx, "/subscriptions/"+subscriptionID, txID(args)); err != nil {
		return errorResult(err)
	}
	return mcp.NewTextResult(fmt.Sprintf("Subscription %s deleted successfully", subscriptionID))
}
