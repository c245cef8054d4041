package tools

import (
	"context"
	"errors"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/offers"
)

// Offer tools serve the static catalog; no downstream call is made.

func (e *Executor) registerOfferTools() {
	e.registry.Register(mcp.Tool{
		Name:        "get_available_offers",
		Description: "Get the full catalog of available offers",
		InputSchema: mcp.InputSchema{
			Type:       "object",
			Properties: map[string]mcp.PropertySchema{},
		},
	}, handleGetAvailableOffers)

	e.registry.Register(mcp.Tool{
		Name:        "get_offer_by_id",
		Description: "Get a single offer from the catalog by its ID",
		InputSchema: mcp.InputSchema{
			Type: "object",
			Properties: map[string]mcp.PropertySchema{
				"offer_id": {Type: "string", Description: "The offer ID", Enum: offers.ValidIDs()},
			},
			Required: []string{"offer_id"},
		},
	}, handleGetOfferByID)
}

func handleGetAvailableOffers(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	return mcp.NewJSONResult(offers.All())
}

func handleGetOfferByID(ctx context.Context, e *Executor, args map[string]interface{}) mcp.CallToolResult {
	offerID := stringArg(args, "offer_id")
	if offerID == "" {
		return mcp.NewErrorResult(errors.New("offer_id is required"))
	}

	offer, ok := offers.ByID(offerID)
	if !ok {
		return mcp.NewJSONResult(offers.NotFound{
			Error:         "Offer not found",
			ValidOfferIDs: offers.ValidIDs(),
		})
	}
	return mcp.NewJSONResult(offer)
}
