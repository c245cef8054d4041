// Package prompts generates workflow guidance text for OCS provisioning
// operations. The templates describe recommended tool-call sequences; they
// invoke nothing themselves.
package prompts

import (
	"fmt"
	"strings"

	"github.com/vasil-yosifov/ocs-provisioning-mcp-server/internal/mcp"
)

const (
	PromptSubscriptionProvisioning = "subscription_provisioning_workflow"
	PromptAccountAnalysis          = "account_analysis_workflow"
)

// Provider serves the built-in workflow prompts over MCP.
type Provider struct{}

// NewProvider creates the prompt provider.
func NewProvider() *Provider {
	return &Provider{}
}

// ListPrompts enumerates the available workflow prompts.
func (p *Provider) ListPrompts() []mcp.Prompt {
	return []mcp.Prompt{
		{
			Name:        PromptSubscriptionProvisioning,
			Description: "Complete workflow for creating a subscription and provisioning all its balances from an offer",
			Arguments: []mcp.PromptArgument{
				{Name: "offer_id", Description: "The offer to use as the template (e.g. \"1000\", \"1001\", \"1010\")", Required: true},
				{Name: "subscriber_id", Description: "The subscriber who will receive the subscription", Required: true},
			},
		},
		{
			Name:        PromptAccountAnalysis,
			Description: "Workflow for analyzing a subscriber account: subscriptions, balance consumption and usage history",
			Arguments: []mcp.PromptArgument{
				{Name: "subscriber_id", Description: "The subscriber account to analyze", Required: true},
			},
		},
	}
}

// GetPrompt renders the named prompt with the supplied arguments.
func (p *Provider) GetPrompt(name string, args map[string]string) (mcp.GetPromptResult, error) {
	switch name {
	case PromptSubscriptionProvisioning:
		offerID := args["offer_id"]
		subscriberID := args["subscriber_id"]
		return mcp.GetPromptResult{
			Description: fmt.Sprintf("Provision offer %s for subscriber %s", offerID, subscriberID),
			Messages: []mcp.PromptMessage{
				{Role: "user", Content: mcp.NewTextContent(SubscriptionProvisioning(offerID, subscriberID))},
			},
		}, nil
	case PromptAccountAnalysis:
		subscriberID := args["subscriber_id"]
		return mcp.GetPromptResult{
			Description: fmt.Sprintf("Analyze account %s", subscriberID),
			Messages: []mcp.PromptMessage{
				{Role: "user", Content: mcp.NewTextContent(AccountAnalysis(subscriberID))},
			},
		}, nil
	default:
		return mcp.GetPromptResult{}, fmt.Errorf("Unknown prompt: %s", name)
	}
}

// SubscriptionProvisioning returns workflow guidance for creating a
// subscription and all of its balances from an offer template.
func SubscriptionProvisioning(offerID, subscriberID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `# Complete Workflow: Create Subscription and Balances from Offer

**Context:**
- Offer ID: %[1]s
- Subscriber ID: %[2]s

## Purpose
This workflow guides you through creating a subscription and provisioning all its balances based on an offer.
This ensures proper field mapping and balance provisioning following OCS best practices.

**Important:** This is guidance only. Execute the workflow by calling the individual tools in sequence.

## Complete Workflow

### Phase 1: Validation and Offer Selection

1. Call `+"`get_subscriber(%[2]s)`"+` to:
   - Verify subscriber exists
   - Extract subscriber type (PREPAID or POSTPAID)
   - Check current subscriptions

2. Call `+"`get_offer_by_id(%[1]s)`"+` OR `+"`get_available_offers()`"+` to:
   - Retrieve offer details including all balance definitions
   - Verify offer type matches subscriber type (PREPAID with PREPAID, POSTPAID with POSTPAID)
   - Review offer pricing, cycles, and balance allocations

### Phase 2: Create Subscription

3. Map offer fields to a subscription object and call `+"`create_subscription(%[2]s, subscription)`"+`
4. Extract subscriptionId from the response and verify the subscription was created successfully
5. Create an account history entry documenting the subscription creation

### Phase 3: Create Balances

6. For EACH balance defined in the offer's balances array, map fields and call `+"`create_balance(subscriptionId, balance)`"+`
   - Create voice balance (SECONDS) if present
   - Create SMS/MMS balance (EVENTS) if present
   - Create data balance (BYTES) if present
   - Create an account history entry for each balance created
   - Verify each balance creation was successful

#### Key Balance Field Mappings:
- balanceType: use the offer balance type
- unitType: map the offer balance unit (SECONDS/EVENTS/BYTES)
- balanceAmount and balanceAvailable: use the offer balance amount
- isRecurring: use the offer balance recurring flag
- cycleLengthType and cycleLengthUnits: use the offer balance cycleUnit and cycleLength
- isRolloverAllowed and maxRolloverAmount: from the offer balance
- rolloverAmount: set to 0 initially
- recurringCyclesCompleted: set to 0 initially
- effectiveDate: current timestamp
- expirationDate: calculated from effectiveDate plus the cycle length

7. Call `+"`change_subscription_state(subscriptionId, \"active\")`"+` to activate the subscription
8. Create an account history entry documenting the subscription activation
9. Verify by calling `+"`get_subscription(subscriptionId)`"+` and `+"`list_balances(subscriptionId)`"+`

## Account History Documentation

For each major operation, create an account history entry to maintain the audit trail.

**Account History Object Structure:**
- interactionId (required): unique identifier for the interaction (e.g. "INT-20251223-143000-001")
- entityId (required): the subscriber ID
- entityType (required): must be "SUBSCRIBER"
- creationDate (required): timestamp when the history entry is created (ISO 8601 format)
- description: free-text field containing all subscription/balance details
- channel: source of the operation (e.g. "API", "CRM", "PORTAL")
- status: operation status (e.g. "completed", "pending", "failed")
- reason: business reason for the operation

## Critical Rules

- **Type Matching**: subscriber type must match offer type (PREPAID with PREPAID, POSTPAID with POSTPAID)
- **Unit Types**: SECONDS (voice), EVENTS (SMS), BYTES (data)
- **Initial Values**: balanceAvailable = balanceAmount, rolloverAmount = 0, recurringCyclesCompleted = 0
- **Create all balances before activation**

## Date Calculation Rules

- expirationDate = effectiveDate + (cycleLengthUnits x cycleLengthType)
- Calendar month arithmetic: adding 1 MONTH means the same day number in the next month
  (2025-12-23T14:30:00Z + 1 MONTH = 2026-01-23T14:30:00Z)
- Time component (hour/minute/second) remains unchanged; always use UTC (Z suffix)
- End-of-month edge case: Jan 31 + 1 MONTH = Feb 28/29 (last valid day of the month)
- WEEK cycles add 7 days per unit; DAY cycles add 1 day per unit
- All balances in the same subscription should carry synchronized expiration dates

## Operation Count

A complete provisioning run for a three-balance offer takes 10 API calls:
1. Create subscription
2. Record subscription creation (account history)
3. Create voice balance
4. Record voice balance creation (account history)
5. Create SMS balance
6. Record SMS balance creation (account history)
7. Create data balance
8. Record data balance creation (account history)
9. Activate subscription
10. Record activation (account history)

## Quick Reference

1. `+"`get_subscriber(%[2]s)`"+` - verify subscriber and get type
2. `+"`get_offer_by_id(%[1]s)`"+` - get offer details
3. `+"`create_subscription(%[2]s, subscription)`"+` - create subscription
4. `+"`create_account_history(%[2]s, history)`"+` - record subscription creation
5. `+"`create_balance(subscriptionId, balance)`"+` - create each balance (repeat for voice/SMS/data)
6. `+"`create_account_history(%[2]s, history)`"+` - record each balance creation
7. `+"`change_subscription_state(subscriptionId, \"active\")`"+` - activate subscription
8. `+"`create_account_history(%[2]s, history)`"+` - record activation
`, offerID, subscriberID)

	return b.String()
}

// AccountAnalysis returns workflow guidance for reviewing a subscriber
// account: its subscriptions, balance consumption and recent usage.
func AccountAnalysis(subscriberID string) string {
	var b strings.Builder

	fmt.Fprintf(&b, `# Account Analysis Workflow

**Context:**
- Subscriber ID: %[1]s

## Purpose
This workflow guides you through a full review of a subscriber account: profile,
subscriptions, balance consumption and recent usage. It produces a textual
analysis; no provisioning changes are made.

**Important:** This is guidance only. Execute the workflow by calling the individual tools in sequence.

## Workflow

### Phase 1: Profile

1. Call `+"`get_subscriber(%[1]s)`"+` to retrieve the profile:
   - Note the subscriber type (PREPAID or POSTPAID) and current state
   - A subscriber in state "suspended" or "deactivated" cannot consume services

### Phase 2: Subscriptions and Balances

2. Call `+"`list_subscriptions(%[1]s)`"+` to enumerate subscriptions
3. For each subscription, call `+"`list_balances(subscriptionId)`"+` and compute per balance:
   - consumption percentage = (balanceAmount - balanceAvailable) / balanceAmount * 100
   - flag any balance above 80%% consumed
   - flag any balance past its expirationDate that has not been renewed

### Phase 3: Balance Priority Review

When multiple balances of the same unit type are active, usage is charged
against the balance whose subscription offer carries the LOWEST priority
number first. Catalog priorities:
- Data bundles (offers 1002, 1003): priority 1000 - consumed first
- Premium prepaid plan (offer 1010): priority 4000
- Basic plans (offers 1000, 1001): priority 5000 - consumed last

Verify that bundle balances are being drained before base plan balances; if a
base plan balance is consumed while a bundle balance of the same unit type sits
unused, flag it for investigation.

### Phase 4: Usage History

4. Call `+"`list_usage_for_subscriber(%[1]s, limit, offset)`"+` to pull recent usage records
5. Group records by usageType (VOICE/DATA/SMS/MMS) and check:
   - each record's impactedBalanceId references a balance that was active at usageTimestamp
   - volumeUsage totals per balance are consistent with the consumption computed in Phase 2

### Phase 5: Audit Trail

6. Call `+"`list_account_history(limit, offset)`"+` and filter for entityId %[1]s
7. Confirm provisioning operations (subscription/balance creation, state changes)
   each have a matching history entry

## Report Structure

Summarize the findings as:
- Profile: type, state, MSISDN
- Subscriptions: one line each with offer, state, cycle
- Balances: table of unitType, available/total, consumption %%, expiration
- Anomalies: priority violations, expired-but-unrenewed balances, missing audit entries
`, subscriberID)

	return b.String()
}
