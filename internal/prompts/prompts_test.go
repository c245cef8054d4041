package prompts

import (
	"strings"
	"testing"
)

func TestSubscriptionProvisioningInterpolation(t *testing.T) {
	text := SubscriptionProvisioning("1000", "SUB-42")

	for _, want := range []string{
		"Offer ID: 1000",
		"Subscriber ID: SUB-42",
		"get_subscriber(SUB-42)",
		"get_offer_by_id(1000)",
		"create_subscription(SUB-42, subscription)",
		"change_subscription_state(subscriptionId, \"active\")",
		"create_account_history(SUB-42, history)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("workflow text missing %q", want)
		}
	}
}

func TestSubscriptionProvisioningCoversAuditTrail(t *testing.T) {
	text := SubscriptionProvisioning("1010", "SUB-1")

	if !strings.Contains(text, "10 API calls") {
		t.Error("workflow text should state the full operation count")
	}
	if !strings.Contains(text, "entityType") {
		t.Error("workflow text should describe the account history structure")
	}
}

func TestAccountAnalysisInterpolation(t *testing.T) {
	text := AccountAnalysis("SUB-7")

	for _, want := range []string{
		"Subscriber ID: SUB-7",
		"get_subscriber(SUB-7)",
		"list_subscriptions(SUB-7)",
		"list_usage_for_subscriber(SUB-7",
		"priority 1000",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("analysis text missing %q", want)
		}
	}
}

func TestProviderListsBothPrompts(t *testing.T) {
	provider := NewProvider()

	prompts := provider.ListPrompts()
	if len(prompts) != 2 {
		t.Fatalf("expected 2 prompts, got %d", len(prompts))
	}
	if prompts[0].Name != PromptSubscriptionProvisioning {
		t.Errorf("expected %s first, got %s", PromptSubscriptionProvisioning, prompts[0].Name)
	}
	if prompts[1].Name != PromptAccountAnalysis {
		t.Errorf("expected %s second, got %s", PromptAccountAnalysis, prompts[1].Name)
	}
}

func TestProviderGetPrompt(t *testing.T) {
	provider := NewProvider()

	result, err := provider.GetPrompt(PromptSubscriptionProvisioning, map[string]string{
		"offer_id":      "1002",
		"subscriber_id": "SUB-9",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(result.Messages))
	}
	if !strings.Contains(result.Messages[0].Content.Text, "Offer ID: 1002") {
		t.Error("prompt message should interpolate the offer id")
	}
}

func TestProviderGetPromptUnknown(t *testing.T) {
	provider := NewProvider()

	_, err := provider.GetPrompt("does_not_exist", nil)
	if err == nil {
		t.Fatal("expected error for unknown prompt")
	}
	if !strings.Contains(err.Error(), "Unknown prompt") {
		t.Errorf("unexpected error message: %v", err)
	}
}
