package offers

import "testing"

func TestByIDBasicPrepaid(t *testing.T) {
	offer, ok := ByID("1000")
	if !ok {
		t.Fatal("expected offer 1000 to exist")
	}

	if offer.OfferName != "Basic prepaid plan" {
		t.Errorf("expected offer name %q, got %q", "Basic prepaid plan", offer.OfferName)
	}
	if offer.Type != "PREPAID" {
		t.Errorf("expected type PREPAID, got %s", offer.Type)
	}
	if len(offer.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(offer.Balances))
	}

	wantAmounts := map[string]int64{
		"SECONDS": 3600,
		"EVENTS":  1000,
		"BYTES":   10737418240,
	}
	for _, balance := range offer.Balances {
		want, ok := wantAmounts[balance.Unit]
		if !ok {
			t.Errorf("unexpected balance unit %s", balance.Unit)
			continue
		}
		if balance.Amount != want {
			t.Errorf("unit %s: expected amount %d, got %d", balance.Unit, want, balance.Amount)
		}
	}
}

func TestByIDMiss(t *testing.T) {
	_, ok := ByID("9999")
	if ok {
		t.Error("offer 9999 should not exist")
	}
}

func TestValidIDs(t *testing.T) {
	ids := ValidIDs()
	want := []string{"1000", "1001", "1002", "1003", "1010"}

	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("position %d: expected %s, got %s", i, id, ids[i])
		}
	}
}

func TestDataBundlesOutrankBasePlans(t *testing.T) {
	basic, _ := ByID("1000")
	bundle, _ := ByID("1002")

	// Lower priority number means the balance is consumed first.
	if bundle.Priority >= basic.Priority {
		t.Errorf("data bundle priority %d should be lower than base plan priority %d", bundle.Priority, basic.Priority)
	}
}
