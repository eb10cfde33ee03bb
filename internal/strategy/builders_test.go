package strategy

import (
	"testing"

	"optionist/internal/models"
)

const expiry = "2026-09-30"

func TestVerticalSpread(t *testing.T) {
	legs := VerticalSpread(models.Call, 100, 110, 5.0, 2.0, expiry)

	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(legs))
	}
	long, short := legs[0], legs[1]
	if long.Quantity != 1 || short.Quantity != -1 {
		t.Errorf("quantities = %d, %d, want +1, -1", long.Quantity, short.Quantity)
	}
	if long.Strike != 100 || short.Strike != 110 {
		t.Errorf("strikes = %.0f, %.0f", long.Strike, short.Strike)
	}
	if long.Type != models.Call || short.Type != models.Call {
		t.Errorf("both legs must share the spread type")
	}
	if long.Premium != 5.0 || short.Premium != 2.0 {
		t.Errorf("premiums = %.2f, %.2f", long.Premium, short.Premium)
	}
	for _, leg := range legs {
		if leg.Expiration != expiry {
			t.Errorf("expiration = %s, want %s", leg.Expiration, expiry)
		}
	}
}

func TestVerticalSpread_PutSide(t *testing.T) {
	legs := VerticalSpread(models.Put, 110, 100, 6.0, 3.0, expiry)
	if legs[0].Type != models.Put || legs[1].Type != models.Put {
		t.Errorf("put spread legs must be puts")
	}
}

func TestIronCondor(t *testing.T) {
	legs := IronCondor(420, 430, 470, 480, 1.10, 2.40, 2.60, 1.20, expiry)

	if len(legs) != 4 {
		t.Fatalf("expected 4 legs, got %d", len(legs))
	}
	wantTypes := []models.OptionType{models.Put, models.Put, models.Call, models.Call}
	wantQty := []int{1, -1, -1, 1}
	wantStrikes := []float64{420, 430, 470, 480}
	for i, leg := range legs {
		if leg.Type != wantTypes[i] {
			t.Errorf("leg %d type = %s, want %s", i, leg.Type, wantTypes[i])
		}
		if leg.Quantity != wantQty[i] {
			t.Errorf("leg %d quantity = %d, want %d", i, leg.Quantity, wantQty[i])
		}
		if leg.Strike != wantStrikes[i] {
			t.Errorf("leg %d strike = %.0f, want %.0f", i, leg.Strike, wantStrikes[i])
		}
	}
	// Wings bought, body sold: net quantity zero.
	if net := netQuantity(legs); net != 0 {
		t.Errorf("net quantity = %d, want 0", net)
	}
}

func TestStraddle(t *testing.T) {
	long := Straddle(100, 4.20, 3.80, Long, expiry)
	if long[0].Type != models.Call || long[1].Type != models.Put {
		t.Errorf("straddle legs = %s, %s, want call, put", long[0].Type, long[1].Type)
	}
	if long[0].Strike != long[1].Strike {
		t.Errorf("straddle strikes differ: %.0f vs %.0f", long[0].Strike, long[1].Strike)
	}
	if long[0].Quantity != 1 || long[1].Quantity != 1 {
		t.Errorf("long straddle quantities = %d, %d", long[0].Quantity, long[1].Quantity)
	}

	short := Straddle(100, 4.20, 3.80, Short, expiry)
	if short[0].Quantity != -1 || short[1].Quantity != -1 {
		t.Errorf("short straddle quantities = %d, %d", short[0].Quantity, short[1].Quantity)
	}
}

func TestStrangle(t *testing.T) {
	legs := Strangle(110, 90, 2.10, 1.90, Long, expiry)
	if legs[0].Type != models.Call || legs[0].Strike != 110 {
		t.Errorf("call leg = %s @ %.0f", legs[0].Type, legs[0].Strike)
	}
	if legs[1].Type != models.Put || legs[1].Strike != 90 {
		t.Errorf("put leg = %s @ %.0f", legs[1].Type, legs[1].Strike)
	}
}

func TestButterfly(t *testing.T) {
	legs := Butterfly(models.Call, 95, 100, 105, 7.0, 4.0, 2.0, expiry)

	if len(legs) != 3 {
		t.Fatalf("expected 3 legs, got %d", len(legs))
	}
	wantQty := []int{1, -2, 1}
	for i, leg := range legs {
		if leg.Quantity != wantQty[i] {
			t.Errorf("leg %d quantity = %d, want %d", i, leg.Quantity, wantQty[i])
		}
		if leg.Type != models.Call {
			t.Errorf("leg %d type = %s, want call", i, leg.Type)
		}
	}
	if net := netQuantity(legs); net != 0 {
		t.Errorf("net quantity = %d, want 0", net)
	}
}

func TestBuilders_NoValidation(t *testing.T) {
	// Inverted strikes are accepted as-is; the payoff math handles them.
	legs := Butterfly(models.Put, 105, 100, 95, 2.0, 4.0, 7.0, expiry)
	if legs[0].Strike != 105 || legs[2].Strike != 95 {
		t.Errorf("strikes were reordered: %v", []float64{legs[0].Strike, legs[1].Strike, legs[2].Strike})
	}
}

func netQuantity(legs []models.OptionLeg) int {
	var net int
	for _, leg := range legs {
		net += leg.Quantity
	}
	return net
}
