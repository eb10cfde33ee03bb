package pnl

import (
	"math"
	"testing"

	"optionist/internal/models"
	"optionist/internal/strategy"
)

func longCall(strike, premium float64) []models.OptionLeg {
	return []models.OptionLeg{{
		Type:       models.Call,
		Strike:     strike,
		Premium:    premium,
		Quantity:   1,
		Expiration: "2026-09-30",
	}}
}

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestCalculate_LongCall(t *testing.T) {
	result := Calculate(longCall(100, 5.0), 100, DefaultParams())

	if len(result.Breakevens) != 1 {
		t.Fatalf("expected 1 breakeven, got %d (%v)", len(result.Breakevens), result.Breakevens)
	}
	if !approxEqual(result.Breakevens[0], 105.0, 0.01) {
		t.Errorf("breakeven = %.4f, want 105.00", result.Breakevens[0])
	}
	if !approxEqual(result.MaxLoss, -500.0, 1e-9) {
		t.Errorf("max loss = %.2f, want -500.00", result.MaxLoss)
	}
	// At the lower bound of the sampled range the call is worthless.
	if low := result.Curve[0]; !approxEqual(low.PnL, -500.0, 1e-9) {
		t.Errorf("P&L at low bound = %.2f, want -500.00", low.PnL)
	}
	if result.NetDebitCredit != 500.0 {
		t.Errorf("net debit = %.2f, want 500.00", result.NetDebitCredit)
	}
	// Max risk is the debit, so the worst point normalizes to -100%.
	if !approxEqual(result.Curve[0].PnLPct, -100.0, 1e-9) {
		t.Errorf("P&L%% at low bound = %.2f, want -100.00", result.Curve[0].PnLPct)
	}
	if result.MaxProfit <= 0 {
		t.Errorf("max profit = %.2f, want positive", result.MaxProfit)
	}
	// Above the strike the payoff climbs monotonically.
	for i := 1; i < len(result.Curve); i++ {
		prev, curr := result.Curve[i-1], result.Curve[i]
		if prev.UnderlyingPrice > 100 && curr.PnL < prev.PnL {
			t.Errorf("payoff not monotone above strike: %.2f -> %.2f at %.2f",
				prev.PnL, curr.PnL, curr.UnderlyingPrice)
			break
		}
	}
}

func TestCalculate_ShortPutCredit(t *testing.T) {
	legs := []models.OptionLeg{{
		Type:       models.Put,
		Strike:     95,
		Premium:    3.0,
		Quantity:   -1,
		Expiration: "2026-09-30",
	}}
	result := Calculate(legs, 100, DefaultParams())

	if result.NetDebitCredit != -300.0 {
		t.Errorf("net credit = %.2f, want -300.00", result.NetDebitCredit)
	}
	if !approxEqual(result.MaxProfit, 300.0, 1e-9) {
		t.Errorf("max profit = %.2f, want 300.00", result.MaxProfit)
	}
	if result.MaxLoss >= 0 {
		t.Errorf("max loss = %.2f, want negative", result.MaxLoss)
	}
}

func TestCalculate_BullCallSpreadRange(t *testing.T) {
	legs := strategy.VerticalSpread(models.Call, 100, 110, 5.0, 2.0, "2026-09-30")
	result := Calculate(legs, 105, DefaultParams())

	// Profit range of a debit vertical is the strike width in dollars.
	width := (110.0 - 100.0) * models.ContractMultiplier
	if got := result.MaxProfit + math.Abs(result.MaxLoss); !approxEqual(got, width, 1e-6) {
		t.Errorf("max profit + |max loss| = %.4f, want %.4f", got, width)
	}
	if !approxEqual(result.MaxLoss, -300.0, 1e-9) {
		t.Errorf("max loss = %.2f, want -300.00 (net debit)", result.MaxLoss)
	}
	if len(result.Breakevens) != 1 {
		t.Fatalf("expected 1 breakeven, got %v", result.Breakevens)
	}
	if !approxEqual(result.Breakevens[0], 103.0, 0.05) {
		t.Errorf("breakeven = %.4f, want 103.00", result.Breakevens[0])
	}
}

func TestCalculate_IronCondorTwoBreakevens(t *testing.T) {
	legs := strategy.IronCondor(420, 430, 470, 480, 1.10, 2.40, 2.60, 1.20, "2026-09-30")
	result := Calculate(legs, 450, DefaultParams())

	if len(result.Breakevens) != 2 {
		t.Fatalf("expected 2 breakevens, got %v", result.Breakevens)
	}
	if result.Breakevens[0] >= result.Breakevens[1] {
		t.Errorf("breakevens not ascending: %v", result.Breakevens)
	}
	// Profitable between the short strikes, losing beyond the wings.
	if result.Breakevens[0] < 420 || result.Breakevens[0] > 430 {
		t.Errorf("lower breakeven %.2f outside put spread", result.Breakevens[0])
	}
	if result.Breakevens[1] < 470 || result.Breakevens[1] > 480 {
		t.Errorf("upper breakeven %.2f outside call spread", result.Breakevens[1])
	}
	if result.NetDebitCredit >= 0 {
		t.Errorf("net debit/credit = %.2f, want credit (negative)", result.NetDebitCredit)
	}
}

func TestCalculate_PositionGreeks(t *testing.T) {
	legs := []models.OptionLeg{
		{Type: models.Call, Strike: 100, Premium: 5, Quantity: 2, Delta: 0.55, Gamma: 0.03, Theta: -0.05, Vega: 0.12},
		{Type: models.Call, Strike: 110, Premium: 2, Quantity: -1, Delta: 0.30, Gamma: 0.02, Theta: -0.03, Vega: 0.10},
	}
	result := Calculate(legs, 100, DefaultParams())

	if want := (0.55*2 - 0.30) * 100; !approxEqual(result.PositionDelta, want, 1e-9) {
		t.Errorf("position delta = %.4f, want %.4f", result.PositionDelta, want)
	}
	if want := (0.03*2 - 0.02) * 100; !approxEqual(result.PositionGamma, want, 1e-9) {
		t.Errorf("position gamma = %.4f, want %.4f", result.PositionGamma, want)
	}
	if want := (-0.05*2 + 0.03) * 100; !approxEqual(result.PositionTheta, want, 1e-9) {
		t.Errorf("position theta = %.4f, want %.4f", result.PositionTheta, want)
	}
	if want := (0.12*2 - 0.10) * 100; !approxEqual(result.PositionVega, want, 1e-9) {
		t.Errorf("position vega = %.4f, want %.4f", result.PositionVega, want)
	}
}

func TestCalculate_DegenerateInputs(t *testing.T) {
	tests := []struct {
		name       string
		legs       []models.OptionLeg
		underlying float64
	}{
		{"no legs", nil, 100},
		{"zero underlying", longCall(100, 5), 0},
		{"negative underlying", longCall(100, 5), -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Calculate(tt.legs, tt.underlying, DefaultParams())
			if len(result.Curve) != 0 {
				t.Errorf("expected empty curve, got %d points", len(result.Curve))
			}
			if len(result.Breakevens) != 0 {
				t.Errorf("expected no breakevens, got %v", result.Breakevens)
			}
			if result.MaxProfit != 0 || result.MaxLoss != 0 {
				t.Errorf("expected zero extremes, got %.2f / %.2f", result.MaxProfit, result.MaxLoss)
			}
		})
	}
}

func TestCalculate_ZeroParamsUseDefaults(t *testing.T) {
	result := Calculate(longCall(100, 5), 100, Params{})
	if len(result.Curve) != DefaultParams().NumPoints+1 {
		t.Errorf("curve has %d points, want %d", len(result.Curve), DefaultParams().NumPoints+1)
	}
}

func TestCalculate_RangeCoversOutlyingStrikes(t *testing.T) {
	// A strike well outside the ±30% base range must still be sampled.
	legs := longCall(200, 1.0)
	result := Calculate(legs, 100, DefaultParams())

	last := result.Curve[len(result.Curve)-1]
	if last.UnderlyingPrice < 200*1.10 {
		t.Errorf("range tops out at %.2f, want at least %.2f", last.UnderlyingPrice, 200*1.10)
	}
}

func TestCalculate_RiskRewardInfiniteWhenNoLoss(t *testing.T) {
	// A zero-premium long call never loses at expiration.
	result := Calculate(longCall(100, 0), 100, DefaultParams())
	if !math.IsInf(result.RiskReward, 1) {
		t.Errorf("risk/reward = %v, want +Inf", result.RiskReward)
	}
}
