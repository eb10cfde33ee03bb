// Package risk provides position sizing, trailing stops, portfolio heat
// aggregation, and trade-quality scoring. Like the payoff calculator,
// everything is a pure function: no state, no I/O, safe to call
// concurrently.
package risk

import (
	"math"

	"optionist/internal/models"
)

const (
	// DefaultRiskPct is the "1% rule": risk at most 1% of account equity
	// per trade.
	DefaultRiskPct = 0.01
	// KellyCap is a hard ceiling on the Kelly fraction regardless of the
	// raw Kelly value.
	KellyCap = 0.25
)

// SizingInput holds position-sizing parameters. TargetPrice and WinRate
// are optional; nil leaves the dependent fields unset.
type SizingInput struct {
	AccountSize float64
	EntryPrice  float64
	StopPrice   float64
	TargetPrice *float64
	RiskPct     float64 // zero means DefaultRiskPct
	WinRate     *float64
}

// PositionSize sizes a position so the dollar loss at the stop equals
// RiskPct of the account. A zero per-share risk (stop at entry) returns
// a result with zero shares and derived fields at their defaults.
func PositionSize(in SizingInput) models.PositionSize {
	riskPct := in.RiskPct
	if riskPct <= 0 {
		riskPct = DefaultRiskPct
	}

	result := models.PositionSize{
		AccountSize: in.AccountSize,
		EntryPrice:  in.EntryPrice,
		StopPrice:   in.StopPrice,
		RiskPct:     riskPct,
	}
	if in.TargetPrice != nil {
		result.TargetPrice = *in.TargetPrice
	}

	perShareRisk := math.Abs(in.EntryPrice - in.StopPrice)
	if perShareRisk <= 0 {
		return result
	}

	result.DollarRisk = in.AccountSize * riskPct
	result.Shares = int(result.DollarRisk / perShareRisk)

	var reward float64
	if in.TargetPrice != nil {
		reward = math.Abs(*in.TargetPrice - in.EntryPrice)
		result.RiskReward = reward / perShareRisk
	}

	if in.WinRate != nil && in.TargetPrice != nil {
		p := *in.WinRate
		shares := float64(result.Shares)
		result.ExpectedVal = p*reward*shares - (1-p)*perShareRisk*shares
		if result.RiskReward > 0 {
			result.KellyFrac = kellyFraction(p, result.RiskReward)
		}
	}

	// Only whole contracts; 100 shares per contract.
	if result.Shares >= 100 {
		result.Contracts = result.Shares / 100
	}

	return result
}

// kellyFraction returns the Kelly criterion bet fraction for the given
// win probability and payoff ratio, clamped to [0, KellyCap].
func kellyFraction(winRate, riskReward float64) float64 {
	b := riskReward
	p := winRate
	q := 1 - p
	f := (b*p - q) / b
	return clamp(f, 0, KellyCap)
}

// clamp restricts a value to the given range.
func clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
