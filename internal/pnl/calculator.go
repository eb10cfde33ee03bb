// Package pnl computes expiration payoff profiles for multi-leg option
// strategies: the payoff curve, max profit and loss, breakevens,
// aggregated position Greeks, and a probability-of-profit estimate.
//
// Everything here is a pure function over numeric inputs. The payoff is
// always evaluated at expiration: no time decay, no path dependency, no
// assignment modeling. Degenerate inputs (empty legs, zero IV, no
// breakevens) return neutral defaults instead of errors.
package pnl

import (
	"math"

	"optionist/internal/models"
)

// Params controls payoff curve sampling.
type Params struct {
	// PriceRangePct is the half-width of the base sampling range around
	// the underlying price.
	PriceRangePct float64
	// NumPoints is the number of sampling intervals; the curve carries
	// NumPoints+1 points.
	NumPoints int
	// StrategyName is echoed into the result for display purposes.
	StrategyName string
}

// DefaultParams returns the default sampling parameters.
func DefaultParams() Params {
	return Params{
		PriceRangePct: 0.30,
		NumPoints:     200,
	}
}

// Calculate computes the full payoff profile for the given legs at the
// given underlying price.
//
// The sampled range is underlying*(1±PriceRangePct), extended (never
// shrunk) to cover every leg strike with a 10% margin. Max profit and
// loss are the extremes of the sampled curve, so strategies with
// unbounded profit report the best value within the finite range.
func Calculate(legs []models.OptionLeg, underlying float64, params Params) models.PnLResult {
	result := models.PnLResult{
		Strategy:        params.StrategyName,
		UnderlyingPrice: underlying,
		Curve:           []models.PnLPoint{},
		Breakevens:      []float64{},
	}
	if len(legs) == 0 || underlying <= 0 {
		return result
	}
	if params.NumPoints <= 0 {
		params.NumPoints = DefaultParams().NumPoints
	}
	if params.PriceRangePct <= 0 {
		params.PriceRangePct = DefaultParams().PriceRangePct
	}

	low, high := sampleRange(legs, underlying, params.PriceRangePct)

	// Net debit (positive) or credit (negative) in dollars.
	for _, leg := range legs {
		result.NetDebitCredit += leg.Premium * float64(leg.Quantity) * models.ContractMultiplier
	}

	// Payoff curve at expiration.
	step := (high - low) / float64(params.NumPoints)
	result.Curve = make([]models.PnLPoint, 0, params.NumPoints+1)
	for i := 0; i <= params.NumPoints; i++ {
		price := low + float64(i)*step
		value := totalPnLAt(legs, price)
		result.Curve = append(result.Curve, models.PnLPoint{UnderlyingPrice: price, PnL: value})
		if i == 0 || value > result.MaxProfit {
			result.MaxProfit = value
		}
		if i == 0 || value < result.MaxLoss {
			result.MaxLoss = value
		}
	}

	// Normalize each point against the maximum realized risk.
	maxRisk := 1.0
	switch {
	case result.MaxLoss < 0:
		maxRisk = math.Abs(result.MaxLoss)
	case result.NetDebitCredit != 0:
		maxRisk = math.Abs(result.NetDebitCredit)
	}
	for i := range result.Curve {
		result.Curve[i].PnLPct = result.Curve[i].PnL / maxRisk * 100
	}

	result.Breakevens = findBreakevens(result.Curve)

	if result.MaxLoss == 0 {
		result.RiskReward = math.Inf(1)
	} else {
		result.RiskReward = math.Abs(result.MaxProfit / result.MaxLoss)
	}

	for _, leg := range legs {
		qty := float64(leg.Quantity) * models.ContractMultiplier
		result.PositionDelta += leg.Delta * qty
		result.PositionGamma += leg.Gamma * qty
		result.PositionTheta += leg.Theta * qty
		result.PositionVega += leg.Vega * qty
	}

	result.ProbProfit = probabilityOfProfit(legs, underlying, result.Breakevens)

	return result
}

// sampleRange extends the base price range so every strike is covered
// with a 10% margin. The base range is never shrunk.
func sampleRange(legs []models.OptionLeg, underlying, rangePct float64) (low, high float64) {
	low = underlying * (1 - rangePct)
	high = underlying * (1 + rangePct)

	minStrike, maxStrike := legs[0].Strike, legs[0].Strike
	for _, leg := range legs[1:] {
		if leg.Strike < minStrike {
			minStrike = leg.Strike
		}
		if leg.Strike > maxStrike {
			maxStrike = leg.Strike
		}
	}
	if s := minStrike * 0.90; s < low {
		low = s
	}
	if s := maxStrike * 1.10; s > high {
		high = s
	}
	return low, high
}

// totalPnLAt returns the strategy's dollar P&L at expiration for one
// underlying price.
func totalPnLAt(legs []models.OptionLeg, price float64) float64 {
	var total float64
	for _, leg := range legs {
		total += (leg.IntrinsicAt(price) - leg.Premium) * float64(leg.Quantity) * models.ContractMultiplier
	}
	return total
}

// findBreakevens scans consecutive curve points for sign changes and
// linearly interpolates each zero crossing. Crossings are returned in
// ascending price order; duplicates are not merged.
func findBreakevens(curve []models.PnLPoint) []float64 {
	breakevens := []float64{}
	for i := 1; i < len(curve); i++ {
		prev, curr := curve[i-1], curve[i]
		crossesUp := prev.PnL <= 0 && curr.PnL > 0
		crossesDown := prev.PnL >= 0 && curr.PnL < 0
		if !crossesUp && !crossesDown {
			continue
		}
		frac := -prev.PnL / (curr.PnL - prev.PnL)
		breakevens = append(breakevens, prev.UnderlyingPrice+frac*(curr.UnderlyingPrice-prev.UnderlyingPrice))
	}
	return breakevens
}
