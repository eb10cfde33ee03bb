package pnl

import (
	"math"

	"github.com/montanaflynn/stats"

	"optionist/internal/models"
)

const (
	// defaultIV is assumed when no leg carries an implied volatility.
	defaultIV = 0.30
	// probabilityHorizonYears is a fixed 30-calendar-day horizon.
	//
	// TODO: derive T from min(leg expiration) - today instead. The
	// reference behavior uses a flat 30 days regardless of the legs'
	// actual expirations, and is preserved here for parity.
	probabilityHorizonYears = 30.0 / 365.0
)

// probabilityOfProfit estimates the chance the strategy expires
// profitable under a log-normal, zero-drift price model.
//
// The estimate is a heuristic keyed off the breakeven count, not an
// exact integration over the payoff: one breakeven uses the aggregate
// delta to pick the profitable side; two breakevens use the sign of the
// payoff at the current price to decide whether the profit region lies
// between them. Zero or more than two breakevens returns 50.
func probabilityOfProfit(legs []models.OptionLeg, underlying float64, breakevens []float64) float64 {
	sigma := averageIV(legs)
	t := probabilityHorizonYears

	switch len(breakevens) {
	case 1:
		pAbove := probAbove(underlying, breakevens[0], sigma, t)
		if aggregateDelta(legs) > 0 {
			return pAbove * 100
		}
		return (1 - pAbove) * 100
	case 2:
		lowBE, highBE := breakevens[0], breakevens[1]
		pBetween := probAbove(underlying, lowBE, sigma, t) - probAbove(underlying, highBE, sigma, t)
		if totalPnLAt(legs, underlying) > 0 {
			return pBetween * 100
		}
		return (1 - pBetween) * 100
	default:
		return 50.0
	}
}

// averageIV returns the mean of all nonzero leg IVs, or defaultIV when
// none are set.
func averageIV(legs []models.OptionLeg) float64 {
	ivs := make([]float64, 0, len(legs))
	for _, leg := range legs {
		if leg.IV > 0 {
			ivs = append(ivs, leg.IV)
		}
	}
	if len(ivs) == 0 {
		return defaultIV
	}
	mean, err := stats.Mean(ivs)
	if err != nil || mean <= 0 {
		return defaultIV
	}
	return mean
}

// aggregateDelta is the signed per-share delta of the whole position.
func aggregateDelta(legs []models.OptionLeg) float64 {
	var total float64
	for _, leg := range legs {
		total += leg.Delta * float64(leg.Quantity)
	}
	return total
}

// probAbove returns P(S_T > barrier) using the Black-Scholes d2 form
// with zero drift.
func probAbove(spot, barrier, sigma, t float64) float64 {
	if spot <= 0 || barrier <= 0 || sigma <= 0 || t <= 0 {
		return 0.5
	}
	d2 := (math.Log(spot/barrier) + (0-0.5*sigma*sigma)*t) / (sigma * math.Sqrt(t))
	return normCDF(d2)
}

// normCDF is the standard normal cumulative distribution function.
func normCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
