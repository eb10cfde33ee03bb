package risk

import (
	"math"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"optionist/internal/models"
)

func TestProperty_SizingNeverExceedsRiskBudget(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("loss at the stop never exceeds the risk budget", prop.ForAll(
		func(account, entry, stopDistance, riskPct float64) bool {
			result := PositionSize(SizingInput{
				AccountSize: account,
				EntryPrice:  entry,
				StopPrice:   entry - stopDistance,
				RiskPct:     riskPct,
			})
			lossAtStop := float64(result.Shares) * stopDistance
			return lossAtStop <= account*riskPct+1e-6
		},
		gen.Float64Range(1000, 10_000_000),
		gen.Float64Range(10, 1000),
		gen.Float64Range(0.01, 50),
		gen.Float64Range(0.001, 0.05),
	))

	properties.TestingRun(t)
}

func TestProperty_SizingSharesNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("shares and contracts are never negative", prop.ForAll(
		func(account, entry, stop float64) bool {
			result := PositionSize(SizingInput{
				AccountSize: account,
				EntryPrice:  entry,
				StopPrice:   stop,
			})
			return result.Shares >= 0 && result.Contracts >= 0 && result.Contracts == result.Shares/100
		},
		gen.Float64Range(1000, 1_000_000),
		gen.Float64Range(1, 1000),
		gen.Float64Range(1, 1000),
	))

	properties.TestingRun(t)
}

func TestProperty_KellyWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("kelly fraction stays within [0, cap]", prop.ForAll(
		func(winRate, riskReward float64) bool {
			f := kellyFraction(winRate, riskReward)
			return f >= 0 && f <= KellyCap
		},
		gen.Float64Range(0, 1),
		gen.Float64Range(0.01, 10),
	))

	properties.TestingRun(t)
}

func TestProperty_TrailingStopInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("stop sits below current and never locks a loss", prop.ForAll(
		func(entry, current, atr, multiplier float64) bool {
			result := TrailingStop(entry, current, atr, multiplier)
			if result.StopPrice >= current {
				return false
			}
			return result.LockedProfit >= 0
		},
		gen.Float64Range(10, 1000),
		gen.Float64Range(10, 1000),
		gen.Float64Range(0.01, 50),
		gen.Float64Range(0.5, 5),
	))

	properties.TestingRun(t)
}

func TestProperty_HeatStatusMatchesThresholds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	positionGen := gen.Struct(reflect.TypeOf(models.OpenPosition{}), map[string]gopter.Gen{
		"Symbol":     gen.RegexMatch("[A-Z]{1,5}"),
		"EntryPrice": gen.Float64Range(1, 1000),
		"StopPrice":  gen.Float64Range(1, 1000),
		"Shares":     gen.IntRange(1, 1000),
	})

	properties.Property("status always agrees with the computed heat", prop.ForAll(
		func(positions []models.OpenPosition, account float64) bool {
			result := PortfolioHeat(positions, account)
			switch {
			case result.TotalHeat > 6.0:
				return result.Status == models.HeatCritical
			case result.TotalHeat > 4.0:
				return result.Status == models.HeatWarning
			default:
				return result.Status == models.HeatHealthy
			}
		},
		gen.SliceOfN(5, positionGen),
		gen.Float64Range(10_000, 1_000_000),
	))

	properties.Property("total risk is the sum of position risks", prop.ForAll(
		func(positions []models.OpenPosition, account float64) bool {
			result := PortfolioHeat(positions, account)
			var sum float64
			for _, pos := range result.Positions {
				sum += pos.Risk
			}
			return math.Abs(sum-result.TotalRisk) < 1e-6
		},
		gen.SliceOfN(5, positionGen),
		gen.Float64Range(10_000, 1_000_000),
	))

	properties.TestingRun(t)
}

func TestProperty_QualityScoreWithinBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	optional := func(valueGen gopter.Gen) gopter.Gen {
		return gen.PtrOf(valueGen)
	}

	properties.Property("score is within [0, 100] with a matching verdict", prop.ForAll(
		func(rr, wr, rvol, adx, mtf *float64) bool {
			result := ScoreTradeQuality(QualityInput{
				RiskReward:     rr,
				WinRate:        wr,
				RelativeVolume: rvol,
				ADX:            adx,
				MultiTFAlign:   mtf,
			})
			if result.Score < 0 || result.Score > 100 {
				return false
			}
			return result.Verdict == scoreToVerdict(result.Score)
		},
		optional(gen.Float64Range(0, 10)),
		optional(gen.Float64Range(0, 1)),
		optional(gen.Float64Range(0, 5)),
		optional(gen.Float64Range(0, 60)),
		optional(gen.Float64Range(0, 100)),
	))

	properties.TestingRun(t)
}
