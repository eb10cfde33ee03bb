package risk

import "optionist/internal/models"

// QualityInput holds the signals for the trade-quality score. Every
// field is optional; nil signals are skipped and contribute nothing.
type QualityInput struct {
	RiskReward     *float64
	WinRate        *float64
	RelativeVolume *float64
	RSI            *float64
	ADX            *float64
	MultiTFAlign   *float64 // multi-timeframe alignment, 0-100
}

// ScoreTradeQuality combines the supplied signals into a 0-100 quality
// score with a verdict. The score starts at a neutral 50 and each signal
// adjusts it independently; the per-signal adjustments are returned in
// Components. RSI is accepted for completeness but carries no adjustment.
func ScoreTradeQuality(in QualityInput) models.TradeQuality {
	score := 50.0
	components := make(map[string]float64)

	if in.RiskReward != nil {
		var adj float64
		switch rr := *in.RiskReward; {
		case rr >= 3:
			adj = 20
		case rr >= 2:
			adj = 10
		case rr >= 1:
			adj = 0
		default:
			adj = -15
		}
		components["risk_reward"] = adj
		score += adj
	}

	if in.WinRate != nil {
		var adj float64
		switch wr := *in.WinRate; {
		case wr >= 0.65:
			adj = 10
		case wr >= 0.50:
			adj = 5
		default:
			adj = -10
		}
		components["win_rate"] = adj
		score += adj
	}

	if in.RelativeVolume != nil {
		var adj float64
		switch rv := *in.RelativeVolume; {
		case rv >= 2.0:
			adj = 10
		case rv >= 1.5:
			adj = 5
		case rv < 0.7:
			adj = -10
		}
		components["relative_volume"] = adj
		score += adj
	}

	if in.ADX != nil {
		var adj float64
		switch adx := *in.ADX; {
		case adx >= 25:
			adj = 10
		case adx >= 20:
			adj = 5
		case adx < 15:
			adj = -5
		}
		components["adx"] = adj
		score += adj
	}

	if in.MultiTFAlign != nil {
		var adj float64
		switch mtf := *in.MultiTFAlign; {
		case mtf >= 80:
			adj = 10
		case mtf >= 60:
			adj = 5
		}
		components["multi_tf_alignment"] = adj
		score += adj
	}

	score = clamp(score, 0, 100)

	return models.TradeQuality{
		Score:      score,
		Verdict:    scoreToVerdict(score),
		Components: components,
	}
}

// scoreToVerdict maps a quality score to a verdict.
func scoreToVerdict(score float64) models.Verdict {
	switch {
	case score >= 80:
		return models.VerdictStrongBuy
	case score >= 60:
		return models.VerdictBuy
	case score >= 40:
		return models.VerdictHoldWatch
	default:
		return models.VerdictSellReduce
	}
}
