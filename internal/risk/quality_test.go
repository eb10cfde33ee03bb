package risk

import (
	"testing"

	"optionist/internal/models"
)

func TestScoreTradeQuality_NoSignals(t *testing.T) {
	result := ScoreTradeQuality(QualityInput{})
	if result.Score != 50 {
		t.Errorf("score = %.0f, want neutral 50", result.Score)
	}
	if result.Verdict != models.VerdictHoldWatch {
		t.Errorf("verdict = %s, want %s", result.Verdict, models.VerdictHoldWatch)
	}
	if len(result.Components) != 0 {
		t.Errorf("expected no components, got %v", result.Components)
	}
}

func TestScoreTradeQuality_AllStrong(t *testing.T) {
	result := ScoreTradeQuality(QualityInput{
		RiskReward:     floatPtr(3.5),
		WinRate:        floatPtr(0.70),
		RelativeVolume: floatPtr(2.5),
		ADX:            floatPtr(30),
		MultiTFAlign:   floatPtr(90),
	})
	// 50 + 20 + 10 + 10 + 10 + 10, clamped to 100.
	if result.Score != 100 {
		t.Errorf("score = %.0f, want 100", result.Score)
	}
	if result.Verdict != models.VerdictStrongBuy {
		t.Errorf("verdict = %s, want %s", result.Verdict, models.VerdictStrongBuy)
	}
}

func TestScoreTradeQuality_AllWeakClampsAtZero(t *testing.T) {
	result := ScoreTradeQuality(QualityInput{
		RiskReward:     floatPtr(0.5),
		WinRate:        floatPtr(0.30),
		RelativeVolume: floatPtr(0.5),
		ADX:            floatPtr(10),
	})
	// 50 - 15 - 10 - 10 - 5 = 10, no clamp needed here.
	if result.Score != 10 {
		t.Errorf("score = %.0f, want 10", result.Score)
	}
	if result.Verdict != models.VerdictSellReduce {
		t.Errorf("verdict = %s, want %s", result.Verdict, models.VerdictSellReduce)
	}
}

func TestScoreTradeQuality_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		in   QualityInput
		want float64
	}{
		{"rr exactly 3", QualityInput{RiskReward: floatPtr(3.0)}, 70},
		{"rr exactly 2", QualityInput{RiskReward: floatPtr(2.0)}, 60},
		{"rr exactly 1 is neutral", QualityInput{RiskReward: floatPtr(1.0)}, 50},
		{"rr below 1", QualityInput{RiskReward: floatPtr(0.99)}, 35},
		{"win rate exactly 0.65", QualityInput{WinRate: floatPtr(0.65)}, 60},
		{"win rate exactly 0.50", QualityInput{WinRate: floatPtr(0.50)}, 55},
		{"win rate below 0.50", QualityInput{WinRate: floatPtr(0.49)}, 40},
		{"rvol in dead zone", QualityInput{RelativeVolume: floatPtr(1.0)}, 50},
		{"rvol exactly 0.7 is neutral", QualityInput{RelativeVolume: floatPtr(0.7)}, 50},
		{"adx dead zone", QualityInput{ADX: floatPtr(17)}, 50},
		{"adx exactly 15 is neutral", QualityInput{ADX: floatPtr(15)}, 50},
		{"mtf below 60 is neutral", QualityInput{MultiTFAlign: floatPtr(59)}, 50},
		{"mtf exactly 60", QualityInput{MultiTFAlign: floatPtr(60)}, 55},
		{"mtf exactly 80", QualityInput{MultiTFAlign: floatPtr(80)}, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreTradeQuality(tt.in).Score; got != tt.want {
				t.Errorf("score = %.0f, want %.0f", got, tt.want)
			}
		})
	}
}

func TestScoreTradeQuality_RSIHasNoEffect(t *testing.T) {
	without := ScoreTradeQuality(QualityInput{RiskReward: floatPtr(2.5)})
	with := ScoreTradeQuality(QualityInput{RiskReward: floatPtr(2.5), RSI: floatPtr(75)})
	if without.Score != with.Score {
		t.Errorf("RSI changed the score: %.0f vs %.0f", without.Score, with.Score)
	}
}

func TestScoreToVerdict(t *testing.T) {
	tests := []struct {
		score float64
		want  models.Verdict
	}{
		{100, models.VerdictStrongBuy},
		{80, models.VerdictStrongBuy},
		{79.9, models.VerdictBuy},
		{60, models.VerdictBuy},
		{59.9, models.VerdictHoldWatch},
		{40, models.VerdictHoldWatch},
		{39.9, models.VerdictSellReduce},
		{0, models.VerdictSellReduce},
	}
	for _, tt := range tests {
		if got := scoreToVerdict(tt.score); got != tt.want {
			t.Errorf("scoreToVerdict(%.1f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
