package models

import (
	"encoding/json"
	"math"
)

// PnLPoint is one sample on a payoff curve. PnLPct is normalized against
// the position's maximum realized risk, not against notional.
type PnLPoint struct {
	UnderlyingPrice float64 `json:"underlying_price"`
	PnL             float64 `json:"pnl"`
	PnLPct          float64 `json:"pnl_pct"`
}

// PnLResult aggregates a strategy's expiration payoff profile at one
// underlying price. Max profit and loss are bounded by the sampled price
// range; strategies with theoretically unbounded profit report the best
// value within the range.
type PnLResult struct {
	Strategy        string     `json:"strategy,omitempty"`
	UnderlyingPrice float64    `json:"underlying_price"`
	Curve           []PnLPoint `json:"pnl_curve"`
	MaxProfit       float64    `json:"max_profit"`
	MaxLoss         float64    `json:"max_loss"`
	Breakevens      []float64  `json:"breakevens"`
	NetDebitCredit  float64    `json:"net_debit_credit"`
	PositionDelta   float64    `json:"position_delta"`
	PositionGamma   float64    `json:"position_gamma"`
	PositionTheta   float64    `json:"position_theta"`
	PositionVega    float64    `json:"position_vega"`
	RiskReward      float64    `json:"-"`
	ProbProfit      float64    `json:"probability_profit"`
}

// MarshalJSON renders RiskReward as the string "inf" when max loss is zero,
// keeping the result valid JSON.
func (r PnLResult) MarshalJSON() ([]byte, error) {
	type alias PnLResult
	out := struct {
		alias
		RiskReward any `json:"risk_reward_ratio"`
	}{alias: alias(r)}
	if math.IsInf(r.RiskReward, 1) {
		out.RiskReward = "inf"
	} else {
		out.RiskReward = r.RiskReward
	}
	return json.Marshal(out)
}

// PositionSize is the output of the position-sizing calculation, echoing
// back its inputs alongside the derived quantities.
type PositionSize struct {
	AccountSize  float64 `json:"account_size"`
	EntryPrice   float64 `json:"entry_price"`
	StopPrice    float64 `json:"stop_price"`
	TargetPrice  float64 `json:"target_price,omitempty"`
	RiskPct      float64 `json:"risk_pct"`
	Shares       int     `json:"shares"`
	Contracts    int     `json:"contracts"`
	DollarRisk   float64 `json:"dollar_risk"`
	RiskReward   float64 `json:"risk_reward_ratio,omitempty"`
	ExpectedVal  float64 `json:"expected_value,omitempty"`
	KellyFrac    float64 `json:"kelly_fraction,omitempty"`
}

// TrailingStop describes an ATR-based trailing stop for an open position.
type TrailingStop struct {
	EntryPrice   float64 `json:"entry_price"`
	CurrentPrice float64 `json:"current_price"`
	StopPrice    float64 `json:"stop_price"`
	DistancePct  float64 `json:"distance_pct"`
	ProfitPct    float64 `json:"profit_pct"`
	LockedProfit float64 `json:"locked_profit"`
}

// OpenPosition is a caller-supplied open position used for portfolio heat.
type OpenPosition struct {
	Symbol     string  `json:"symbol"`
	EntryPrice float64 `json:"entry_price"`
	StopPrice  float64 `json:"stop_price"`
	Shares     int     `json:"shares"`
}

// HeatStatus classifies aggregate open risk.
type HeatStatus string

const (
	HeatHealthy  HeatStatus = "healthy"
	HeatWarning  HeatStatus = "warning"
	HeatCritical HeatStatus = "critical"
)

// PositionHeat is the per-position contribution to portfolio heat.
type PositionHeat struct {
	Symbol  string  `json:"symbol"`
	Risk    float64 `json:"risk"`
	RiskPct float64 `json:"risk_pct"`
}

// PortfolioHeat aggregates open dollar risk across positions as a
// percentage of account equity.
type PortfolioHeat struct {
	Positions []PositionHeat `json:"positions"`
	TotalRisk float64        `json:"total_risk"`
	TotalHeat float64        `json:"total_heat_pct"`
	Status    HeatStatus     `json:"status"`
}

// Verdict is the recommendation attached to a trade-quality score.
type Verdict string

const (
	VerdictStrongBuy  Verdict = "Strong Buy"
	VerdictBuy        Verdict = "Buy"
	VerdictHoldWatch  Verdict = "Hold/Watch"
	VerdictSellReduce Verdict = "Sell/Reduce"
)

// TradeQuality is the result of the trade-quality scoring heuristic.
type TradeQuality struct {
	Score      float64            `json:"score"`
	Verdict    Verdict            `json:"verdict"`
	Components map[string]float64 `json:"components"`
}
