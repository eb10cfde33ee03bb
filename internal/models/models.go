// Package models provides domain models for options analysis.
package models

import "time"

// ContractMultiplier is the number of underlying shares per option contract.
// All dollar conversions multiply per-share quantities by quantity * 100.
const ContractMultiplier = 100.0

// OptionType represents the type of an option contract.
type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

// OptionLeg represents one position in an options strategy.
//
// Premium is always quoted per underlying share, never per contract.
// Quantity is signed: positive for long (bought), negative for short (sold);
// its magnitude is the number of contracts.
//
// The Greeks and IV fields are snapshot values copied verbatim from the
// market-data provider at construction time. They are used for aggregation
// and probability estimation only and are never recomputed here.
type OptionLeg struct {
	Type       OptionType `json:"option_type"`
	Strike     float64    `json:"strike"`
	Premium    float64    `json:"premium"`
	Quantity   int        `json:"quantity"`
	Expiration string     `json:"expiration"` // YYYY-MM-DD
	Delta      float64    `json:"delta,omitempty"`
	Gamma      float64    `json:"gamma,omitempty"`
	Theta      float64    `json:"theta,omitempty"`
	Vega       float64    `json:"vega,omitempty"`
	IV         float64    `json:"iv,omitempty"`
}

// IsLong reports whether the leg is a bought position.
func (l OptionLeg) IsLong() bool {
	return l.Quantity > 0
}

// IntrinsicAt returns the per-share intrinsic value of the leg's contract
// at the given underlying price.
func (l OptionLeg) IntrinsicAt(underlying float64) float64 {
	if l.Type == Call {
		if underlying > l.Strike {
			return underlying - l.Strike
		}
		return 0
	}
	if l.Strike > underlying {
		return l.Strike - underlying
	}
	return 0
}

// Quote represents a quote for an underlying instrument.
type Quote struct {
	Symbol    string    `json:"symbol"`
	Last      float64   `json:"last"`
	Bid       float64   `json:"bid,omitempty"`
	Ask       float64   `json:"ask,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// OptionQuote represents provider data for a single option contract.
type OptionQuote struct {
	Strike float64    `json:"strike"`
	Type   OptionType `json:"option_type"`
	Bid    float64    `json:"bid"`
	Ask    float64    `json:"ask"`
	Last   float64    `json:"last"`
	Volume int64      `json:"volume,omitempty"`
	OI     int64      `json:"open_interest,omitempty"`
	Delta  float64    `json:"delta,omitempty"`
	Gamma  float64    `json:"gamma,omitempty"`
	Theta  float64    `json:"theta,omitempty"`
	Vega   float64    `json:"vega,omitempty"`
	IV     float64    `json:"iv,omitempty"`
}

// Mid returns the bid/ask midpoint, falling back to the last trade when
// either side of the book is empty.
func (q OptionQuote) Mid() float64 {
	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2
	}
	return q.Last
}

// OptionChain represents an option chain for one underlying and expiry.
type OptionChain struct {
	Symbol     string        `json:"symbol"`
	SpotPrice  float64       `json:"spot_price"`
	Expiration string        `json:"expiration"` // YYYY-MM-DD
	Quotes     []OptionQuote `json:"quotes"`
}

// Find returns the quote for the given strike and type, or false when the
// chain does not carry it.
func (c *OptionChain) Find(strike float64, typ OptionType) (OptionQuote, bool) {
	for _, q := range c.Quotes {
		if q.Strike == strike && q.Type == typ {
			return q, true
		}
	}
	return OptionQuote{}, false
}
