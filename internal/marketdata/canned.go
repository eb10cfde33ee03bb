package marketdata

import (
	"context"
	"math"
	"sync"
	"time"

	"optionist/internal/models"

	apperrors "optionist/internal/errors"
)

// Canned is an in-memory Provider for offline use. Quotes are seeded by
// the caller; option chains are synthesized around the seeded spot with
// a flat IV and a rough Black-Scholes-shaped premium, good enough to
// exercise strategy construction without a live data feed.
type Canned struct {
	mu     sync.RWMutex
	quotes map[string]models.Quote
	chains map[string]models.OptionChain
	iv     float64
}

// NewCanned creates an empty canned provider with the given synthetic IV.
func NewCanned(iv float64) *Canned {
	if iv <= 0 {
		iv = 0.30
	}
	return &Canned{
		quotes: make(map[string]models.Quote),
		chains: make(map[string]models.OptionChain),
		iv:     iv,
	}
}

// SetQuote seeds a quote for a symbol.
func (c *Canned) SetQuote(symbol string, last float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quotes[symbol] = models.Quote{
		Symbol:    symbol,
		Last:      last,
		Timestamp: time.Now(),
	}
}

// SetChain seeds a full chain, overriding synthesis for its symbol and
// expiration.
func (c *Canned) SetChain(chain models.OptionChain) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.chains[chain.Symbol+"|"+chain.Expiration] = chain
}

// GetQuote returns the seeded quote for a symbol.
func (c *Canned) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	q, ok := c.quotes[symbol]
	if !ok {
		return nil, apperrors.NewDataError("quote", symbol, "not seeded", apperrors.ErrSymbolNotFound)
	}
	return &q, nil
}

// GetOptionChain returns a seeded chain, or synthesizes one around the
// seeded spot when the symbol has a quote but no explicit chain.
func (c *Canned) GetOptionChain(_ context.Context, symbol, expiration string) (*models.OptionChain, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if chain, ok := c.chains[symbol+"|"+expiration]; ok {
		return &chain, nil
	}
	q, ok := c.quotes[symbol]
	if !ok {
		return nil, apperrors.NewDataError("chain", symbol, "not seeded", apperrors.ErrChainNotFound)
	}
	chain := c.synthesize(symbol, q.Last, expiration)
	return &chain, nil
}

// synthesize builds a strike grid of ±20% around spot in 2.5% steps with
// flat-IV premiums and a logistic delta approximation.
func (c *Canned) synthesize(symbol string, spot float64, expiration string) models.OptionChain {
	chain := models.OptionChain{
		Symbol:     symbol,
		SpotPrice:  spot,
		Expiration: expiration,
	}

	t := 30.0 / 365.0
	if exp, err := time.Parse("2006-01-02", expiration); err == nil {
		if days := time.Until(exp).Hours() / 24; days > 1 {
			t = days / 365.0
		}
	}
	sqrtT := math.Sqrt(t)

	for pct := -0.20; pct <= 0.201; pct += 0.025 {
		strike := roundTo(spot*(1+pct), 0.5)
		for _, typ := range []models.OptionType{models.Call, models.Put} {
			intrinsic := 0.0
			if typ == models.Call && spot > strike {
				intrinsic = spot - strike
			}
			if typ == models.Put && strike > spot {
				intrinsic = strike - spot
			}
			// Time value decays with distance from the money.
			moneyness := math.Log(spot / strike)
			timeValue := 0.4 * spot * c.iv * sqrtT * math.Exp(-0.5*math.Pow(moneyness/(c.iv*sqrtT), 2))
			mid := intrinsic + timeValue

			d := 1 / (1 + math.Exp(-moneyness/(c.iv*sqrtT)))
			delta := d
			if typ == models.Put {
				delta = d - 1
			}

			chain.Quotes = append(chain.Quotes, models.OptionQuote{
				Strike: strike,
				Type:   typ,
				Bid:    roundTo(mid*0.98, 0.01),
				Ask:    roundTo(mid*1.02, 0.01),
				Last:   roundTo(mid, 0.01),
				Delta:  roundTo(delta, 0.01),
				IV:     c.iv,
			})
		}
	}
	return chain
}

func roundTo(v, step float64) float64 {
	return math.Round(v/step) * step
}
