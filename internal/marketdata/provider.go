// Package marketdata defines the interfaces through which market data
// reaches the analysis engine. The paid data-provider clients live
// outside this repository; callers supply any implementation of
// Provider. A canned in-memory provider is included for offline use and
// tests.
package marketdata

import (
	"context"

	"optionist/internal/models"
)

// Provider supplies quotes and option chains for analysis. Premiums,
// Greeks, and IV returned on chains are passed through to the engine
// verbatim; nothing is recomputed downstream.
type Provider interface {
	GetQuote(ctx context.Context, symbol string) (*models.Quote, error)
	GetOptionChain(ctx context.Context, symbol, expiration string) (*models.OptionChain, error)
}
