// Package store provides data persistence interfaces and implementations
// for the analysis journal. The engine itself is stateless; only the CLI
// records its runs here.
package store

import (
	"context"
	"time"

	"optionist/internal/models"
)

// AnalysisRecord is one recorded strategy analysis.
type AnalysisRecord struct {
	ID         int64            `json:"id"`
	Timestamp  time.Time        `json:"timestamp"`
	Symbol     string           `json:"symbol"`
	Strategy   string           `json:"strategy"`
	Underlying float64          `json:"underlying"`
	Result     models.PnLResult `json:"result"`
}

// SizingRecord is one recorded position-sizing decision.
type SizingRecord struct {
	ID        int64               `json:"id"`
	Timestamp time.Time           `json:"timestamp"`
	Symbol    string              `json:"symbol"`
	Result    models.PositionSize `json:"result"`
}

// AnalysisFilter filters journal queries.
type AnalysisFilter struct {
	Symbol   string
	Strategy string
	Since    time.Time
	Limit    int
}

// SizingFilter filters sizing queries.
type SizingFilter struct {
	Symbol string
	Since  time.Time
	Limit  int
}

// DataStore defines the interface for the analysis journal.
type DataStore interface {
	SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error
	GetAnalyses(ctx context.Context, filter AnalysisFilter) ([]AnalysisRecord, error)
	SaveSizing(ctx context.Context, rec *SizingRecord) error
	GetSizings(ctx context.Context, filter SizingFilter) ([]SizingRecord, error)
	Close() error
}
