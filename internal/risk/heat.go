package risk

import (
	"math"

	"optionist/internal/models"
)

// Heat status thresholds, strict greater-than: exactly 4% is healthy and
// exactly 6% is warning.
const (
	heatWarningPct  = 4.0
	heatCriticalPct = 6.0
)

// PortfolioHeat aggregates the open dollar risk of all positions as a
// percentage of account equity. Each position's risk is its entry-to-stop
// distance times its share count.
func PortfolioHeat(positions []models.OpenPosition, accountSize float64) models.PortfolioHeat {
	result := models.PortfolioHeat{
		Positions: make([]models.PositionHeat, 0, len(positions)),
		Status:    models.HeatHealthy,
	}
	if accountSize <= 0 {
		return result
	}

	for _, pos := range positions {
		risk := math.Abs(pos.EntryPrice-pos.StopPrice) * float64(pos.Shares)
		result.Positions = append(result.Positions, models.PositionHeat{
			Symbol:  pos.Symbol,
			Risk:    risk,
			RiskPct: risk / accountSize * 100,
		})
		result.TotalRisk += risk
	}
	result.TotalHeat = result.TotalRisk / accountSize * 100

	switch {
	case result.TotalHeat > heatCriticalPct:
		result.Status = models.HeatCritical
	case result.TotalHeat > heatWarningPct:
		result.Status = models.HeatWarning
	}

	return result
}
