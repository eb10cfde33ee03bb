package risk

import "optionist/internal/models"

// DefaultATRMultiplier is the default stop distance in ATR units.
const DefaultATRMultiplier = 2.0

// TrailingStop computes a volatility-scaled trailing stop for a long
// position: the stop rides the given multiple of ATR below the current
// price. LockedProfit is the profit guaranteed if the stop is hit, zero
// while the stop is still below entry.
func TrailingStop(entryPrice, currentPrice, atr, multiplier float64) models.TrailingStop {
	if multiplier <= 0 {
		multiplier = DefaultATRMultiplier
	}

	stop := currentPrice - atr*multiplier

	result := models.TrailingStop{
		EntryPrice:   entryPrice,
		CurrentPrice: currentPrice,
		StopPrice:    stop,
	}
	if currentPrice != 0 {
		result.DistancePct = (currentPrice - stop) / currentPrice * 100
	}
	if entryPrice != 0 {
		result.ProfitPct = (currentPrice - entryPrice) / entryPrice * 100
	}
	if locked := stop - entryPrice; locked > 0 {
		result.LockedProfit = locked
	}
	return result
}
