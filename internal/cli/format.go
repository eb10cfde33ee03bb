package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"

	"optionist/internal/models"
)

// FormatCurrency formats a dollar amount with thousands separators.
func FormatCurrency(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	str := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(str, ".")
	intPart := parts[0]
	decPart := parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	result := "$" + strings.Join(groups, ",") + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPrice formats a price with two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatRiskReward renders a risk:reward ratio, handling the unbounded
// case (zero max loss).
func FormatRiskReward(rr float64) string {
	if math.IsInf(rr, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", rr)
}

// FormatVerdict renders a trade-quality verdict in color.
func FormatVerdict(v models.Verdict) string {
	switch v {
	case models.VerdictStrongBuy:
		return color.New(color.FgGreen, color.Bold).Sprint("STRONG BUY")
	case models.VerdictBuy:
		return color.GreenString("BUY")
	case models.VerdictHoldWatch:
		return color.YellowString("HOLD/WATCH")
	default:
		return color.RedString("SELL/REDUCE")
	}
}

// FormatHeatStatus renders a portfolio heat status in color.
func FormatHeatStatus(s models.HeatStatus) string {
	switch s {
	case models.HeatCritical:
		return color.New(color.FgRed, color.Bold).Sprint("CRITICAL")
	case models.HeatWarning:
		return color.YellowString("WARNING")
	default:
		return color.GreenString("HEALTHY")
	}
}
