package cli

import (
	"math"
	"strings"

	"github.com/spf13/cobra"

	"optionist/internal/models"
	"optionist/internal/pnl"
)

const (
	chartWidth  = 64
	chartHeight = 17
)

func newPayoffCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payoff <strategy-type>",
		Short: "Draw the expiration payoff diagram for a strategy",
		Example: `  optionist payoff vertical --right call --spot 100 --strikes 100,105 --premiums 3.50,1.20
  optionist payoff iron-condor --spot 450 --strikes 420,430,470,480 --premiums 1.10,2.40,2.60,1.20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			legs, spot, symbol, err := legsFromFlags(cmd, app, args[0])
			if err != nil {
				output.Error("%v", err)
				return err
			}
			result := pnl.Calculate(legs, spot, analysisParams(cmd, app, args[0]))

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("%s %s payoff at expiration", symbol, strings.ToUpper(args[0]))
			output.Println()
			renderPayoffChart(output, result)
			output.Println()
			output.Printf("  Max Profit %s   Max Loss %s   Breakevens %d\n",
				output.FormatPnL(result.MaxProfit), output.FormatPnL(result.MaxLoss), len(result.Breakevens))
			return nil
		},
	}
	addStrategyFlags(cmd)
	return cmd
}

// renderPayoffChart plots the P&L curve as an ASCII chart, with the zero
// line drawn across and the spot price marked on the axis.
func renderPayoffChart(output *Output, result models.PnLResult) {
	curve := result.Curve
	if len(curve) < 2 {
		output.Warning("Not enough curve points to draw")
		return
	}

	minPnL, maxPnL := curve[0].PnL, curve[0].PnL
	for _, pt := range curve {
		minPnL = math.Min(minPnL, pt.PnL)
		maxPnL = math.Max(maxPnL, pt.PnL)
	}
	if maxPnL == minPnL {
		maxPnL = minPnL + 1
	}

	// Map each column to the nearest curve sample.
	colPnL := make([]float64, chartWidth)
	for col := 0; col < chartWidth; col++ {
		idx := col * (len(curve) - 1) / (chartWidth - 1)
		colPnL[col] = curve[idx].PnL
	}
	rowOf := func(pnl float64) int {
		frac := (pnl - minPnL) / (maxPnL - minPnL)
		row := chartHeight - 1 - int(frac*float64(chartHeight-1)+0.5)
		if row < 0 {
			row = 0
		}
		if row >= chartHeight {
			row = chartHeight - 1
		}
		return row
	}
	zeroRow := -1
	if minPnL <= 0 && maxPnL >= 0 {
		zeroRow = rowOf(0)
	}
	spotCol := nearestColumn(curve, result.UnderlyingPrice)

	for row := 0; row < chartHeight; row++ {
		line := make([]rune, chartWidth)
		for col := 0; col < chartWidth; col++ {
			switch {
			case rowOf(colPnL[col]) == row:
				line[col] = '*'
			case row == zeroRow:
				line[col] = '-'
			case col == spotCol:
				line[col] = ':'
			default:
				line[col] = ' '
			}
		}
		label := "          "
		switch row {
		case rowOf(maxPnL):
			label = padLabel(FormatCurrency(maxPnL))
		case rowOf(minPnL):
			label = padLabel(FormatCurrency(minPnL))
		case zeroRow:
			label = padLabel("$0")
		}
		output.Printf("%s |%s\n", label, colorizeChartRow(output, string(line), row, zeroRow))
	}

	output.Printf("%s +%s\n", strings.Repeat(" ", 10), strings.Repeat("-", chartWidth))
	low := FormatPrice(curve[0].UnderlyingPrice)
	high := FormatPrice(curve[len(curve)-1].UnderlyingPrice)
	spot := "spot " + FormatPrice(result.UnderlyingPrice)
	gap := chartWidth - len(low) - len(high) - len(spot)
	if gap < 2 {
		gap = 2
	}
	output.Printf("%s  %s%s%s%s%s\n", strings.Repeat(" ", 10),
		low, strings.Repeat(" ", gap/2), spot, strings.Repeat(" ", gap-gap/2), high)
}

func colorizeChartRow(output *Output, line string, row, zeroRow int) string {
	if !strings.Contains(line, "*") || zeroRow < 0 {
		return line
	}
	if row < zeroRow {
		return output.Green(line)
	}
	if row > zeroRow {
		return output.Red(line)
	}
	return line
}

func nearestColumn(curve []models.PnLPoint, price float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, pt := range curve {
		if d := math.Abs(pt.UnderlyingPrice - price); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best * (chartWidth - 1) / (len(curve) - 1)
}

func padLabel(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return strings.Repeat(" ", 10-len(s)) + s
}
