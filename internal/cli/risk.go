package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	apperrors "optionist/internal/errors"
	"optionist/internal/logging"
	"optionist/internal/models"
	"optionist/internal/risk"
	"optionist/internal/store"
)

func newSizeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size a position by the 1% risk rule",
		Long: `Size a position so the dollar loss at the stop equals a fixed
fraction of the account. With --target the risk:reward ratio is
reported, and with --win-rate the expected value and capped Kelly
fraction as well.`,
		Example: `  optionist size --account 100000 --entry 150 --stop 145
  optionist size --account 100000 --entry 150 --stop 145 --target 160 --win-rate 0.55`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			account, _ := cmd.Flags().GetFloat64("account")
			if account == 0 {
				account = app.Config.Risk.AccountSize
			}
			entry, _ := cmd.Flags().GetFloat64("entry")
			stop, _ := cmd.Flags().GetFloat64("stop")
			if err := validatePositive(map[string]float64{"account": account, "entry": entry}); err != nil {
				output.Error("%v", err)
				return err
			}

			in := risk.SizingInput{
				AccountSize: account,
				EntryPrice:  entry,
				StopPrice:   stop,
				RiskPct:     app.Config.Risk.RiskPct,
			}
			if cmd.Flags().Changed("risk-pct") {
				in.RiskPct, _ = cmd.Flags().GetFloat64("risk-pct")
			}
			if in.RiskPct > 0.10 {
				err := apperrors.NewRiskError("risk_pct", in.RiskPct, 0.10, "per-trade risk above 10% of account")
				output.Error("%v", err)
				return err
			}
			if cmd.Flags().Changed("target") {
				target, _ := cmd.Flags().GetFloat64("target")
				in.TargetPrice = &target
			}
			if cmd.Flags().Changed("win-rate") {
				winRate, _ := cmd.Flags().GetFloat64("win-rate")
				if winRate < 0 || winRate > 1 {
					err := apperrors.NewValidationError("win-rate", winRate, "must be between 0 and 1")
					output.Error("%v", err)
					return err
				}
				in.WinRate = &winRate
			}

			result := risk.PositionSize(in)
			symbol, _ := cmd.Flags().GetString("symbol")
			symbol = strings.ToUpper(symbol)
			logging.LogSizing(app.Logger, symbol, result.Shares, result.DollarRisk)

			if record, _ := cmd.Flags().GetBool("record"); record && app.Store != nil {
				rec := &store.SizingRecord{Symbol: symbol, Result: result}
				if err := app.Store.SaveSizing(cmd.Context(), rec); err != nil {
					app.Logger.Warn().Err(err).Msg("Failed to record sizing")
				}
			}

			if output.IsJSON() {
				return output.JSON(result)
			}
			displaySizing(output, symbol, result)
			return nil
		},
	}

	cmd.Flags().String("symbol", "", "symbol being sized (for the journal)")
	cmd.Flags().Float64("account", 0, "account equity (default from config)")
	cmd.Flags().Float64("entry", 0, "entry price (required)")
	cmd.Flags().Float64("stop", 0, "stop-loss price (required)")
	cmd.Flags().Float64("target", 0, "profit target price")
	cmd.Flags().Float64("risk-pct", risk.DefaultRiskPct, "fraction of account risked per trade")
	cmd.Flags().Float64("win-rate", 0, "estimated win rate, 0-1")
	cmd.Flags().Bool("record", false, "record the sizing in the journal")
	return cmd
}

func displaySizing(output *Output, symbol string, result models.PositionSize) {
	title := "Position Size"
	if symbol != "" {
		title = symbol + " Position Size"
	}
	output.Bold(title)
	output.Println()
	output.Printf("  Account:      %s\n", FormatCurrency(result.AccountSize))
	output.Printf("  Entry / Stop: %s / %s\n", FormatPrice(result.EntryPrice), FormatPrice(result.StopPrice))
	output.Printf("  Risk:         %s of account (%s)\n", FormatPercent(result.RiskPct*100), FormatCurrency(result.DollarRisk))
	output.Println()
	output.Printf("  Shares:       %s\n", output.BoldText(strconv.Itoa(result.Shares)))
	if result.Contracts > 0 {
		output.Printf("  Contracts:    %d (100 shares each)\n", result.Contracts)
	}
	if result.TargetPrice > 0 {
		output.Printf("  Target:       %s (R:R %s)\n", FormatPrice(result.TargetPrice), FormatRiskReward(result.RiskReward))
	}
	if result.ExpectedVal != 0 {
		output.Printf("  Expected Val: %s\n", output.FormatPnL(result.ExpectedVal))
	}
	if result.KellyFrac > 0 {
		output.Printf("  Kelly:        %s of account (capped at %s)\n",
			FormatPercent(result.KellyFrac*100), FormatPercent(risk.KellyCap*100))
	}
}

func newStopCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Compute an ATR trailing stop",
		Example: `  optionist stop --entry 150 --current 160 --atr 2.5
  optionist stop --entry 150 --current 160 --atr 2.5 --multiplier 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			entry, _ := cmd.Flags().GetFloat64("entry")
			current, _ := cmd.Flags().GetFloat64("current")
			atr, _ := cmd.Flags().GetFloat64("atr")
			if err := validatePositive(map[string]float64{"entry": entry, "current": current, "atr": atr}); err != nil {
				output.Error("%v", err)
				return err
			}
			multiplier := app.Config.Risk.ATRMultiplier
			if cmd.Flags().Changed("multiplier") {
				multiplier, _ = cmd.Flags().GetFloat64("multiplier")
			}

			result := risk.TrailingStop(entry, current, atr, multiplier)
			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("ATR Trailing Stop")
			output.Println()
			output.Printf("  Entry / Current: %s / %s\n", FormatPrice(result.EntryPrice), FormatPrice(result.CurrentPrice))
			output.Printf("  Stop:            %s (%s below current)\n",
				output.BoldText(FormatPrice(result.StopPrice)), FormatPercent(result.DistancePct))
			output.Printf("  Open Profit:     %s\n", FormatPercent(result.ProfitPct))
			if result.LockedProfit > 0 {
				output.Success("  Stop is above entry: %s per share locked in", FormatPrice(result.LockedProfit))
			} else {
				output.Printf("  Stop is below entry; no profit locked yet\n")
			}
			return nil
		},
	}

	cmd.Flags().Float64("entry", 0, "entry price (required)")
	cmd.Flags().Float64("current", 0, "current price (required)")
	cmd.Flags().Float64("atr", 0, "average true range (required)")
	cmd.Flags().Float64("multiplier", 2.0, "ATR multiplier (default from config)")
	return cmd
}

func newHeatCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heat",
		Short: "Total open risk across positions as a % of account",
		Long: `Sum the dollar risk of each open position (distance from entry to
stop times shares) and report it as a percentage of account equity.
Above 4% is a warning, above 6% is critical.`,
		Example: `  optionist heat --account 100000 --position AAPL:150:145:200 --position MSFT:400:390:50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			account, _ := cmd.Flags().GetFloat64("account")
			if account == 0 {
				account = app.Config.Risk.AccountSize
			}
			specs, _ := cmd.Flags().GetStringArray("position")
			positions, err := parsePositions(specs)
			if err != nil {
				output.Error("%v", err)
				return err
			}

			result := risk.PortfolioHeat(positions, account)
			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Portfolio Heat")
			output.Println()
			if len(result.Positions) > 0 {
				table := NewTable(output, "Symbol", "Risk", "% of Account")
				for _, pos := range result.Positions {
					table.AddRow(pos.Symbol, FormatCurrency(pos.Risk), FormatPercent(pos.RiskPct))
				}
				table.Render()
				output.Println()
			}
			output.Printf("  Total Risk: %s (%s of account)\n", FormatCurrency(result.TotalRisk), FormatPercent(result.TotalHeat))
			output.Printf("  Status:     %s\n", FormatHeatStatus(result.Status))
			switch result.Status {
			case models.HeatCritical:
				output.Warning("  Heat above 6%%: reduce exposure before adding positions")
			case models.HeatWarning:
				output.Info("  Heat above 4%%: size new positions conservatively")
			}
			return nil
		},
	}

	cmd.Flags().Float64("account", 0, "account equity (default from config)")
	cmd.Flags().StringArray("position", nil, "open position as SYMBOL:entry:stop:shares (repeatable)")
	return cmd
}

// parsePositions parses SYMBOL:entry:stop:shares specs.
func parsePositions(specs []string) ([]models.OpenPosition, error) {
	positions := make([]models.OpenPosition, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 4 {
			return nil, apperrors.NewValidationError("position", spec, "expected SYMBOL:entry:stop:shares")
		}
		entry, err1 := strconv.ParseFloat(parts[1], 64)
		stop, err2 := strconv.ParseFloat(parts[2], 64)
		shares, err3 := strconv.Atoi(parts[3])
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, apperrors.NewValidationError("position", spec, "entry, stop and shares must be numeric")
		}
		positions = append(positions, models.OpenPosition{
			Symbol:     strings.ToUpper(parts[0]),
			EntryPrice: entry,
			StopPrice:  stop,
			Shares:     shares,
		})
	}
	return positions, nil
}

func newScoreCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score trade quality from technical signals",
		Long: `Combine risk:reward, win rate, relative volume, ADX and
multi-timeframe alignment into a 0-100 quality score. Only the signals
you pass contribute; the rest are skipped, not assumed.`,
		Example: `  optionist score --rr 2.5 --win-rate 0.6 --rvol 1.8 --adx 28 --mtf 75`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			in := risk.QualityInput{
				RiskReward:     optionalFloat(cmd, "rr"),
				WinRate:        optionalFloat(cmd, "win-rate"),
				RelativeVolume: optionalFloat(cmd, "rvol"),
				RSI:            optionalFloat(cmd, "rsi"),
				ADX:            optionalFloat(cmd, "adx"),
				MultiTFAlign:   optionalFloat(cmd, "mtf"),
			}
			result := risk.ScoreTradeQuality(in)

			if output.IsJSON() {
				return output.JSON(result)
			}

			output.Bold("Trade Quality")
			output.Println()
			output.Printf("  Score:   %s / 100\n", output.BoldText(fmt.Sprintf("%.0f", result.Score)))
			output.Printf("  Verdict: %s\n", FormatVerdict(result.Verdict))
			if len(result.Components) > 0 {
				output.Println()
				output.Bold("Adjustments")
				for _, name := range []string{"risk_reward", "win_rate", "relative_volume", "adx", "multi_tf_alignment"} {
					if adj, ok := result.Components[name]; ok {
						output.Printf("  %-16s %s\n", name,
							output.ColoredString(output.PnLColor(adj), fmt.Sprintf("%+.0f", adj)))
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64("rr", 0, "risk:reward ratio")
	cmd.Flags().Float64("win-rate", 0, "estimated win rate, 0-1")
	cmd.Flags().Float64("rvol", 0, "relative volume")
	cmd.Flags().Float64("rsi", 0, "RSI reading")
	cmd.Flags().Float64("adx", 0, "ADX trend strength")
	cmd.Flags().Float64("mtf", 0, "multi-timeframe alignment, 0-100")
	return cmd
}

// optionalFloat returns nil when the flag was not set on the command line,
// so unset signals stay out of the score.
func optionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func validatePositive(fields map[string]float64) error {
	for _, name := range []string{"account", "entry", "current", "atr"} {
		if value, ok := fields[name]; ok && value <= 0 {
			return apperrors.NewValidationError(name, value, "must be positive")
		}
	}
	return nil
}
