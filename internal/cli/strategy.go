package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "optionist/internal/errors"
	"optionist/internal/logging"
	"optionist/internal/models"
	"optionist/internal/pnl"
	"optionist/internal/store"
	"optionist/internal/strategy"
)

// strategyKinds maps CLI strategy names to the number of strikes and
// premiums each builder takes.
var strategyKinds = map[string]struct {
	strikes  int
	premiums int
	desc     string
}{
	"vertical":    {2, 2, "Long one strike, short another, same type"},
	"iron-condor": {4, 4, "Long put wing, short put, short call, long call wing"},
	"straddle":    {1, 2, "Call + put at the same strike"},
	"strangle":    {2, 2, "Call + put at different strikes"},
	"butterfly":   {3, 3, "Long wings, double-short body"},
}

func newStrategyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Option strategy builder and analyzer",
		Long: `Build and analyze multi-leg option strategies.

Premiums can be given explicitly with --premiums, or omitted to fill
them (with Greeks) from the market-data provider.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available strategies",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			output.Bold("Available Option Strategies")
			output.Println()
			for _, name := range []string{"vertical", "iron-condor", "straddle", "strangle", "butterfly"} {
				kind := strategyKinds[name]
				output.Printf("  %-14s %s (%d strikes)\n", output.ColoredString(ColorCyan, name), kind.desc, kind.strikes)
			}
		},
	})

	build := &cobra.Command{
		Use:   "build <strategy-type>",
		Short: "Build and analyze a strategy",
		Example: `  optionist strategy build vertical --right call --spot 100 --strikes 100,105 --premiums 3.50,1.20
  optionist strategy build iron-condor --spot 450 --strikes 420,430,470,480 --premiums 1.10,2.40,2.60,1.20
  optionist strategy build straddle --spot 100 --strikes 100 --premiums 4.20,3.80 --direction long
  optionist strategy build strangle --symbol SPY --spot 450 --strikes 465,435`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrategyBuild(cmd, app, args[0])
		},
	}
	addStrategyFlags(build)
	build.Flags().Bool("record", false, "record the analysis in the journal")
	cmd.AddCommand(build)

	return cmd
}

func addStrategyFlags(cmd *cobra.Command) {
	cmd.Flags().String("symbol", "SPY", "underlying symbol")
	cmd.Flags().Float64("spot", 0, "current underlying price (required)")
	cmd.Flags().String("strikes", "", "comma-separated strikes (required)")
	cmd.Flags().String("premiums", "", "comma-separated per-share premiums; omit to fill from provider")
	cmd.Flags().String("right", "call", "option type for vertical/butterfly: call or put")
	cmd.Flags().String("direction", "long", "direction for straddle/strangle: long or short")
	cmd.Flags().String("expiry", "", "expiration date YYYY-MM-DD (default: 30 days out)")
	cmd.Flags().Float64("range", 0, "payoff range as a fraction of spot (default from config)")
	cmd.Flags().Int("points", 0, "payoff curve sampling intervals (default from config)")
}

func runStrategyBuild(cmd *cobra.Command, app *App, kind string) error {
	output := NewOutput(cmd)

	legs, spot, symbol, err := legsFromFlags(cmd, app, kind)
	if err != nil {
		output.Error("%v", err)
		return err
	}

	params := analysisParams(cmd, app, kind)
	result := pnl.Calculate(legs, spot, params)

	logging.LogAnalysis(logging.WithSymbol(app.Logger, symbol), kind, spot, result.MaxProfit, result.MaxLoss, result.ProbProfit)

	if record, _ := cmd.Flags().GetBool("record"); record && app.Store != nil {
		rec := &store.AnalysisRecord{
			Symbol:     symbol,
			Strategy:   kind,
			Underlying: spot,
			Result:     result,
		}
		if err := app.Store.SaveAnalysis(cmd.Context(), rec); err != nil {
			app.Logger.Warn().Err(err).Msg("Failed to record analysis")
		}
	}

	if output.IsJSON() {
		return output.JSON(result)
	}
	displayAnalysis(output, symbol, kind, legs, result)
	return nil
}

func displayAnalysis(output *Output, symbol, kind string, legs []models.OptionLeg, result models.PnLResult) {
	output.Bold("%s %s @ %s", symbol, strings.ToUpper(kind), FormatPrice(result.UnderlyingPrice))
	output.Println()

	output.Bold("Legs")
	table := NewTable(output, "Side", "Qty", "Type", "Strike", "Premium")
	for _, leg := range legs {
		side := "BUY"
		if !leg.IsLong() {
			side = "SELL"
		}
		qty := leg.Quantity
		if qty < 0 {
			qty = -qty
		}
		table.AddRow(side, strconv.Itoa(qty), strings.ToUpper(string(leg.Type)), FormatPrice(leg.Strike), FormatPrice(leg.Premium))
	}
	table.Render()
	output.Println()

	output.Bold("Analysis")
	if result.NetDebitCredit >= 0 {
		output.Printf("  Net Debit:       %s\n", FormatCurrency(result.NetDebitCredit))
	} else {
		output.Printf("  Net Credit:      %s\n", FormatCurrency(-result.NetDebitCredit))
	}
	output.Printf("  Max Profit:      %s\n", output.FormatPnL(result.MaxProfit))
	output.Printf("  Max Loss:        %s\n", output.FormatPnL(result.MaxLoss))
	output.Printf("  Risk/Reward:     %s\n", FormatRiskReward(result.RiskReward))
	output.Printf("  Prob. of Profit: %.1f%%\n", result.ProbProfit)
	if len(result.Breakevens) == 0 {
		output.Printf("  Breakevens:      none in sampled range\n")
	} else {
		bes := make([]string, len(result.Breakevens))
		for i, be := range result.Breakevens {
			bes[i] = FormatPrice(be)
		}
		output.Printf("  Breakevens:      %s\n", strings.Join(bes, ", "))
	}
	output.Println()

	output.Bold("Position Greeks")
	output.Printf("  Delta: %+.1f   Gamma: %+.2f   Theta: %+.1f   Vega: %+.1f\n",
		result.PositionDelta, result.PositionGamma, result.PositionTheta, result.PositionVega)
}

// legsFromFlags assembles the leg list for a named strategy from CLI
// flags, filling premiums and Greeks from the provider when --premiums
// is not given.
func legsFromFlags(cmd *cobra.Command, app *App, kind string) (legs []models.OptionLeg, spot float64, symbol string, err error) {
	shape, ok := strategyKinds[kind]
	if !ok {
		return nil, 0, "", apperrors.NewValidationError("strategy", kind, "unknown strategy type")
	}

	symbol, _ = cmd.Flags().GetString("symbol")
	symbol = strings.ToUpper(symbol)
	spot, _ = cmd.Flags().GetFloat64("spot")
	if spot <= 0 {
		return nil, 0, "", apperrors.NewValidationError("spot", spot, "must be positive")
	}

	expiry, _ := cmd.Flags().GetString("expiry")
	if expiry == "" {
		expiry = time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	} else if _, perr := time.Parse("2006-01-02", expiry); perr != nil {
		return nil, 0, "", apperrors.NewValidationError("expiry", expiry, "must be YYYY-MM-DD")
	}

	strikesStr, _ := cmd.Flags().GetString("strikes")
	strikes, err := parseFloats(strikesStr)
	if err != nil {
		return nil, 0, "", apperrors.NewValidationError("strikes", strikesStr, err.Error())
	}
	if len(strikes) != shape.strikes {
		return nil, 0, "", apperrors.NewValidationError("strikes", strikesStr,
			fmt.Sprintf("%s needs %d strikes", kind, shape.strikes))
	}

	right := models.Call
	if r, _ := cmd.Flags().GetString("right"); strings.EqualFold(r, "put") {
		right = models.Put
	}
	dir := strategy.Long
	if d, _ := cmd.Flags().GetString("direction"); strings.EqualFold(d, "short") {
		dir = strategy.Short
	}

	var premiums []float64
	premiumsStr, _ := cmd.Flags().GetString("premiums")
	if premiumsStr != "" {
		premiums, err = parseFloats(premiumsStr)
		if err != nil {
			return nil, 0, "", apperrors.NewValidationError("premiums", premiumsStr, err.Error())
		}
		if len(premiums) != shape.premiums {
			return nil, 0, "", apperrors.NewValidationError("premiums", premiumsStr,
				fmt.Sprintf("%s needs %d premiums", kind, shape.premiums))
		}
	}

	legs, err = assembleLegs(kind, right, dir, strikes, premiums, expiry)
	if err != nil {
		return nil, 0, "", err
	}

	// No explicit premiums: price each leg off the provider's chain.
	if premiums == nil {
		if err = fillFromProvider(cmd.Context(), app, symbol, spot, expiry, legs); err != nil {
			return nil, 0, "", err
		}
	}
	return legs, spot, symbol, nil
}

func assembleLegs(kind string, right models.OptionType, dir strategy.Direction, strikes, premiums []float64, expiry string) ([]models.OptionLeg, error) {
	p := func(i int) float64 {
		if premiums == nil {
			return 0
		}
		return premiums[i]
	}
	switch kind {
	case "vertical":
		return strategy.VerticalSpread(right, strikes[0], strikes[1], p(0), p(1), expiry), nil
	case "iron-condor":
		return strategy.IronCondor(strikes[0], strikes[1], strikes[2], strikes[3], p(0), p(1), p(2), p(3), expiry), nil
	case "straddle":
		return strategy.Straddle(strikes[0], p(0), p(1), dir, expiry), nil
	case "strangle":
		return strategy.Strangle(strikes[0], strikes[1], p(0), p(1), dir, expiry), nil
	case "butterfly":
		return strategy.Butterfly(right, strikes[0], strikes[1], strikes[2], p(0), p(1), p(2), expiry), nil
	}
	return nil, apperrors.NewValidationError("strategy", kind, "unknown strategy type")
}

// fillFromProvider fills premiums and Greeks on legs in place from the
// provider's option chain.
func fillFromProvider(ctx context.Context, app *App, symbol string, spot float64, expiry string, legs []models.OptionLeg) error {
	if seeder, ok := app.Provider.(interface{ SetQuote(string, float64) }); ok {
		seeder.SetQuote(symbol, spot)
	}
	chain, err := app.Provider.GetOptionChain(ctx, symbol, expiry)
	if err != nil {
		return err
	}
	for i := range legs {
		quote, ok := chain.Find(legs[i].Strike, legs[i].Type)
		if !ok {
			return apperrors.NewDataError("chain", symbol,
				fmt.Sprintf("no %s quote at strike %s", legs[i].Type, FormatPrice(legs[i].Strike)),
				apperrors.ErrStrikeNotFound)
		}
		legs[i].Premium = quote.Mid()
		legs[i].Delta = quote.Delta
		legs[i].Gamma = quote.Gamma
		legs[i].Theta = quote.Theta
		legs[i].Vega = quote.Vega
		legs[i].IV = quote.IV
	}
	return nil
}

func analysisParams(cmd *cobra.Command, app *App, kind string) pnl.Params {
	params := pnl.Params{
		PriceRangePct: app.Config.Analysis.PriceRangePct,
		NumPoints:     app.Config.Analysis.CurvePoints,
		StrategyName:  kind,
	}
	if r, _ := cmd.Flags().GetFloat64("range"); r > 0 {
		params.PriceRangePct = r
	}
	if n, _ := cmd.Flags().GetInt("points"); n > 0 {
		params.NumPoints = n
	}
	return params
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("value required")
	}
	parts := strings.Split(s, ",")
	values := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		values = append(values, v)
	}
	return values, nil
}
