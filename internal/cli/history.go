package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"

	apperrors "optionist/internal/errors"
	"optionist/internal/store"
)

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded analyses and sizings",
		Long: `List entries recorded in the journal with --record, with summary
statistics over the filtered set. Requires the store to be enabled in
the config.`,
	}

	analyses := &cobra.Command{
		Use:   "analyses",
		Short: "List recorded strategy analyses",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				err := apperrors.ErrStoreDisabled
				output.Error("%v", err)
				return err
			}

			filter := store.AnalysisFilter{Limit: 20}
			filter.Symbol, _ = cmd.Flags().GetString("symbol")
			filter.Strategy, _ = cmd.Flags().GetString("strategy")
			if cmd.Flags().Changed("limit") {
				filter.Limit, _ = cmd.Flags().GetInt("limit")
			}
			if days, _ := cmd.Flags().GetInt("days"); days > 0 {
				filter.Since = time.Now().AddDate(0, 0, -days)
			}

			records, err := app.Store.GetAnalyses(cmd.Context(), filter)
			if err != nil {
				err = apperrors.Wrap(err, "listing analyses")
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Info("No recorded analyses match")
				return nil
			}

			table := NewTable(output, "When", "Symbol", "Strategy", "Spot", "Max Profit", "Max Loss", "PoP")
			probs := make([]float64, 0, len(records))
			for _, rec := range records {
				table.AddRow(
					rec.Timestamp.Format("2006-01-02 15:04"),
					rec.Symbol,
					rec.Strategy,
					FormatPrice(rec.Underlying),
					output.FormatPnL(rec.Result.MaxProfit),
					output.FormatPnL(rec.Result.MaxLoss),
					fmt.Sprintf("%.1f%%", rec.Result.ProbProfit),
				)
				probs = append(probs, rec.Result.ProbProfit)
			}
			table.Render()
			output.Println()
			summarize(output, "Prob. of profit", probs, "%.1f%%")
			return nil
		},
	}
	analyses.Flags().String("symbol", "", "filter by symbol")
	analyses.Flags().String("strategy", "", "filter by strategy type")
	analyses.Flags().Int("days", 0, "only entries from the last N days")
	analyses.Flags().Int("limit", 20, "maximum entries to list")
	cmd.AddCommand(analyses)

	sizings := &cobra.Command{
		Use:   "sizings",
		Short: "List recorded position sizings",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				err := apperrors.ErrStoreDisabled
				output.Error("%v", err)
				return err
			}

			filter := store.SizingFilter{Limit: 20}
			filter.Symbol, _ = cmd.Flags().GetString("symbol")
			if cmd.Flags().Changed("limit") {
				filter.Limit, _ = cmd.Flags().GetInt("limit")
			}
			if days, _ := cmd.Flags().GetInt("days"); days > 0 {
				filter.Since = time.Now().AddDate(0, 0, -days)
			}

			records, err := app.Store.GetSizings(cmd.Context(), filter)
			if err != nil {
				err = apperrors.Wrap(err, "listing sizings")
				output.Error("%v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(records)
			}
			if len(records) == 0 {
				output.Info("No recorded sizings match")
				return nil
			}

			table := NewTable(output, "When", "Symbol", "Entry", "Stop", "Shares", "$ Risk", "EV")
			risks := make([]float64, 0, len(records))
			var expectancies []float64
			for _, rec := range records {
				ev := "-"
				if rec.Result.ExpectedVal != 0 {
					ev = output.FormatPnL(rec.Result.ExpectedVal)
					expectancies = append(expectancies, rec.Result.ExpectedVal)
				}
				table.AddRow(
					rec.Timestamp.Format("2006-01-02 15:04"),
					rec.Symbol,
					FormatPrice(rec.Result.EntryPrice),
					FormatPrice(rec.Result.StopPrice),
					strconv.Itoa(rec.Result.Shares),
					FormatCurrency(rec.Result.DollarRisk),
					ev,
				)
				risks = append(risks, rec.Result.DollarRisk)
			}
			table.Render()
			output.Println()
			summarize(output, "Dollar risk", risks, "$%.2f")
			summarize(output, "Expected value", expectancies, "$%.2f")
			return nil
		},
	}
	sizings.Flags().String("symbol", "", "filter by symbol")
	sizings.Flags().Int("days", 0, "only entries from the last N days")
	sizings.Flags().Int("limit", 20, "maximum entries to list")
	cmd.AddCommand(sizings)

	return cmd
}

// summarize prints mean / median / min / max over a recorded series.
func summarize(output *Output, label string, values []float64, valueFormat string) {
	if len(values) < 2 {
		return
	}
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	minVal, _ := stats.Min(values)
	maxVal, _ := stats.Max(values)
	output.Printf("  %s over %d entries: mean %s, median %s, range %s to %s\n",
		label, len(values),
		fmt.Sprintf(valueFormat, mean), fmt.Sprintf(valueFormat, median),
		fmt.Sprintf(valueFormat, minVal), fmt.Sprintf(valueFormat, maxVal))
}
