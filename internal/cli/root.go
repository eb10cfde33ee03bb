package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"optionist/internal/config"
	"optionist/internal/logging"
	"optionist/internal/marketdata"
	"optionist/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Store    store.DataStore
	Provider marketdata.Provider
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Provider: marketdata.NewCanned(0.30),
	}

	if cfg.Store.Enabled {
		dataStore, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize journal, history will be unavailable")
		} else {
			app.Store = dataStore
			logger.Debug().Str("path", cfg.Store.Path).Msg("Journal initialized")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "optionist",
		Short: "Optionist - options strategy P&L and risk-sizing analysis",
		Long: `Optionist analyzes multi-leg option strategies and sizes positions.

It computes expiration payoff curves, breakevens, probability of profit,
and aggregated Greeks for named strategies, and provides risk tools:
1%-rule position sizing, Kelly fractions, ATR trailing stops, portfolio
heat, and trade-quality scoring.

Use 'optionist help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/optionist)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newStrategyCmd(app))
	rootCmd.AddCommand(newPayoffCmd(app))
	rootCmd.AddCommand(newSizeCmd(app))
	rootCmd.AddCommand(newStopCmd(app))
	rootCmd.AddCommand(newHeatCmd(app))
	rootCmd.AddCommand(newScoreCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Optionist v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Analysis")
	output.Printf("  Price Range:   ±%.0f%%\n", cfg.Analysis.PriceRangePct*100)
	output.Printf("  Curve Points:  %d\n", cfg.Analysis.CurvePoints)
	output.Println()

	output.Bold("Risk")
	output.Printf("  Account Size:   %s\n", FormatCurrency(cfg.Risk.AccountSize))
	output.Printf("  Risk Per Trade: %.2f%%\n", cfg.Risk.RiskPct*100)
	output.Printf("  ATR Multiplier: %.1f\n", cfg.Risk.ATRMultiplier)
	output.Println()

	output.Bold("Journal")
	output.Printf("  Enabled: %v\n", cfg.Store.Enabled)
	output.Printf("  Path:    %s\n", cfg.Store.Path)
}
