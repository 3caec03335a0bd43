package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/leversim/config"
	"github.com/rustyeddy/leversim/internal/id"
	"github.com/rustyeddy/leversim/journal"
	"github.com/rustyeddy/leversim/market"
	"github.com/rustyeddy/leversim/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one leveraged simulation over a daily bar file",
	Long: `Run simulates the leveraged survival strategy over a CSV of daily bars
(date,open,high,low,close) and prints the run summary next to an
unleveraged buy-and-hold benchmark.

Parameters come from a YAML/JSON config file and/or flags; flags win.

Example:
  leversim run --bars data/spy.csv --drop 0.30 --rebalance monthly --db runs.sqlite`,
	RunE: runSimulation,
}

var (
	runBarsPath string
	runCfgPath  string
	runDBPath   string
	runDailyCSV string
	runRunsCSV  string

	runTicker    string
	runCapital   float64
	runDrop      float64
	runMarginReq float64
	runCloseout  float64
	runCostRate  float64
	runRebalance string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to daily bar CSV (date,open,high,low,close) (required)")
	runCmd.Flags().StringVarP(&runCfgPath, "config", "c", "", "path to YAML/JSON parameter file")
	runCmd.Flags().StringVarP(&runDBPath, "db", "d", "", "path to SQLite journal DB")
	runCmd.Flags().StringVar(&runDailyCSV, "daily-csv", "", "path for per-day CSV journal (requires --runs-csv)")
	runCmd.Flags().StringVar(&runRunsCSV, "runs-csv", "", "path for run summary CSV journal (requires --daily-csv)")

	runCmd.Flags().StringVarP(&runTicker, "ticker", "t", "", "instrument label for the journal")
	runCmd.Flags().Float64Var(&runCapital, "capital", 10_000, "initial capital")
	runCmd.Flags().Float64Var(&runDrop, "drop", 0.30, "max survivable drop (decimal, 0.30 = 30%)")
	runCmd.Flags().Float64Var(&runMarginReq, "margin-req", 0.05, "broker margin requirement (decimal)")
	runCmd.Flags().Float64Var(&runCloseout, "closeout", 0.50, "margin closeout fraction (decimal)")
	runCmd.Flags().Float64Var(&runCostRate, "cost-rate", 0.0533, "annual cost of carry (decimal)")
	runCmd.Flags().StringVar(&runRebalance, "rebalance", "none", "rebalance frequency (none, daily, monthly, quarterly)")

	runCmd.MarkFlagRequired("bars")
}

// loadParams merges the config file (when given) with any flags the user
// set explicitly.
func loadParams(cmd *cobra.Command) (*config.Params, error) {
	var p *config.Params
	if runCfgPath != "" {
		loaded, err := config.LoadFromFile(runCfgPath)
		if err != nil {
			return nil, err
		}
		p = loaded
	} else {
		p = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("ticker") {
		p.Ticker = runTicker
	}
	if flags.Changed("capital") {
		p.InitialCapital = runCapital
	}
	if flags.Changed("drop") {
		p.MaxDropPercent = runDrop
	}
	if flags.Changed("margin-req") {
		p.MarginRequirement = runMarginReq
	}
	if flags.Changed("closeout") {
		p.MarginCloseoutFraction = runCloseout
	}
	if flags.Changed("cost-rate") {
		p.AnnualCostRate = runCostRate
	}
	if flags.Changed("rebalance") {
		p.RebalanceFrequency = runRebalance
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}
	return p, nil
}

func openJournal() (journal.Journal, error) {
	switch {
	case runDBPath != "":
		return journal.NewSQLite(runDBPath)
	case runDailyCSV != "" && runRunsCSV != "":
		return journal.NewCSV(runDailyCSV, runRunsCSV)
	case runDailyCSV != "" || runRunsCSV != "":
		return nil, fmt.Errorf("--daily-csv and --runs-csv must be given together")
	}
	return nil, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := loadParams(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.SimParams()
	if err != nil {
		return err
	}

	bars, report, err := market.LoadCSV(runBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.Info("loaded bars",
		zap.String("path", runBarsPath),
		zap.Int("bars", report.Bars),
		zap.Int("bad_lines", report.BadLines),
		zap.Int("duplicates", report.Duplicates),
	)

	j, err := openJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	runner := &sim.Runner{
		Params:  params,
		Journal: j,
		RunID:   id.New(),
		Label:   cfg.Ticker,
	}

	log.Info("starting run",
		zap.String("run_id", runner.RunID),
		zap.String("ticker", cfg.Ticker),
		zap.Float64("capital", params.InitialCapital),
		zap.Float64("max_drop", params.MaxDropPercent),
		zap.String("rebalance", params.RebalanceFrequency.String()),
	)

	results, summary, err := runner.Run(cmd.Context(), bars)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	bench, err := sim.Benchmark(bars, params.InitialCapital)
	if err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}

	log.Info("run complete",
		zap.String("run_id", runner.RunID),
		zap.Int("days", len(results)),
		zap.Bool("liquidated", summary.Liquidated),
	)

	fmt.Printf("\nSimulation Complete (%d days)\n", len(results))
	fmt.Printf("  Initial Units:   %.4f\n", summary.InitialUnits)
	fmt.Printf("  Final Equity:    $%.2f\n", summary.FinalEquity)
	fmt.Printf("  Total Return:    %.2f%%\n", summary.TotalReturnPct)
	fmt.Printf("  Costs Paid:      $%.2f\n", summary.TotalCostsPaid)
	if summary.Liquidated {
		fmt.Printf("  LIQUIDATED on %s\n", summary.LiquidationDate.Format("2006-01-02"))
	}
	fmt.Printf("\nBenchmark (unleveraged buy & hold)\n")
	fmt.Printf("  Units Held:      %.4f\n", bench.UnitsHeld)
	fmt.Printf("  Final Equity:    $%.2f\n", bench.FinalEquity)
	fmt.Printf("  Total Return:    %.2f%%\n", bench.TotalReturnPct)

	return nil
}
