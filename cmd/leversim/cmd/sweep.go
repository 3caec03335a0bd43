package cmd

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/leversim/market"
	"github.com/rustyeddy/leversim/sim"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Sweep the max-drop parameter across parallel runs",
	Long: `Sweep runs the same bar series under several max-drop settings and
prints one summary line per variant. Runs are independent and execute in
parallel.

Example:
  leversim sweep --bars data/spy.csv --drops 0.20,0.30,0.40,0.50`,
	RunE: runSweep,
}

var (
	sweepDrops   string
	sweepWorkers int
)

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&sweepDrops, "drops", "0.20,0.30,0.40,0.50", "comma-separated max-drop values (decimals)")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", runtime.NumCPU(), "number of parallel workers")

	// The sweep reuses the run command's parameter and bar flags.
	sweepCmd.Flags().StringVarP(&runBarsPath, "bars", "b", "", "path to daily bar CSV (required)")
	sweepCmd.Flags().StringVarP(&runCfgPath, "config", "c", "", "path to YAML/JSON parameter file")
	sweepCmd.Flags().Float64Var(&runCapital, "capital", 10_000, "initial capital")
	sweepCmd.Flags().Float64Var(&runMarginReq, "margin-req", 0.05, "broker margin requirement (decimal)")
	sweepCmd.Flags().Float64Var(&runCloseout, "closeout", 0.50, "margin closeout fraction (decimal)")
	sweepCmd.Flags().Float64Var(&runCostRate, "cost-rate", 0.0533, "annual cost of carry (decimal)")
	sweepCmd.Flags().StringVar(&runRebalance, "rebalance", "none", "rebalance frequency (none, daily, monthly, quarterly)")

	sweepCmd.MarkFlagRequired("bars")
}

func parseDrops(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	drops := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("bad drop value %q: %w", part, err)
		}
		drops = append(drops, v)
	}
	if len(drops) == 0 {
		return nil, fmt.Errorf("no drop values given")
	}
	return drops, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	cfg, err := loadParams(cmd)
	if err != nil {
		return err
	}
	base, err := cfg.SimParams()
	if err != nil {
		return err
	}

	drops, err := parseDrops(sweepDrops)
	if err != nil {
		return err
	}

	bars, report, err := market.LoadCSV(runBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.Info("starting sweep",
		zap.Int("bars", report.Bars),
		zap.Int("variants", len(drops)),
		zap.Int("workers", sweepWorkers),
	)

	results := sim.Sweep(cmd.Context(), bars, base, drops, sweepWorkers)

	fmt.Printf("\n%-10s %-14s %-12s %-12s %s\n", "MaxDrop", "FinalEquity", "Return%", "CostsPaid", "Outcome")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-10.2f %-14s %-12s %-12s error: %v\n", r.MaxDropPercent, "-", "-", "-", r.Err)
			continue
		}
		outcome := "survived"
		if r.Summary.Liquidated {
			outcome = "liquidated " + r.Summary.LiquidationDate.Format("2006-01-02")
		}
		fmt.Printf("%-10.2f $%-13.2f %-12.2f $%-11.2f %s\n",
			r.MaxDropPercent, r.Summary.FinalEquity, r.Summary.TotalReturnPct,
			r.Summary.TotalCostsPaid, outcome)
	}

	return nil
}
