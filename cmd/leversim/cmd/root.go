package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var rootCmd = &cobra.Command{
	Use:   "leversim",
	Short: "A leveraged survival strategy backtester",
	Long: `Leversim simulates a leveraged buy-and-hold strategy against historical
daily price data, tracking equity day by day, detecting liquidation at the
intraday low, and optionally rebalancing the position back to its survival
target.

It provides tools for:
  - Running a simulation over a daily OHLC bar file
  - Journaling per-day equity curves and run summaries (SQLite or CSV)
  - Sweeping the max-drop parameter across parallel runs
  - Comparing against an unleveraged buy-and-hold benchmark`,
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the CLI's console logger. The core packages stay
// logger-free; all observability happens at this layer.
func newLogger() *zap.Logger {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(os.Stderr),
		level,
	)
	return zap.New(core)
}
