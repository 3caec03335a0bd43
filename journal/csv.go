package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	daily  *csv.Writer
	runs   *csv.Writer
	df, rf *os.File
}

func NewCSV(dailyPath, runsPath string) (*CSVJournal, error) {
	df, err := os.Create(dailyPath)
	if err != nil {
		return nil, err
	}
	rf, err := os.Create(runsPath)
	if err != nil {
		df.Close()
		return nil, err
	}

	dw := csv.NewWriter(df)
	rw := csv.NewWriter(rf)

	if err := dw.Write([]string{"run_id", "date", "equity", "units", "liquidated", "benchmark_equity", "cumulative_cost", "trigger_level", "unit_change", "action"}); err != nil {
		return nil, err
	}
	if err := rw.Write([]string{"run_id", "label", "created_at", "initial_capital", "max_drop_percent", "rebalance_frequency", "liquidated", "liquidation_date", "final_equity", "total_return_pct", "total_costs_paid", "initial_units"}); err != nil {
		return nil, err
	}

	dw.Flush()
	if err := dw.Error(); err != nil {
		return nil, err
	}
	rw.Flush()
	if err := rw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{dw, rw, df, rf}, nil
}

func (j *CSVJournal) RecordDaily(d DailyRecord) error {
	err := j.daily.Write([]string{
		d.RunID,
		d.Date.Format("2006-01-02"),
		f(d.Equity),
		f(d.Units),
		strconv.FormatBool(d.Liquidated),
		f(d.BenchmarkEquity),
		f(d.CumulativeCost),
		f(d.TriggerLevel),
		f(d.UnitChange),
		d.Action,
	})
	if err != nil {
		return err
	}

	j.daily.Flush()
	return j.daily.Error()
}

func (j *CSVJournal) RecordSummary(s RunSummary) error {
	liqDate := ""
	if !s.LiquidationDate.IsZero() {
		liqDate = s.LiquidationDate.Format("2006-01-02")
	}

	err := j.runs.Write([]string{
		s.RunID,
		s.Label,
		s.CreatedAt.Format(time.RFC3339),
		f(s.InitialCapital),
		f(s.MaxDropPercent),
		s.RebalanceFrequency,
		strconv.FormatBool(s.Liquidated),
		liqDate,
		f(s.FinalEquity),
		f(s.TotalReturnPct),
		f(s.TotalCostsPaid),
		f(s.InitialUnits),
	})
	if err != nil {
		return err
	}

	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) Close() error {
	j.daily.Flush()
	if err := j.daily.Error(); err != nil {
		return err
	}
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}

	if err := j.df.Close(); err != nil {
		return err
	}
	return j.rf.Close()
}

var _ Journal = (*CSVJournal)(nil)

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
