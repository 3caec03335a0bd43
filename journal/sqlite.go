package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordDaily(d DailyRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO daily
		(run_id, date, equity, units, liquidated, benchmark_equity, cumulative_cost, trigger_level, unit_change, action)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Date, d.Equity, d.Units, d.Liquidated,
		d.BenchmarkEquity, d.CumulativeCost, d.TriggerLevel, d.UnitChange, d.Action,
	)
	return err
}

func (j *SQLiteJournal) RecordSummary(s RunSummary) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, label, created_at, initial_capital, max_drop_percent, rebalance_frequency,
		 liquidated, liquidation_date, final_equity, total_return_pct, total_costs_paid, initial_units)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Label, s.CreatedAt, s.InitialCapital, s.MaxDropPercent, s.RebalanceFrequency,
		s.Liquidated, timeOrNil(s.LiquidationDate), s.FinalEquity, s.TotalReturnPct, s.TotalCostsPaid, s.InitialUnits,
	)
	return err
}

// ListDailyByRunID returns a run's per-day records in date order.
func (j *SQLiteJournal) ListDailyByRunID(runID string) ([]DailyRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, date, equity, units, liquidated, benchmark_equity,
		       cumulative_cost, trigger_level, unit_change, action
		FROM daily WHERE run_id = ? ORDER BY date`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []DailyRecord
	for rows.Next() {
		var d DailyRecord
		if err := rows.Scan(&d.RunID, &d.Date, &d.Equity, &d.Units, &d.Liquidated,
			&d.BenchmarkEquity, &d.CumulativeCost, &d.TriggerLevel, &d.UnitChange, &d.Action); err != nil {
			return nil, err
		}
		recs = append(recs, d)
	}
	return recs, rows.Err()
}

// GetRunSummary loads one run's summary row. Returns sql.ErrNoRows when the
// run id is unknown.
func (j *SQLiteJournal) GetRunSummary(runID string) (RunSummary, error) {
	var s RunSummary
	var liqDate sql.NullTime

	err := j.db.QueryRow(`
		SELECT run_id, label, created_at, initial_capital, max_drop_percent, rebalance_frequency,
		       liquidated, liquidation_date, final_equity, total_return_pct, total_costs_paid, initial_units
		FROM runs WHERE run_id = ?`, runID).Scan(
		&s.RunID, &s.Label, &s.CreatedAt, &s.InitialCapital, &s.MaxDropPercent, &s.RebalanceFrequency,
		&s.Liquidated, &liqDate, &s.FinalEquity, &s.TotalReturnPct, &s.TotalCostsPaid, &s.InitialUnits,
	)
	if err != nil {
		return RunSummary{}, err
	}
	if liqDate.Valid {
		s.LiquidationDate = liqDate.Time
	}
	return s, nil
}

// ListRuns returns run summaries, newest first.
func (j *SQLiteJournal) ListRuns() ([]RunSummary, error) {
	rows, err := j.db.Query(`
		SELECT run_id, label, created_at, initial_capital, max_drop_percent, rebalance_frequency,
		       liquidated, liquidation_date, final_equity, total_return_pct, total_costs_paid, initial_units
		FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var s RunSummary
		var liqDate sql.NullTime
		if err := rows.Scan(&s.RunID, &s.Label, &s.CreatedAt, &s.InitialCapital, &s.MaxDropPercent,
			&s.RebalanceFrequency, &s.Liquidated, &liqDate, &s.FinalEquity, &s.TotalReturnPct,
			&s.TotalCostsPaid, &s.InitialUnits); err != nil {
			return nil, err
		}
		if liqDate.Valid {
			s.LiquidationDate = liqDate.Time
		}
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

var _ Journal = (*SQLiteJournal)(nil)

// Zero times store as NULL.
func timeOrNil(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
