package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	label TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	initial_capital REAL NOT NULL,
	max_drop_percent REAL NOT NULL,
	rebalance_frequency TEXT NOT NULL,
	liquidated INTEGER NOT NULL,
	liquidation_date DATETIME,
	final_equity REAL NOT NULL,
	total_return_pct REAL NOT NULL,
	total_costs_paid REAL NOT NULL,
	initial_units REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS daily (
	run_id TEXT NOT NULL,
	date DATETIME NOT NULL,
	equity REAL NOT NULL,
	units REAL NOT NULL,
	liquidated INTEGER NOT NULL,
	benchmark_equity REAL NOT NULL,
	cumulative_cost REAL NOT NULL,
	trigger_level REAL NOT NULL,
	unit_change REAL NOT NULL,
	action TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_daily_run_date ON daily(run_id, date);
`
