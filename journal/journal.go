package journal

import "time"

// DailyRecord is one simulated day as persisted, keyed by the run that
// produced it.
type DailyRecord struct {
	RunID           string
	Date            time.Time
	Equity          float64
	Units           float64
	Liquidated      bool
	BenchmarkEquity float64
	CumulativeCost  float64
	TriggerLevel    float64
	UnitChange      float64
	Action          string
}

// RunSummary is the persisted outcome of one run, with enough of the
// parameter set echoed back to make rows self-describing.
type RunSummary struct {
	RunID              string
	Label              string
	CreatedAt          time.Time
	InitialCapital     float64
	MaxDropPercent     float64
	RebalanceFrequency string
	Liquidated         bool
	LiquidationDate    time.Time // zero when the run survived
	FinalEquity        float64
	TotalReturnPct     float64
	TotalCostsPaid     float64
	InitialUnits       float64
}

type Journal interface {
	RecordDaily(DailyRecord) error
	RecordSummary(RunSummary) error
	Close() error
}
