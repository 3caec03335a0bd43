package sim

import "time"

// Action classifies what the account did to its position on a given day.
type Action string

const (
	Buy  Action = "Buy"
	Sell Action = "Sell"
	Hold Action = "Hold"
)

// unitDeadBand is the smallest unit change reported as a Buy or Sell.
const unitDeadBand = 0.01

func classify(unitChange float64) (Action, float64) {
	switch {
	case unitChange > unitDeadBand:
		return Buy, unitChange
	case unitChange < -unitDeadBand:
		return Sell, unitChange
	}
	return Hold, 0
}

// DailyResult is the per-bar snapshot a run produces.
type DailyResult struct {
	Date            time.Time
	Equity          float64
	Units           float64
	Liquidated      bool
	BenchmarkEquity float64 // unleveraged buy-and-hold on the same series
	CumulativeCost  float64
	TriggerLevel    float64 // liquidation trigger marked at the close
	UnitChange      float64
	Action          Action
}

// Summary condenses a finished run.
type Summary struct {
	Liquidated      bool
	LiquidationDate time.Time // zero when not liquidated
	FinalEquity     float64
	TotalReturnPct  float64
	TotalCostsPaid  float64
	InitialUnits    float64
}

// BenchmarkSummary condenses the unleveraged comparison curve.
type BenchmarkSummary struct {
	FinalEquity    float64
	TotalReturnPct float64
	UnitsHeld      float64
}
