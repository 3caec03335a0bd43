package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/leversim/internal/id"
	"github.com/rustyeddy/leversim/journal"
	"github.com/rustyeddy/leversim/market"
	"github.com/rustyeddy/leversim/risk"
)

// Runner drives one Account over a bar series, producing one DailyResult
// per bar. Journal is optional; when set, every day plus the final summary
// is recorded under RunID (generated when empty).
type Runner struct {
	Params  Params
	Journal journal.Journal
	RunID   string
	Label   string // instrument/ticker label for the journal
}

// Run executes the simulation. It does not mutate bars, and a fresh run
// over the same inputs yields an identical output sequence.
func (r *Runner) Run(ctx context.Context, bars []market.Bar) ([]DailyResult, Summary, error) {
	if err := market.CheckSeries(bars); err != nil {
		return nil, Summary{}, err
	}

	entry := bars[0].Close
	initialUnits, err := risk.TargetUnits(r.Params.InitialCapital, entry,
		r.Params.MaxDropPercent, r.Params.MarginRequirement, r.Params.MarginCloseoutFraction)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("initial sizing: %w", err)
	}

	if r.Journal != nil && r.RunID == "" {
		r.RunID = id.New()
	}

	acct := NewAccount(r.Params.InitialCapital, initialUnits)
	results := make([]DailyResult, 0, len(bars))

	for _, bar := range bars {
		if err := ctx.Err(); err != nil {
			return nil, Summary{}, err
		}

		unitsBefore := acct.Units
		if err := acct.ApplyDailyTick(bar, r.Params); err != nil {
			return nil, Summary{}, err
		}

		action, change := classify(acct.Units - unitsBefore)
		res := DailyResult{
			Date:            bar.Day(),
			Equity:          acct.Equity,
			Units:           acct.Units,
			Liquidated:      acct.Liquidated,
			BenchmarkEquity: r.Params.InitialCapital * bar.Close / entry,
			CumulativeCost:  acct.CumulativeCost,
			TriggerLevel:    acct.TriggerLevel(bar.Close, r.Params),
			UnitChange:      change,
			Action:          action,
		}
		results = append(results, res)

		if r.Journal != nil {
			if err := r.Journal.RecordDaily(r.dailyRecord(res)); err != nil {
				return nil, Summary{}, fmt.Errorf("journal daily: %w", err)
			}
		}
	}

	summary := Summary{
		Liquidated:      acct.Liquidated,
		LiquidationDate: acct.LiquidationDate,
		FinalEquity:     acct.Equity,
		TotalReturnPct:  (acct.Equity/r.Params.InitialCapital - 1) * 100,
		TotalCostsPaid:  acct.CumulativeCost,
		InitialUnits:    initialUnits,
	}

	if r.Journal != nil {
		if err := r.Journal.RecordSummary(r.runSummary(summary)); err != nil {
			return nil, Summary{}, fmt.Errorf("journal summary: %w", err)
		}
	}

	return results, summary, nil
}

func (r *Runner) dailyRecord(res DailyResult) journal.DailyRecord {
	return journal.DailyRecord{
		RunID:           r.RunID,
		Date:            res.Date,
		Equity:          res.Equity,
		Units:           res.Units,
		Liquidated:      res.Liquidated,
		BenchmarkEquity: res.BenchmarkEquity,
		CumulativeCost:  res.CumulativeCost,
		TriggerLevel:    res.TriggerLevel,
		UnitChange:      res.UnitChange,
		Action:          string(res.Action),
	}
}

func (r *Runner) runSummary(s Summary) journal.RunSummary {
	return journal.RunSummary{
		RunID:              r.RunID,
		Label:              r.Label,
		CreatedAt:          time.Now().UTC(),
		InitialCapital:     r.Params.InitialCapital,
		MaxDropPercent:     r.Params.MaxDropPercent,
		RebalanceFrequency: r.Params.RebalanceFrequency.String(),
		Liquidated:         s.Liquidated,
		LiquidationDate:    s.LiquidationDate,
		FinalEquity:        s.FinalEquity,
		TotalReturnPct:     s.TotalReturnPct,
		TotalCostsPaid:     s.TotalCostsPaid,
		InitialUnits:       s.InitialUnits,
	}
}

// Run is the pure form: no journal, no run identity, background context.
func Run(bars []market.Bar, p Params) ([]DailyResult, Summary, error) {
	r := Runner{Params: p}
	return r.Run(context.Background(), bars)
}

// Benchmark computes the unleveraged buy-and-hold comparison over the same
// series: all-in at the first close, held to the end. No liquidation
// semantics apply.
func Benchmark(bars []market.Bar, capital float64) (BenchmarkSummary, error) {
	if err := market.CheckSeries(bars); err != nil {
		return BenchmarkSummary{}, err
	}

	units := capital / bars[0].Close
	final := units * bars[len(bars)-1].Close

	return BenchmarkSummary{
		FinalEquity:    final,
		TotalReturnPct: (final/capital - 1) * 100,
		UnitsHeld:      units,
	}, nil
}
