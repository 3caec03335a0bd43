package sim

import (
	"context"
	"sync"

	"github.com/rustyeddy/leversim/market"
)

// SweepResult pairs one parameter variant with its run outcome.
type SweepResult struct {
	MaxDropPercent float64
	Summary        Summary
	Err            error
}

// Sweep runs the same bar series under several max-drop settings. Runs are
// independent (each owns its Account), so they fan out across workers.
// Results come back in the order of drops.
func Sweep(ctx context.Context, bars []market.Bar, base Params, drops []float64, workers int) []SweepResult {
	if workers < 1 {
		workers = 1
	}
	if workers > len(drops) {
		workers = len(drops)
	}

	results := make([]SweepResult, len(drops))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				p := base
				p.MaxDropPercent = drops[i]

				r := Runner{Params: p}
				_, summary, err := r.Run(ctx, bars)
				results[i] = SweepResult{
					MaxDropPercent: drops[i],
					Summary:        summary,
					Err:            err,
				}
			}
		}()
	}

	for i := range drops {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			// Variants never handed to a worker report the cancellation.
			for j := i; j < len(drops); j++ {
				results[j] = SweepResult{MaxDropPercent: drops[j], Err: ctx.Err()}
			}
			return results
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
