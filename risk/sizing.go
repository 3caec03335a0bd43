package risk

import (
	"fmt"

	"github.com/rustyeddy/leversim/market"
)

// timeCostBuffer is a reserved term in the sizing buffer. It is fixed at
// zero; the slot exists so the buffer composition reads the same as the
// account's liquidation math.
const timeCostBuffer = 0.0

// Inputs for survival position sizing. All rates are decimals (0.30 = 30%).
type Inputs struct {
	Equity                 float64
	Price                  float64
	MaxDropPercent         float64 // worst-case drop the position must survive
	MarginRequirement      float64 // broker initial margin rate
	MarginCloseoutFraction float64 // fraction of required margin that triggers closeout
}

type Result struct {
	Units  float64 // position size survivable under the worst-case drop
	Buffer float64 // total buffer per unit of price
}

// Buffer returns the total per-unit buffer the sizing divides equity by:
// the worst-case drop plus the broker's closeout reserve.
func Buffer(maxDropPercent, marginRequirement, marginCloseoutFraction float64) float64 {
	return maxDropPercent + marginRequirement*marginCloseoutFraction + timeCostBuffer
}

// Calculate computes the largest position that survives the configured
// worst-case drop without hitting the margin closeout level.
func Calculate(in Inputs) (Result, error) {
	if in.Price <= 0 {
		return Result{}, fmt.Errorf("sizing: price %.6f must be positive: %w", in.Price, market.ErrInvalidInput)
	}

	buf := Buffer(in.MaxDropPercent, in.MarginRequirement, in.MarginCloseoutFraction)
	if buf <= 0 {
		return Result{}, fmt.Errorf("sizing: buffer %.6f must be positive (set max drop or margin requirement): %w",
			buf, market.ErrInvalidInput)
	}

	return Result{
		Units:  in.Equity / (in.Price * buf),
		Buffer: buf,
	}, nil
}

// TargetUnits is the positional form of Calculate.
func TargetUnits(equity, price, maxDropPercent, marginRequirement, marginCloseoutFraction float64) (float64, error) {
	res, err := Calculate(Inputs{
		Equity:                 equity,
		Price:                  price,
		MaxDropPercent:         maxDropPercent,
		MarginRequirement:      marginRequirement,
		MarginCloseoutFraction: marginCloseoutFraction,
	})
	if err != nil {
		return 0, err
	}
	return res.Units, nil
}
