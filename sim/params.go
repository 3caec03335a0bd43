package sim

import "github.com/rustyeddy/leversim/market"

// ErrInvalidInput is the single error kind the engine surfaces: malformed
// bars or parameter combinations that make the math meaningless. Re-exported
// from market so callers holding only sim can errors.Is against it.
var ErrInvalidInput = market.ErrInvalidInput

// Params are the ticker-independent simulation parameters. They arrive
// pre-validated (see config.Params.Validate); the engine trusts the ranges
// and only guards against divisions that would be meaningless.
type Params struct {
	InitialCapital         float64   // starting equity, > 0
	MaxDropPercent         float64   // decimal, e.g. 0.30
	MarginRequirement      float64   // decimal, e.g. 0.05
	MarginCloseoutFraction float64   // decimal, e.g. 0.50
	AnnualCostRate         float64   // decimal, e.g. 0.0533
	RebalanceFrequency     Frequency // None, Daily, Monthly, Quarterly
}

// DailyCostRate is the per-day cost-of-carry rate.
func (p Params) DailyCostRate() float64 {
	return p.AnnualCostRate / 365.0
}
