package sim

import (
	"time"

	"github.com/rustyeddy/leversim/market"
	"github.com/rustyeddy/leversim/risk"
)

// Account is the leveraged account state machine. It has two states,
// active and liquidated; liquidation is terminal and freezes equity and
// units at their liquidation-moment values.
//
// One Account belongs to exactly one simulation run and is mutated only by
// ApplyDailyTick, once per bar in chronological order.
type Account struct {
	Equity          float64
	Units           float64
	InitialCapital  float64
	CumulativeCost  float64
	Liquidated      bool
	LiquidationDate time.Time // zero until liquidated

	// P&L reference point; unset until the first bar seeds it.
	prevClose float64
	prevDate  time.Time
	seeded    bool
}

func NewAccount(capital, initialUnits float64) *Account {
	return &Account{
		Equity:         capital,
		Units:          initialUnits,
		InitialCapital: capital,
	}
}

// PreviousClose returns the P&L reference price and whether it has been
// seeded yet. It is unset before the account has seen its first bar.
func (a *Account) PreviousClose() (float64, bool) {
	return a.prevClose, a.seeded
}

// TriggerLevel is the equity level at which the broker closes the position,
// marked at the given price.
func (a *Account) TriggerLevel(price float64, p Params) float64 {
	required := price * a.Units * p.MarginRequirement
	return required * p.MarginCloseoutFraction
}

// ApplyDailyTick advances the account by one day of market data:
//
//  1. a liquidated account is frozen, nothing happens;
//  2. the first bar only seeds the P&L reference point;
//  3. liquidation is tested at the intraday low (inclusive boundary);
//     on liquidation equity clamps to the trigger level, modelling the
//     broker closing out at the trigger rather than at the true low;
//  4. mark-to-market P&L settles at the close;
//  5. the daily cost of carry accrues on the closing position value;
//  6. if the rebalance schedule fires, units resize to the survival target;
//  7. the reference point moves to today's close on every path, so newly
//     acquired units earn P&L only from future moves, never from the gap
//     between their entry and the current price.
func (a *Account) ApplyDailyTick(bar market.Bar, p Params) error {
	if err := bar.Validate(); err != nil {
		return err
	}

	if a.Liquidated {
		return nil
	}

	if !a.seeded {
		a.setReference(bar)
		return nil
	}

	if a.checkLiquidation(bar, p) {
		a.setReference(bar)
		return nil
	}

	a.Equity += a.Units * (bar.Close - a.prevClose)

	dailyCost := bar.Close * a.Units * p.DailyCostRate()
	a.Equity -= dailyCost
	a.CumulativeCost += dailyCost

	if p.RebalanceFrequency.fires(a.prevDate, bar.Day()) {
		if err := a.rebalance(bar.Close, p); err != nil {
			return err
		}
	}

	a.setReference(bar)
	return nil
}

// checkLiquidation tests the worst point of the day before the close
// settles. Reports true when the account transitioned to liquidated.
func (a *Account) checkLiquidation(bar market.Bar, p Params) bool {
	pnlAtLow := (bar.Low - a.prevClose) * a.Units
	equityAtLow := a.Equity + pnlAtLow
	trigger := a.TriggerLevel(bar.Low, p)

	if equityAtLow <= trigger {
		a.Liquidated = true
		a.LiquidationDate = bar.Day()
		a.Equity = trigger
		return true
	}
	return false
}

func (a *Account) rebalance(price float64, p Params) error {
	target, err := risk.TargetUnits(a.Equity, price,
		p.MaxDropPercent, p.MarginRequirement, p.MarginCloseoutFraction)
	if err != nil {
		return err
	}
	if target < 0 {
		target = 0
	}
	a.Units = target
	return nil
}

func (a *Account) setReference(bar market.Bar) {
	a.prevClose = bar.Close
	a.prevDate = bar.Day()
	a.seeded = true
}
