package market

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks a data or configuration contract violation: a
// malformed bar, a non-positive price, or a sizing buffer that collapses to
// zero. It is never raised for ordinary market conditions.
var ErrInvalidInput = errors.New("invalid input")

// Bar is one day of OHLC price data.
type Bar struct {
	Date  time.Time
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// Validate checks the bar-shape invariants: all prices positive and
// Low <= Open,Close <= High.
func (b Bar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("bar %s: non-positive price: %w", b.Date.Format("2006-01-02"), ErrInvalidInput)
	}
	if b.Low > b.Close || b.Close > b.High {
		return fmt.Errorf("bar %s: close %.6f outside [low %.6f, high %.6f]: %w",
			b.Date.Format("2006-01-02"), b.Close, b.Low, b.High, ErrInvalidInput)
	}
	if b.Low > b.Open || b.Open > b.High {
		return fmt.Errorf("bar %s: open %.6f outside [low %.6f, high %.6f]: %w",
			b.Date.Format("2006-01-02"), b.Open, b.Low, b.High, ErrInvalidInput)
	}
	return nil
}

// Day truncates the bar's timestamp to a UTC calendar day.
func (b Bar) Day() time.Time {
	y, m, d := b.Date.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
