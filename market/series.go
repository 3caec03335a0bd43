package market

import "fmt"

// CheckSeries verifies that bars form a usable daily series: non-empty,
// strictly increasing dates (no duplicates), every bar well-formed.
func CheckSeries(bars []Bar) error {
	if len(bars) == 0 {
		return fmt.Errorf("empty bar series: %w", ErrInvalidInput)
	}
	for i, b := range bars {
		if err := b.Validate(); err != nil {
			return err
		}
		if i == 0 {
			continue
		}
		prev, cur := bars[i-1].Day(), b.Day()
		if !cur.After(prev) {
			return fmt.Errorf("bar %d (%s) not after previous (%s): %w",
				i, cur.Format("2006-01-02"), prev.Format("2006-01-02"), ErrInvalidInput)
		}
	}
	return nil
}
