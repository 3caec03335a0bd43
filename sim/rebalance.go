package sim

import (
	"fmt"
	"strings"
	"time"
)

// Frequency controls when the account resizes its position back to the
// survival target.
type Frequency int

const (
	None Frequency = iota
	Daily
	Monthly
	Quarterly
)

func (f Frequency) String() string {
	switch f {
	case None:
		return "None"
	case Daily:
		return "Daily"
	case Monthly:
		return "Monthly"
	case Quarterly:
		return "Quarterly"
	}
	return fmt.Sprintf("Frequency(%d)", int(f))
}

// ParseFrequency accepts the canonical names case-insensitively, plus
// "never" as an alias for None.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "never", "":
		return None, nil
	case "daily":
		return Daily, nil
	case "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	}
	return None, fmt.Errorf("unknown rebalance frequency %q: %w", s, ErrInvalidInput)
}

func quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// fires reports whether a bar dated cur opens a new rebalance period
// relative to the previous bar dated prev. A period boundary is detected by
// comparing adjacent bars, so the first bar of a run never fires (it has no
// previous bar).
func (f Frequency) fires(prev, cur time.Time) bool {
	switch f {
	case Daily:
		return true
	case Monthly:
		return cur.Year() != prev.Year() || cur.Month() != prev.Month()
	case Quarterly:
		return cur.Year() != prev.Year() || quarter(cur) != quarter(prev)
	}
	return false
}
