package domain

import "time"

// Frequency is how often a monitor should be checked.
type Frequency string

const (
	Every1Min  Frequency = "1min"
	Every5Min  Frequency = "5min"
	Every10Min Frequency = "10min"

	// DefaultFrequencyMinutes is used when a stored frequency is not one of
	// the known values. Callers should log when they fall back to it.
	DefaultFrequencyMinutes = 5
)

// Minutes returns the check interval in minutes and whether the frequency
// was recognized.
func (f Frequency) Minutes() (int, bool) {
	switch f {
	case Every1Min:
		return 1, true
	case Every5Min:
		return 5, true
	case Every10Min:
		return 10, true
	default:
		return DefaultFrequencyMinutes, false
	}
}

// Interval is Minutes as a duration, with the same fallback.
func (f Frequency) Interval() (time.Duration, bool) {
	m, ok := f.Minutes()
	return time.Duration(m) * time.Minute, ok
}
