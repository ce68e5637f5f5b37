package helpers

import "time"

// ParseDuration parses a duration string, falling back to a default on error
func ParseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

// MinutesBetween returns the whole minutes elapsed between two instants,
// rounded to the nearest minute.
func MinutesBetween(from, to time.Time) int {
	return int(to.Sub(from).Round(time.Minute) / time.Minute)
}
