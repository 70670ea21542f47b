package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDateRange parses optional report range bounds in YYYY-MM-DD form.
// Both bounds must be present for a range to apply; otherwise ok is false.
func ParseDateRange(startDate, endDate string) (start, end time.Time, ok bool, err error) {
	if startDate == "" || endDate == "" {
		return time.Time{}, time.Time{}, false, nil
	}

	start, err = time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	end, err = time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}

	// Make the end bound inclusive of the whole day
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, true, nil
}
