package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Input layouts used by the HTML date and datetime-local controls.
const (
	dateLayout          = "2006-01-02"
	dateTimeLocalLayout = "2006-01-02T15:04"
)

// ParseDuration parses a duration string, returns the default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a bare date (2006-01-02) as submitted by a date input.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// ParseDateTimeLocal parses a datetime-local input value (2006-01-02T15:04).
func ParseDateTimeLocal(value string) (time.Time, error) {
	return time.Parse(dateTimeLocalLayout, value)
}
