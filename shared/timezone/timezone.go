package timezone

import (
	"staffdir/config"
	"time"

	"github.com/rs/zerolog/log"
)

var (
	appLocation *time.Location
)

// Clock yields the current instant. Services take one so tests can pin "now".
type Clock func() time.Time

func init() {
	cfg := config.Get()

	if cfg.App.Timezone == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")
		cfg.App.Timezone = "UTC"
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", cfg.App.Timezone).
			Msg("Failed to load timezone, falling back to UTC. Please use standard timezone names like 'Asia/Jakarta', 'UTC', 'America/New_York'")
		appLocation = time.UTC
		return
	}

	appLocation = loc
	log.Info().
		Str("timezone", cfg.App.Timezone).
		Str("location", loc.String()).
		Msg("Application timezone initialized")
}

// NewClock returns the wall clock.
func NewClock() Clock {
	return Now
}

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time {
		return t
	}
}

// Now returns the current time in the application timezone
func Now() time.Time {
	return time.Now().In(GetLocation())
}

// ToAppTime converts a time to the application timezone
func ToAppTime(t time.Time) time.Time {
	return t.In(GetLocation())
}

// GetLocation returns the current application timezone location
func GetLocation() *time.Location {
	if appLocation == nil {
		log.Warn().Msg("Timezone not initialized, returning UTC")
		return time.UTC
	}
	return appLocation
}

// ParseInstant parses an ISO-8601 timestamp and normalizes it to UTC.
// Timestamps without an offset are taken as UTC.
func ParseInstant(value string) (time.Time, error) {
	var lastErr error

	for _, layout := range instantLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}

		lastErr = err
	}

	return time.Time{}, lastErr
}

var instantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// FormatInstant renders t as a "Z"-suffixed UTC timestamp.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
