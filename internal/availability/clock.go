package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidClock is returned when a stored time of day cannot be parsed.
var ErrInvalidClock = errors.New("invalid time of day")

const (
	clockLayout24 = "15:04"
	clockLayout12 = "03:04 PM"
	// parsing accepts one- or two-digit hours
	parseLayout12 = "3:04 PM"
)

// ParseClock converts a 24-hour "HH:MM" string into minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout24, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ParseClock12 converts a 12-hour display string such as "9:00 AM" or
// "09:00 pm" into minutes since midnight.
func ParseClock12(s string) (int, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), " "))
	t, err := time.Parse(parseLayout12, normalized)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock12 renders minutes since midnight as "hh:mm AM/PM".
func FormatClock12(minutes int) string {
	return time.Date(2000, time.January, 1, 0, minutes, 0, 0, time.UTC).Format(clockLayout12)
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return time.Date(2000, time.January, 1, 0, minutes, 0, 0, time.UTC).Format(clockLayout24)
}
