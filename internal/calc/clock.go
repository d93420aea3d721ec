package calc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinutesPerDay is the modulus every wall-clock result is reduced by.
const MinutesPerDay = 1440

var ErrInvalidClock = errors.New("invalid time, expected HH:MM")

// Clock is a wall-clock time of day with no date attached.
type Clock struct {
	Hour   int
	Minute int
}

// ClockFromMinutes wraps any minute offset (negative included) onto a single day.
func ClockFromMinutes(min int) Clock {
	min = mod(min, MinutesPerDay)
	return Clock{Hour: min / 60, Minute: min % 60}
}

// ParseClock parses "HH:MM" (a single-digit hour is accepted).
func ParseClock(s string) (Clock, error) {
	t := strings.TrimSpace(s)
	parts := strings.Split(t, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// Minutes returns the minute of day in [0,1440).
func (c Clock) Minutes() int {
	return mod(c.Hour*60+c.Minute, MinutesPerDay)
}

// Add shifts the clock, wrapping across midnight in both directions.
func (c Clock) Add(minutes int) Clock {
	return ClockFromMinutes(c.Minutes() + minutes)
}

func (c Clock) String() string {
	n := c.Minutes()
	return fmt.Sprintf("%02d:%02d", n/60, n%60)
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// FormatDuration renders whole hours, and minutes only when non-zero:
// 360 -> "6h", 450 -> "7h 30m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = -minutes
	}
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
