// Package form holds the calculator's input state, separate from computed
// results. Every operation returns a new State.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sleepcalc/internal/calc"
)

// Field names a stepped numeric input.
type Field string

const (
	FieldFallAsleep  Field = "fall_asleep"
	FieldSleepCycles Field = "sleep_cycles"
)

// AdjustStep is the minute step of the time +/- buttons.
const AdjustStep = 15

// Bounds mirror the min/max/step attributes of a numeric input.
type Bounds struct {
	Min  int
	Max  int
	Step int
}

func (b Bounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

var fieldBounds = map[Field]Bounds{
	FieldFallAsleep:  {Min: 0, Max: 60, Step: 5},
	FieldSleepCycles: {Min: 1, Max: 8, Step: 1},
}

// BoundsFor returns the limits of a field; unknown fields get zero bounds.
func BoundsFor(f Field) Bounds {
	return fieldBounds[f]
}

// Defaults match the values the page opens with.
var (
	DefaultMode        = calc.ModeBedtime
	DefaultTime        = calc.Clock{Hour: 23}
	DefaultSleepCycles = 5
	DefaultFallAsleep  = 15
)

var ErrInvalidValue = errors.New("invalid value")

type State struct {
	Mode        calc.Mode
	Time        calc.Clock
	SleepCycles int
	FallAsleep  int
}

func Default() State {
	return State{
		Mode:        DefaultMode,
		Time:        DefaultTime,
		SleepCycles: DefaultSleepCycles,
		FallAsleep:  DefaultFallAsleep,
	}
}

// AdjustTime moves the anchor time, wrapping past midnight.
func (s State) AdjustTime(minutes int) State {
	s.Time = s.Time.Add(minutes)
	return s
}

func (s State) WithMode(m calc.Mode) State {
	s.Mode = m
	return s
}

// Increase steps a field up if it is below its maximum.
func (s State) Increase(f Field) State {
	b, ok := fieldBounds[f]
	if !ok {
		return s
	}
	if v := s.get(f); v < b.Max {
		s.set(f, b.Clamp(v+b.Step))
	}
	return s
}

// Decrease steps a field down if it is above its minimum.
func (s State) Decrease(f Field) State {
	b, ok := fieldBounds[f]
	if !ok {
		return s
	}
	if v := s.get(f); v > b.Min {
		s.set(f, b.Clamp(v-b.Step))
	}
	return s
}

// Normalize clamps every numeric field into its bounds and falls back to the
// default mode when the mode is unknown.
func (s State) Normalize() State {
	if !s.Mode.Valid() {
		s.Mode = DefaultMode
	}
	s.Time = calc.ClockFromMinutes(s.Time.Minutes())
	for f, b := range fieldBounds {
		s.set(f, b.Clamp(s.get(f)))
	}
	return s
}

// ClockLabel is the caption shown above the anchor time.
func (s State) ClockLabel() string {
	return s.Mode.AnchorLabel()
}

// Preferred is the cycle count the view highlights among the results.
func (s State) Preferred() int {
	return s.SleepCycles
}

// Request builds the calculator input for the offered cycle counts.
func (s State) Request() calc.Request {
	cycles := make([]int, len(calc.DefaultCycles))
	copy(cycles, calc.DefaultCycles)
	return calc.Request{
		Mode:       s.Mode,
		Anchor:     s.Time,
		FallAsleep: s.FallAsleep,
		Cycles:     cycles,
	}
}

func (s State) get(f Field) int {
	switch f {
	case FieldFallAsleep:
		return s.FallAsleep
	case FieldSleepCycles:
		return s.SleepCycles
	}
	return 0
}

func (s *State) set(f Field, v int) {
	switch f {
	case FieldFallAsleep:
		s.FallAsleep = v
	case FieldSleepCycles:
		s.SleepCycles = v
	}
}

// Getter is satisfied by url.Values and *http.Request.FormValue wrappers.
type Getter interface {
	Get(key string) string
}

// Parse reads a state from form values. Empty fields take their defaults;
// present but malformed fields are an error. Numeric fields are clamped.
func Parse(v Getter) (State, error) {
	s := Default()

	if raw := strings.TrimSpace(v.Get("mode")); raw != "" {
		m, err := calc.ParseMode(raw)
		if err != nil {
			return s, err
		}
		s.Mode = m
	}
	if raw := strings.TrimSpace(v.Get("time")); raw != "" {
		c, err := calc.ParseClock(raw)
		if err != nil {
			return s, err
		}
		s.Time = c
	}
	for _, f := range []Field{FieldFallAsleep, FieldSleepCycles} {
		raw := strings.TrimSpace(v.Get(string(f)))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return s, fmt.Errorf("%w: %s=%q", ErrInvalidValue, f, raw)
		}
		s.set(f, n)
	}
	return s.Normalize(), nil
}
