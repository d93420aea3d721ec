// Package calc turns a wake time or bedtime into candidate times aligned to
// whole 90 minute sleep cycles.
package calc

import (
	"errors"
	"fmt"
	"strings"
)

// CycleMinutes is the length of one sleep cycle.
const CycleMinutes = 90

// DefaultCycles are the cycle counts offered for every calculation.
var DefaultCycles = []int{3, 4, 5, 6}

var ErrInvalidMode = errors.New("invalid mode, expected bedtime or waketime")

// Mode selects which end of the night the anchor time describes.
type Mode string

const (
	// ModeBedtime: the anchor is the wake time, results are bedtimes.
	ModeBedtime Mode = "bedtime"
	// ModeWaketime: the anchor is the bedtime, results are wake times.
	ModeWaketime Mode = "waketime"
)

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	return m, nil
}

func (m Mode) Valid() bool {
	return m == ModeBedtime || m == ModeWaketime
}

// AnchorLabel names what the anchor time means in this mode.
func (m Mode) AnchorLabel() string {
	if m == ModeBedtime {
		return "WAKE TIME"
	}
	return "BED TIME"
}

// ResultNoun names what the candidate times are in this mode.
func (m Mode) ResultNoun() string {
	if m == ModeBedtime {
		return "bedtimes"
	}
	return "wake times"
}

// Request is one calculation's complete input.
type Request struct {
	Mode       Mode
	Anchor     Clock
	FallAsleep int   // minutes between lying down and falling asleep
	Cycles     []int // output order follows this order; duplicates allowed
}

// Entry is one candidate time.
type Entry struct {
	Time         Clock  `json:"time"`
	Cycles       int    `json:"cycles"`
	SleepMinutes int    `json:"sleep_minutes"`
	Label        string `json:"label"`
}

// Calculate returns one entry per requested cycle count, in request order.
// Out-of-range anchors and negative offsets are absorbed by the modulo.
func Calculate(req Request) []Entry {
	anchor := req.Anchor.Hour*60 + req.Anchor.Minute
	entries := make([]Entry, 0, len(req.Cycles))
	for _, cycles := range req.Cycles {
		sleep := cycles * CycleMinutes
		total := sleep + req.FallAsleep

		var at int
		if req.Mode == ModeBedtime {
			at = anchor - total
		} else {
			at = anchor + total
		}

		entries = append(entries, Entry{
			Time:         ClockFromMinutes(at),
			Cycles:       cycles,
			SleepMinutes: sleep,
			Label:        Label(cycles),
		})
	}
	return entries
}

// Label describes a cycle count and the sleep it adds up to, e.g. "5 cycles (7h 30m)".
func Label(cycles int) string {
	return fmt.Sprintf("%d cycles (%s)", cycles, FormatDuration(cycles*CycleMinutes))
}
