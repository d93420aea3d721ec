package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		mode       Mode
		anchor     string
		fallAsleep int
		cycles     []int
		wantTimes  []string
		wantLabels []string
	}{
		{
			name:       "bedtime for 07:00 crosses previous midnight",
			mode:       ModeBedtime,
			anchor:     "07:00",
			fallAsleep: 15,
			cycles:     []int{5},
			wantTimes:  []string{"23:15"},
			wantLabels: []string{"5 cycles (7h 30m)"},
		},
		{
			name:       "wake time for 23:00 crosses next midnight",
			mode:       ModeWaketime,
			anchor:     "23:00",
			fallAsleep: 15,
			cycles:     []int{5},
			wantTimes:  []string{"06:45"},
			wantLabels: []string{"5 cycles (7h 30m)"},
		},
		{
			name:       "bedtime just after midnight",
			mode:       ModeBedtime,
			anchor:     "00:30",
			fallAsleep: 0,
			cycles:     []int{4},
			wantTimes:  []string{"18:30"},
			wantLabels: []string{"4 cycles (6h)"},
		},
		{
			name:       "default cycles for waking at 07:00",
			mode:       ModeBedtime,
			anchor:     "07:00",
			fallAsleep: 15,
			cycles:     DefaultCycles,
			wantTimes:  []string{"02:15", "00:45", "23:15", "21:45"},
			wantLabels: []string{"3 cycles (4h 30m)", "4 cycles (6h)", "5 cycles (7h 30m)", "6 cycles (9h)"},
		},
		{
			name:       "unsorted with duplicates keeps input order",
			mode:       ModeWaketime,
			anchor:     "22:00",
			fallAsleep: 10,
			cycles:     []int{6, 3, 6},
			wantTimes:  []string{"07:10", "02:40", "07:10"},
			wantLabels: []string{"6 cycles (9h)", "3 cycles (4h 30m)", "6 cycles (9h)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor, err := ParseClock(tt.anchor)
			require.NoError(t, err)

			got := Calculate(Request{Mode: tt.mode, Anchor: anchor, FallAsleep: tt.fallAsleep, Cycles: tt.cycles})
			require.Len(t, got, len(tt.cycles))
			for i, e := range got {
				assert.Equal(t, tt.wantTimes[i], e.Time.String())
				assert.Equal(t, tt.wantLabels[i], e.Label)
				assert.Equal(t, tt.cycles[i], e.Cycles)
				assert.Equal(t, tt.cycles[i]*CycleMinutes, e.SleepMinutes)
			}
		})
	}
}

func TestCalculateEmptyCycles(t *testing.T) {
	assert.Empty(t, Calculate(Request{Mode: ModeBedtime, Anchor: Clock{Hour: 7}}))
}

func TestCalculateRoundTrip(t *testing.T) {
	for anchor := 0; anchor < MinutesPerDay; anchor++ {
		for _, cycles := range DefaultCycles {
			start := ClockFromMinutes(anchor)
			bed := Calculate(Request{Mode: ModeBedtime, Anchor: start, Cycles: []int{cycles}})[0]
			wake := Calculate(Request{Mode: ModeWaketime, Anchor: bed.Time, Cycles: []int{cycles}})[0]
			if wake.Time != start {
				t.Fatalf("round trip %s with %d cycles: got %s", start, cycles, wake.Time)
			}
		}
	}
}

func TestCalculateAlwaysWithinDay(t *testing.T) {
	for _, mode := range []Mode{ModeBedtime, ModeWaketime} {
		for anchor := 0; anchor < MinutesPerDay; anchor += 7 {
			for _, fall := range []int{0, 15, 60, 1500, -45} {
				for _, e := range Calculate(Request{Mode: mode, Anchor: ClockFromMinutes(anchor), FallAsleep: fall, Cycles: []int{1, 3, 6, 17}}) {
					assert.GreaterOrEqual(t, e.Time.Hour, 0)
					assert.Less(t, e.Time.Hour, 24)
					assert.GreaterOrEqual(t, e.Time.Minute, 0)
					assert.Less(t, e.Time.Minute, 60)
				}
			}
		}
	}
}

func TestCalculateOutOfRangeAnchor(t *testing.T) {
	got := Calculate(Request{Mode: ModeWaketime, Anchor: Clock{Hour: 25, Minute: 70}, Cycles: []int{3}})
	// 25:70 is 26:10, i.e. 02:10 next day; plus 4h30m.
	assert.Equal(t, "06:40", got[0].Time.String())
}

func TestFormatDuration(t *testing.T) {
	tests := map[int]string{
		0:   "0h",
		45:  "0h 45m",
		270: "4h 30m",
		360: "6h",
		450: "7h 30m",
		540: "9h",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDuration(in), "minutes=%d", in)
	}
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock(" 7:05 ")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 7, Minute: 5}, c)
	assert.Equal(t, "07:05", c.String())

	for _, bad := range []string{"", "7", "24:00", "12:60", "ab:cd", "12:5", "-1:30", "1:2:3"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, bad)
	}
}

func TestClockAdd(t *testing.T) {
	assert.Equal(t, "00:10", Clock{Hour: 23, Minute: 55}.Add(15).String())
	assert.Equal(t, "23:50", Clock{Hour: 0, Minute: 5}.Add(-15).String())
	assert.Equal(t, "12:00", Clock{Hour: 12}.Add(MinutesPerDay).String())
}

func TestClockText(t *testing.T) {
	var c Clock
	require.NoError(t, c.UnmarshalText([]byte("06:45")))
	b, err := c.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "06:45", string(b))
	assert.Error(t, c.UnmarshalText([]byte("6.45")))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" BedTime ")
	require.NoError(t, err)
	assert.Equal(t, ModeBedtime, m)
	assert.Equal(t, "WAKE TIME", m.AnchorLabel())
	assert.Equal(t, "bedtimes", m.ResultNoun())

	m, err = ParseMode("waketime")
	require.NoError(t, err)
	assert.Equal(t, "BED TIME", m.AnchorLabel())
	assert.Equal(t, "wake times", m.ResultNoun())

	_, err = ParseMode("nap")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
