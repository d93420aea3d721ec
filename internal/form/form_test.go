package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sleepcalc/internal/calc"
)

func TestDefault(t *testing.T) {
	s := Default()
	assert.Equal(t, calc.ModeBedtime, s.Mode)
	assert.Equal(t, "23:00", s.Time.String())
	assert.Equal(t, 5, s.Preferred())
	assert.Equal(t, 15, s.FallAsleep)
	assert.Equal(t, "WAKE TIME", s.ClockLabel())
	assert.Equal(t, "BED TIME", s.WithMode(calc.ModeWaketime).ClockLabel())
}

func TestAdjustTime(t *testing.T) {
	s := Default().AdjustTime(AdjustStep).AdjustTime(AdjustStep).AdjustTime(AdjustStep).AdjustTime(AdjustStep)
	assert.Equal(t, "00:00", s.Time.String())

	s = s.AdjustTime(-AdjustStep)
	assert.Equal(t, "23:45", s.Time.String())

	orig := Default()
	_ = orig.AdjustTime(AdjustStep)
	assert.Equal(t, "23:00", orig.Time.String(), "adjust must not mutate the receiver")
}

func TestIncreaseDecrease(t *testing.T) {
	s := Default()
	s = s.Increase(FieldFallAsleep)
	assert.Equal(t, 20, s.FallAsleep)

	for i := 0; i < 20; i++ {
		s = s.Increase(FieldFallAsleep)
	}
	assert.Equal(t, 60, s.FallAsleep)

	for i := 0; i < 20; i++ {
		s = s.Decrease(FieldFallAsleep)
	}
	assert.Equal(t, 0, s.FallAsleep)

	s.SleepCycles = 8
	assert.Equal(t, 8, s.Increase(FieldSleepCycles).SleepCycles)
	assert.Equal(t, 7, s.Decrease(FieldSleepCycles).SleepCycles)

	s.FallAsleep = 58
	assert.Equal(t, 60, s.Increase(FieldFallAsleep).FallAsleep, "step is clamped at max")

	assert.Equal(t, s, s.Increase(Field("volume")))
}

func TestNormalize(t *testing.T) {
	s := State{Mode: "nap", Time: calc.Clock{Hour: 24, Minute: 30}, SleepCycles: 42, FallAsleep: -5}.Normalize()
	assert.Equal(t, calc.ModeBedtime, s.Mode)
	assert.Equal(t, "00:30", s.Time.String())
	assert.Equal(t, 8, s.SleepCycles)
	assert.Equal(t, 0, s.FallAsleep)
}

func TestRequest(t *testing.T) {
	s := Default()
	req := s.Request()
	assert.Equal(t, calc.DefaultCycles, req.Cycles)
	assert.Equal(t, s.Time, req.Anchor)
	assert.Equal(t, 15, req.FallAsleep)

	req.Cycles[0] = 99
	assert.Equal(t, 3, calc.DefaultCycles[0], "request must not alias the default cycle list")
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		values  url.Values
		want    State
		wantErr error
	}{
		{
			name:   "empty takes defaults",
			values: url.Values{},
			want:   Default(),
		},
		{
			name:   "all fields",
			values: url.Values{"mode": {"waketime"}, "time": {"22:30"}, "fall_asleep": {"10"}, "sleep_cycles": {"6"}},
			want:   State{Mode: calc.ModeWaketime, Time: calc.Clock{Hour: 22, Minute: 30}, FallAsleep: 10, SleepCycles: 6},
		},
		{
			name:   "out of bounds is clamped",
			values: url.Values{"fall_asleep": {"600"}, "sleep_cycles": {"0"}},
			want:   State{Mode: DefaultMode, Time: DefaultTime, FallAsleep: 60, SleepCycles: 1},
		},
		{
			name:    "bad number",
			values:  url.Values{"fall_asleep": {"ten"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "bad time",
			values:  url.Values{"time": {"25:00"}},
			wantErr: calc.ErrInvalidClock,
		},
		{
			name:    "bad mode",
			values:  url.Values{"mode": {"nap"}},
			wantErr: calc.ErrInvalidMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.values)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
