package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMidnight(t *testing.T) {
	ts := time.Date(2025, 3, 14, 17, 45, 12, 0, Civil)
	got := Midnight(ts)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestMidnightCrossesDateLineInCivilZone(t *testing.T) {
	// 01:30 civil is still 23:30 UTC of the previous day.
	ts := time.Date(2025, 3, 15, 1, 30, 0, 0, Civil)
	got := Midnight(ts)

	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), got)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-03", MonthKey(time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-12", MonthKey(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWorkMinutes(t *testing.T) {
	in := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	t.Run("full shift floors to minutes", func(t *testing.T) {
		out := in.Add(8*time.Hour + 30*time.Minute + 45*time.Second)
		assert.Equal(t, 510, WorkMinutes(&in, &out))
	})

	t.Run("missing endpoints yield zero", func(t *testing.T) {
		assert.Equal(t, 0, WorkMinutes(nil, &in))
		assert.Equal(t, 0, WorkMinutes(&in, nil))
		assert.Equal(t, 0, WorkMinutes(nil, nil))
	})

	t.Run("checkout before checkin stays negative", func(t *testing.T) {
		out := in.Add(-90 * time.Second)
		assert.Equal(t, -2, WorkMinutes(&in, &out))
	})

	t.Run("sub-minute shift floors to zero", func(t *testing.T) {
		out := in.Add(59 * time.Second)
		assert.Equal(t, 0, WorkMinutes(&in, &out))
	})
}

func TestWithinOperationalWindow(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"start of window", time.Date(2025, 3, 14, 5, 0, 0, 0, time.UTC), true},
		{"just before start", time.Date(2025, 3, 14, 4, 59, 59, 0, time.UTC), false},
		{"last hour", time.Date(2025, 3, 14, 19, 59, 59, 0, time.UTC), true},
		{"end is exclusive", time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC), false},
		{"different utc date", time.Date(2025, 3, 13, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinOperationalWindow(tt.ts, now))
		})
	}
}

func TestWithinCancelWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"start inclusive", time.Date(2025, 3, 14, 1, 0, 0, 0, Civil), true},
		{"before start", time.Date(2025, 3, 14, 0, 59, 59, 0, Civil), false},
		{"end inclusive", time.Date(2025, 3, 14, 22, 0, 0, 0, Civil), true},
		{"after end", time.Date(2025, 3, 14, 22, 0, 1, 0, Civil), false},
		{"midday", time.Date(2025, 3, 14, 13, 0, 0, 0, Civil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinCancelWindow(tt.now))
		})
	}
}

func TestWithinLiveWindow(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"start inclusive", time.Date(2025, 3, 14, 1, 0, 0, 0, Civil), true},
		{"before start", time.Date(2025, 3, 14, 0, 30, 0, 0, Civil), false},
		{"end exclusive", time.Date(2025, 3, 14, 20, 0, 0, 0, Civil), false},
		{"just before end", time.Date(2025, 3, 14, 19, 59, 59, 0, Civil), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinLiveWindow(tt.now))
		})
	}
}

func TestFixedClockReturnsCivilInstant(t *testing.T) {
	ts := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	c := Fixed{T: ts}

	got := c.Now()
	assert.True(t, got.Equal(ts))
	assert.Equal(t, 12, got.Hour())
}
