package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecordState(t *testing.T) {
	now := time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rec  *Record
		want State
	}{
		{"nil record", nil, StateNotStarted},
		{"empty record", &Record{}, StateNotStarted},
		{"checked in", &Record{CheckIn: &now}, StateCheckedIn},
		{"checked out", &Record{CheckIn: &now, CheckOut: &now}, StateCheckedOut},
		{"checkout freezes even without checkin", &Record{CheckOut: &now}, StateCheckedOut},
		{"absent flag", &Record{IsAbsent: true}, StateExcused},
		{"work meeting flag", &Record{WorkMeeting: true}, StateExcused},
		{"will be late flag", &Record{WillBeLate: true}, StateExcused},
		{"absent time only", &Record{AbsentTime: &now}, StateExcused},
		{"checkin beats excuse flags", &Record{CheckIn: &now, WillBeLate: true}, StateCheckedIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.State())
		})
	}
}

func TestHasPermission(t *testing.T) {
	assert.False(t, (*Record)(nil).HasPermission())
	assert.False(t, (&Record{IsAbsent: true}).HasPermission())
	assert.False(t, (&Record{AbsentReason: "sick"}).HasPermission())
	assert.True(t, (&Record{IsAbsent: true, AbsentReason: "sick"}).HasPermission())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_started", StateNotStarted.String())
	assert.Equal(t, "excused", StateExcused.String())
	assert.Equal(t, "checked_in", StateCheckedIn.String())
	assert.Equal(t, "checked_out", StateCheckedOut.String())
}
