package attendance

import (
	"time"
)

// Location is a geo-coordinate pair stamped on check-in, check-out and
// absence requests.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Record is the single attendance record a user owns for one civil
// date. Date is normalized to UTC midnight; at most one record exists
// per (user, date), enforced by a unique index.
type Record struct {
	ID     string
	UserID string
	Date   time.Time

	CheckIn          *time.Time
	CheckOut         *time.Time
	CheckInLocation  *Location
	CheckOutLocation *Location
	AbsentLocation   *Location

	IsAbsent     bool
	AbsentReason string
	AbsentTime   *time.Time
	WorkMeeting  bool
	WillBeLate   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State is the explicit day-progress state machine derived from the
// record's fields. The mutation service consults it so that invalid
// transitions are rejected up front instead of by branch ordering.
type State int

const (
	StateNotStarted State = iota
	StateExcused
	StateCheckedIn
	StateCheckedOut
)

func (s State) String() string {
	switch s {
	case StateExcused:
		return "excused"
	case StateCheckedIn:
		return "checked_in"
	case StateCheckedOut:
		return "checked_out"
	default:
		return "not_started"
	}
}

// State classifies the record. A nil record means the day has not
// started. Once CheckOut is set the record is frozen.
func (r *Record) State() State {
	switch {
	case r == nil:
		return StateNotStarted
	case r.CheckOut != nil:
		return StateCheckedOut
	case r.CheckIn != nil:
		return StateCheckedIn
	case r.IsAbsent || r.WorkMeeting || r.WillBeLate || r.AbsentTime != nil:
		return StateExcused
	default:
		return StateNotStarted
	}
}

// HasPermission reports whether an absence/early-leave permission with
// a reason has already been filed on the record.
func (r *Record) HasPermission() bool {
	return r != nil && r.IsAbsent && r.AbsentReason != ""
}
