package attendance

import (
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/pkg/clock"
)

// Status is the daily attendance outcome. The values are part of the
// stored report format and must not be renamed.
type Status string

const (
	StatusAbsentWithoutReason Status = "Absent without Reason"
	StatusAbsentWithReason    Status = "Absent with Reason"
	StatusDayNotCompleted     Status = "Day not completed"
	StatusWorkMeeting         Status = "workMeeting"
	StatusWillBeLate          Status = "willBeLate"
	StatusPending             Status = "Pending"
	StatusCompleted           Status = "Completed"
	StatusCanceled            Status = "Canceled"
	StatusNoRecord            Status = "No Record"
	StatusHoliday             Status = "Holiday"
	StatusDayNotStarted       Status = "User didn't start the day"
)

// StatusResult is the pure projection of a day's record: the computed
// status plus every derived field, zero-valued where the selected rule
// does not populate it.
type StatusResult struct {
	Status           Status
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CheckInLocation  *Location
	CheckOutLocation *Location
	AbsentLocation   *Location
	AbsentReason     string
	AbsentTime       *time.Time
	WorkMinutes      int
}

// statusRule is one row of the classification decision table. Rules
// are evaluated in order; the first match wins.
type statusRule struct {
	name    string
	matches func(r *Record, now time.Time) bool
	project func(r *Record, now time.Time) StatusResult
}

var statusRules = []statusRule{
	{
		// Flagged absent, checked in, reason filed: the user started
		// the day and later took permission without checking out.
		name: "day_not_completed",
		matches: func(r *Record, _ time.Time) bool {
			return r.IsAbsent && r.CheckIn != nil && r.AbsentReason != ""
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:           StatusDayNotCompleted,
				CheckInTime:      r.CheckIn,
				CheckOutTime:     r.CheckOut,
				CheckInLocation:  r.CheckInLocation,
				CheckOutLocation: r.CheckOutLocation,
				AbsentReason:     r.AbsentReason,
				AbsentTime:       r.AbsentTime,
				WorkMinutes:      clock.WorkMinutes(r.CheckIn, r.CheckOut),
			}
		},
	},
	{
		name: "absent_with_reason",
		matches: func(r *Record, _ time.Time) bool {
			return r.IsAbsent && r.CheckIn == nil && r.AbsentReason != ""
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:         StatusAbsentWithReason,
				AbsentReason:   r.AbsentReason,
				AbsentTime:     r.AbsentTime,
				AbsentLocation: r.AbsentLocation,
			}
		},
	},
	{
		// Flagged absent with no reason filed yet.
		name: "absent_without_reason",
		matches: func(r *Record, _ time.Time) bool {
			return r.IsAbsent
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:     StatusAbsentWithoutReason,
				AbsentTime: r.AbsentTime,
			}
		},
	},
	{
		name: "work_meeting",
		matches: func(r *Record, _ time.Time) bool {
			return r.WorkMeeting && r.AbsentTime != nil
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:          StatusWorkMeeting,
				CheckInTime:     r.CheckIn,
				CheckInLocation: r.CheckInLocation,
				AbsentReason:    r.AbsentReason,
				AbsentTime:      r.AbsentTime,
			}
		},
	},
	{
		name: "will_be_late",
		matches: func(r *Record, _ time.Time) bool {
			return r.WillBeLate && r.AbsentTime != nil
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:          StatusWillBeLate,
				CheckInTime:     r.CheckIn,
				CheckInLocation: r.CheckInLocation,
				AbsentReason:    r.AbsentReason,
				AbsentTime:      r.AbsentTime,
			}
		},
	},
	{
		// On-site, workday not over.
		name: "pending",
		matches: func(r *Record, now time.Time) bool {
			return r.CheckIn != nil && r.CheckOut == nil &&
				clock.WithinOperationalWindow(*r.CheckIn, now)
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:          StatusPending,
				CheckInTime:     r.CheckIn,
				CheckInLocation: r.CheckInLocation,
				AbsentReason:    r.AbsentReason,
				AbsentTime:      r.AbsentTime,
			}
		},
	},
	{
		name: "completed",
		matches: func(r *Record, _ time.Time) bool {
			return r.CheckIn != nil && r.CheckOut != nil
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:           StatusCompleted,
				CheckInTime:      r.CheckIn,
				CheckOutTime:     r.CheckOut,
				CheckInLocation:  r.CheckInLocation,
				CheckOutLocation: r.CheckOutLocation,
				AbsentReason:     r.AbsentReason,
				AbsentTime:       r.AbsentTime,
				WorkMinutes:      clock.WorkMinutes(r.CheckIn, r.CheckOut),
			}
		},
	},
	{
		// Workday window elapsed without a checkout.
		name: "canceled",
		matches: func(r *Record, now time.Time) bool {
			return r.CheckIn != nil && r.CheckOut == nil &&
				clock.WithinCancelWindow(now)
		},
		project: func(r *Record, _ time.Time) StatusResult {
			return StatusResult{
				Status:          StatusCanceled,
				CheckInTime:     r.CheckIn,
				CheckInLocation: r.CheckInLocation,
			}
		},
	},
}

// Classify derives the attendance status for one user's day. A nil
// record means no attendance action was taken at all. The function is
// a pure projection; it never mutates the record.
func Classify(r *Record, now time.Time) StatusResult {
	if r == nil {
		return StatusResult{Status: StatusAbsentWithoutReason}
	}
	for _, rule := range statusRules {
		if rule.matches(r, now) {
			return rule.project(r, now)
		}
	}
	// Explicit fallback so no input combination falls through without
	// a status.
	return StatusResult{Status: StatusNoRecord}
}

// ApplyLiveOverride relabels Absent without Reason as not-yet-started
// while the civil workday is still in progress. Dashboard path only;
// never persisted.
func ApplyLiveOverride(s Status, now time.Time) Status {
	if s == StatusAbsentWithoutReason && clock.WithinLiveWindow(now) {
		return StatusDayNotStarted
	}
	return s
}

// Counters are the boolean-as-integer tallies one daily report row
// contributes to the monthly totals.
type Counters struct {
	CheckIn              int
	AbsenceWithReason    int
	DayNotCompleted      int
	AbsenceWithoutReason int
	Canceled             int
}

// CountersFor derives the monthly counters from a final (post-overlay)
// status.
func CountersFor(s Status) Counters {
	var c Counters
	switch s {
	case StatusCompleted, StatusWorkMeeting:
		c.CheckIn = 1
	case StatusAbsentWithReason:
		c.AbsenceWithReason = 1
	case StatusDayNotCompleted:
		c.DayNotCompleted = 1
	case StatusAbsentWithoutReason:
		c.AbsenceWithoutReason = 1
	case StatusCanceled:
		c.Canceled = 1
	}
	return c
}
