package attendance

import "errors"

// Attendance domain errors. The state-conflict ones are expected and
// frequent; handlers surface them as bad requests, not server errors.
var (
	ErrAlreadyCheckedIn      = errors.New("you have already checked in today")
	ErrNotCheckedIn          = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out today")
	ErrAlreadyMarkedAbsent   = errors.New("you are already marked absent today")
	ErrNoRecordForToday      = errors.New("no attendance record for today")
	ErrPermissionTaken       = errors.New("permission has already been taken today")
	ErrShiftEnded            = errors.New("cannot request permission after the shift has ended")
	ErrRecordNotFound        = errors.New("attendance record not found")
)
