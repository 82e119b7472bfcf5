package attendance

import (
	"context"
)

// AttendanceService defines the per-user attendance mutations. Each
// operation is guarded by the record's state machine; a rejected
// transition leaves the record unchanged.
type AttendanceService interface {
	// CheckIn records arrival, creating the day's record or resuming
	// an excused absence that has not checked in yet.
	CheckIn(ctx context.Context, req CheckInRequest) (RecordResponse, error)

	// CheckOut freezes the day's record. Allowed exactly once, only
	// after a check-in.
	CheckOut(ctx context.Context, req CheckOutRequest) (RecordResponse, error)

	// MarkAbsence files an absence or excused-absence permission for
	// the day.
	MarkAbsence(ctx context.Context, req MarkAbsenceRequest) (RecordResponse, error)
}
