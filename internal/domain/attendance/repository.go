package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for per-day attendance
// records, keyed (user_id, date) with date normalized to UTC midnight.
type AttendanceRepository interface {
	// Create inserts the day's record. The unique (user_id, date)
	// index rejects a second record for the same civil date.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByUserAndDate returns nil, nil when the user took no
	// attendance action on the date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Record, error)

	// ListByDate returns every record for the date, for the daily
	// report fan-out.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	Update(ctx context.Context, rec Record) error
}
