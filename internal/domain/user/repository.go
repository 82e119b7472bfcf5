package user

import (
	"context"
	"time"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (User, error)

	// ListReportable returns all non-admin users created on or before
	// the given date, the population of every daily report.
	ListReportable(ctx context.Context, createdBefore time.Time) ([]User, error)

	// ExistsByPhoneNumber checks for another user holding the phone
	// number, excluding excludeID. Guards profile updates.
	ExistsByPhoneNumber(ctx context.Context, phone string, excludeID string) (bool, error)

	// GetAttendanceStats aggregates lifetime attendance totals.
	GetAttendanceStats(ctx context.Context, userID string) (AttendanceStats, error)

	Update(ctx context.Context, req UpdateUserRequest) error
	Delete(ctx context.Context, id string) error
}
