package report

import (
	"context"
	"time"
)

// DailyReportRepository stores immutable per-date report documents.
type DailyReportRepository interface {
	// ExistsByDate is the idempotency guard: a date with an existing
	// report is never regenerated or re-aggregated.
	ExistsByDate(ctx context.Context, date time.Time) (bool, error)

	// Create persists the report header and all entries in one
	// transaction; partial reports are never visible.
	Create(ctx context.Context, rep DailyReport) (DailyReport, error)

	// GetByDate returns the report's entries with pagination and the
	// total entry count.
	GetByDate(ctx context.Context, date time.Time, page, limit int) (DailyReport, int64, error)

	// ListDates returns every date a report exists for, newest first.
	ListDates(ctx context.Context) ([]time.Time, error)

	// RemoveUserEntries pulls a deleted user's rows out of every
	// daily report.
	RemoveUserEntries(ctx context.Context, userID string) error
}

// MonthlyReportRepository stores the month-keyed accumulators.
type MonthlyReportRepository interface {
	// GetByMonth returns nil, nil when the month has no report yet.
	GetByMonth(ctx context.Context, month string) (*MonthlyReport, error)

	Create(ctx context.Context, rep MonthlyReport) (MonthlyReport, error)

	// AddToEntry adds the delta's counter values to the user's
	// existing totals for the month.
	AddToEntry(ctx context.Context, month string, delta MonthlyEntry) error

	// AppendEntry inserts a fresh entry for a user not yet present in
	// the month.
	AppendEntry(ctx context.Context, month string, entry MonthlyEntry) error

	// RemoveUserEntries pulls a deleted user's totals out of every
	// monthly report.
	RemoveUserEntries(ctx context.Context, userID string) error
}
