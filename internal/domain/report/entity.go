package report

import (
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
)

// DailyReport is the immutable per-date report document. It is created
// once per civil date; a re-run that finds an existing report for the
// date skips the date entirely.
type DailyReport struct {
	ID        string
	Date      time.Time // UTC midnight
	Entries   []DailyEntry
	CreatedAt time.Time
}

// DailyEntry is one user's outcome row inside a daily report.
type DailyEntry struct {
	UserID        string
	UniqueNumber  string
	Username      string
	CompanyBranch string

	Status           attendance.Status
	CheckInTime      *time.Time
	CheckOutTime     *time.Time
	CheckInLocation  *attendance.Location
	CheckOutLocation *attendance.Location
	AbsentReason     string
	AbsentTime       *time.Time

	// WorkHours is minutes despite the name; the field name is part of
	// the stored report format.
	WorkHours int

	attendance.Counters
}

// MonthlyReport accumulates daily outcomes per user for one YYYY-MM
// month. Created on the month's first daily report, then incremented.
type MonthlyReport struct {
	ID        string
	Month     string // YYYY-MM
	Entries   []MonthlyEntry
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MonthlyEntry is one user's running totals, unique per user within
// the month.
type MonthlyEntry struct {
	UserID        string
	UniqueNumber  string
	Username      string
	CompanyBranch string

	TotalWorkHours                 int
	TotalCheckInCount              int
	TotalNotCompletedCount         int
	TotalAbsenceWithReasonCount    int
	TotalCanceledCount             int
	TotalAbsenceWithoutReasonCount int
}
