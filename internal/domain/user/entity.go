package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID            string
	UniqueNumber  string
	Username      string
	PhoneNumber   string
	PasswordHash  string
	CompanyBranch string
	Role          Role
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if the user is excluded from attendance reporting.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AttendanceStats are lifetime per-user totals shown on the live
// dashboard, aggregated over every attendance record the user owns.
type AttendanceStats struct {
	TotalCheckInCount           int
	TotalAbsenceCount           int
	TotalAbsenceWithReasonCount int
}
