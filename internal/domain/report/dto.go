package report

import (
	"regexp"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/validator"
)

type DailyReportRequest struct {
	Date  string `json:"date"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
}

func (r *DailyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var monthKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}$`)

type MonthlyReportRequest struct {
	Month string `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors
	if !monthKeyRegex.MatchString(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyEntryResponse struct {
	UserID        string `json:"user_id"`
	UniqueNumber  string `json:"unique_number"`
	Username      string `json:"username"`
	CompanyBranch string `json:"company_branch"`

	Status           string               `json:"status"`
	CheckInTime      *string              `json:"check_in_time"`
	CheckOutTime     *string              `json:"check_out_time"`
	CheckInLocation  *attendance.Location `json:"check_in_location,omitempty"`
	CheckOutLocation *attendance.Location `json:"check_out_location,omitempty"`
	AbsentReason     string               `json:"absent_reason,omitempty"`
	AbsentTime       *string              `json:"absent_time,omitempty"`
	WorkHours        int                  `json:"work_hours"`

	CheckIn              int `json:"check_in"`
	AbsenceWithReason    int `json:"absence_with_reason"`
	DayNotCompleted      int `json:"day_not_completed"`
	AbsenceWithoutReason int `json:"absence_without_reason"`
	TotalCanceledCount   int `json:"total_canceled_count"`
}

type DailyReportResponse struct {
	Date       string               `json:"date"`
	Entries    []DailyEntryResponse `json:"entries"`
	TotalRows  int64                `json:"total_rows"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
}

type MonthlyEntryResponse struct {
	UserID        string `json:"user_id"`
	UniqueNumber  string `json:"unique_number"`
	Username      string `json:"username"`
	CompanyBranch string `json:"company_branch"`

	TotalWorkHours                 int `json:"total_work_hours"`
	TotalCheckInCount              int `json:"total_check_in_count"`
	TotalNotCompletedCount         int `json:"total_not_completed_count"`
	TotalAbsenceWithReasonCount    int `json:"total_absence_with_reason_count"`
	TotalCanceledCount             int `json:"total_canceled_count"`
	TotalAbsenceWithoutReasonCount int `json:"total_absence_without_reason_count"`
}

type MonthlyReportResponse struct {
	Month   string                 `json:"month"`
	Entries []MonthlyEntryResponse `json:"entries"`
}

type AvailableDatesResponse struct {
	Dates []string `json:"dates"`
}

// FormatDate renders a report date the way it is keyed in storage.
func FormatDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
