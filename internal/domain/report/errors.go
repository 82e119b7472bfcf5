package report

import "errors"

var (
	ErrDailyReportNotFound   = errors.New("no report found for the specified date")
	ErrMonthlyReportNotFound = errors.New("no report found for the specified month")
	ErrInvalidDateFormat     = errors.New("invalid date format")
	ErrInvalidMonthFormat    = errors.New("invalid month format")
)
