package report

import (
	"context"
)

// ReportService builds daily reports, folds them into monthly totals
// and serves the read models.
type ReportService interface {
	// GenerateDailyReports runs the builder for today and the previous
	// days in the catch-up window. Dates with an existing report are
	// skipped whole; a skipped date is never re-aggregated.
	GenerateDailyReports(ctx context.Context) error

	GetDailyReport(ctx context.Context, req DailyReportRequest) (DailyReportResponse, error)
	GetMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReportResponse, error)
	GetAvailableDates(ctx context.Context) (AvailableDatesResponse, error)
}
