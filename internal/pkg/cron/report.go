package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/clock"
)

// ReportJobs wires the daily report builder into the scheduler.
type ReportJobs struct {
	reportService report.ReportService
	clock         clock.Clock
}

func NewReportJobs(reportService report.ReportService, clk clock.Clock) *ReportJobs {
	return &ReportJobs{
		reportService: reportService,
		clock:         clk,
	}
}

func (j *ReportJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("generate_daily_reports", 1*time.Hour, j.GenerateDailyReports)
}

// GenerateDailyReports ticks hourly but only acts in the first hour of
// the civil day. The builder itself is idempotent, so the startup run
// and a tick landing in the same hour cannot double-report a date.
func (j *ReportJobs) GenerateDailyReports(ctx context.Context) error {
	if j.clock.Now().In(clock.Civil).Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting daily report generation")
	return j.reportService.GenerateDailyReports(ctx)
}
