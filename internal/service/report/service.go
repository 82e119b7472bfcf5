package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/metrics"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type ReportServiceImpl struct {
	dailyRepo      report.DailyReportRepository
	monthlyRepo    report.MonthlyReportRepository
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	tx             database.TxRunner
	clock          clock.Clock
	catchUpDays    int
}

func NewReportService(
	dailyRepo report.DailyReportRepository,
	monthlyRepo report.MonthlyReportRepository,
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	tx database.TxRunner,
	clk clock.Clock,
	catchUpDays int,
) report.ReportService {
	return &ReportServiceImpl{
		dailyRepo:      dailyRepo,
		monthlyRepo:    monthlyRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		tx:             tx,
		clock:          clk,
		catchUpDays:    catchUpDays,
	}
}

// GenerateDailyReports implements report.ReportService. It covers today
// and the previous catch-up days so a run that slipped past midnight
// still reports the missed date.
func (s *ReportServiceImpl) GenerateDailyReports(ctx context.Context) error {
	now := s.clock.Now()

	for i := 0; i < s.catchUpDays; i++ {
		target := clock.Midnight(now.AddDate(0, 0, -i))

		exists, err := s.dailyRepo.ExistsByDate(ctx, target)
		if err != nil {
			return fmt.Errorf("failed to check for existing report on %s: %w", report.FormatDate(target), err)
		}
		if exists {
			slog.Info("daily report already exists, skipping date",
				"date", report.FormatDate(target))
			metrics.DailyReportsSkipped.Inc()
			continue
		}

		if err := s.generateForDate(ctx, target, now); err != nil {
			return err
		}
	}

	return nil
}

func (s *ReportServiceImpl) generateForDate(ctx context.Context, target, now time.Time) error {
	// Report over everyone whose account existed at the date's midnight,
	// so a user created during the day enters reporting the next date.
	users, err := s.userRepo.ListReportable(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to list reportable users: %w", err)
	}

	records, err := s.attendanceRepo.ListByDate(ctx, target)
	if err != nil {
		return fmt.Errorf("failed to list attendance records for %s: %w", report.FormatDate(target), err)
	}
	byUser := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byUser[rec.UserID] = rec
	}

	entries := make([]report.DailyEntry, 0, len(users))
	for _, u := range users {
		var rec *attendance.Record
		if r, ok := byUser[u.ID]; ok {
			rec = &r
		}

		res := attendance.Classify(rec, now)
		status := attendance.ApplyHoliday(res.Status, u.CompanyBranch, target)

		entries = append(entries, report.DailyEntry{
			UserID:           u.ID,
			UniqueNumber:     u.UniqueNumber,
			Username:         u.Username,
			CompanyBranch:    u.CompanyBranch,
			Status:           status,
			CheckInTime:      res.CheckInTime,
			CheckOutTime:     res.CheckOutTime,
			CheckInLocation:  res.CheckInLocation,
			CheckOutLocation: res.CheckOutLocation,
			AbsentReason:     res.AbsentReason,
			AbsentTime:       res.AbsentTime,
			WorkHours:        res.WorkMinutes,
			Counters:         attendance.CountersFor(status),
		})
	}

	rep := report.DailyReport{
		Date:    target,
		Entries: entries,
	}

	// The report and its monthly fold commit together; a failed fold
	// leaves the date unreported so the next run retries it whole.
	err = s.tx(ctx, func(txCtx context.Context) error {
		if _, err := s.dailyRepo.Create(txCtx, rep); err != nil {
			return fmt.Errorf("failed to create daily report: %w", err)
		}
		return s.mergeMonthly(txCtx, clock.MonthKey(target), entries)
	})
	if err != nil {
		return err
	}

	metrics.DailyReportsGenerated.Inc()
	slog.Info("daily report generated",
		"date", report.FormatDate(target),
		"entries", len(entries))
	return nil
}

// mergeMonthly folds one day's entries into the month accumulator,
// creating the month on first contact and per-user rows as users join.
func (s *ReportServiceImpl) mergeMonthly(ctx context.Context, month string, entries []report.DailyEntry) error {
	monthly, err := s.monthlyRepo.GetByMonth(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to load monthly report %s: %w", month, err)
	}

	if monthly == nil {
		rep := report.MonthlyReport{
			Month:   month,
			Entries: make([]report.MonthlyEntry, 0, len(entries)),
		}
		for _, e := range entries {
			rep.Entries = append(rep.Entries, monthlyDelta(e))
		}
		if _, err := s.monthlyRepo.Create(ctx, rep); err != nil {
			return fmt.Errorf("failed to create monthly report %s: %w", month, err)
		}
		return nil
	}

	present := make(map[string]struct{}, len(monthly.Entries))
	for _, e := range monthly.Entries {
		present[e.UserID] = struct{}{}
	}

	for _, e := range entries {
		delta := monthlyDelta(e)
		if _, ok := present[e.UserID]; ok {
			if err := s.monthlyRepo.AddToEntry(ctx, month, delta); err != nil {
				return fmt.Errorf("failed to update monthly totals for user %s: %w", e.UserID, err)
			}
		} else {
			if err := s.monthlyRepo.AppendEntry(ctx, month, delta); err != nil {
				return fmt.Errorf("failed to append monthly entry for user %s: %w", e.UserID, err)
			}
		}
	}

	return nil
}

func monthlyDelta(e report.DailyEntry) report.MonthlyEntry {
	return report.MonthlyEntry{
		UserID:                         e.UserID,
		UniqueNumber:                   e.UniqueNumber,
		Username:                       e.Username,
		CompanyBranch:                  e.CompanyBranch,
		TotalWorkHours:                 e.WorkHours,
		TotalCheckInCount:              e.CheckIn,
		TotalNotCompletedCount:         e.DayNotCompleted,
		TotalAbsenceWithReasonCount:    e.AbsenceWithReason,
		TotalCanceledCount:             e.Canceled,
		TotalAbsenceWithoutReasonCount: e.AbsenceWithoutReason,
	}
}

// GetDailyReport implements report.ReportService.
func (s *ReportServiceImpl) GetDailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReportResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return report.DailyReportResponse{}, report.ErrInvalidDateFormat
	}

	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rep, total, err := s.dailyRepo.GetByDate(ctx, date.UTC(), page, limit)
	if err != nil {
		if errors.Is(err, report.ErrDailyReportNotFound) {
			return report.DailyReportResponse{}, err
		}
		return report.DailyReportResponse{}, fmt.Errorf("failed to load daily report: %w", err)
	}

	resp := report.DailyReportResponse{
		Date:       report.FormatDate(rep.Date),
		Entries:    make([]report.DailyEntryResponse, 0, len(rep.Entries)),
		TotalRows:  total,
		Page:       page,
		Limit:      limit,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}
	for _, e := range rep.Entries {
		resp.Entries = append(resp.Entries, mapDailyEntry(e))
	}
	return resp, nil
}

func mapDailyEntry(e report.DailyEntry) report.DailyEntryResponse {
	return report.DailyEntryResponse{
		UserID:               e.UserID,
		UniqueNumber:         e.UniqueNumber,
		Username:             e.Username,
		CompanyBranch:        e.CompanyBranch,
		Status:               string(e.Status),
		CheckInTime:          formatTimePtr(e.CheckInTime),
		CheckOutTime:         formatTimePtr(e.CheckOutTime),
		CheckInLocation:      e.CheckInLocation,
		CheckOutLocation:     e.CheckOutLocation,
		AbsentReason:         e.AbsentReason,
		AbsentTime:           formatTimePtr(e.AbsentTime),
		WorkHours:            e.WorkHours,
		CheckIn:              e.Counters.CheckIn,
		AbsenceWithReason:    e.Counters.AbsenceWithReason,
		DayNotCompleted:      e.Counters.DayNotCompleted,
		AbsenceWithoutReason: e.Counters.AbsenceWithoutReason,
		TotalCanceledCount:   e.Counters.Canceled,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

// GetMonthlyReport implements report.ReportService.
func (s *ReportServiceImpl) GetMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReportResponse, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReportResponse{}, err
	}

	rep, err := s.monthlyRepo.GetByMonth(ctx, req.Month)
	if err != nil {
		return report.MonthlyReportResponse{}, fmt.Errorf("failed to load monthly report: %w", err)
	}
	if rep == nil {
		return report.MonthlyReportResponse{}, report.ErrMonthlyReportNotFound
	}

	resp := report.MonthlyReportResponse{
		Month:   rep.Month,
		Entries: make([]report.MonthlyEntryResponse, 0, len(rep.Entries)),
	}
	for _, e := range rep.Entries {
		resp.Entries = append(resp.Entries, report.MonthlyEntryResponse{
			UserID:                         e.UserID,
			UniqueNumber:                   e.UniqueNumber,
			Username:                       e.Username,
			CompanyBranch:                  e.CompanyBranch,
			TotalWorkHours:                 e.TotalWorkHours,
			TotalCheckInCount:              e.TotalCheckInCount,
			TotalNotCompletedCount:         e.TotalNotCompletedCount,
			TotalAbsenceWithReasonCount:    e.TotalAbsenceWithReasonCount,
			TotalCanceledCount:             e.TotalCanceledCount,
			TotalAbsenceWithoutReasonCount: e.TotalAbsenceWithoutReasonCount,
		})
	}
	return resp, nil
}

// GetAvailableDates implements report.ReportService.
func (s *ReportServiceImpl) GetAvailableDates(ctx context.Context) (report.AvailableDatesResponse, error) {
	dates, err := s.dailyRepo.ListDates(ctx)
	if err != nil {
		return report.AvailableDatesResponse{}, fmt.Errorf("failed to list report dates: %w", err)
	}

	resp := report.AvailableDatesResponse{
		Dates: make([]string, 0, len(dates)),
	}
	for _, d := range dates {
		resp.Dates = append(resp.Dates, report.FormatDate(d))
	}
	return resp, nil
}
