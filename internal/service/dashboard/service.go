package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/dashboard"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/cache"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/clock"
	attendancesvc "github.com/daftar-hr/attendance-backend-go/internal/service/attendance"
)

// The projection is cheap to recompute, so the TTL stays short and the
// attendance service deletes the key on every mutation anyway.
const liveStatusTTL = 30 * time.Second

type DashboardServiceImpl struct {
	userRepo       user.UserRepository
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
	cache          *cache.Cache
}

func NewDashboardService(
	userRepo user.UserRepository,
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	c *cache.Cache,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		clock:          clk,
		cache:          c,
	}
}

// GetLiveStatuses implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetLiveStatuses(ctx context.Context) (dashboard.LiveStatusResponse, error) {
	var cached dashboard.LiveStatusResponse
	if s.cache.GetJSON(ctx, attendancesvc.LiveStatusCacheKey, &cached) {
		return cached, nil
	}

	now := s.clock.Now()
	today := clock.Midnight(now)

	users, err := s.userRepo.ListReportable(ctx, now)
	if err != nil {
		return dashboard.LiveStatusResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	records, err := s.attendanceRepo.ListByDate(ctx, today)
	if err != nil {
		return dashboard.LiveStatusResponse{}, fmt.Errorf("failed to list today's records: %w", err)
	}
	byUser := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		byUser[rec.UserID] = rec
	}

	resp := dashboard.LiveStatusResponse{
		Date:    today.Format("2006-01-02"),
		Entries: make([]dashboard.LiveEntry, 0, len(users)),
	}

	for _, u := range users {
		var rec *attendance.Record
		if r, ok := byUser[u.ID]; ok {
			rec = &r
		}

		res := attendance.Classify(rec, now)
		status := attendance.ApplyLiveOverride(res.Status, now)
		status = attendance.ApplyHoliday(status, u.CompanyBranch, today)

		stats, err := s.userRepo.GetAttendanceStats(ctx, u.ID)
		if err != nil {
			return dashboard.LiveStatusResponse{}, fmt.Errorf("failed to load stats for user %s: %w", u.ID, err)
		}

		resp.Entries = append(resp.Entries, dashboard.LiveEntry{
			UserID:                      u.ID,
			UniqueNumber:                u.UniqueNumber,
			Username:                    u.Username,
			CompanyBranch:               u.CompanyBranch,
			Status:                      string(status),
			CheckInTime:                 formatTimePtr(res.CheckInTime),
			CheckOutTime:                formatTimePtr(res.CheckOutTime),
			AbsentReason:                res.AbsentReason,
			WorkMinutes:                 res.WorkMinutes,
			TotalCheckInCount:           stats.TotalCheckInCount,
			TotalAbsenceCount:           stats.TotalAbsenceCount,
			TotalAbsenceWithReasonCount: stats.TotalAbsenceWithReasonCount,
		})
	}

	s.cache.SetJSON(ctx, attendancesvc.LiveStatusCacheKey, resp, liveStatusTTL)
	return resp, nil
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}
