package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/cache"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/clock"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/metrics"
)

// LiveStatusCacheKey is invalidated on every attendance mutation so
// the dashboard never serves a stale projection for long.
const LiveStatusCacheKey = "dashboard:live"

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	clock          clock.Clock
	cache          *cache.Cache
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	clk clock.Clock,
	c *cache.Cache,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		clock:          clk,
		cache:          c,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.UTC().Format(time.RFC3339)
	return &format
}

func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	return attendance.RecordResponse{
		ID:               rec.ID,
		UserID:           rec.UserID,
		Date:             rec.Date.UTC().Format("2006-01-02"),
		CheckIn:          timePtrToString(rec.CheckIn),
		CheckOut:         timePtrToString(rec.CheckOut),
		CheckInLocation:  rec.CheckInLocation,
		CheckOutLocation: rec.CheckOutLocation,
		AbsentLocation:   rec.AbsentLocation,
		IsAbsent:         rec.IsAbsent,
		AbsentReason:     rec.AbsentReason,
		AbsentTime:       timePtrToString(rec.AbsentTime),
		WorkMeeting:      rec.WorkMeeting,
		WillBeLate:       rec.WillBeLate,
		State:            rec.State().String(),
	}
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.clock.Now()
	nowUTC := now.UTC()
	today := clock.Midnight(now)

	rec, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's attendance record: %w", err)
	}

	if rec != nil {
		switch {
		case rec.IsAbsent && !(rec.WorkMeeting && rec.WillBeLate):
			metrics.StateConflicts.Inc()
			return attendance.RecordResponse{}, attendance.ErrAlreadyMarkedAbsent

		case rec.CheckOut != nil:
			metrics.StateConflicts.Inc()
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut

		case rec.AbsentTime != nil && rec.CheckIn == nil:
			// Excused absence later resumed: the user announced a late
			// arrival or meeting and is now actually arriving.
			rec.IsAbsent = false
			rec.WorkMeeting = false
			rec.WillBeLate = false
			rec.CheckIn = &nowUTC
			rec.CheckInLocation = req.Location

			if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
				return attendance.RecordResponse{}, fmt.Errorf("failed to record check-in: %w", err)
			}

			metrics.CheckIns.Inc()
			s.cache.Delete(ctx, LiveStatusCacheKey)
			return mapRecordToResponse(*rec), nil

		default:
			metrics.StateConflicts.Inc()
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
	}

	newRec := attendance.Record{
		UserID:          req.UserID,
		Date:            today,
		CheckIn:         &nowUTC,
		CheckInLocation: req.Location,
		IsAbsent:        req.AbsentReason != "",
		AbsentReason:    req.AbsentReason,
		AbsentLocation:  req.Location,
		WorkMeeting:     req.WorkMeeting,
		WillBeLate:      req.WillBeLate,
	}

	created, err := s.attendanceRepo.Create(ctx, newRec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	metrics.CheckIns.Inc()
	s.cache.Delete(ctx, LiveStatusCacheKey)
	return mapRecordToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.clock.Now()
	nowUTC := now.UTC()
	today := clock.Midnight(now)

	rec, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's attendance record: %w", err)
	}

	switch {
	case rec == nil:
		metrics.StateConflicts.Inc()
		return attendance.RecordResponse{}, attendance.ErrNoRecordForToday
	case rec.IsAbsent:
		metrics.StateConflicts.Inc()
		return attendance.RecordResponse{}, attendance.ErrAlreadyMarkedAbsent
	case rec.CheckOut != nil:
		metrics.StateConflicts.Inc()
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	case rec.CheckIn == nil:
		metrics.StateConflicts.Inc()
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}

	// Check-out freezes the record: excuse flags are cleared and no
	// absence field may change afterwards.
	rec.CheckOut = &nowUTC
	rec.CheckOutLocation = req.Location
	rec.WorkMeeting = false
	rec.WillBeLate = false

	if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to record check-out: %w", err)
	}

	metrics.CheckOuts.Inc()
	s.cache.Delete(ctx, LiveStatusCacheKey)
	return mapRecordToResponse(*rec), nil
}

// MarkAbsence implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) MarkAbsence(ctx context.Context, req attendance.MarkAbsenceRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.clock.Now()
	nowUTC := now.UTC()
	today := clock.Midnight(now)

	// workMeeting and willBeLate are excused categories; they do not
	// count as a real absence.
	isAbsent := !req.WorkMeeting && !req.WillBeLate

	rec, err := s.attendanceRepo.GetByUserAndDate(ctx, req.UserID, today)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to load today's attendance record: %w", err)
	}

	if rec != nil {
		if rec.State() != attendance.StateCheckedIn {
			metrics.StateConflicts.Inc()
			return attendance.RecordResponse{}, attendance.ErrShiftEnded
		}
		if rec.HasPermission() {
			metrics.StateConflicts.Inc()
			return attendance.RecordResponse{}, attendance.ErrPermissionTaken
		}

		rec.AbsentTime = &nowUTC
		rec.IsAbsent = isAbsent
		rec.AbsentReason = req.AbsentReason
		rec.AbsentLocation = req.Location
		rec.CheckOutLocation = req.Location
		rec.WorkMeeting = req.WorkMeeting
		rec.WillBeLate = req.WillBeLate

		if err := s.attendanceRepo.Update(ctx, *rec); err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to record absence: %w", err)
		}

		metrics.AbsenceRequests.Inc()
		s.cache.Delete(ctx, LiveStatusCacheKey)
		return mapRecordToResponse(*rec), nil
	}

	newRec := attendance.Record{
		UserID:         req.UserID,
		Date:           today,
		IsAbsent:       isAbsent,
		AbsentTime:     &nowUTC,
		AbsentReason:   req.AbsentReason,
		AbsentLocation: req.Location,
		WorkMeeting:    req.WorkMeeting,
		WillBeLate:     req.WillBeLate,
	}

	created, err := s.attendanceRepo.Create(ctx, newRec)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create absence record: %w", err)
	}

	metrics.AbsenceRequests.Inc()
	s.cache.Delete(ctx, LiveStatusCacheKey)
	return mapRecordToResponse(created), nil
}
