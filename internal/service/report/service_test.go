package report

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
)

type stubClock struct {
	t time.Time
}

func (c *stubClock) Now() time.Time { return c.t }

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByPhoneNumber(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListReportable(_ context.Context, createdBefore time.Time) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if u.Role != user.RoleAdmin && !u.CreatedAt.After(createdBefore) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ExistsByPhoneNumber(_ context.Context, _ string, _ string) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) GetAttendanceStats(_ context.Context, _ string) (user.AttendanceStats, error) {
	return user.AttendanceStats{}, nil
}

func (f *fakeUserRepo) Update(_ context.Context, _ user.UpdateUserRequest) error { return nil }
func (f *fakeUserRepo) Delete(_ context.Context, _ string) error                 { return nil }

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) Create(_ context.Context, rec attendance.Record) (attendance.Record, error) {
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(_ context.Context, userID string, date time.Time) (*attendance.Record, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Date.Equal(date) {
			copied := rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, _ attendance.Record) error { return nil }

type fakeDailyRepo struct {
	reports     map[string]report.DailyReport
	createCalls int
}

func newFakeDailyRepo() *fakeDailyRepo {
	return &fakeDailyRepo{reports: make(map[string]report.DailyReport)}
}

func (f *fakeDailyRepo) ExistsByDate(_ context.Context, date time.Time) (bool, error) {
	_, ok := f.reports[report.FormatDate(date)]
	return ok, nil
}

func (f *fakeDailyRepo) Create(_ context.Context, rep report.DailyReport) (report.DailyReport, error) {
	f.createCalls++
	key := report.FormatDate(rep.Date)
	if _, ok := f.reports[key]; ok {
		return report.DailyReport{}, fmt.Errorf("duplicate report for %s", key)
	}
	rep.ID = fmt.Sprintf("daily-%d", f.createCalls)
	f.reports[key] = rep
	return rep, nil
}

func (f *fakeDailyRepo) GetByDate(_ context.Context, date time.Time, page, limit int) (report.DailyReport, int64, error) {
	rep, ok := f.reports[report.FormatDate(date)]
	if !ok {
		return report.DailyReport{}, 0, report.ErrDailyReportNotFound
	}
	total := int64(len(rep.Entries))
	start := (page - 1) * limit
	if start > len(rep.Entries) {
		start = len(rep.Entries)
	}
	end := start + limit
	if end > len(rep.Entries) {
		end = len(rep.Entries)
	}
	paged := rep
	paged.Entries = rep.Entries[start:end]
	return paged, total, nil
}

func (f *fakeDailyRepo) ListDates(_ context.Context) ([]time.Time, error) {
	var out []time.Time
	for _, rep := range f.reports {
		out = append(out, rep.Date)
	}
	return out, nil
}

func (f *fakeDailyRepo) RemoveUserEntries(_ context.Context, _ string) error { return nil }

type fakeMonthlyRepo struct {
	reports map[string]report.MonthlyReport
}

func newFakeMonthlyRepo() *fakeMonthlyRepo {
	return &fakeMonthlyRepo{reports: make(map[string]report.MonthlyReport)}
}

func (f *fakeMonthlyRepo) GetByMonth(_ context.Context, month string) (*report.MonthlyReport, error) {
	rep, ok := f.reports[month]
	if !ok {
		return nil, nil
	}
	copied := rep
	copied.Entries = append([]report.MonthlyEntry(nil), rep.Entries...)
	return &copied, nil
}

func (f *fakeMonthlyRepo) Create(_ context.Context, rep report.MonthlyReport) (report.MonthlyReport, error) {
	rep.ID = "monthly-" + rep.Month
	f.reports[rep.Month] = rep
	return rep, nil
}

func (f *fakeMonthlyRepo) AddToEntry(_ context.Context, month string, delta report.MonthlyEntry) error {
	rep, ok := f.reports[month]
	if !ok {
		return report.ErrMonthlyReportNotFound
	}
	for i, e := range rep.Entries {
		if e.UserID == delta.UserID {
			rep.Entries[i].TotalWorkHours += delta.TotalWorkHours
			rep.Entries[i].TotalCheckInCount += delta.TotalCheckInCount
			rep.Entries[i].TotalNotCompletedCount += delta.TotalNotCompletedCount
			rep.Entries[i].TotalAbsenceWithReasonCount += delta.TotalAbsenceWithReasonCount
			rep.Entries[i].TotalCanceledCount += delta.TotalCanceledCount
			rep.Entries[i].TotalAbsenceWithoutReasonCount += delta.TotalAbsenceWithoutReasonCount
			f.reports[month] = rep
			return nil
		}
	}
	return report.ErrMonthlyReportNotFound
}

func (f *fakeMonthlyRepo) AppendEntry(_ context.Context, month string, entry report.MonthlyEntry) error {
	rep, ok := f.reports[month]
	if !ok {
		return report.ErrMonthlyReportNotFound
	}
	rep.Entries = append(rep.Entries, entry)
	f.reports[month] = rep
	return nil
}

func (f *fakeMonthlyRepo) RemoveUserEntries(_ context.Context, _ string) error { return nil }

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc         report.ReportService
	clk         *stubClock
	userRepo    *fakeUserRepo
	attRepo     *fakeAttendanceRepo
	dailyRepo   *fakeDailyRepo
	monthlyRepo *fakeMonthlyRepo
}

func newFixture(catchUpDays int) *fixture {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := &fixture{
		clk: &stubClock{t: time.Date(2025, 3, 17, 18, 0, 0, 0, time.UTC)},
		userRepo: &fakeUserRepo{users: []user.User{
			{ID: "u1", UniqueNumber: "001", Username: "amira", CompanyBranch: attendance.BranchZayed, Role: user.RoleEmployee, CreatedAt: created},
			{ID: "u2", UniqueNumber: "002", Username: "karim", CompanyBranch: attendance.BranchAlexandria, Role: user.RoleEmployee, CreatedAt: created},
			{ID: "admin", UniqueNumber: "000", Username: "boss", CompanyBranch: attendance.BranchZayed, Role: user.RoleAdmin, CreatedAt: created},
		}},
		attRepo:     &fakeAttendanceRepo{},
		dailyRepo:   newFakeDailyRepo(),
		monthlyRepo: newFakeMonthlyRepo(),
	}
	f.svc = NewReportService(f.dailyRepo, f.monthlyRepo, f.userRepo, f.attRepo, passthroughTx, f.clk, catchUpDays)
	return f
}

func (f *fixture) addCompletedShift(userID string, date time.Time, minutes int) {
	in := date.Add(8 * time.Hour)
	out := in.Add(time.Duration(minutes) * time.Minute)
	f.attRepo.records = append(f.attRepo.records, attendance.Record{
		UserID:   userID,
		Date:     date,
		CheckIn:  &in,
		CheckOut: &out,
	})
}

func TestGenerateDailyReports(t *testing.T) {
	f := newFixture(1)
	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	f.addCompletedShift("u1", monday, 480)

	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	rep, ok := f.dailyRepo.reports["2025-03-17"]
	require.True(t, ok)
	require.Len(t, rep.Entries, 2)

	byUser := make(map[string]report.DailyEntry)
	for _, e := range rep.Entries {
		byUser[e.UserID] = e
	}

	assert.Equal(t, attendance.StatusCompleted, byUser["u1"].Status)
	assert.Equal(t, 480, byUser["u1"].WorkHours)
	assert.Equal(t, 1, byUser["u1"].Counters.CheckIn)

	assert.Equal(t, attendance.StatusAbsentWithoutReason, byUser["u2"].Status)
	assert.Equal(t, 1, byUser["u2"].Counters.AbsenceWithoutReason)

	_, hasAdmin := byUser["admin"]
	assert.False(t, hasAdmin)
}

func TestGenerateDailyReportsIsIdempotent(t *testing.T) {
	f := newFixture(1)
	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	f.addCompletedShift("u1", monday, 480)

	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))
	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	assert.Equal(t, 1, f.dailyRepo.createCalls)

	monthly := f.monthlyRepo.reports["2025-03"]
	byUser := monthlyByUser(monthly)
	assert.Equal(t, 480, byUser["u1"].TotalWorkHours)
	assert.Equal(t, 1, byUser["u1"].TotalCheckInCount)
}

func TestMonthlyTotalsAccumulateAcrossDays(t *testing.T) {
	f := newFixture(1)
	ctx := context.Background()

	monday := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)
	f.addCompletedShift("u1", monday, 480)
	require.NoError(t, f.svc.GenerateDailyReports(ctx))

	tuesday := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	f.addCompletedShift("u1", tuesday, 450)
	f.clk.t = time.Date(2025, 3, 18, 18, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.GenerateDailyReports(ctx))

	monthly := f.monthlyRepo.reports["2025-03"]
	byUser := monthlyByUser(monthly)

	assert.Equal(t, 930, byUser["u1"].TotalWorkHours)
	assert.Equal(t, 2, byUser["u1"].TotalCheckInCount)
	assert.Equal(t, 2, byUser["u2"].TotalAbsenceWithoutReasonCount)
	assert.Equal(t, 0, byUser["u2"].TotalWorkHours)
}

func TestCatchUpCoversMissedDates(t *testing.T) {
	f := newFixture(2)

	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	_, hasToday := f.dailyRepo.reports["2025-03-17"]
	_, hasYesterday := f.dailyRepo.reports["2025-03-16"]
	assert.True(t, hasToday)
	assert.True(t, hasYesterday)
	assert.Equal(t, 2, f.dailyRepo.createCalls)
}

func TestHolidayOverridesCompletedShift(t *testing.T) {
	f := newFixture(1)
	friday := time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC)
	f.clk.t = time.Date(2025, 3, 21, 18, 0, 0, 0, time.UTC)
	f.addCompletedShift("u1", friday, 480)

	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	rep := f.dailyRepo.reports["2025-03-21"]
	byUser := make(map[string]report.DailyEntry)
	for _, e := range rep.Entries {
		byUser[e.UserID] = e
	}

	// Friday is a weekend day for both branches; the overlay replaces
	// even a fully worked shift and contributes no counters.
	assert.Equal(t, attendance.StatusHoliday, byUser["u1"].Status)
	assert.Equal(t, 0, byUser["u1"].Counters.CheckIn)
	assert.Equal(t, attendance.StatusHoliday, byUser["u2"].Status)
}

func TestLateUserIsExcludedFromEarlierReports(t *testing.T) {
	f := newFixture(1)
	f.userRepo.users = append(f.userRepo.users, user.User{
		ID:            "u3",
		UniqueNumber:  "003",
		Username:      "nour",
		CompanyBranch: attendance.BranchZayed,
		Role:          user.RoleEmployee,
		CreatedAt:     time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	rep := f.dailyRepo.reports["2025-03-17"]
	for _, e := range rep.Entries {
		assert.NotEqual(t, "u3", e.UserID)
	}
}

func TestUserCreatedMidDayEntersReportingNextDate(t *testing.T) {
	f := newFixture(1)
	f.userRepo.users = append(f.userRepo.users, user.User{
		ID:            "u4",
		UniqueNumber:  "004",
		Username:      "salma",
		CompanyBranch: attendance.BranchZayed,
		Role:          user.RoleEmployee,
		CreatedAt:     time.Date(2025, 3, 17, 10, 0, 0, 0, time.UTC),
	})
	ctx := context.Background()

	require.NoError(t, f.svc.GenerateDailyReports(ctx))

	// Only accounts that existed at the date's midnight are reported.
	rep := f.dailyRepo.reports["2025-03-17"]
	for _, e := range rep.Entries {
		assert.NotEqual(t, "u4", e.UserID)
	}

	f.clk.t = time.Date(2025, 3, 18, 18, 0, 0, 0, time.UTC)
	require.NoError(t, f.svc.GenerateDailyReports(ctx))

	rep = f.dailyRepo.reports["2025-03-18"]
	found := false
	for _, e := range rep.Entries {
		if e.UserID == "u4" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGetDailyReport(t *testing.T) {
	f := newFixture(1)
	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	t.Run("found with pagination defaults", func(t *testing.T) {
		resp, err := f.svc.GetDailyReport(context.Background(), report.DailyReportRequest{Date: "2025-03-17"})
		require.NoError(t, err)
		assert.Equal(t, "2025-03-17", resp.Date)
		assert.Equal(t, int64(2), resp.TotalRows)
		assert.Equal(t, 1, resp.Page)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Len(t, resp.Entries, 2)
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := f.svc.GetDailyReport(context.Background(), report.DailyReportRequest{Date: "2025-03-10"})
		assert.ErrorIs(t, err, report.ErrDailyReportNotFound)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := f.svc.GetDailyReport(context.Background(), report.DailyReportRequest{Date: "17-03-2025"})
		assert.Error(t, err)
	})
}

func TestGetMonthlyReport(t *testing.T) {
	f := newFixture(1)
	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	resp, err := f.svc.GetMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: "2025-03"})
	require.NoError(t, err)
	assert.Equal(t, "2025-03", resp.Month)
	assert.Len(t, resp.Entries, 2)

	_, err = f.svc.GetMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: "2025-01"})
	assert.ErrorIs(t, err, report.ErrMonthlyReportNotFound)

	_, err = f.svc.GetMonthlyReport(context.Background(), report.MonthlyReportRequest{Month: "March"})
	assert.Error(t, err)
}

func TestGetAvailableDates(t *testing.T) {
	f := newFixture(2)
	require.NoError(t, f.svc.GenerateDailyReports(context.Background()))

	resp, err := f.svc.GetAvailableDates(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Dates, 2)
	assert.Contains(t, resp.Dates, "2025-03-17")
	assert.Contains(t, resp.Dates, "2025-03-16")
}

func monthlyByUser(rep report.MonthlyReport) map[string]report.MonthlyEntry {
	out := make(map[string]report.MonthlyEntry, len(rep.Entries))
	for _, e := range rep.Entries {
		out[e.UserID] = e
	}
	return out
}
