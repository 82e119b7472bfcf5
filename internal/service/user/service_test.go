package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByPhoneNumber(_ context.Context, phone string) (user.User, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListReportable(_ context.Context, _ time.Time) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ExistsByPhoneNumber(_ context.Context, phone string, excludeID string) (bool, error) {
	for _, u := range f.users {
		if u.PhoneNumber == phone && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) GetAttendanceStats(_ context.Context, _ string) (user.AttendanceStats, error) {
	return user.AttendanceStats{}, nil
}

func (f *fakeUserRepo) Update(_ context.Context, req user.UpdateUserRequest) error {
	u, ok := f.users[req.ID]
	if !ok {
		return user.ErrUserNotFound
	}
	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.PhoneNumber != nil {
		u.PhoneNumber = *req.PhoneNumber
	}
	if req.PasswordHash != nil {
		u.PasswordHash = *req.PasswordHash
	}
	f.users[req.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeReportCleaner struct {
	removedDaily   []string
	removedMonthly []string
}

type fakeDailyCleaner struct {
	report.DailyReportRepository
	removed *[]string
}

func (f fakeDailyCleaner) RemoveUserEntries(_ context.Context, userID string) error {
	*f.removed = append(*f.removed, userID)
	return nil
}

type fakeMonthlyCleaner struct {
	report.MonthlyReportRepository
	removed *[]string
}

func (f fakeMonthlyCleaner) RemoveUserEntries(_ context.Context, userID string) error {
	*f.removed = append(*f.removed, userID)
	return nil
}

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestService(repo *fakeUserRepo) (user.UserService, *fakeReportCleaner) {
	cleaner := &fakeReportCleaner{}
	svc := NewUserService(
		repo,
		fakeDailyCleaner{removed: &cleaner.removedDaily},
		fakeMonthlyCleaner{removed: &cleaner.removedMonthly},
		passthroughTx,
	)
	return svc, cleaner
}

func strPtr(s string) *string { return &s }

func testUser() user.User {
	return user.User{
		ID:            "u1",
		UniqueNumber:  "001",
		Username:      "amira",
		PhoneNumber:   "01012345678",
		CompanyBranch: "zayed",
		Role:          user.RoleEmployee,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestGetUser(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo(testUser()))

	resp, err := svc.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "amira", resp.Username)
	assert.Equal(t, "employee", resp.Role)

	_, err = svc.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc, _ := newTestService(repo)

	resp, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:       "u1",
		Username: strPtr("amira h"),
	})
	require.NoError(t, err)
	assert.Equal(t, "amira h", resp.Username)
}

func TestUpdateUserRejectsTakenPhoneNumber(t *testing.T) {
	other := testUser()
	other.ID = "u2"
	other.PhoneNumber = "01098765432"
	repo := newFakeUserRepo(testUser(), other)
	svc, _ := newTestService(repo)

	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:          "u1",
		PhoneNumber: strPtr("01098765432"),
	})
	assert.ErrorIs(t, err, user.ErrPhoneNumberExists)

	// Keeping your own number is not a conflict.
	_, err = svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:          "u1",
		PhoneNumber: strPtr("01012345678"),
	})
	assert.NoError(t, err)
}

func TestUpdateUserHashesPassword(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc, _ := newTestService(repo)

	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:       "u1",
		Password: strPtr("correct horse battery"),
	})
	require.NoError(t, err)

	stored := repo.users["u1"].PasswordHash
	require.NotEmpty(t, stored)
	assert.NotEqual(t, "correct horse battery", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("correct horse battery")))
}

func TestUpdateUserValidation(t *testing.T) {
	svc, _ := newTestService(newFakeUserRepo(testUser()))

	_, err := svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:       "u1",
		Password: strPtr("short"),
	})
	assert.Error(t, err)

	_, err = svc.UpdateUser(context.Background(), user.UpdateUserRequest{
		ID:          "u1",
		PhoneNumber: strPtr("not-a-phone"),
	})
	assert.Error(t, err)
}

func TestDeleteUserRemovesReportEntries(t *testing.T) {
	repo := newFakeUserRepo(testUser())
	svc, cleaner := newTestService(repo)

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))

	assert.Equal(t, []string{"u1"}, cleaner.removedDaily)
	assert.Equal(t, []string{"u1"}, cleaner.removedMonthly)
	_, ok := repo.users["u1"]
	assert.False(t, ok)

	assert.ErrorIs(t, svc.DeleteUser(context.Background(), "u1"), user.ErrUserNotFound)
}
