package user

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
)

const bcryptCost = 12

type UserServiceImpl struct {
	userRepo    user.UserRepository
	dailyRepo   report.DailyReportRepository
	monthlyRepo report.MonthlyReportRepository
	tx          database.TxRunner
}

func NewUserService(
	userRepo user.UserRepository,
	dailyRepo report.DailyReportRepository,
	monthlyRepo report.MonthlyReportRepository,
	tx database.TxRunner,
) user.UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		dailyRepo:   dailyRepo,
		monthlyRepo: monthlyRepo,
		tx:          tx,
	}
}

func mapUserToResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:            u.ID,
		UniqueNumber:  u.UniqueNumber,
		Username:      u.Username,
		PhoneNumber:   u.PhoneNumber,
		CompanyBranch: u.CompanyBranch,
		Role:          string(u.Role),
		CreatedAt:     u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (user.UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return mapUserToResponse(u), nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.ID); err != nil {
		return user.UserResponse{}, err
	}

	if req.PhoneNumber != nil {
		taken, err := s.userRepo.ExistsByPhoneNumber(ctx, *req.PhoneNumber, req.ID)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to check phone number: %w", err)
		}
		if taken {
			return user.UserResponse{}, user.ErrPhoneNumberExists
		}
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		req.PasswordHash = &hashed
	}

	if err := s.userRepo.Update(ctx, req); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	u, err := s.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return mapUserToResponse(u), nil
}

// DeleteUser implements user.UserService. Report rows referencing the
// user go with them; partial removal is never visible.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.tx(ctx, func(txCtx context.Context) error {
		if err := s.dailyRepo.RemoveUserEntries(txCtx, id); err != nil {
			return fmt.Errorf("failed to remove daily report entries: %w", err)
		}
		if err := s.monthlyRepo.RemoveUserEntries(txCtx, id); err != nil {
			return fmt.Errorf("failed to remove monthly report entries: %w", err)
		}
		if err := s.userRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}
