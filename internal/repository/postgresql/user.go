package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/user"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, unique_number, username, phone_number, password_hash, company_branch, role, created_at, updated_at`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.UniqueNumber, &u.Username, &u.PhoneNumber, &u.PasswordHash,
		&u.CompanyBranch, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// GetByPhoneNumber implements user.UserRepository.
func (r *userRepository) GetByPhoneNumber(ctx context.Context, phone string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userColumns + ` FROM users WHERE phone_number = $1`

	u, err := scanUser(q.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by phone number: %w", err)
	}

	return u, nil
}

// ListReportable implements user.UserRepository.
func (r *userRepository) ListReportable(ctx context.Context, createdBefore time.Time) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role <> 'admin'
		  AND created_at <= $1
		ORDER BY unique_number
	`

	rows, err := q.Query(ctx, query, createdBefore)
	if err != nil {
		return nil, fmt.Errorf("failed to list reportable users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, nil
}

// ExistsByPhoneNumber implements user.UserRepository.
func (r *userRepository) ExistsByPhoneNumber(ctx context.Context, phone string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE phone_number = $1 AND id <> $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, phone, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check phone number: %w", err)
	}

	return exists, nil
}

// GetAttendanceStats implements user.UserRepository.
func (r *userRepository) GetAttendanceStats(ctx context.Context, userID string) (user.AttendanceStats, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE check_in IS NOT NULL),
			COUNT(*) FILTER (WHERE is_absent),
			COUNT(*) FILTER (WHERE is_absent AND absent_reason <> '')
		FROM attendance_records
		WHERE user_id = $1
	`

	var stats user.AttendanceStats
	err := q.QueryRow(ctx, query, userID).Scan(
		&stats.TotalCheckInCount,
		&stats.TotalAbsenceCount,
		&stats.TotalAbsenceWithReasonCount,
	)
	if err != nil {
		return user.AttendanceStats{}, fmt.Errorf("failed to get attendance stats: %w", err)
	}

	return stats, nil
}

// Update implements user.UserRepository.
func (r *userRepository) Update(ctx context.Context, req user.UpdateUserRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make([]string, 0)
	args := make([]interface{}, 0)
	argIdx := 1

	if req.Username != nil {
		updates = append(updates, fmt.Sprintf("username = $%d", argIdx))
		args = append(args, *req.Username)
		argIdx++
	}
	if req.UniqueNumber != nil {
		updates = append(updates, fmt.Sprintf("unique_number = $%d", argIdx))
		args = append(args, *req.UniqueNumber)
		argIdx++
	}
	if req.CompanyBranch != nil {
		updates = append(updates, fmt.Sprintf("company_branch = $%d", argIdx))
		args = append(args, *req.CompanyBranch)
		argIdx++
	}
	if req.PhoneNumber != nil {
		updates = append(updates, fmt.Sprintf("phone_number = $%d", argIdx))
		args = append(args, *req.PhoneNumber)
		argIdx++
	}
	if req.PasswordHash != nil {
		updates = append(updates, fmt.Sprintf("password_hash = $%d", argIdx))
		args = append(args, *req.PasswordHash)
		argIdx++
	}

	if len(updates) == 0 {
		return fmt.Errorf("no updatable fields provided for user update")
	}

	updates = append(updates, fmt.Sprintf("updated_at = $%d", argIdx))
	args = append(args, time.Now())
	argIdx++

	args = append(args, req.ID)

	query := "UPDATE users SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING id", argIdx)

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// Delete implements user.UserRepository.
func (r *userRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	commandTag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}

	return nil
}
