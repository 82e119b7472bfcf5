package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type monthlyReportRepository struct {
	db *database.DB
}

func NewMonthlyReportRepository(db *database.DB) report.MonthlyReportRepository {
	return &monthlyReportRepository{db: db}
}

// GetByMonth implements report.MonthlyReportRepository.
func (r *monthlyReportRepository) GetByMonth(ctx context.Context, month string) (*report.MonthlyReport, error) {
	q := GetQuerier(ctx, r.db)

	var rep report.MonthlyReport
	err := q.QueryRow(ctx, `
		SELECT id, month, created_at, updated_at FROM monthly_reports WHERE month = $1
	`, month).Scan(&rep.ID, &rep.Month, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // first daily report of the month
		}
		return nil, fmt.Errorf("failed to get monthly report: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT
			user_id, unique_number, username, company_branch,
			total_work_hours, total_check_in_count, total_not_completed_count,
			total_absence_with_reason_count, total_canceled_count,
			total_absence_without_reason_count
		FROM monthly_report_entries
		WHERE monthly_report_id = $1
		ORDER BY unique_number
	`, rep.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly report entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e report.MonthlyEntry
		err := rows.Scan(
			&e.UserID, &e.UniqueNumber, &e.Username, &e.CompanyBranch,
			&e.TotalWorkHours, &e.TotalCheckInCount, &e.TotalNotCompletedCount,
			&e.TotalAbsenceWithReasonCount, &e.TotalCanceledCount,
			&e.TotalAbsenceWithoutReasonCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly report entry: %w", err)
		}
		rep.Entries = append(rep.Entries, e)
	}

	return &rep, nil
}

// Create implements report.MonthlyReportRepository.
func (r *monthlyReportRepository) Create(ctx context.Context, rep report.MonthlyReport) (report.MonthlyReport, error) {
	q := GetQuerier(ctx, r.db)

	rep.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO monthly_reports (id, month) VALUES ($1, $2)
		RETURNING created_at, updated_at
	`, rep.ID, rep.Month).Scan(&rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to create monthly report: %w", err)
	}

	for _, e := range rep.Entries {
		if err := r.insertEntry(ctx, rep.ID, e); err != nil {
			return report.MonthlyReport{}, err
		}
	}

	return rep, nil
}

func (r *monthlyReportRepository) insertEntry(ctx context.Context, reportID string, e report.MonthlyEntry) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO monthly_report_entries (
			monthly_report_id, user_id, unique_number, username, company_branch,
			total_work_hours, total_check_in_count, total_not_completed_count,
			total_absence_with_reason_count, total_canceled_count,
			total_absence_without_reason_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		reportID, e.UserID, e.UniqueNumber, e.Username, e.CompanyBranch,
		e.TotalWorkHours, e.TotalCheckInCount, e.TotalNotCompletedCount,
		e.TotalAbsenceWithReasonCount, e.TotalCanceledCount,
		e.TotalAbsenceWithoutReasonCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert monthly report entry: %w", err)
	}

	return nil
}

// AddToEntry implements report.MonthlyReportRepository.
func (r *monthlyReportRepository) AddToEntry(ctx context.Context, month string, delta report.MonthlyEntry) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE monthly_report_entries e SET
			total_work_hours = e.total_work_hours + $1,
			total_check_in_count = e.total_check_in_count + $2,
			total_not_completed_count = e.total_not_completed_count + $3,
			total_absence_with_reason_count = e.total_absence_with_reason_count + $4,
			total_canceled_count = e.total_canceled_count + $5,
			total_absence_without_reason_count = e.total_absence_without_reason_count + $6
		FROM monthly_reports m
		WHERE m.id = e.monthly_report_id
		  AND m.month = $7
		  AND e.user_id = $8
	`

	commandTag, err := q.Exec(ctx, query,
		delta.TotalWorkHours, delta.TotalCheckInCount, delta.TotalNotCompletedCount,
		delta.TotalAbsenceWithReasonCount, delta.TotalCanceledCount,
		delta.TotalAbsenceWithoutReasonCount,
		month, delta.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to increment monthly report entry: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return report.ErrMonthlyReportNotFound
	}

	_, err = q.Exec(ctx, `UPDATE monthly_reports SET updated_at = NOW() WHERE month = $1`, month)
	if err != nil {
		return fmt.Errorf("failed to touch monthly report: %w", err)
	}

	return nil
}

// AppendEntry implements report.MonthlyReportRepository.
func (r *monthlyReportRepository) AppendEntry(ctx context.Context, month string, entry report.MonthlyEntry) error {
	q := GetQuerier(ctx, r.db)

	var reportID string
	err := q.QueryRow(ctx, `SELECT id FROM monthly_reports WHERE month = $1`, month).Scan(&reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.ErrMonthlyReportNotFound
		}
		return fmt.Errorf("failed to find monthly report: %w", err)
	}

	return r.insertEntry(ctx, reportID, entry)
}

// RemoveUserEntries implements report.MonthlyReportRepository.
func (r *monthlyReportRepository) RemoveUserEntries(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM monthly_report_entries WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to remove user monthly report entries: %w", err)
	}

	return nil
}
