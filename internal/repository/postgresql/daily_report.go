package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type dailyReportRepository struct {
	db *database.DB
}

func NewDailyReportRepository(db *database.DB) report.DailyReportRepository {
	return &dailyReportRepository{db: db}
}

// ExistsByDate implements report.DailyReportRepository.
func (r *dailyReportRepository) ExistsByDate(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM daily_reports WHERE date = $1)`, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check daily report existence: %w", err)
	}

	return exists, nil
}

// Create implements report.DailyReportRepository. Caller wraps this in
// WithTransaction so the header and entries land atomically.
func (r *dailyReportRepository) Create(ctx context.Context, rep report.DailyReport) (report.DailyReport, error) {
	q := GetQuerier(ctx, r.db)

	rep.ID = uuid.NewString()
	err := q.QueryRow(ctx, `
		INSERT INTO daily_reports (id, date) VALUES ($1, $2)
		RETURNING created_at
	`, rep.ID, rep.Date).Scan(&rep.CreatedAt)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to create daily report: %w", err)
	}

	entryQuery := `
		INSERT INTO daily_report_entries (
			daily_report_id, user_id, unique_number, username, company_branch,
			status, check_in_time, check_out_time,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			absent_reason, absent_time, work_hours,
			check_in, absence_with_reason, day_not_completed,
			absence_without_reason, total_canceled_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	for _, e := range rep.Entries {
		ciLat, ciLng := locationCols(e.CheckInLocation)
		coLat, coLng := locationCols(e.CheckOutLocation)

		_, err := q.Exec(ctx, entryQuery,
			rep.ID, e.UserID, e.UniqueNumber, e.Username, e.CompanyBranch,
			string(e.Status), e.CheckInTime, e.CheckOutTime,
			ciLat, ciLng, coLat, coLng,
			e.AbsentReason, e.AbsentTime, e.WorkHours,
			e.CheckIn, e.AbsenceWithReason, e.DayNotCompleted,
			e.AbsenceWithoutReason, e.Canceled,
		)
		if err != nil {
			return report.DailyReport{}, fmt.Errorf("failed to insert daily report entry: %w", err)
		}
	}

	return rep, nil
}

// GetByDate implements report.DailyReportRepository.
func (r *dailyReportRepository) GetByDate(ctx context.Context, date time.Time, page, limit int) (report.DailyReport, int64, error) {
	q := GetQuerier(ctx, r.db)

	var rep report.DailyReport
	err := q.QueryRow(ctx, `
		SELECT id, date, created_at FROM daily_reports WHERE date = $1
	`, date).Scan(&rep.ID, &rep.Date, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.DailyReport{}, 0, report.ErrDailyReportNotFound
		}
		return report.DailyReport{}, 0, fmt.Errorf("failed to get daily report: %w", err)
	}

	var total int64
	err = q.QueryRow(ctx, `
		SELECT COUNT(*) FROM daily_report_entries WHERE daily_report_id = $1
	`, rep.ID).Scan(&total)
	if err != nil {
		return report.DailyReport{}, 0, fmt.Errorf("failed to count daily report entries: %w", err)
	}

	if limit == 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	rows, err := q.Query(ctx, `
		SELECT
			user_id, unique_number, username, company_branch,
			status, check_in_time, check_out_time,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			absent_reason, absent_time, work_hours,
			check_in, absence_with_reason, day_not_completed,
			absence_without_reason, total_canceled_count
		FROM daily_report_entries
		WHERE daily_report_id = $1
		ORDER BY unique_number
		LIMIT $2 OFFSET $3
	`, rep.ID, limit, offset)
	if err != nil {
		return report.DailyReport{}, 0, fmt.Errorf("failed to query daily report entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e report.DailyEntry
		var status string
		var ciLat, ciLng, coLat, coLng *float64

		err := rows.Scan(
			&e.UserID, &e.UniqueNumber, &e.Username, &e.CompanyBranch,
			&status, &e.CheckInTime, &e.CheckOutTime,
			&ciLat, &ciLng, &coLat, &coLng,
			&e.AbsentReason, &e.AbsentTime, &e.WorkHours,
			&e.CheckIn, &e.AbsenceWithReason, &e.DayNotCompleted,
			&e.AbsenceWithoutReason, &e.Canceled,
		)
		if err != nil {
			return report.DailyReport{}, 0, fmt.Errorf("failed to scan daily report entry: %w", err)
		}

		e.Status = attendance.Status(status)
		e.CheckInLocation = locationFrom(ciLat, ciLng)
		e.CheckOutLocation = locationFrom(coLat, coLng)
		rep.Entries = append(rep.Entries, e)
	}

	return rep, total, nil
}

// ListDates implements report.DailyReportRepository.
func (r *dailyReportRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT date FROM daily_reports ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list report dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan report date: %w", err)
		}
		dates = append(dates, d)
	}

	return dates, nil
}

// RemoveUserEntries implements report.DailyReportRepository.
func (r *dailyReportRepository) RemoveUserEntries(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM daily_report_entries WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to remove user daily report entries: %w", err)
	}

	return nil
}
