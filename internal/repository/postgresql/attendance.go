package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/attendance"
	"github.com/daftar-hr/attendance-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const recordColumns = `
	id, user_id, date, check_in, check_out,
	check_in_latitude, check_in_longitude,
	check_out_latitude, check_out_longitude,
	absent_latitude, absent_longitude,
	is_absent, absent_reason, absent_time, work_meeting, will_be_late,
	created_at, updated_at`

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	var ciLat, ciLng, coLat, coLng, abLat, abLng *float64

	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.CheckIn, &rec.CheckOut,
		&ciLat, &ciLng, &coLat, &coLng, &abLat, &abLng,
		&rec.IsAbsent, &rec.AbsentReason, &rec.AbsentTime, &rec.WorkMeeting, &rec.WillBeLate,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.Record{}, err
	}

	rec.CheckInLocation = locationFrom(ciLat, ciLng)
	rec.CheckOutLocation = locationFrom(coLat, coLng)
	rec.AbsentLocation = locationFrom(abLat, abLng)
	return rec, nil
}

func locationFrom(lat, lng *float64) *attendance.Location {
	if lat == nil || lng == nil {
		return nil
	}
	return &attendance.Location{Latitude: *lat, Longitude: *lng}
}

func locationCols(loc *attendance.Location) (lat, lng *float64) {
	if loc == nil {
		return nil, nil
	}
	return &loc.Latitude, &loc.Longitude
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	ciLat, ciLng := locationCols(rec.CheckInLocation)
	coLat, coLng := locationCols(rec.CheckOutLocation)
	abLat, abLng := locationCols(rec.AbsentLocation)

	rec.ID = uuid.NewString()
	query := `
		INSERT INTO attendance_records (
			id, user_id, date, check_in, check_out,
			check_in_latitude, check_in_longitude,
			check_out_latitude, check_out_longitude,
			absent_latitude, absent_longitude,
			is_absent, absent_reason, absent_time, work_meeting, will_be_late
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rec.ID, rec.UserID, rec.Date, rec.CheckIn, rec.CheckOut,
		ciLat, ciLng, coLat, coLng, abLat, abLng,
		rec.IsAbsent, rec.AbsentReason, rec.AbsentTime, rec.WorkMeeting, rec.WillBeLate,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return rec, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE user_id = $1
		  AND date = $2
		LIMIT 1
	`

	rec, err := scanRecord(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no attendance action for the date
		}
		return nil, fmt.Errorf("failed to get attendance record by user and date: %w", err)
	}

	return &rec, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE date = $1
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// Update implements attendance.AttendanceRepository. The whole record
// is written back; the service layer owns the transition rules and
// sends the already-validated state.
func (r *attendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	q := GetQuerier(ctx, r.db)

	ciLat, ciLng := locationCols(rec.CheckInLocation)
	coLat, coLng := locationCols(rec.CheckOutLocation)
	abLat, abLng := locationCols(rec.AbsentLocation)

	query := `
		UPDATE attendance_records SET
			check_in = $1, check_out = $2,
			check_in_latitude = $3, check_in_longitude = $4,
			check_out_latitude = $5, check_out_longitude = $6,
			absent_latitude = $7, absent_longitude = $8,
			is_absent = $9, absent_reason = $10, absent_time = $11,
			work_meeting = $12, will_be_late = $13,
			updated_at = $14
		WHERE id = $15
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		rec.CheckIn, rec.CheckOut,
		ciLat, ciLng, coLat, coLng, abLat, abLng,
		rec.IsAbsent, rec.AbsentReason, rec.AbsentTime,
		rec.WorkMeeting, rec.WillBeLate,
		time.Now(), rec.ID,
	).Scan(&updatedID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrRecordNotFound
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}

	return nil
}
