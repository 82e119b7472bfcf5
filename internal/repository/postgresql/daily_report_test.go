package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daftar-hr/attendance-backend-go/internal/domain/report"
)

type errRow struct {
	err error
}

func (r errRow) Scan(_ ...interface{}) error { return r.err }

// stubTx rides the transaction context slot so GetQuerier hands the
// repository a querier whose row scans fail on demand.
type stubTx struct {
	pgx.Tx
	rowErr error
}

func (s stubTx) QueryRow(_ context.Context, _ string, _ ...interface{}) pgx.Row {
	return errRow{err: s.rowErr}
}

func TestDailyReportGetByDateErrorMapping(t *testing.T) {
	repo := NewDailyReportRepository(nil)
	date := time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC)

	t.Run("no rows maps to not found", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), txKey{}, stubTx{rowErr: pgx.ErrNoRows})

		_, _, err := repo.GetByDate(ctx, date, 1, 10)
		assert.ErrorIs(t, err, report.ErrDailyReportNotFound)
	})

	t.Run("other errors are not disguised as not found", func(t *testing.T) {
		cause := errors.New("connection reset")
		ctx := context.WithValue(context.Background(), txKey{}, stubTx{rowErr: cause})

		_, _, err := repo.GetByDate(ctx, date, 1, 10)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, report.ErrDailyReportNotFound)
	})
}
