package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/easyorder/internal/domain"
)

func TestClassifyError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "foreign key", err: &pgconn.PgError{Code: "23503"}, want: domain.ErrForeignKeyViolation},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, want: domain.ErrUniqueViolation},
		{name: "connection exception class", err: &pgconn.PgError{Code: "08006"}, want: domain.ErrStoreUnavailable},
		{name: "admin shutdown", err: &pgconn.PgError{Code: "57P01"}, want: domain.ErrStoreUnavailable},
		{name: "cannot connect now", err: &pgconn.PgError{Code: "57P03"}, want: domain.ErrStoreUnavailable},
		{name: "bad conn", err: driver.ErrBadConn, want: domain.ErrStoreUnavailable},
		{name: "conn done", err: fmt.Errorf("query: %w", sql.ErrConnDone), want: domain.ErrStoreUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: domain.ErrStoreUnavailable},
		{name: "wrapped unique", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: domain.ErrUniqueViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			require.ErrorIs(t, got, tt.want)
			require.ErrorIs(t, got, tt.err, "original error must stay in the chain")
		})
	}
}

func TestClassifyError_PassThrough(t *testing.T) {
	t.Parallel()

	require.NoError(t, classifyError(nil))

	plain := errors.New("boom")
	require.Same(t, plain, classifyError(plain))

	check := &pgconn.PgError{Code: "23514"}
	got := classifyError(check)
	require.NotErrorIs(t, got, domain.ErrForeignKeyViolation)
	require.NotErrorIs(t, got, domain.ErrUniqueViolation)
	require.NotErrorIs(t, got, domain.ErrStoreUnavailable)

	once := classifyError(driver.ErrBadConn)
	require.Same(t, once, classifyError(once), "already classified errors are not wrapped twice")
}
