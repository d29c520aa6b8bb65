package repository_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/llmaniac/beacon/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		if got := repository.MapError(nil, errNotFound, errDuplicate); got != nil {
			t.Errorf("MapError(nil) = %v, want nil", got)
		}
	})

	t.Run("no rows maps to not found", func(t *testing.T) {
		got := repository.MapError(sql.ErrNoRows, errNotFound, errDuplicate)
		if !errors.Is(got, errNotFound) {
			t.Errorf("MapError(ErrNoRows) = %v, want %v", got, errNotFound)
		}
	})

	t.Run("unique violation maps to duplicate", func(t *testing.T) {
		got := repository.MapError(&pgconn.PgError{Code: "23505"}, errNotFound, errDuplicate)
		if !errors.Is(got, errDuplicate) {
			t.Errorf("MapError(PgError 23505) = %v, want %v", got, errDuplicate)
		}
	})

	t.Run("other pg errors pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		if got := repository.MapError(pgErr, errNotFound, errDuplicate); got != pgErr {
			t.Errorf("MapError(PgError 23503) = %v, want passthrough", got)
		}
	})

	t.Run("unrelated errors pass through", func(t *testing.T) {
		original := errors.New("connection reset")
		if got := repository.MapError(original, errNotFound, errDuplicate); got != original {
			t.Errorf("MapError(other) = %v, want passthrough", got)
		}
	})
}
