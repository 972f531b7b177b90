package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/GIVandez/plot-twister/internal/domain"
)

// ErrNotFound and ErrConflict are the domain sentinels, re-exported so
// callers that only import repository can match on them.
var (
	ErrNotFound = domain.ErrNotFound
	ErrConflict = domain.ErrConflict
)

// isUniqueViolation matches SQLite's UNIQUE constraint error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation matches SQLite's FOREIGN KEY constraint error text.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// writeErr wraps a failed write, mapping constraint failures onto the
// domain sentinels.
func writeErr(what string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%s: referenced row: %w", what, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}

// readErr wraps a failed single-row read, mapping sql.ErrNoRows onto
// ErrNotFound.
func readErr(entity string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", entity, err)
}

// expectRows turns an UPDATE/DELETE that touched fewer rows than expected
// into ErrNotFound.
func expectRows(res sql.Result, want int64, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", entity, err)
	}
	if n != want {
		return fmt.Errorf("%s: %d of %d rows matched: %w", entity, n, want, ErrNotFound)
	}
	return nil
}
