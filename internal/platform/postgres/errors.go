package postgres

import (
	"errors"
	"fmt"

	"bookreview/internal/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode       = "23505"
	foreignKeyViolationCode   = "23503"
	checkViolationCode        = "23514"
	invalidTextRepresentation = "22P02"
)

// MapError translates driver errors into apperror sentinels. The original
// error is kept in the message for logs only.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", apperror.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Errorf("%w: unique violation (%s): %v", apperror.ErrConflict, pgErr.ConstraintName, err)
		case foreignKeyViolationCode:
			return fmt.Errorf("%w: foreign key violation (%s): %v", apperror.ErrNotFound, pgErr.ConstraintName, err)
		case invalidTextRepresentation:
			// malformed uuid literal
			return fmt.Errorf("%w: %v", apperror.ErrNotFound, err)
		case checkViolationCode:
			return fmt.Errorf("%w: check violation (%s): %v", apperror.ErrInvalidInput, pgErr.ConstraintName, err)
		}
	}

	return err
}

// ViolatedConstraint returns the constraint named by a driver error, or "".
func ViolatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}
