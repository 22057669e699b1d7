package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"tenniscourt/internal/domain"
)

// ErrConflict means another writer stored a row with the same key first.
var ErrConflict = errors.New("conflicting write")

const (
	pgUniqueViolation     = "23505"
	pgExclusionViolation  = "23P01"
	pgForeignKeyViolation = "23503"
)

// translate maps driver errors onto the domain and repository sentinels.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wrap(domain.ErrNotFound, what)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgExclusionViolation:
			return wrap(conflictFor(pgErr.ConstraintName), what)
		case pgForeignKeyViolation:
			return wrap(domain.ErrNotFound, what)
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return wrap(conflictFor(msg), what)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return wrap(domain.ErrNotFound, what)
	}
	return err
}

func conflictFor(constraint string) error {
	if strings.Contains(constraint, "courts.number") || strings.Contains(constraint, "idx_courts_number") {
		return domain.ErrDuplicateCourt
	}
	return ErrConflict
}

func wrap(sentinel error, what string) error {
	return fmt.Errorf("%s: %w", what, sentinel)
}
