package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"stockroom/internal/core/apperror"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TranslateConstraintErr maps postgres constraint violations to the
// structured error taxonomy. Other errors are wrapped unchanged.
func TranslateConstraintErr(err error, entity, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(entity, pgErr.ConstraintName, pgErr.Detail).
				WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewConflict("record is referenced by other data").
				WithDetail("entity", entity).
				WithCause(err)
		}
	}
	return fmt.Errorf("%s %s: %w", op, entity, err)
}
