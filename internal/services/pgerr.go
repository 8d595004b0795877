package services

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	appErr "github.com/ona-ui/catalog/pkg/errors"
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// mapWriteError translates driver-level constraint violations into domain
// errors so storage error shapes never leak past the service layer. Other
// errors pass through unchanged.
func mapWriteError(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return appErr.Wrap(err, appErr.CodeConflict, conflictMsg)
		case pgFKViolation:
			return appErr.Wrap(err, appErr.CodeConflict, "referenced entity does not exist")
		}
	}
	return err
}
