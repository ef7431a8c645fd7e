package pgsql

import (
	"errors"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// Constraint names declared by the migrations.
const (
	constraintControlNumber = "uq_member_journey_control_number"
	constraintMemberDay     = "uq_member_journey_member_day"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError maps constraint violations to the sentinels services understand.
// Other errors are returned unchanged.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintControlNumber:
			return apperrors.ErrDuplicateControlNumber
		case constraintMemberDay:
			return apperrors.ErrDuplicateMemberDay
		}
		return apperrors.ErrDuplicate
	case pgForeignKeyViolation:
		return apperrors.ErrConflict
	}
	return err
}
