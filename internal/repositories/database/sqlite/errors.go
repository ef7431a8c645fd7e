package sqlite

import (
	"errors"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Column lists SQLite reports for the member_journey unique constraints.
const (
	uniqueControlNumber = "member_journey.control_number"
	uniqueMemberDay     = "member_journey.member_id, member_journey.check_in_date"
)

// translateError maps constraint violations to the sentinels services understand.
// Other errors are returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		message := err.Error()
		switch {
		case strings.Contains(message, uniqueControlNumber):
			return apperrors.ErrDuplicateControlNumber
		case strings.Contains(message, uniqueMemberDay):
			return apperrors.ErrDuplicateMemberDay
		}
		return apperrors.ErrDuplicate
	case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
		return apperrors.ErrConflict
	}
	return err
}
