package models

import (
	"database/sql"
	"time"
)

// Member is a row of the members table.
type Member struct {
	MemberID      string         `db:"member_id"`      // Primary Key (UUID)
	CooperativeID string         `db:"cooperative_id"` // Unique
	FirstName     string         `db:"first_name"`
	MiddleInitial sql.NullString `db:"middle_initial"`
	LastName      string         `db:"last_name"`
	WorkEmail     sql.NullString `db:"work_email"`
	PersonalEmail sql.NullString `db:"personal_email"`
	MemberType    string         `db:"member_type"` // Regular | Associate
	Status        string         `db:"status"`      // active | dormant
	Eligibility   string         `db:"eligibility"` // eligible | not_eligible
	RegisteredAt  time.Time      `db:"registered_at"`
	RowTimestamps
}
