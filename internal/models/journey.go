package models

import (
	"database/sql"
	"time"
)

// Journey is a row of the member_journey table.
type Journey struct {
	JourneyID                string         `db:"journey_id"`     // Primary Key (UUID)
	MemberID                 string         `db:"member_id"`      // FK members.member_id
	ControlNumber            string         `db:"control_number"` // Unique
	CheckInDate              string         `db:"check_in_date"`  // YYYY-MM-DD, unique with member_id
	CheckInTime              time.Time      `db:"check_in_time"`
	CheckInTerminal          string         `db:"check_in_terminal"`
	MealStubIssued           bool           `db:"meal_stub_issued"`
	TransportationStubIssued bool           `db:"transportation_stub_issued"`
	CheckOutTime             sql.NullTime   `db:"check_out_time"`
	CheckOutTerminal         sql.NullString `db:"check_out_terminal"`
	Claimed                  bool           `db:"claimed"`
	LostStub                 bool           `db:"lost_stub"`
	IncorrectStub            bool           `db:"incorrect_stub"`
	DifferentStubNumber      bool           `db:"different_stub_number"`
	DifferentStubValue       sql.NullString `db:"different_stub_value"`
	ManualFormSigned         bool           `db:"manual_form_signed"`
	OverrideReason           sql.NullString `db:"override_reason"`
	StaffID                  sql.NullString `db:"staff_id"`
	Status                   string         `db:"status"` // checked_in | complete
	RowTimestamps
}

// JourneyDetail is a journey row joined with its member's summary columns.
type JourneyDetail struct {
	Journey
	CooperativeID string
	FirstName     string
	MiddleInitial sql.NullString
	LastName      string
	MemberType    string
}
