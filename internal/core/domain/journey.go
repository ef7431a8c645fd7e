package domain

import "time"

// JourneyStatus is the state field of the member journey state machine.
type JourneyStatus string

const (
	JourneyCheckedIn JourneyStatus = "checked_in"
	JourneyComplete  JourneyStatus = "complete"
)

func (s JourneyStatus) Valid() bool {
	return s == JourneyCheckedIn || s == JourneyComplete
}

// Claim status labels shown to staff.
const (
	ClaimLabelNotClaimed    = "Not Claimed"
	ClaimLabelClaimed       = "Claimed"
	ClaimLabelWithoutStub   = "Claimed without Stub"
	ClaimLabelIncorrectStub = "Claimed with Incorrect Stub"
	ClaimLabelDifferentStub = "Claimed with Different Stub"
)

// Journey is one member's check-in through check-out lifecycle for an operating day.
type Journey struct {
	JourneyID                string        `json:"journey_id"`     // Primary Key (UUID)
	MemberID                 string        `json:"member_id"`      // FK to members
	ControlNumber            string        `json:"control_number"` // Globally unique
	CheckInDate              string        `json:"check_in_date"`  // Operating day, YYYY-MM-DD
	CheckInTime              time.Time     `json:"check_in_time"`
	CheckInTerminal          string        `json:"check_in_terminal"`
	MealStubIssued           bool          `json:"meal_stub_issued"`
	TransportationStubIssued bool          `json:"transportation_stub_issued"`
	CheckOutTime             *time.Time    `json:"check_out_time"`
	CheckOutTerminal         *string       `json:"check_out_terminal"`
	Claimed                  bool          `json:"claimed"`
	LostStub                 bool          `json:"lost_stub"`
	IncorrectStub            bool          `json:"incorrect_stub"`
	DifferentStubNumber      bool          `json:"different_stub_number"`
	DifferentStubValue       *string       `json:"different_stub_value"`
	ManualFormSigned         bool          `json:"manual_form_signed"`
	OverrideReason           *string       `json:"override_reason"`
	StaffID                  *string       `json:"staff_id"` // Staff who performed check-out
	Status                   JourneyStatus `json:"status"`
	Timestamps
}

// IsComplete reports whether the journey has been checked out.
func (j Journey) IsComplete() bool {
	return j.Status == JourneyComplete
}

// ClaimLabel derives the display label from the claim flags.
// Precedence: lost stub, incorrect stub, different stub, plain claim.
func (j Journey) ClaimLabel() string {
	return ClaimLabel(j.Status, j.LostStub, j.IncorrectStub, j.DifferentStubNumber)
}

// ClaimLabel is the pure label function behind Journey.ClaimLabel.
func ClaimLabel(status JourneyStatus, lostStub, incorrectStub, differentStub bool) string {
	if status != JourneyComplete {
		return ClaimLabelNotClaimed
	}
	switch {
	case lostStub:
		return ClaimLabelWithoutStub
	case incorrectStub:
		return ClaimLabelIncorrectStub
	case differentStub:
		return ClaimLabelDifferentStub
	}
	return ClaimLabelClaimed
}

// CheckInRequest carries the inputs of a check-in.
type CheckInRequest struct {
	MemberID           string
	ControlNumber      string
	TerminalID         string
	StaffID            string // Recorded in the audit entry only
	MealStub           bool
	TransportationStub bool
}

// CheckOutRequest carries the inputs of a check-out.
type CheckOutRequest struct {
	ControlNumber  string
	TerminalID     string
	StaffID        string
	Outcome        CheckoutOutcome
	OverrideReason string // Optional; takes precedence over the outcome's default
}

// JourneyCheckout is the set of fields written atomically when a journey completes.
type JourneyCheckout struct {
	CheckOutTime     time.Time
	CheckOutTerminal string
	StaffID          string
	CheckoutResolution
}

// JourneyDetail is a journey joined with the owning member's summary.
type JourneyDetail struct {
	Journey
	CooperativeID string     `json:"cooperative_id"`
	FirstName     string     `json:"first_name"`
	MiddleInitial *string    `json:"middle_initial,omitempty"`
	LastName      string     `json:"last_name"`
	MemberType    MemberType `json:"member_type"`
}

// JourneyFilter narrows a journey listing. Date is an operating day (YYYY-MM-DD).
type JourneyFilter struct {
	Status JourneyStatus
	Date   string
	Page
}

// JourneyResetTarget identifies journeys removed by an administrative reset.
// Exactly one of the fields is set.
type JourneyResetTarget struct {
	ControlNumber string
	MemberID      string
}
