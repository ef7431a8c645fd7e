package dto

import (
	"strings"
	"time"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// CheckInRequest defines the body of a check-in.
type CheckInRequest struct {
	MemberID                 string `json:"member_id" binding:"required"`
	ControlNumber            string `json:"control_number" binding:"required,controlnumber"`
	MealStubIssued           bool   `json:"meal_stub_issued"`
	TransportationStubIssued bool   `json:"transportation_stub_issued"`
}

// ToDomain builds the engine request for the authenticated terminal.
func (r CheckInRequest) ToDomain(actor domain.Actor) domain.CheckInRequest {
	return domain.CheckInRequest{
		MemberID:           strings.TrimSpace(r.MemberID),
		ControlNumber:      strings.TrimSpace(r.ControlNumber),
		TerminalID:         actor.TerminalID,
		StaffID:            actor.StaffID,
		MealStub:           r.MealStubIssued,
		TransportationStub: r.TransportationStubIssued,
	}
}

// CheckOutRequest defines the body of a check-out. At most one anomaly flag may be set.
type CheckOutRequest struct {
	ControlNumber       string `json:"control_number" binding:"required,controlnumber"`
	LostStub            bool   `json:"lost_stub"`
	IncorrectStub       bool   `json:"incorrect_stub"`
	DifferentStubNumber bool   `json:"different_stub_number"`
	DifferentStubValue  string `json:"different_stub_value" binding:"omitempty,max=64"`
	OverrideReason      string `json:"override_reason" binding:"omitempty,max=500"`
}

// ToDomain parses the outcome flags and builds the engine request.
func (r CheckOutRequest) ToDomain(actor domain.Actor) (domain.CheckOutRequest, error) {
	outcome, err := domain.ParseCheckoutOutcome(r.LostStub, r.IncorrectStub, r.DifferentStubNumber, r.DifferentStubValue)
	if err != nil {
		return domain.CheckOutRequest{}, err
	}
	return domain.CheckOutRequest{
		ControlNumber:  strings.TrimSpace(r.ControlNumber),
		TerminalID:     actor.TerminalID,
		StaffID:        actor.StaffID,
		Outcome:        outcome,
		OverrideReason: r.OverrideReason,
	}, nil
}

// JourneyResponse is a journey plus its derived claim label.
type JourneyResponse struct {
	domain.Journey
	ClaimStatus string `json:"claim_status"`
}

// ToJourneyResponse converts a domain.Journey to JourneyResponse DTO
func ToJourneyResponse(j *domain.Journey) JourneyResponse {
	return JourneyResponse{Journey: *j, ClaimStatus: j.ClaimLabel()}
}

// JourneyDetailResponse is a listed journey with member details and claim label.
type JourneyDetailResponse struct {
	domain.JourneyDetail
	MemberName  string `json:"member_name"`
	ClaimStatus string `json:"claim_status"`
}

// ListJourneysParams defines the query parameters for listing journeys.
type ListJourneysParams struct {
	Status string `form:"status" binding:"omitempty,oneof=checked_in complete"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the query parameters to a journey filter.
func (p ListJourneysParams) ToFilter() domain.JourneyFilter {
	return domain.JourneyFilter{
		Status: domain.JourneyStatus(p.Status),
		Date:   p.Date,
		Page:   domain.Page{Limit: p.Limit, Offset: p.Offset},
	}
}

// ListJourneysResponse defines the data returned when listing journeys.
type ListJourneysResponse struct {
	Journeys []JourneyDetailResponse `json:"journeys"`
	Date     string                  `json:"date"`
	Limit    int                     `json:"limit"`
	Offset   int                     `json:"offset"`
}

// ToListJourneysResponse converts journey details to the list response DTO
func ToListJourneysResponse(details []domain.JourneyDetail, filter domain.JourneyFilter) ListJourneysResponse {
	res := make([]JourneyDetailResponse, len(details))
	for i, d := range details {
		member := domain.Member{FirstName: d.FirstName, MiddleInitial: d.MiddleInitial, LastName: d.LastName}
		res[i] = JourneyDetailResponse{
			JourneyDetail: d,
			MemberName:    member.FullName(),
			ClaimStatus:   d.ClaimLabel(),
		}
	}
	return ListJourneysResponse{Journeys: res, Date: filter.Date, Limit: filter.Limit, Offset: filter.Offset}
}

// ResetJourneyRequest selects the journeys removed by an administrative reset.
type ResetJourneyRequest struct {
	ControlNumber string `json:"controlNumber" binding:"required_without=MemberID,excluded_with=MemberID"`
	MemberID      string `json:"memberId" binding:"required_without=ControlNumber"`
}

// ResetAllJourneysRequest must carry an explicit confirmation.
type ResetAllJourneysRequest struct {
	ConfirmReset bool `json:"confirmReset"`
}

// ToTarget converts the request to a reset target.
func (r ResetJourneyRequest) ToTarget() domain.JourneyResetTarget {
	return domain.JourneyResetTarget{
		ControlNumber: strings.TrimSpace(r.ControlNumber),
		MemberID:      strings.TrimSpace(r.MemberID),
	}
}

// ReopenJourneyRequest identifies the completed journey to reopen.
type ReopenJourneyRequest struct {
	ControlNumber string `json:"control_number" binding:"required,controlnumber"`
}

// ResetResponse reports how many journeys an administrative reset removed.
type ResetResponse struct {
	Deleted int       `json:"deleted"`
	At      time.Time `json:"at"`
}

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error       string           `json:"error"`
	Code        string           `json:"code,omitempty"`
	Journey     *JourneyResponse `json:"journey,omitempty"`
	Eligibility string           `json:"eligibility,omitempty"`
}
