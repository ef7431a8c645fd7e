package domain

import (
	"fmt"

	"github.com/g2ix/basic-registration/internal/apperrors"
)

// JourneyError is returned by the journey engine when a precondition or
// uniqueness rule rejects an operation. It carries the record the caller
// needs to explain the rejection.
type JourneyError struct {
	Reason      apperrors.Reason
	Class       error       // one of apperrors.ErrNotFound, ErrConflict, ErrPreconditionFailed
	Journey     *Journey    // conflicting journey, when there is one
	Eligibility Eligibility // member eligibility for NOT_ELIGIBLE
	Message     string
}

func (e *JourneyError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Class)
}

func (e *JourneyError) Unwrap() error {
	return e.Class
}

// Is matches another JourneyError with the same reason, so the package
// level values below can be used as errors.Is targets.
func (e *JourneyError) Is(target error) bool {
	t, ok := target.(*JourneyError)
	if !ok {
		return false
	}
	return t.Reason == e.Reason
}

// Targets for errors.Is.
var (
	ErrMemberNotFound      = &JourneyError{Reason: apperrors.ReasonMemberNotFound, Class: apperrors.ErrNotFound}
	ErrJourneyNotFound     = &JourneyError{Reason: apperrors.ReasonJourneyNotFound, Class: apperrors.ErrNotFound}
	ErrNotEligible         = &JourneyError{Reason: apperrors.ReasonNotEligible, Class: apperrors.ErrPreconditionFailed}
	ErrAlreadyCheckedIn    = &JourneyError{Reason: apperrors.ReasonAlreadyCheckedIn, Class: apperrors.ErrConflict}
	ErrAlreadyComplete     = &JourneyError{Reason: apperrors.ReasonAlreadyComplete, Class: apperrors.ErrConflict}
	ErrControlNumberExists = &JourneyError{Reason: apperrors.ReasonControlNumberExists, Class: apperrors.ErrConflict}
	ErrCheckoutDisabled    = &JourneyError{Reason: apperrors.ReasonCheckoutDisabled, Class: apperrors.ErrPreconditionFailed}
	ErrNotComplete         = &JourneyError{Reason: apperrors.ReasonNotComplete, Class: apperrors.ErrConflict}
	ErrMemberHasJourneys   = &JourneyError{Reason: apperrors.ReasonMemberHasJourneys, Class: apperrors.ErrConflict}
)

// NewMemberNotFoundError reports an unknown member id.
func NewMemberNotFoundError(memberID string) *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonMemberNotFound,
		Class:   apperrors.ErrNotFound,
		Message: fmt.Sprintf("member %s not found", memberID),
	}
}

// NewJourneyNotFoundError reports a missing journey for the given lookup key.
func NewJourneyNotFoundError(key string) *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonJourneyNotFound,
		Class:   apperrors.ErrNotFound,
		Message: fmt.Sprintf("no journey found for %s", key),
	}
}

// NewNotEligibleError reports a member whose eligibility forbids check-in.
func NewNotEligibleError(member Member) *JourneyError {
	return &JourneyError{
		Reason:      apperrors.ReasonNotEligible,
		Class:       apperrors.ErrPreconditionFailed,
		Eligibility: member.Eligibility,
		Message:     fmt.Sprintf("member %s is not eligible to attend (eligibility: %s)", member.CooperativeID, member.Eligibility),
	}
}

// NewExistingJourneyError reports a same-day journey; the reason follows its status.
func NewExistingJourneyError(existing Journey) *JourneyError {
	if existing.IsComplete() {
		return &JourneyError{
			Reason:  apperrors.ReasonAlreadyComplete,
			Class:   apperrors.ErrConflict,
			Journey: &existing,
			Message: fmt.Sprintf("member already completed the journey today (control number %s)", existing.ControlNumber),
		}
	}
	return &JourneyError{
		Reason:  apperrors.ReasonAlreadyCheckedIn,
		Class:   apperrors.ErrConflict,
		Journey: &existing,
		Message: fmt.Sprintf("member already checked in today (control number %s)", existing.ControlNumber),
	}
}

// NewControlNumberExistsError reports a control number already bound to a journey.
func NewControlNumberExistsError(controlNumber string, existing *Journey) *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonControlNumberExists,
		Class:   apperrors.ErrConflict,
		Journey: existing,
		Message: fmt.Sprintf("control number %s has already been used", controlNumber),
	}
}

// NewAlreadyCompleteError reports a second check-out of the same control number.
func NewAlreadyCompleteError(existing Journey) *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonAlreadyComplete,
		Class:   apperrors.ErrConflict,
		Journey: &existing,
		Message: fmt.Sprintf("control number %s has already been checked out", existing.ControlNumber),
	}
}

// NewCheckoutDisabledError reports that the checkout kill switch is off.
func NewCheckoutDisabledError() *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonCheckoutDisabled,
		Class:   apperrors.ErrPreconditionFailed,
		Message: "checkout is currently disabled",
	}
}

// NewNotCompleteError reports an attempt to reopen a journey that was never checked out.
func NewNotCompleteError(existing Journey) *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonNotComplete,
		Class:   apperrors.ErrConflict,
		Journey: &existing,
		Message: fmt.Sprintf("control number %s has not been checked out", existing.ControlNumber),
	}
}

// NewMemberHasJourneysError reports a member delete blocked by existing journeys.
func NewMemberHasJourneysError(memberID string, count int) *JourneyError {
	return &JourneyError{
		Reason:  apperrors.ReasonMemberHasJourneys,
		Class:   apperrors.ErrConflict,
		Message: fmt.Sprintf("member %s has %d journey record(s) and cannot be deleted", memberID, count),
	}
}
