package domain

import (
	"fmt"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
)

// OutcomeKind names a check-out outcome variant.
type OutcomeKind string

const (
	OutcomeNormal        OutcomeKind = "normal"
	OutcomeLostStub      OutcomeKind = "lost_stub"
	OutcomeIncorrectStub OutcomeKind = "incorrect_stub"
	OutcomeDifferentStub OutcomeKind = "different_stub"
)

// CheckoutOutcome is the closed set of ways a check-out can be reconciled.
// Implementations: NormalOutcome, LostStubOutcome, IncorrectStubOutcome, DifferentStubOutcome.
type CheckoutOutcome interface {
	Kind() OutcomeKind
	isCheckoutOutcome()
}

// NormalOutcome is a claim with the issued stub presented.
type NormalOutcome struct{}

// LostStubOutcome is a claim where the member no longer has the stub.
type LostStubOutcome struct{}

// IncorrectStubOutcome is a claim where the presented stub does not match the record.
type IncorrectStubOutcome struct{}

// DifferentStubOutcome is a claim made with a stub carrying another number.
type DifferentStubOutcome struct {
	Value string
}

func (NormalOutcome) Kind() OutcomeKind        { return OutcomeNormal }
func (LostStubOutcome) Kind() OutcomeKind      { return OutcomeLostStub }
func (IncorrectStubOutcome) Kind() OutcomeKind { return OutcomeIncorrectStub }
func (DifferentStubOutcome) Kind() OutcomeKind { return OutcomeDifferentStub }

func (NormalOutcome) isCheckoutOutcome()        {}
func (LostStubOutcome) isCheckoutOutcome()      {}
func (IncorrectStubOutcome) isCheckoutOutcome() {}
func (DifferentStubOutcome) isCheckoutOutcome() {}

// Default override reasons recorded for anomalous claims.
const (
	DefaultLostStubReason      = "Lost stub - manual form signed"
	DefaultIncorrectStubReason = "Incorrect stub - manual override"
)

// DefaultDifferentStubReason is the reason recorded for a claim made with another stub number.
func DefaultDifferentStubReason(value string) string {
	return fmt.Sprintf("Different stub number: %s - manual form signed", value)
}

// CheckoutResolution is the flattened flag set persisted on a completed journey.
type CheckoutResolution struct {
	Claimed             bool
	LostStub            bool
	IncorrectStub       bool
	DifferentStubNumber bool
	DifferentStubValue  *string
	ManualFormSigned    bool
	OverrideReason      *string
}

// ResolveCheckout derives the persisted flags for an outcome. Every anomaly
// forces a signed manual form and records a reason; an explicit override
// reason always replaces the default.
func ResolveCheckout(outcome CheckoutOutcome, overrideReason string) CheckoutResolution {
	res := CheckoutResolution{Claimed: true}
	var reason string

	switch o := outcome.(type) {
	case LostStubOutcome:
		res.LostStub = true
		res.ManualFormSigned = true
		reason = DefaultLostStubReason
	case IncorrectStubOutcome:
		res.IncorrectStub = true
		res.ManualFormSigned = true
		reason = DefaultIncorrectStubReason
	case DifferentStubOutcome:
		value := o.Value
		res.DifferentStubNumber = true
		res.DifferentStubValue = &value
		res.ManualFormSigned = true
		reason = DefaultDifferentStubReason(value)
	}

	if trimmed := strings.TrimSpace(overrideReason); trimmed != "" {
		reason = trimmed
	}
	if reason != "" {
		res.OverrideReason = &reason
	}
	return res
}

// ParseCheckoutOutcome builds an outcome from its wire form. At most one
// anomaly may be requested and a different stub needs a value.
func ParseCheckoutOutcome(lostStub, incorrectStub, differentStub bool, differentStubValue string) (CheckoutOutcome, error) {
	set := 0
	for _, flag := range []bool{lostStub, incorrectStub, differentStub} {
		if flag {
			set++
		}
	}
	if set > 1 {
		return nil, fmt.Errorf("%w: at most one stub anomaly may be set", apperrors.ErrValidation)
	}

	switch {
	case lostStub:
		return LostStubOutcome{}, nil
	case incorrectStub:
		return IncorrectStubOutcome{}, nil
	case differentStub:
		value := strings.TrimSpace(differentStubValue)
		if value == "" {
			return nil, fmt.Errorf("%w: different stub value is required when different stub number is set", apperrors.ErrValidation)
		}
		return DifferentStubOutcome{Value: value}, nil
	}
	return NormalOutcome{}, nil
}
