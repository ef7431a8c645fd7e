package domain_test

import (
	"errors"
	"testing"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestResolveCheckout(t *testing.T) {
	tests := []struct {
		name       string
		outcome    domain.CheckoutOutcome
		override   string
		wantLost   bool
		wantWrong  bool
		wantDiff   bool
		wantManual bool
		wantReason *string
		wantLabel  string
	}{
		{
			name:      "normal claim",
			outcome:   domain.NormalOutcome{},
			wantLabel: domain.ClaimLabelClaimed,
		},
		{
			name:       "normal claim with explicit reason",
			outcome:    domain.NormalOutcome{},
			override:   "late release approved",
			wantReason: stringPtr("late release approved"),
			wantLabel:  domain.ClaimLabelClaimed,
		},
		{
			name:       "lost stub gets default reason",
			outcome:    domain.LostStubOutcome{},
			wantLost:   true,
			wantManual: true,
			wantReason: stringPtr("Lost stub - manual form signed"),
			wantLabel:  domain.ClaimLabelWithoutStub,
		},
		{
			name:       "incorrect stub gets default reason",
			outcome:    domain.IncorrectStubOutcome{},
			wantWrong:  true,
			wantManual: true,
			wantReason: stringPtr("Incorrect stub - manual override"),
			wantLabel:  domain.ClaimLabelIncorrectStub,
		},
		{
			name:       "different stub reason references value",
			outcome:    domain.DifferentStubOutcome{Value: "CN-777"},
			wantDiff:   true,
			wantManual: true,
			wantReason: stringPtr("Different stub number: CN-777 - manual form signed"),
			wantLabel:  domain.ClaimLabelDifferentStub,
		},
		{
			name:       "explicit reason beats default",
			outcome:    domain.LostStubOutcome{},
			override:   "  stub torn, verified by ID  ",
			wantLost:   true,
			wantManual: true,
			wantReason: stringPtr("stub torn, verified by ID"),
			wantLabel:  domain.ClaimLabelWithoutStub,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := domain.ResolveCheckout(tt.outcome, tt.override)

			assert.True(t, res.Claimed)
			assert.Equal(t, tt.wantLost, res.LostStub)
			assert.Equal(t, tt.wantWrong, res.IncorrectStub)
			assert.Equal(t, tt.wantDiff, res.DifferentStubNumber)
			assert.Equal(t, tt.wantManual, res.ManualFormSigned)
			assert.Equal(t, tt.wantReason, res.OverrideReason)
			assert.Equal(t, tt.wantLabel, domain.ClaimLabel(domain.JourneyComplete, res.LostStub, res.IncorrectStub, res.DifferentStubNumber))
		})
	}
}

func genOutcome() *rapid.Generator[domain.CheckoutOutcome] {
	return rapid.Custom(func(t *rapid.T) domain.CheckoutOutcome {
		switch rapid.IntRange(0, 3).Draw(t, "kind") {
		case 0:
			return domain.NormalOutcome{}
		case 1:
			return domain.LostStubOutcome{}
		case 2:
			return domain.IncorrectStubOutcome{}
		default:
			return domain.DifferentStubOutcome{Value: rapid.StringMatching(`[A-Z]{2}-[0-9]{1,5}`).Draw(t, "value")}
		}
	})
}

func TestResolveCheckout_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		outcome := genOutcome().Draw(t, "outcome")
		override := rapid.SampledFrom([]string{"", "   ", "supervisor approved"}).Draw(t, "override")

		res := domain.ResolveCheckout(outcome, override)

		anomalies := 0
		for _, f := range []bool{res.LostStub, res.IncorrectStub, res.DifferentStubNumber} {
			if f {
				anomalies++
			}
		}
		if anomalies > 1 {
			t.Fatalf("contradictory anomaly flags: %+v", res)
		}
		if (anomalies == 1) != res.ManualFormSigned {
			t.Fatalf("manual form flag %v does not follow anomalies %d", res.ManualFormSigned, anomalies)
		}
		if anomalies == 1 && res.OverrideReason == nil {
			t.Fatalf("anomalous outcome %s without reason", outcome.Kind())
		}
		if override == "supervisor approved" && (res.OverrideReason == nil || *res.OverrideReason != override) {
			t.Fatalf("explicit reason was not kept: %v", res.OverrideReason)
		}
		if res.DifferentStubNumber != (res.DifferentStubValue != nil) {
			t.Fatalf("different stub value present=%v with flag=%v", res.DifferentStubValue != nil, res.DifferentStubNumber)
		}
		if !res.Claimed {
			t.Fatalf("every checkout is a claim")
		}
	})
}

func TestClaimLabel_Precedence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lost := rapid.Bool().Draw(t, "lost")
		incorrect := rapid.Bool().Draw(t, "incorrect")
		different := rapid.Bool().Draw(t, "different")

		label := domain.ClaimLabel(domain.JourneyComplete, lost, incorrect, different)
		switch {
		case lost && label != domain.ClaimLabelWithoutStub:
			t.Fatalf("lost stub must win, got %q", label)
		case !lost && incorrect && label != domain.ClaimLabelIncorrectStub:
			t.Fatalf("incorrect stub must win over different stub, got %q", label)
		}

		if got := domain.ClaimLabel(domain.JourneyCheckedIn, lost, incorrect, different); got != domain.ClaimLabelNotClaimed {
			t.Fatalf("open journey labelled %q", got)
		}
	})
}

func TestParseCheckoutOutcome(t *testing.T) {
	outcome, err := domain.ParseCheckoutOutcome(false, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeNormal, outcome.Kind())

	outcome, err = domain.ParseCheckoutOutcome(true, false, false, "")
	require.NoError(t, err)
	assert.Equal(t, domain.LostStubOutcome{}, outcome)

	outcome, err = domain.ParseCheckoutOutcome(false, false, true, " 0042 ")
	require.NoError(t, err)
	assert.Equal(t, domain.DifferentStubOutcome{Value: "0042"}, outcome)

	_, err = domain.ParseCheckoutOutcome(true, true, false, "")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = domain.ParseCheckoutOutcome(false, false, true, "  ")
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestJourneyError_Matching(t *testing.T) {
	existing := domain.Journey{ControlNumber: "CN-1", Status: domain.JourneyCheckedIn}
	err := domain.NewExistingJourneyError(existing)

	assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NotErrorIs(t, err, domain.ErrAlreadyComplete)
	require.NotNil(t, err.Journey)
	assert.Equal(t, "CN-1", err.Journey.ControlNumber)

	existing.Status = domain.JourneyComplete
	assert.ErrorIs(t, domain.NewExistingJourneyError(existing), domain.ErrAlreadyComplete)

	notEligible := domain.NewNotEligibleError(domain.Member{CooperativeID: "C-9", Eligibility: domain.NotEligible})
	assert.ErrorIs(t, notEligible, apperrors.ErrPreconditionFailed)
	assert.Equal(t, domain.NotEligible, notEligible.Eligibility)
}

func TestAttendanceRate(t *testing.T) {
	assert.True(t, domain.AttendanceRate(0, 0).IsZero())
	assert.Equal(t, "33.33", domain.AttendanceRate(1, 3).StringFixed(2))
	assert.Equal(t, "100.00", domain.AttendanceRate(4, 4).StringFixed(2))
}

func stringPtr(s string) *string {
	return &s
}
