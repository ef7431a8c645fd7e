package repositories

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// JourneyReader defines read operations for member journeys
type JourneyReader interface {
	// FindJourneyByMemberAndDay retrieves the member's journey checked in on the operating day, whatever its status.
	FindJourneyByMemberAndDay(ctx context.Context, memberID, day string) (*domain.Journey, error)

	// FindJourneyByControlNumber retrieves the journey bound to a control number.
	FindJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error)

	// ListJourneys retrieves journeys with member details, newest check-in first.
	ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error)

	// CountJourneysByMember counts every journey of a member across all days.
	CountJourneysByMember(ctx context.Context, memberID string) (int, error)
}

// JourneyWriter defines write operations for member journeys
type JourneyWriter interface {
	// SaveJourney inserts a new journey. Unique violations are reported as
	// apperrors.ErrDuplicateControlNumber or apperrors.ErrDuplicateMemberDay.
	SaveJourney(ctx context.Context, journey domain.Journey) error

	// CompleteJourney moves a checked_in journey to complete, writing every
	// check-out field in one update. A journey that is no longer checked_in
	// is left untouched and apperrors.ErrConflict is returned.
	CompleteJourney(ctx context.Context, journeyID string, checkout domain.JourneyCheckout) (*domain.Journey, error)

	// ReopenJourney clears the check-out fields of a complete journey and sets it back to checked_in.
	ReopenJourney(ctx context.Context, journeyID string) (*domain.Journey, error)

	// DeleteJourneyByControlNumber removes the journey bound to a control number.
	DeleteJourneyByControlNumber(ctx context.Context, controlNumber string) (int, error)

	// DeleteJourneysByMember removes every journey of a member.
	DeleteJourneysByMember(ctx context.Context, memberID string) (int, error)

	// DeleteAllJourneys removes every journey and returns the number removed.
	DeleteAllJourneys(ctx context.Context) (int, error)
}

// JourneyRepositoryFacade combines all journey repository interfaces
type JourneyRepositoryFacade interface {
	JourneyReader
	JourneyWriter
}
