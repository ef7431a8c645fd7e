package services

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// JourneyReaderSvc defines read operations for member journeys
type JourneyReaderSvc interface {
	// GetJourneyByMember retrieves the member's journey for an operating day ("" means today).
	GetJourneyByMember(ctx context.Context, memberID string, day string) (*domain.Journey, error)

	// GetJourneyByControlNumber retrieves the journey bound to a control number.
	GetJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error)

	// ListJourneys retrieves journeys for a day (default today), newest first.
	ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error)
}

// JourneyWriterSvc defines the check-in/check-out state machine operations
type JourneyWriterSvc interface {
	// CheckIn opens a journey for an eligible member under a new control number.
	CheckIn(ctx context.Context, req domain.CheckInRequest) (*domain.Journey, error)

	// CheckOut completes the journey bound to a control number exactly once.
	CheckOut(ctx context.Context, req domain.CheckOutRequest) (*domain.Journey, error)
}

// JourneyAdminSvc defines administrative overrides, the only way to revert journey state
type JourneyAdminSvc interface {
	// ReopenJourney undoes a check-out, returning the journey to checked_in.
	ReopenJourney(ctx context.Context, controlNumber string, actor domain.Actor) (*domain.Journey, error)

	// ResetJourney deletes journeys by control number or by member and returns the number removed.
	ResetJourney(ctx context.Context, target domain.JourneyResetTarget, actor domain.Actor) (int, error)

	// ResetAllJourneys deletes every journey. confirm must be true.
	ResetAllJourneys(ctx context.Context, confirm bool, actor domain.Actor) (int, error)
}

// JourneySvcFacade combines all journey service interfaces
// This is a facade for clients that need access to all operations
type JourneySvcFacade interface {
	JourneyReaderSvc
	JourneyWriterSvc
	JourneyAdminSvc
}
