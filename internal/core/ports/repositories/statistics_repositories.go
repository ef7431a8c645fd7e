package repositories

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// StatisticsRepository provides read-only aggregate queries over members and journeys.
type StatisticsRepository interface {
	// CountMembersByType counts registered members split by member type.
	CountMembersByType(ctx context.Context) (domain.TypeCounts, error)

	// CountAttendeesByType counts distinct members with a journey checked in on day, in any status.
	CountAttendeesByType(ctx context.Context, day string) (domain.TypeCounts, error)

	// GetJourneyStats aggregates journey state and stub flags for day.
	GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error)

	// GetClaimsByTerminal groups the day's completed journeys by check-out terminal.
	GetClaimsByTerminal(ctx context.Context, day string) ([]domain.TerminalClaims, error)
}
