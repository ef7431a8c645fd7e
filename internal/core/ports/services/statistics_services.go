package services

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// StatisticsSvc derives read-only projections from the registry and journeys.
// An empty day means today in the operating timezone.
type StatisticsSvc interface {
	// ComputeStatistics returns member population and assembly attendance for day.
	ComputeStatistics(ctx context.Context, day string) (*domain.Statistics, error)

	// GetJourneyStats returns journey state and stub counts for day.
	GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error)

	// GetClaimsSummary returns the per-terminal claim breakdown for day.
	GetClaimsSummary(ctx context.Context, day string) (*domain.ClaimsSummary, error)
}
