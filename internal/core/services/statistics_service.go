package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/utils/optime"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// statisticsService is the read-only aggregator over members and journeys.
// It takes no locks and does not join the check-in/check-out transactions.
type statisticsService struct {
	BaseService
	statsRepo portsrepo.StatisticsRepository
	clock     *optime.Clock
}

// StatisticsServiceOption is a functional option for configuring the statistics service
type StatisticsServiceOption func(*statisticsService)

// WithStatisticsClock sets the clock used to resolve "today".
func WithStatisticsClock(clock *optime.Clock) StatisticsServiceOption {
	return func(s *statisticsService) {
		s.clock = clock
	}
}

// NewStatisticsService creates the statistics aggregator.
func NewStatisticsService(repo portsrepo.StatisticsRepository, options ...StatisticsServiceOption) portssvc.StatisticsSvc {
	svc := &statisticsService{
		BaseService: newBaseService(),
		statsRepo:   repo,
		clock:       optime.NewClock(optime.DefaultZone, nil),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.StatisticsSvc = (*statisticsService)(nil)

func (s *statisticsService) resolveDay(day string) (string, error) {
	resolved, err := s.clock.DateOrToday(day)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return resolved, nil
}

// ComputeStatistics counts the member population and the members with a
// journey checked in on day, whatever that journey's status.
func (s *statisticsService) ComputeStatistics(ctx context.Context, day string) (*domain.Statistics, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}
	ctx, span := s.StartSpan(ctx, "statistics.compute", trace.WithAttributes(attribute.String("day", day)))
	defer span.End()

	population, err := s.statsRepo.CountMembersByType(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count members")
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	attended, err := s.statsRepo.CountAttendeesByType(ctx, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to count attendees", slog.String("day", day))
		return nil, fmt.Errorf("failed to count attendees: %w", err)
	}

	return &domain.Statistics{
		Date:             day,
		MemberPopulation: population,
		AttendedAssembly: attended,
		AttendanceRate:   domain.AttendanceRate(attended.Total, population.Total),
		LastUpdated:      s.clock.Now(),
	}, nil
}

func (s *statisticsService) GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.GetJourneyStats(ctx, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to get journey stats", slog.String("day", day))
		return nil, fmt.Errorf("failed to get journey stats: %w", err)
	}
	stats.Date = day
	return stats, nil
}

func (s *statisticsService) GetClaimsSummary(ctx context.Context, day string) (*domain.ClaimsSummary, error) {
	day, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	terminals, err := s.statsRepo.GetClaimsByTerminal(ctx, day)
	if err != nil {
		s.LogError(ctx, err, "Failed to get claims by terminal", slog.String("day", day))
		return nil, fmt.Errorf("failed to get claims summary: %w", err)
	}

	summary := &domain.ClaimsSummary{Date: day, Terminals: terminals}
	if summary.Terminals == nil {
		summary.Terminals = []domain.TerminalClaims{}
	}
	for _, t := range terminals {
		summary.Total += t.Total
	}
	return summary, nil
}
