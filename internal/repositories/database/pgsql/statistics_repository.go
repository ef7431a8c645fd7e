package pgsql

import (
	"context"
	"fmt"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxStatisticsRepository struct {
	BaseRepository
}

func newPgxStatisticsRepository(pool *pgxpool.Pool) portsrepo.StatisticsRepository {
	return &PgxStatisticsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StatisticsRepository = (*PgxStatisticsRepository)(nil)

func (r *PgxStatisticsRepository) countByType(ctx context.Context, query string, args ...any) (domain.TypeCounts, error) {
	var counts domain.TypeCounts
	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	var (
		memberType string
		count      int
	)
	_, err = pgx.ForEachRow(rows, []any{&memberType, &count}, func() error {
		switch domain.MemberType(memberType) {
		case domain.MemberTypeRegular:
			counts.Regular += count
		case domain.MemberTypeAssociate:
			counts.Associate += count
		}
		counts.Total += count
		return nil
	})
	return counts, err
}

// CountMembersByType counts the registered population split by member type.
func (r *PgxStatisticsRepository) CountMembersByType(ctx context.Context) (domain.TypeCounts, error) {
	counts, err := r.countByType(ctx, `SELECT member_type, COUNT(*) FROM members GROUP BY member_type;`)
	if err != nil {
		return counts, fmt.Errorf("failed to count members: %w", err)
	}
	return counts, nil
}

// CountAttendeesByType counts members with a journey on day, in either status.
func (r *PgxStatisticsRepository) CountAttendeesByType(ctx context.Context, day string) (domain.TypeCounts, error) {
	query := `
		SELECT m.member_type, COUNT(DISTINCT j.member_id)
		FROM member_journey j
		JOIN members m ON m.member_id = j.member_id
		WHERE j.check_in_date = $1
		GROUP BY m.member_type;
	`
	counts, err := r.countByType(ctx, query, day)
	if err != nil {
		return counts, fmt.Errorf("failed to count attendees on %s: %w", day, err)
	}
	return counts, nil
}

// GetJourneyStats aggregates the journey states and stub flags of day.
func (r *PgxStatisticsRepository) GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'checked_in'),
			COUNT(*) FILTER (WHERE status = 'complete'),
			COUNT(*) FILTER (WHERE meal_stub_issued),
			COUNT(*) FILTER (WHERE transportation_stub_issued),
			COUNT(*) FILTER (WHERE claimed),
			COUNT(*) FILTER (WHERE lost_stub),
			COUNT(*) FILTER (WHERE incorrect_stub),
			COUNT(*) FILTER (WHERE different_stub_number),
			COUNT(*) FILTER (WHERE manual_form_signed)
		FROM member_journey
		WHERE check_in_date = $1;
	`
	stats := &domain.JourneyStats{Date: day}
	err := r.conn(ctx).QueryRow(ctx, query, day).Scan(
		&stats.TotalJourneys,
		&stats.CheckedIn,
		&stats.Complete,
		&stats.MealStubsIssued,
		&stats.TransportStubsIssued,
		&stats.Claimed,
		&stats.LostStubs,
		&stats.IncorrectStubs,
		&stats.DifferentStubs,
		&stats.ManualForms,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate journeys on %s: %w", day, err)
	}
	return stats, nil
}

// GetClaimsByTerminal groups the completed journeys of day by check-out terminal.
func (r *PgxStatisticsRepository) GetClaimsByTerminal(ctx context.Context, day string) ([]domain.TerminalClaims, error) {
	query := `
		SELECT
			check_out_terminal,
			COUNT(*),
			COUNT(*) FILTER (WHERE NOT (lost_stub OR incorrect_stub OR different_stub_number)),
			COUNT(*) FILTER (WHERE lost_stub OR incorrect_stub OR different_stub_number)
		FROM member_journey
		WHERE check_in_date = $1 AND status = 'complete'
		GROUP BY check_out_terminal
		ORDER BY check_out_terminal;
	`
	rows, err := r.conn(ctx).Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims on %s: %w", day, err)
	}
	defer rows.Close()

	claims, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.TerminalClaims, error) {
		var c domain.TerminalClaims
		err := row.Scan(&c.Terminal, &c.Total, &c.Normal, &c.Anomalous)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan claims on %s: %w", day, err)
	}
	return claims, nil
}
