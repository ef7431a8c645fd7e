package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
)

type SQLStatisticsRepository struct {
	BaseRepository
}

func newSQLStatisticsRepository(db *sql.DB) portsrepo.StatisticsRepository {
	return &SQLStatisticsRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.StatisticsRepository = (*SQLStatisticsRepository)(nil)

func (r *SQLStatisticsRepository) countByType(ctx context.Context, query string, args ...any) (domain.TypeCounts, error) {
	var counts domain.TypeCounts
	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return counts, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			memberType string
			count      int
		)
		if err := rows.Scan(&memberType, &count); err != nil {
			return counts, err
		}
		switch domain.MemberType(memberType) {
		case domain.MemberTypeRegular:
			counts.Regular += count
		case domain.MemberTypeAssociate:
			counts.Associate += count
		}
		counts.Total += count
	}
	return counts, rows.Err()
}

func (r *SQLStatisticsRepository) CountMembersByType(ctx context.Context) (domain.TypeCounts, error) {
	counts, err := r.countByType(ctx, `SELECT member_type, COUNT(*) FROM members GROUP BY member_type`)
	if err != nil {
		return counts, fmt.Errorf("failed to count members: %w", err)
	}
	return counts, nil
}

func (r *SQLStatisticsRepository) CountAttendeesByType(ctx context.Context, day string) (domain.TypeCounts, error) {
	query := `
		SELECT m.member_type, COUNT(DISTINCT j.member_id)
		FROM member_journey j
		JOIN members m ON m.member_id = j.member_id
		WHERE j.check_in_date = ?
		GROUP BY m.member_type
	`
	counts, err := r.countByType(ctx, query, day)
	if err != nil {
		return counts, fmt.Errorf("failed to count attendees on %s: %w", day, err)
	}
	return counts, nil
}

// GetJourneyStats aggregates the journey states and stub flags of day.
func (r *SQLStatisticsRepository) GetJourneyStats(ctx context.Context, day string) (*domain.JourneyStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(status = 'checked_in'), 0),
			COALESCE(SUM(status = 'complete'), 0),
			COALESCE(SUM(meal_stub_issued), 0),
			COALESCE(SUM(transportation_stub_issued), 0),
			COALESCE(SUM(claimed), 0),
			COALESCE(SUM(lost_stub), 0),
			COALESCE(SUM(incorrect_stub), 0),
			COALESCE(SUM(different_stub_number), 0),
			COALESCE(SUM(manual_form_signed), 0)
		FROM member_journey
		WHERE check_in_date = ?
	`
	stats := &domain.JourneyStats{Date: day}
	err := r.conn(ctx).QueryRowContext(ctx, query, day).Scan(
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
func (r *SQLStatisticsRepository) GetClaimsByTerminal(ctx context.Context, day string) ([]domain.TerminalClaims, error) {
	query := `
		SELECT
			check_out_terminal,
			COUNT(*),
			SUM(lost_stub + incorrect_stub + different_stub_number = 0),
			SUM(lost_stub + incorrect_stub + different_stub_number > 0)
		FROM member_journey
		WHERE check_in_date = ? AND status = 'complete'
		GROUP BY check_out_terminal
		ORDER BY check_out_terminal
	`
	rows, err := r.conn(ctx).QueryContext(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query claims on %s: %w", day, err)
	}
	defer rows.Close()

	var claims []domain.TerminalClaims
	for rows.Next() {
		var c domain.TerminalClaims
		if err := rows.Scan(&c.Terminal, &c.Total, &c.Normal, &c.Anomalous); err != nil {
			return nil, fmt.Errorf("failed to scan claims on %s: %w", day, err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate claims on %s: %w", day, err)
	}
	return claims, nil
}
