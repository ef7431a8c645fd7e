package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectJourneyFields = `
	journey_id, member_id, control_number, check_in_date, check_in_time, check_in_terminal,
	meal_stub_issued, transportation_stub_issued, check_out_time, check_out_terminal,
	claimed, lost_stub, incorrect_stub, different_stub_number, different_stub_value,
	manual_form_signed, override_reason, staff_id, status, created_at, updated_at
`

const selectJourneyDetailFields = `
	j.journey_id, j.member_id, j.control_number, j.check_in_date, j.check_in_time, j.check_in_terminal,
	j.meal_stub_issued, j.transportation_stub_issued, j.check_out_time, j.check_out_terminal,
	j.claimed, j.lost_stub, j.incorrect_stub, j.different_stub_number, j.different_stub_value,
	j.manual_form_signed, j.override_reason, j.staff_id, j.status, j.created_at, j.updated_at,
	m.cooperative_id, m.first_name, m.middle_initial, m.last_name, m.member_type
`

type PgxJourneyRepository struct {
	BaseRepository
}

func newPgxJourneyRepository(pool *pgxpool.Pool) portsrepo.JourneyRepositoryFacade {
	return &PgxJourneyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JourneyRepositoryFacade = (*PgxJourneyRepository)(nil)

func journeyDest(j *models.Journey) []any {
	return []any{
		&j.JourneyID,
		&j.MemberID,
		&j.ControlNumber,
		&j.CheckInDate,
		&j.CheckInTime,
		&j.CheckInTerminal,
		&j.MealStubIssued,
		&j.TransportationStubIssued,
		&j.CheckOutTime,
		&j.CheckOutTerminal,
		&j.Claimed,
		&j.LostStub,
		&j.IncorrectStub,
		&j.DifferentStubNumber,
		&j.DifferentStubValue,
		&j.ManualFormSigned,
		&j.OverrideReason,
		&j.StaffID,
		&j.Status,
		&j.CreatedAt,
		&j.UpdatedAt,
	}
}

func scanJourney(row pgx.Row) (*domain.Journey, error) {
	var j models.Journey
	if err := row.Scan(journeyDest(&j)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	journey := mapping.ToDomainJourney(j)
	return &journey, nil
}

// FindJourneyByMemberAndDay retrieves the member's journey for an operating day.
func (r *PgxJourneyRepository) FindJourneyByMemberAndDay(ctx context.Context, memberID, day string) (*domain.Journey, error) {
	query := `SELECT ` + selectJourneyFields + ` FROM member_journey WHERE member_id = $1 AND check_in_date = $2;`
	journey, err := scanJourney(r.conn(ctx).QueryRow(ctx, query, memberID, day))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find journey of member %s on %s: %w", memberID, day, err)
	}
	return journey, err
}

// FindJourneyByControlNumber retrieves the journey bound to a control number.
func (r *PgxJourneyRepository) FindJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error) {
	query := `SELECT ` + selectJourneyFields + ` FROM member_journey WHERE control_number = $1;`
	journey, err := scanJourney(r.conn(ctx).QueryRow(ctx, query, controlNumber))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find journey %s: %w", controlNumber, err)
	}
	return journey, err
}

// ListJourneys retrieves journeys joined with their members, newest check-in first.
func (r *PgxJourneyRepository) ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Date != "" {
		conds = append(conds, "j.check_in_date = "+arg(filter.Date))
	}
	if filter.Status != "" {
		conds = append(conds, "j.status = "+arg(string(filter.Status)))
	}

	query := `SELECT ` + selectJourneyDetailFields + ` FROM member_journey j JOIN members m ON m.member_id = j.member_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY j.check_in_time DESC, j.journey_id LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	details, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JourneyDetail, error) {
		var d models.JourneyDetail
		dest := append(journeyDest(&d.Journey),
			&d.CooperativeID,
			&d.FirstName,
			&d.MiddleInitial,
			&d.LastName,
			&d.MemberType,
		)
		err := row.Scan(dest...)
		return d, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journeys: %w", err)
	}
	return mapping.ToDomainJourneyDetailSlice(details), nil
}

// CountJourneysByMember counts the journeys of a member across all days.
func (r *PgxJourneyRepository) CountJourneysByMember(ctx context.Context, memberID string) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM member_journey WHERE member_id = $1;`, memberID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journeys of member %s: %w", memberID, err)
	}
	return count, nil
}

// SaveJourney inserts a freshly checked-in journey.
func (r *PgxJourneyRepository) SaveJourney(ctx context.Context, journey domain.Journey) error {
	j := mapping.ToModelJourney(journey)
	query := `
		INSERT INTO member_journey (` + selectJourneyFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		j.JourneyID,
		j.MemberID,
		j.ControlNumber,
		j.CheckInDate,
		j.CheckInTime,
		j.CheckInTerminal,
		j.MealStubIssued,
		j.TransportationStubIssued,
		j.CheckOutTime,
		j.CheckOutTerminal,
		j.Claimed,
		j.LostStub,
		j.IncorrectStub,
		j.DifferentStubNumber,
		j.DifferentStubValue,
		j.ManualFormSigned,
		j.OverrideReason,
		j.StaffID,
		j.Status,
		j.CreatedAt,
		j.UpdatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to save journey %s: %w", j.ControlNumber, err)
	}
	return nil
}

// CompleteJourney writes the check-out fields only while the journey is still checked_in.
func (r *PgxJourneyRepository) CompleteJourney(ctx context.Context, journeyID string, checkout domain.JourneyCheckout) (*domain.Journey, error) {
	query := `
		UPDATE member_journey SET
			check_out_time = $2,
			check_out_terminal = $3,
			staff_id = $4,
			claimed = $5,
			lost_stub = $6,
			incorrect_stub = $7,
			different_stub_number = $8,
			different_stub_value = $9,
			manual_form_signed = $10,
			override_reason = $11,
			status = 'complete',
			updated_at = $2
		WHERE journey_id = $1 AND status = 'checked_in'
		RETURNING ` + selectJourneyFields + `;`
	journey, err := scanJourney(r.conn(ctx).QueryRow(ctx, query,
		journeyID,
		checkout.CheckOutTime,
		checkout.CheckOutTerminal,
		checkout.StaffID,
		checkout.Claimed,
		checkout.LostStub,
		checkout.IncorrectStub,
		checkout.DifferentStubNumber,
		mapping.ToNullString(checkout.DifferentStubValue),
		checkout.ManualFormSigned,
		mapping.ToNullString(checkout.OverrideReason),
	))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, r.missOrConflict(ctx, journeyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to complete journey %s: %w", journeyID, err)
	}
	return journey, nil
}

// ReopenJourney clears the check-out fields of a complete journey.
func (r *PgxJourneyRepository) ReopenJourney(ctx context.Context, journeyID string) (*domain.Journey, error) {
	query := `
		UPDATE member_journey SET
			check_out_time = NULL,
			check_out_terminal = NULL,
			staff_id = NULL,
			claimed = FALSE,
			lost_stub = FALSE,
			incorrect_stub = FALSE,
			different_stub_number = FALSE,
			different_stub_value = NULL,
			manual_form_signed = FALSE,
			override_reason = NULL,
			status = 'checked_in',
			updated_at = $2
		WHERE journey_id = $1 AND status = 'complete'
		RETURNING ` + selectJourneyFields + `;`
	journey, err := scanJourney(r.conn(ctx).QueryRow(ctx, query, journeyID, time.Now().UTC()))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, r.missOrConflict(ctx, journeyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reopen journey %s: %w", journeyID, err)
	}
	return journey, nil
}

// missOrConflict tells a missing journey apart from one in the wrong state.
func (r *PgxJourneyRepository) missOrConflict(ctx context.Context, journeyID string) error {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM member_journey WHERE journey_id = $1);`, journeyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up journey %s: %w", journeyID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrConflict
}

func (r *PgxJourneyRepository) deleteWhere(ctx context.Context, query string, args ...any) (int, error) {
	tag, err := r.conn(ctx).Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journeys: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteJourneyByControlNumber removes the journey bound to a control number.
func (r *PgxJourneyRepository) DeleteJourneyByControlNumber(ctx context.Context, controlNumber string) (int, error) {
	return r.deleteWhere(ctx, `DELETE FROM member_journey WHERE control_number = $1;`, controlNumber)
}

// DeleteJourneysByMember removes every journey of a member.
func (r *PgxJourneyRepository) DeleteJourneysByMember(ctx context.Context, memberID string) (int, error) {
	return r.deleteWhere(ctx, `DELETE FROM member_journey WHERE member_id = $1;`, memberID)
}

// DeleteAllJourneys removes every journey.
func (r *PgxJourneyRepository) DeleteAllJourneys(ctx context.Context) (int, error) {
	return r.deleteWhere(ctx, `DELETE FROM member_journey;`)
}
