package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
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

type SQLJourneyRepository struct {
	BaseRepository
}

func newSQLJourneyRepository(db *sql.DB) portsrepo.JourneyRepositoryFacade {
	return &SQLJourneyRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.JourneyRepositoryFacade = (*SQLJourneyRepository)(nil)

// journeyRow holds the raw column values of a member_journey row.
type journeyRow struct {
	models.Journey
	checkInTime, createdAt, updatedAt int64
	checkOutTime                      sql.NullInt64
}

func (j *journeyRow) dest() []any {
	return []any{
		&j.JourneyID,
		&j.MemberID,
		&j.ControlNumber,
		&j.CheckInDate,
		&j.checkInTime,
		&j.CheckInTerminal,
		&j.MealStubIssued,
		&j.TransportationStubIssued,
		&j.checkOutTime,
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
		&j.createdAt,
		&j.updatedAt,
	}
}

func (j *journeyRow) model() models.Journey {
	m := j.Journey
	m.CheckInTime = fromMillis(j.checkInTime)
	m.CheckOutTime = fromNullMillis(j.checkOutTime)
	m.CreatedAt = fromMillis(j.createdAt)
	m.UpdatedAt = fromMillis(j.updatedAt)
	return m
}

func scanJourney(row rowScanner) (*domain.Journey, error) {
	var j journeyRow
	if err := row.Scan(j.dest()...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	journey := mapping.ToDomainJourney(j.model())
	return &journey, nil
}

func (r *SQLJourneyRepository) FindJourneyByMemberAndDay(ctx context.Context, memberID, day string) (*domain.Journey, error) {
	query := `SELECT ` + selectJourneyFields + ` FROM member_journey WHERE member_id = ? AND check_in_date = ?`
	journey, err := scanJourney(r.conn(ctx).QueryRowContext(ctx, query, memberID, day))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find journey of member %s on %s: %w", memberID, day, err)
	}
	return journey, err
}

func (r *SQLJourneyRepository) FindJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error) {
	query := `SELECT ` + selectJourneyFields + ` FROM member_journey WHERE control_number = ?`
	journey, err := scanJourney(r.conn(ctx).QueryRowContext(ctx, query, controlNumber))
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to find journey %s: %w", controlNumber, err)
	}
	return journey, err
}

// ListJourneys retrieves journeys joined with their members, newest check-in first.
func (r *SQLJourneyRepository) ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Date != "" {
		conds = append(conds, "j.check_in_date = ?")
		args = append(args, filter.Date)
	}
	if filter.Status != "" {
		conds = append(conds, "j.status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT ` + selectJourneyDetailFields + ` FROM member_journey j JOIN members m ON m.member_id = j.member_id`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY j.check_in_time DESC, j.journey_id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journeys: %w", err)
	}
	defer rows.Close()

	var details []models.JourneyDetail
	for rows.Next() {
		var (
			j journeyRow
			d models.JourneyDetail
		)
		dest := append(j.dest(),
			&d.CooperativeID,
			&d.FirstName,
			&d.MiddleInitial,
			&d.LastName,
			&d.MemberType,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan journey: %w", err)
		}
		d.Journey = j.model()
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journeys: %w", err)
	}
	return mapping.ToDomainJourneyDetailSlice(details), nil
}

func (r *SQLJourneyRepository) CountJourneysByMember(ctx context.Context, memberID string) (int, error) {
	var count int
	err := r.conn(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM member_journey WHERE member_id = ?`, memberID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count journeys of member %s: %w", memberID, err)
	}
	return count, nil
}

// SaveJourney inserts a freshly checked-in journey.
func (r *SQLJourneyRepository) SaveJourney(ctx context.Context, journey domain.Journey) error {
	j := mapping.ToModelJourney(journey)
	query := `
		INSERT INTO member_journey (` + selectJourneyFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.conn(ctx).ExecContext(ctx, query,
		j.JourneyID,
		j.MemberID,
		j.ControlNumber,
		j.CheckInDate,
		toMillis(j.CheckInTime),
		j.CheckInTerminal,
		boolToInt(j.MealStubIssued),
		boolToInt(j.TransportationStubIssued),
		toNullMillis(j.CheckOutTime),
		j.CheckOutTerminal,
		boolToInt(j.Claimed),
		boolToInt(j.LostStub),
		boolToInt(j.IncorrectStub),
		boolToInt(j.DifferentStubNumber),
		j.DifferentStubValue,
		boolToInt(j.ManualFormSigned),
		j.OverrideReason,
		j.StaffID,
		j.Status,
		toMillis(j.CreatedAt),
		toMillis(j.UpdatedAt),
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
func (r *SQLJourneyRepository) CompleteJourney(ctx context.Context, journeyID string, checkout domain.JourneyCheckout) (*domain.Journey, error) {
	query := `
		UPDATE member_journey SET
			check_out_time = ?,
			check_out_terminal = ?,
			staff_id = ?,
			claimed = ?,
			lost_stub = ?,
			incorrect_stub = ?,
			different_stub_number = ?,
			different_stub_value = ?,
			manual_form_signed = ?,
			override_reason = ?,
			status = 'complete',
			updated_at = ?
		WHERE journey_id = ? AND status = 'checked_in'
		RETURNING ` + selectJourneyFields
	at := toMillis(checkout.CheckOutTime)
	journey, err := scanJourney(r.conn(ctx).QueryRowContext(ctx, query,
		at,
		checkout.CheckOutTerminal,
		checkout.StaffID,
		boolToInt(checkout.Claimed),
		boolToInt(checkout.LostStub),
		boolToInt(checkout.IncorrectStub),
		boolToInt(checkout.DifferentStubNumber),
		mapping.ToNullString(checkout.DifferentStubValue),
		boolToInt(checkout.ManualFormSigned),
		mapping.ToNullString(checkout.OverrideReason),
		at,
		journeyID,
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
func (r *SQLJourneyRepository) ReopenJourney(ctx context.Context, journeyID string) (*domain.Journey, error) {
	query := `
		UPDATE member_journey SET
			check_out_time = NULL,
			check_out_terminal = NULL,
			staff_id = NULL,
			claimed = 0,
			lost_stub = 0,
			incorrect_stub = 0,
			different_stub_number = 0,
			different_stub_value = NULL,
			manual_form_signed = 0,
			override_reason = NULL,
			status = 'checked_in',
			updated_at = ?
		WHERE journey_id = ? AND status = 'complete'
		RETURNING ` + selectJourneyFields
	journey, err := scanJourney(r.conn(ctx).QueryRowContext(ctx, query, toMillis(time.Now()), journeyID))
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, r.missOrConflict(ctx, journeyID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to reopen journey %s: %w", journeyID, err)
	}
	return journey, nil
}

// missOrConflict tells a missing journey apart from one in the wrong state.
func (r *SQLJourneyRepository) missOrConflict(ctx context.Context, journeyID string) error {
	var exists bool
	err := r.conn(ctx).QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM member_journey WHERE journey_id = ?)`, journeyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up journey %s: %w", journeyID, err)
	}
	if !exists {
		return apperrors.ErrNotFound
	}
	return apperrors.ErrConflict
}

func (r *SQLJourneyRepository) deleteWhere(ctx context.Context, query string, args ...any) (int, error) {
	res, err := r.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journeys: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return int(n), nil
}

func (r *SQLJourneyRepository) DeleteJourneyByControlNumber(ctx context.Context, controlNumber string) (int, error) {
	return r.deleteWhere(ctx, `DELETE FROM member_journey WHERE control_number = ?`, controlNumber)
}

func (r *SQLJourneyRepository) DeleteJourneysByMember(ctx context.Context, memberID string) (int, error) {
	return r.deleteWhere(ctx, `DELETE FROM member_journey WHERE member_id = ?`, memberID)
}

func (r *SQLJourneyRepository) DeleteAllJourneys(ctx context.Context) (int, error) {
	return r.deleteWhere(ctx, `DELETE FROM member_journey`)
}
