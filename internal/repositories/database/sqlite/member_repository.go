package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
)

const selectMemberFields = `
	member_id, cooperative_id, first_name, middle_initial, last_name,
	work_email, personal_email, member_type, status, eligibility,
	registered_at, created_at, updated_at
`

type SQLMemberRepository struct {
	BaseRepository
}

func newSQLMemberRepository(db *sql.DB) portsrepo.MemberRepositoryFacade {
	return &SQLMemberRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.MemberRepositoryFacade = (*SQLMemberRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (models.Member, error) {
	var (
		m                                  models.Member
		registeredAt, createdAt, updatedAt int64
	)
	err := row.Scan(
		&m.MemberID,
		&m.CooperativeID,
		&m.FirstName,
		&m.MiddleInitial,
		&m.LastName,
		&m.WorkEmail,
		&m.PersonalEmail,
		&m.MemberType,
		&m.Status,
		&m.Eligibility,
		&registeredAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return m, err
	}
	m.RegisteredAt = fromMillis(registeredAt)
	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}

func (r *SQLMemberRepository) findOne(ctx context.Context, where string, arg any) (*domain.Member, error) {
	query := `SELECT ` + selectMemberFields + ` FROM members WHERE ` + where
	m, err := scanMember(r.conn(ctx).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

func (r *SQLMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return r.findOne(ctx, "member_id = ?", memberID)
}

func (r *SQLMemberRepository) FindMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error) {
	return r.findOne(ctx, "cooperative_id = ?", cooperativeID)
}

// ListMembers retrieves members matching the filter ordered by name.
func (r *SQLMemberRepository) ListMembers(ctx context.Context, filter domain.MemberFilter) ([]domain.Member, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Search != "" {
		p := "%" + filter.Search + "%"
		conds = append(conds, "(first_name LIKE ? OR last_name LIKE ? OR cooperative_id LIKE ?)")
		args = append(args, p, p, p)
	}
	if filter.MemberType != "" {
		conds = append(conds, "member_type = ?")
		args = append(args, string(filter.MemberType))
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.Eligibility != "" {
		conds = append(conds, "eligibility = ?")
		args = append(args, string(filter.Eligibility))
	}

	query := `SELECT ` + selectMemberFields + ` FROM members`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY last_name, first_name, member_id LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return mapping.ToDomainMemberSlice(members), nil
}

// SaveMember inserts a new member.
func (r *SQLMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (` + selectMemberFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.conn(ctx).ExecContext(ctx, query,
		m.MemberID,
		m.CooperativeID,
		m.FirstName,
		m.MiddleInitial,
		m.LastName,
		m.WorkEmail,
		m.PersonalEmail,
		m.MemberType,
		m.Status,
		m.Eligibility,
		toMillis(m.RegisteredAt),
		toMillis(m.CreatedAt),
		toMillis(m.UpdatedAt),
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to save member %s: %w", m.CooperativeID, err)
	}
	return nil
}

// UpdateMember overwrites the mutable fields of a member.
func (r *SQLMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		UPDATE members SET
			cooperative_id = ?,
			first_name = ?,
			middle_initial = ?,
			last_name = ?,
			work_email = ?,
			personal_email = ?,
			member_type = ?,
			status = ?,
			eligibility = ?,
			updated_at = ?
		WHERE member_id = ?
	`
	res, err := r.conn(ctx).ExecContext(ctx, query,
		m.CooperativeID,
		m.FirstName,
		m.MiddleInitial,
		m.LastName,
		m.WorkEmail,
		m.PersonalEmail,
		m.MemberType,
		m.Status,
		m.Eligibility,
		toMillis(m.UpdatedAt),
		m.MemberID,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update member %s: %w", m.MemberID, err)
	}
	return requireAffected(res)
}

// DeleteMember removes a member not referenced by any journey.
func (r *SQLMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	res, err := r.conn(ctx).ExecContext(ctx, `DELETE FROM members WHERE member_id = ?`, memberID)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to delete member %s: %w", memberID, err)
	}
	return requireAffected(res)
}

// requireAffected reports apperrors.ErrNotFound when a statement touched no rows.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
