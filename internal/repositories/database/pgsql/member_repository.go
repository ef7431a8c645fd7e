package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectMemberFields = `
	member_id, cooperative_id, first_name, middle_initial, last_name,
	work_email, personal_email, member_type, status, eligibility,
	registered_at, created_at, updated_at
`

type PgxMemberRepository struct {
	BaseRepository
}

// newPgxMemberRepository creates a new repository for the member registry.
func newPgxMemberRepository(pool *pgxpool.Pool) portsrepo.MemberRepositoryFacade {
	return &PgxMemberRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.MemberRepositoryFacade = (*PgxMemberRepository)(nil)

func scanMember(row pgx.Row) (models.Member, error) {
	var m models.Member
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
		&m.RegisteredAt,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxMemberRepository) findOne(ctx context.Context, where string, arg any) (*domain.Member, error) {
	query := `SELECT ` + selectMemberFields + ` FROM members WHERE ` + where
	m, err := scanMember(r.conn(ctx).QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member: %w", err)
	}
	member := mapping.ToDomainMember(m)
	return &member, nil
}

// FindMemberByID retrieves a member by id.
func (r *PgxMemberRepository) FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	return r.findOne(ctx, "member_id = $1", memberID)
}

// FindMemberByCooperativeID retrieves a member by cooperative id.
func (r *PgxMemberRepository) FindMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error) {
	return r.findOne(ctx, "cooperative_id = $1", cooperativeID)
}

// ListMembers retrieves members matching the filter ordered by name.
func (r *PgxMemberRepository) ListMembers(ctx context.Context, filter domain.MemberFilter) ([]domain.Member, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		conds = append(conds, "(first_name ILIKE "+p+" OR last_name ILIKE "+p+" OR cooperative_id ILIKE "+p+")")
	}
	if filter.MemberType != "" {
		conds = append(conds, "member_type = "+arg(string(filter.MemberType)))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(string(filter.Status)))
	}
	if filter.Eligibility != "" {
		conds = append(conds, "eligibility = "+arg(string(filter.Eligibility)))
	}

	query := `SELECT ` + selectMemberFields + ` FROM members`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY last_name, first_name, member_id LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	modelMembers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Member, error) {
		return scanMember(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan members: %w", err)
	}
	return mapping.ToDomainMemberSlice(modelMembers), nil
}

// SaveMember inserts a new member.
func (r *PgxMemberRepository) SaveMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		INSERT INTO members (` + selectMemberFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
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
		m.RegisteredAt,
		m.CreatedAt,
		m.UpdatedAt,
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
func (r *PgxMemberRepository) UpdateMember(ctx context.Context, member domain.Member) error {
	m := mapping.ToModelMember(member)
	query := `
		UPDATE members SET
			cooperative_id = $2,
			first_name = $3,
			middle_initial = $4,
			last_name = $5,
			work_email = $6,
			personal_email = $7,
			member_type = $8,
			status = $9,
			eligibility = $10,
			updated_at = $11
		WHERE member_id = $1;
	`
	tag, err := r.conn(ctx).Exec(ctx, query,
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
		m.UpdatedAt,
	)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to update member %s: %w", m.MemberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteMember removes a member not referenced by any journey.
func (r *PgxMemberRepository) DeleteMember(ctx context.Context, memberID string) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM members WHERE member_id = $1;`, memberID)
	if err != nil {
		if translated := translateError(err); translated != err {
			return translated
		}
		return fmt.Errorf("failed to delete member %s: %w", memberID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
