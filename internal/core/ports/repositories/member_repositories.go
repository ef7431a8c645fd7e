package repositories

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// MemberReader defines read operations for the member registry
type MemberReader interface {
	// FindMemberByID retrieves a member by id. Returns apperrors.ErrNotFound when absent.
	FindMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// FindMemberByCooperativeID retrieves a member by the human facing cooperative id.
	FindMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error)

	// ListMembers retrieves members matching the filter ordered by last and first name.
	ListMembers(ctx context.Context, filter domain.MemberFilter) ([]domain.Member, error)
}

// MemberWriter defines write operations for the member registry
type MemberWriter interface {
	// SaveMember inserts a new member. A taken cooperative id yields apperrors.ErrDuplicate.
	SaveMember(ctx context.Context, member domain.Member) error

	// UpdateMember overwrites the mutable fields of an existing member.
	UpdateMember(ctx context.Context, member domain.Member) error

	// DeleteMember removes a member. Members referenced by journeys yield apperrors.ErrConflict.
	DeleteMember(ctx context.Context, memberID string) error
}

// MemberRepositoryFacade combines all member repository interfaces
type MemberRepositoryFacade interface {
	MemberReader
	MemberWriter
}
