package services

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/dto"
)

// MemberReaderSvc defines read operations for the member registry
type MemberReaderSvc interface {
	// GetMemberByID retrieves a member by id.
	GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error)

	// GetMemberByCooperativeID retrieves a member by cooperative id.
	GetMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error)

	// ListMembers retrieves members matching the query parameters.
	ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error)
}

// MemberWriterSvc defines write operations for the member registry
type MemberWriterSvc interface {
	// CreateMember registers a new member.
	CreateMember(ctx context.Context, req dto.CreateMemberRequest, actor domain.Actor) (*domain.Member, error)

	// UpdateMember applies a partial update to a member.
	UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, actor domain.Actor) (*domain.Member, error)

	// DeleteMember removes a member that has no journeys.
	DeleteMember(ctx context.Context, memberID string, actor domain.Actor) error
}

// MemberSvcFacade combines all member service interfaces
type MemberSvcFacade interface {
	MemberReaderSvc
	MemberWriterSvc
}
