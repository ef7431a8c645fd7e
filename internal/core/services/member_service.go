package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/utils/optime"
	"github.com/google/uuid"
)

const (
	defaultMemberListLimit = 100
	maxMemberListLimit     = 500
)

// Common errors for the member registry
var (
	ErrMemberNotFound = fmt.Errorf("member %w", apperrors.ErrNotFound)
)

type memberService struct {
	BaseService
	memberRepo  portsrepo.MemberRepositoryFacade
	journeyRepo portsrepo.JourneyReader
	auditRepo   portsrepo.AuditLogWriter
	tx          portsrepo.Transactor
	clock       *optime.Clock
}

// MemberServiceOption is a functional option for configuring the member service
type MemberServiceOption func(*memberService)

// WithMemberClock sets the clock used for registration timestamps.
func WithMemberClock(clock *optime.Clock) MemberServiceOption {
	return func(s *memberService) {
		s.clock = clock
	}
}

// NewMemberService creates a member registry service.
func NewMemberService(
	memberRepo portsrepo.MemberRepositoryFacade,
	journeyRepo portsrepo.JourneyReader,
	auditRepo portsrepo.AuditLogWriter,
	tx portsrepo.Transactor,
	options ...MemberServiceOption,
) portssvc.MemberSvcFacade {
	svc := &memberService{
		BaseService: newBaseService(),
		memberRepo:  memberRepo,
		journeyRepo: journeyRepo,
		auditRepo:   auditRepo,
		tx:          tx,
		clock:       optime.NewClock(optime.DefaultZone, nil),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MemberSvcFacade = (*memberService)(nil)

func (s *memberService) GetMemberByID(ctx context.Context, memberID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrMemberNotFound, memberID)
		}
		s.LogError(ctx, err, "Failed to get member", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (s *memberService) GetMemberByCooperativeID(ctx context.Context, cooperativeID string) (*domain.Member, error) {
	member, err := s.memberRepo.FindMemberByCooperativeID(ctx, strings.TrimSpace(cooperativeID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: cooperative id %s", ErrMemberNotFound, cooperativeID)
		}
		s.LogError(ctx, err, "Failed to get member by cooperative id", slog.String("cooperative_id", cooperativeID))
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (s *memberService) ListMembers(ctx context.Context, params dto.ListMembersParams) ([]domain.Member, error) {
	filter := params.ToFilter()
	filter.Page = normalizePage(filter.Page, defaultMemberListLimit, maxMemberListLimit)

	members, err := s.memberRepo.ListMembers(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list members")
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

func (s *memberService) CreateMember(ctx context.Context, req dto.CreateMemberRequest, actor domain.Actor) (*domain.Member, error) {
	now := s.clock.Now()
	member := domain.Member{
		MemberID:      uuid.NewString(),
		CooperativeID: strings.TrimSpace(req.CooperativeID),
		FirstName:     strings.TrimSpace(req.FirstName),
		MiddleInitial: req.MiddleInitial,
		LastName:      strings.TrimSpace(req.LastName),
		WorkEmail:     req.WorkEmail,
		PersonalEmail: req.PersonalEmail,
		MemberType:    domain.MemberType(req.MemberType),
		Status:        domain.MemberStatus(req.Status),
		Eligibility:   domain.Eligibility(req.Eligibility),
		RegisteredAt:  now,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if member.Status == "" {
		member.Status = domain.MemberStatusActive
	}
	if member.Eligibility == "" {
		member.Eligibility = domain.Eligible
	}
	if err := validateMember(member); err != nil {
		return nil, err
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberRepo.SaveMember(ctx, member); err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditCreateMember, member.MemberID, actor, nil, member)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cooperative id %s is already registered", apperrors.ErrDuplicate, member.CooperativeID)
		}
		s.LogError(ctx, err, "Failed to create member", slog.String("cooperative_id", member.CooperativeID))
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	s.LogInfo(ctx, "Member created", slog.String("member_id", member.MemberID), slog.String("cooperative_id", member.CooperativeID))
	return &member, nil
}

func (s *memberService) UpdateMember(ctx context.Context, memberID string, req dto.UpdateMemberRequest, actor domain.Actor) (*domain.Member, error) {
	current, err := s.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	updated := req.ToDomain().Apply(*current)
	updated.UpdatedAt = s.clock.Now()
	if err := validateMember(updated); err != nil {
		return nil, err
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberRepo.UpdateMember(ctx, updated); err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditUpdateMember, memberID, actor, current, updated)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: cooperative id %s is already registered", apperrors.ErrDuplicate, updated.CooperativeID)
		}
		s.LogError(ctx, err, "Failed to update member", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	s.LogInfo(ctx, "Member updated", slog.String("member_id", memberID))
	return &updated, nil
}

// DeleteMember removes a member. Members with journey records are kept.
func (s *memberService) DeleteMember(ctx context.Context, memberID string, actor domain.Actor) error {
	current, err := s.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}

	count, err := s.journeyRepo.CountJourneysByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count member journeys", slog.String("member_id", memberID))
		return fmt.Errorf("failed to count member journeys: %w", err)
	}
	if count > 0 {
		return domain.NewMemberHasJourneysError(memberID, count)
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.memberRepo.DeleteMember(ctx, memberID); err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditDeleteMember, memberID, actor, current, nil)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return domain.NewMemberHasJourneysError(memberID, 1)
		}
		s.LogError(ctx, err, "Failed to delete member", slog.String("member_id", memberID))
		return fmt.Errorf("failed to delete member: %w", err)
	}

	s.LogInfo(ctx, "Member deleted", slog.String("member_id", memberID))
	return nil
}

func (s *memberService) appendAudit(ctx context.Context, action domain.AuditAction, recordID string, actor domain.Actor, oldValues, newValues any) error {
	entry, err := domain.NewAuditLogEntry(action, domain.TableMembers, recordID, actor.StaffID, actor.TerminalID, oldValues, newValues, s.clock.Now())
	if err != nil {
		return err
	}
	return s.auditRepo.AppendAuditLog(ctx, entry)
}

func validateMember(m domain.Member) error {
	var problems []string
	if m.CooperativeID == "" {
		problems = append(problems, "cooperative_id is required")
	}
	if m.FirstName == "" || m.LastName == "" {
		problems = append(problems, "first_name and last_name are required")
	}
	if !m.MemberType.Valid() {
		problems = append(problems, "member_type must be Regular or Associate")
	}
	if !m.Status.Valid() {
		problems = append(problems, "status must be active or dormant")
	}
	if !m.Eligibility.Valid() {
		problems = append(problems, "eligibility must be eligible or not_eligible")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}
