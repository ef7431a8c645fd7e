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
	"github.com/g2ix/basic-registration/internal/utils/optime"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultJourneyListLimit = 50
	maxJourneyListLimit     = 500
)

// journeyService is the journey engine: it owns the check-in/check-out
// state machine and the administrative overrides that revert it.
type journeyService struct {
	BaseService
	journeyRepo portsrepo.JourneyRepositoryFacade
	memberRepo  portsrepo.MemberReader
	auditRepo   portsrepo.AuditLogWriter
	settings    portssvc.SettingsReaderSvc
	tx          portsrepo.Transactor
	clock       *optime.Clock
	newID       func() string
}

// JourneyServiceOption is a functional option for configuring the journey service
type JourneyServiceOption func(*journeyService)

// WithJourneyClock sets the clock used for timestamps and operating days.
func WithJourneyClock(clock *optime.Clock) JourneyServiceOption {
	return func(s *journeyService) {
		s.clock = clock
	}
}

// WithJourneyIDGenerator replaces the journey id generator.
func WithJourneyIDGenerator(fn func() string) JourneyServiceOption {
	return func(s *journeyService) {
		s.newID = fn
	}
}

// NewJourneyService creates the journey engine.
func NewJourneyService(
	journeyRepo portsrepo.JourneyRepositoryFacade,
	memberRepo portsrepo.MemberReader,
	auditRepo portsrepo.AuditLogWriter,
	settings portssvc.SettingsReaderSvc,
	tx portsrepo.Transactor,
	options ...JourneyServiceOption,
) portssvc.JourneySvcFacade {
	svc := &journeyService{
		BaseService: newBaseService(),
		journeyRepo: journeyRepo,
		memberRepo:  memberRepo,
		auditRepo:   auditRepo,
		settings:    settings,
		tx:          tx,
		clock:       optime.NewClock(optime.DefaultZone, nil),
		newID:       uuid.NewString,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.JourneySvcFacade = (*journeyService)(nil)

// CheckIn opens a journey. Preconditions are evaluated in order: member
// exists, member is eligible, no journey for the member today, control
// number unused. The store's unique constraints back up the last two.
func (s *journeyService) CheckIn(ctx context.Context, req domain.CheckInRequest) (*domain.Journey, error) {
	ctx, span := s.StartSpan(ctx, "journey.check_in", trace.WithAttributes(
		attribute.String("member.id", req.MemberID),
		attribute.String("control.number", req.ControlNumber),
		attribute.String("terminal.id", req.TerminalID),
	))
	defer span.End()

	if err := requireFields(map[string]string{
		"member_id":      req.MemberID,
		"control_number": req.ControlNumber,
		"terminal_id":    req.TerminalID,
	}); err != nil {
		return nil, err
	}

	member, err := s.memberRepo.FindMemberByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, span, domain.NewMemberNotFoundError(req.MemberID))
		}
		return nil, s.fail(ctx, span, err, "failed to look up member", slog.String("member_id", req.MemberID))
	}

	if !member.IsEligible() {
		return nil, s.reject(ctx, span, domain.NewNotEligibleError(*member))
	}

	now := s.clock.Now()
	day := optime.OperatingDate(now, s.clock.Location())

	existing, err := s.journeyRepo.FindJourneyByMemberAndDay(ctx, member.MemberID, day)
	switch {
	case err == nil:
		return nil, s.reject(ctx, span, domain.NewExistingJourneyError(*existing))
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, s.fail(ctx, span, err, "failed to look up today's journey", slog.String("member_id", member.MemberID))
	}

	taken, err := s.journeyRepo.FindJourneyByControlNumber(ctx, req.ControlNumber)
	switch {
	case err == nil:
		return nil, s.reject(ctx, span, domain.NewControlNumberExistsError(req.ControlNumber, taken))
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, s.fail(ctx, span, err, "failed to look up control number", slog.String("control_number", req.ControlNumber))
	}

	journey := domain.Journey{
		JourneyID:                s.newID(),
		MemberID:                 member.MemberID,
		ControlNumber:            req.ControlNumber,
		CheckInDate:              day,
		CheckInTime:              now,
		CheckInTerminal:          req.TerminalID,
		MealStubIssued:           req.MealStub,
		TransportationStubIssued: req.TransportationStub,
		Status:                   domain.JourneyCheckedIn,
		Timestamps:               domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.journeyRepo.SaveJourney(ctx, journey); err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditCheckIn, journey.JourneyID,
			domain.Actor{StaffID: req.StaffID, TerminalID: req.TerminalID},
			nil, checkInValues(journey))
	})
	if err != nil {
		if conflict := s.translateDuplicate(ctx, err, journey); conflict != nil {
			return nil, s.reject(ctx, span, conflict)
		}
		return nil, s.fail(ctx, span, err, "failed to save journey", slog.String("control_number", journey.ControlNumber))
	}

	span.SetAttributes(attribute.String("journey.id", journey.JourneyID))
	s.LogInfo(ctx, "Member checked in",
		slog.String("journey_id", journey.JourneyID),
		slog.String("member_id", journey.MemberID),
		slog.String("control_number", journey.ControlNumber),
		slog.String("terminal_id", journey.CheckInTerminal))
	return &journey, nil
}

// translateDuplicate maps a unique-constraint violation raised by the store
// to the same conflict the pre-checks would have reported.
func (s *journeyService) translateDuplicate(ctx context.Context, err error, attempted domain.Journey) *domain.JourneyError {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateMemberDay):
		existing, findErr := s.journeyRepo.FindJourneyByMemberAndDay(ctx, attempted.MemberID, attempted.CheckInDate)
		if findErr != nil {
			s.LogDebug(ctx, "Conflicting journey vanished after duplicate member/day", slog.String("error", findErr.Error()))
			return &domain.JourneyError{
				Reason:  apperrors.ReasonAlreadyCheckedIn,
				Class:   apperrors.ErrConflict,
				Message: "member already checked in today",
			}
		}
		return domain.NewExistingJourneyError(*existing)
	case errors.Is(err, apperrors.ErrDuplicateControlNumber):
		existing, findErr := s.journeyRepo.FindJourneyByControlNumber(ctx, attempted.ControlNumber)
		if findErr != nil {
			existing = nil
		}
		return domain.NewControlNumberExistsError(attempted.ControlNumber, existing)
	}
	return nil
}

// CheckOut completes the journey bound to a control number. Preconditions
// are evaluated in order: checkout enabled, journey exists, journey still
// checked_in. The store update is conditional on status so the transition
// happens exactly once even when two terminals race.
func (s *journeyService) CheckOut(ctx context.Context, req domain.CheckOutRequest) (*domain.Journey, error) {
	ctx, span := s.StartSpan(ctx, "journey.check_out", trace.WithAttributes(
		attribute.String("control.number", req.ControlNumber),
		attribute.String("terminal.id", req.TerminalID),
	))
	defer span.End()

	if err := requireFields(map[string]string{
		"control_number": req.ControlNumber,
		"terminal_id":    req.TerminalID,
		"staff_id":       req.StaffID,
	}); err != nil {
		return nil, err
	}
	if req.Outcome == nil {
		req.Outcome = domain.NormalOutcome{}
	}
	span.SetAttributes(attribute.String("checkout.outcome", string(req.Outcome.Kind())))

	enabled, err := s.settings.IsCheckoutEnabled(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, err, "failed to read checkout setting")
	}
	if !enabled {
		return nil, s.reject(ctx, span, domain.NewCheckoutDisabledError())
	}

	journey, err := s.journeyRepo.FindJourneyByControlNumber(ctx, req.ControlNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, span, domain.NewJourneyNotFoundError("control number "+req.ControlNumber))
		}
		return nil, s.fail(ctx, span, err, "failed to look up control number", slog.String("control_number", req.ControlNumber))
	}
	if journey.IsComplete() {
		return nil, s.reject(ctx, span, domain.NewAlreadyCompleteError(*journey))
	}

	checkout := domain.JourneyCheckout{
		CheckOutTime:       s.clock.Now(),
		CheckOutTerminal:   req.TerminalID,
		StaffID:            req.StaffID,
		CheckoutResolution: domain.ResolveCheckout(req.Outcome, req.OverrideReason),
	}

	var completed *domain.Journey
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		completed, err = s.journeyRepo.CompleteJourney(ctx, journey.JourneyID, checkout)
		if err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditCheckOut, journey.JourneyID,
			domain.Actor{StaffID: req.StaffID, TerminalID: req.TerminalID},
			map[string]any{"status": journey.Status}, checkOutValues(*completed, req.Outcome.Kind()))
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			latest, findErr := s.journeyRepo.FindJourneyByControlNumber(ctx, req.ControlNumber)
			if findErr == nil {
				journey = latest
			}
			return nil, s.reject(ctx, span, domain.NewAlreadyCompleteError(*journey))
		}
		return nil, s.fail(ctx, span, err, "failed to complete journey", slog.String("journey_id", journey.JourneyID))
	}

	s.LogInfo(ctx, "Member checked out",
		slog.String("journey_id", completed.JourneyID),
		slog.String("control_number", completed.ControlNumber),
		slog.String("outcome", string(req.Outcome.Kind())),
		slog.String("claim_status", completed.ClaimLabel()),
		slog.String("staff_id", req.StaffID))
	return completed, nil
}

// GetJourneyByMember retrieves the member's journey for day, today when day is empty.
func (s *journeyService) GetJourneyByMember(ctx context.Context, memberID string, day string) (*domain.Journey, error) {
	if err := requireFields(map[string]string{"member_id": memberID}); err != nil {
		return nil, err
	}
	day, err := s.clock.DateOrToday(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	journey, err := s.journeyRepo.FindJourneyByMemberAndDay(ctx, memberID, day)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.NewJourneyNotFoundError(fmt.Sprintf("member %s on %s", memberID, day))
		}
		s.LogError(ctx, err, "Failed to get journey by member", slog.String("member_id", memberID))
		return nil, fmt.Errorf("failed to get journey by member: %w", err)
	}
	return journey, nil
}

// GetJourneyByControlNumber retrieves the journey bound to a control number.
func (s *journeyService) GetJourneyByControlNumber(ctx context.Context, controlNumber string) (*domain.Journey, error) {
	if err := requireFields(map[string]string{"control_number": controlNumber}); err != nil {
		return nil, err
	}
	journey, err := s.journeyRepo.FindJourneyByControlNumber(ctx, controlNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.NewJourneyNotFoundError("control number " + controlNumber)
		}
		s.LogError(ctx, err, "Failed to get journey by control number", slog.String("control_number", controlNumber))
		return nil, fmt.Errorf("failed to get journey by control number: %w", err)
	}
	return journey, nil
}

// ListJourneys lists a day's journeys, newest check-in first.
func (s *journeyService) ListJourneys(ctx context.Context, filter domain.JourneyFilter) ([]domain.JourneyDetail, error) {
	normalized, err := s.normalizeJourneyFilter(filter)
	if err != nil {
		return nil, err
	}

	journeys, err := s.journeyRepo.ListJourneys(ctx, normalized)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journeys", slog.String("date", normalized.Date))
		return nil, fmt.Errorf("failed to list journeys: %w", err)
	}
	if journeys == nil {
		journeys = []domain.JourneyDetail{}
	}
	return journeys, nil
}

func (s *journeyService) normalizeJourneyFilter(filter domain.JourneyFilter) (domain.JourneyFilter, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return filter, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, filter.Status)
	}
	date, err := s.clock.DateOrToday(filter.Date)
	if err != nil {
		return filter, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	filter.Date = date
	filter.Page = normalizePage(filter.Page, defaultJourneyListLimit, maxJourneyListLimit)
	return filter, nil
}

// ReopenJourney reverts a completed check-out. This and the resets are the
// only operations that move a journey backwards.
func (s *journeyService) ReopenJourney(ctx context.Context, controlNumber string, actor domain.Actor) (*domain.Journey, error) {
	ctx, span := s.StartSpan(ctx, "journey.reopen", trace.WithAttributes(attribute.String("control.number", controlNumber)))
	defer span.End()

	if err := requireFields(map[string]string{"control_number": controlNumber}); err != nil {
		return nil, err
	}

	journey, err := s.journeyRepo.FindJourneyByControlNumber(ctx, controlNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, s.reject(ctx, span, domain.NewJourneyNotFoundError("control number "+controlNumber))
		}
		return nil, s.fail(ctx, span, err, "failed to look up control number", slog.String("control_number", controlNumber))
	}
	if !journey.IsComplete() {
		return nil, s.reject(ctx, span, domain.NewNotCompleteError(*journey))
	}

	var reopened *domain.Journey
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		reopened, err = s.journeyRepo.ReopenJourney(ctx, journey.JourneyID)
		if err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditReopenCheckout, journey.JourneyID, actor,
			checkOutValues(*journey, ""), map[string]any{"status": reopened.Status})
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, s.reject(ctx, span, domain.NewNotCompleteError(*journey))
		}
		return nil, s.fail(ctx, span, err, "failed to reopen journey", slog.String("journey_id", journey.JourneyID))
	}

	s.LogInfo(ctx, "Journey checkout reverted",
		slog.String("journey_id", journey.JourneyID),
		slog.String("control_number", controlNumber),
		slog.String("staff_id", actor.StaffID))
	return reopened, nil
}

// ResetJourney deletes the journey bound to a control number, or every journey of a member.
func (s *journeyService) ResetJourney(ctx context.Context, target domain.JourneyResetTarget, actor domain.Actor) (int, error) {
	ctx, span := s.StartSpan(ctx, "journey.reset", trace.WithAttributes(
		attribute.String("control.number", target.ControlNumber),
		attribute.String("member.id", target.MemberID),
	))
	defer span.End()

	target.ControlNumber = strings.TrimSpace(target.ControlNumber)
	target.MemberID = strings.TrimSpace(target.MemberID)
	if (target.ControlNumber == "") == (target.MemberID == "") {
		return 0, fmt.Errorf("%w: exactly one of control_number or member_id is required", apperrors.ErrValidation)
	}

	var (
		deleted   int
		recordID  string
		oldValues any
		run       func(ctx context.Context) (int, error)
	)

	if target.ControlNumber != "" {
		journey, err := s.journeyRepo.FindJourneyByControlNumber(ctx, target.ControlNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return 0, s.reject(ctx, span, domain.NewJourneyNotFoundError("control number "+target.ControlNumber))
			}
			return 0, s.fail(ctx, span, err, "failed to look up control number", slog.String("control_number", target.ControlNumber))
		}
		recordID = journey.JourneyID
		oldValues = journey
		run = func(ctx context.Context) (int, error) {
			return s.journeyRepo.DeleteJourneyByControlNumber(ctx, target.ControlNumber)
		}
	} else {
		if _, err := s.memberRepo.FindMemberByID(ctx, target.MemberID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return 0, s.reject(ctx, span, domain.NewMemberNotFoundError(target.MemberID))
			}
			return 0, s.fail(ctx, span, err, "failed to look up member", slog.String("member_id", target.MemberID))
		}
		recordID = target.MemberID
		run = func(ctx context.Context) (int, error) {
			return s.journeyRepo.DeleteJourneysByMember(ctx, target.MemberID)
		}
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = run(ctx)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperrors.ErrNotFound
		}
		values := oldValues
		if values == nil {
			values = map[string]any{"member_id": target.MemberID, "journeys": deleted}
		}
		return s.appendAudit(ctx, domain.AuditResetJourney, recordID, actor, values, nil)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			key := "control number " + target.ControlNumber
			if target.MemberID != "" {
				key = "member " + target.MemberID
			}
			return 0, s.reject(ctx, span, domain.NewJourneyNotFoundError(key))
		}
		return 0, s.fail(ctx, span, err, "failed to reset journey", slog.String("record_id", recordID))
	}

	s.LogInfo(ctx, "Journey data reset",
		slog.String("control_number", target.ControlNumber),
		slog.String("member_id", target.MemberID),
		slog.Int("deleted", deleted),
		slog.String("staff_id", actor.StaffID))
	return deleted, nil
}

// ResetAllJourneys deletes every journey. It refuses to run without confirmation.
func (s *journeyService) ResetAllJourneys(ctx context.Context, confirm bool, actor domain.Actor) (int, error) {
	ctx, span := s.StartSpan(ctx, "journey.reset_all")
	defer span.End()

	if !confirm {
		return 0, fmt.Errorf("%w: reset of all journeys requires confirmation", apperrors.ErrValidation)
	}

	var deleted int
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.journeyRepo.DeleteAllJourneys(ctx)
		if err != nil {
			return err
		}
		return s.appendAudit(ctx, domain.AuditResetAllJourneys, "all", actor,
			map[string]any{"journeys": deleted}, nil)
	})
	if err != nil {
		return 0, s.fail(ctx, span, err, "failed to reset all journeys")
	}

	span.SetAttributes(attribute.Int("journeys.deleted", deleted))
	s.LogInfo(ctx, "All journey data reset", slog.Int("deleted", deleted), slog.String("staff_id", actor.StaffID))
	return deleted, nil
}

func (s *journeyService) appendAudit(ctx context.Context, action domain.AuditAction, recordID string, actor domain.Actor, oldValues, newValues any) error {
	entry, err := domain.NewAuditLogEntry(action, domain.TableMemberJourney, recordID, actor.StaffID, actor.TerminalID, oldValues, newValues, s.clock.Now())
	if err != nil {
		return fmt.Errorf("failed to encode audit entry: %w", err)
	}
	return s.auditRepo.AppendAuditLog(ctx, entry)
}

// reject records a rule violation on the span and returns it unchanged.
func (s *journeyService) reject(ctx context.Context, span trace.Span, err *domain.JourneyError) error {
	span.SetAttributes(attribute.String("journey.rejected", string(err.Reason)))
	s.LogWarn(ctx, "Journey operation rejected", slog.String("reason", string(err.Reason)), slog.String("error", err.Error()))
	return err
}

// fail records a storage failure and wraps it as an internal error.
func (s *journeyService) fail(ctx context.Context, span trace.Span, err error, msg string, keyvals ...any) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.LogError(ctx, err, msg, keyvals...)
	return apperrors.NewInternalServerError(msg, err)
}

func checkInValues(j domain.Journey) map[string]any {
	return map[string]any{
		"member_id":                  j.MemberID,
		"control_number":             j.ControlNumber,
		"check_in_date":              j.CheckInDate,
		"check_in_terminal":          j.CheckInTerminal,
		"meal_stub_issued":           j.MealStubIssued,
		"transportation_stub_issued": j.TransportationStubIssued,
		"status":                     j.Status,
	}
}

func checkOutValues(j domain.Journey, kind domain.OutcomeKind) map[string]any {
	values := map[string]any{
		"control_number":        j.ControlNumber,
		"claimed":               j.Claimed,
		"lost_stub":             j.LostStub,
		"incorrect_stub":        j.IncorrectStub,
		"different_stub_number": j.DifferentStubNumber,
		"different_stub_value":  j.DifferentStubValue,
		"manual_form_signed":    j.ManualFormSigned,
		"override_reason":       j.OverrideReason,
		"check_out_terminal":    j.CheckOutTerminal,
		"status":                j.Status,
	}
	if kind != "" {
		values["outcome"] = kind
	}
	return values
}
