package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/g2ix/basic-registration/internal/apperrors"
	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	portssvc "github.com/g2ix/basic-registration/internal/core/ports/services"
	"github.com/g2ix/basic-registration/internal/dto"
	"github.com/g2ix/basic-registration/internal/utils/optime"
)

const (
	defaultAuditListLimit = 100
	maxAuditListLimit     = 1000
)

type auditLogService struct {
	BaseService
	auditRepo portsrepo.AuditLogReader
	clock     *optime.Clock
}

// NewAuditLogService creates the audit log query service.
func NewAuditLogService(repo portsrepo.AuditLogReader, clock *optime.Clock) portssvc.AuditLogSvc {
	if clock == nil {
		clock = optime.NewClock(optime.DefaultZone, nil)
	}
	return &auditLogService{BaseService: newBaseService(), auditRepo: repo, clock: clock}
}

var _ portssvc.AuditLogSvc = (*auditLogService)(nil)

// ListAuditLogs lists entries, optionally restricted to one operating day.
func (s *auditLogService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLogEntry, error) {
	filter := domain.AuditLogFilter{
		Action:  domain.AuditAction(strings.ToUpper(strings.TrimSpace(params.Action))),
		StaffID: strings.TrimSpace(params.StaffID),
		Page:    normalizePage(domain.Page{Limit: params.Limit, Offset: params.Offset}, defaultAuditListLimit, maxAuditListLimit),
	}

	if params.Date != "" {
		start, end, err := optime.DayBounds(params.Date, s.clock.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.Since = &start
		filter.Until = &end
	}

	entries, err := s.auditRepo.ListAuditLogs(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list audit logs")
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if entries == nil {
		entries = []domain.AuditLogEntry{}
	}
	return entries, nil
}
