package services

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/dto"
)

// AuditLogSvc exposes the audit trail to administrators
type AuditLogSvc interface {
	// ListAuditLogs retrieves entries filtered by operating day, action and staff.
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) ([]domain.AuditLogEntry, error)
}
