package repositories

import (
	"context"

	"github.com/g2ix/basic-registration/internal/core/domain"
)

// AuditLogWriter appends entries to the audit log
type AuditLogWriter interface {
	// AppendAuditLog durably stores an entry. Entries are never updated.
	AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error
}

// AuditLogReader reads the audit log
type AuditLogReader interface {
	// ListAuditLogs retrieves entries matching the filter, newest first.
	ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, error)
}

// AuditLogRepositoryFacade combines all audit log repository interfaces
type AuditLogRepositoryFacade interface {
	AuditLogReader
	AuditLogWriter
}
