package mapping

import (
	"database/sql"
	"encoding/json"

	"github.com/g2ix/basic-registration/internal/core/domain"
	"github.com/g2ix/basic-registration/internal/models"
)

// ToModelAuditLog converts a domain AuditLogEntry to a model AuditLog
func ToModelAuditLog(d domain.AuditLogEntry) models.AuditLog {
	return models.AuditLog{
		LogID:      d.LogID,
		Action:     string(d.Action),
		TableName:  d.TableName,
		RecordID:   d.RecordID,
		OldValues:  rawOrNil(d.OldValues),
		NewValues:  rawOrNil(d.NewValues),
		StaffID:    nonEmpty(d.StaffID),
		TerminalID: nonEmpty(d.TerminalID),
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLogEntry
func ToDomainAuditLog(m models.AuditLog) domain.AuditLogEntry {
	return domain.AuditLogEntry{
		LogID:      m.LogID,
		Action:     domain.AuditAction(m.Action),
		TableName:  m.TableName,
		RecordID:   m.RecordID,
		OldValues:  rawOrNil(m.OldValues),
		NewValues:  rawOrNil(m.NewValues),
		StaffID:    m.StaffID.String,
		TerminalID: m.TerminalID.String,
		CreatedAt:  m.CreatedAt,
	}
}

// ToDomainAuditLogSlice converts model AuditLogs to domain AuditLogEntries
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLogEntry {
	ds := make([]domain.AuditLogEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAuditLog(m)
	}
	return ds
}

func rawOrNil(b []byte) json.RawMessage {
	if len(b) == 0 {
		return nil
	}
	return json.RawMessage(b)
}

func nonEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
