package domain

import (
	"encoding/json"
	"time"
)

// AuditAction names a state-changing action recorded in the audit log.
type AuditAction string

const (
	AuditCheckIn          AuditAction = "CHECKIN"
	AuditCheckOut         AuditAction = "CHECKOUT"
	AuditReopenCheckout   AuditAction = "REOPEN_CHECKOUT"
	AuditResetJourney     AuditAction = "RESET_JOURNEY"
	AuditResetAllJourneys AuditAction = "RESET_ALL_JOURNEYS"
	AuditCreateMember     AuditAction = "CREATE_MEMBER"
	AuditUpdateMember     AuditAction = "UPDATE_MEMBER"
	AuditDeleteMember     AuditAction = "DELETE_MEMBER"
	AuditUpdateSetting    AuditAction = "UPDATE_SETTING"
)

// Audited table names.
const (
	TableMemberJourney = "member_journey"
	TableMembers       = "members"
	TableSettings      = "settings"
)

// AuditLogEntry is an immutable record of a state change.
type AuditLogEntry struct {
	LogID      int64           `json:"log_id"`
	Action     AuditAction     `json:"action"`
	TableName  string          `json:"table_name"`
	RecordID   string          `json:"record_id"`
	OldValues  json.RawMessage `json:"old_values,omitempty"`
	NewValues  json.RawMessage `json:"new_values,omitempty"`
	StaffID    string          `json:"staff_id"`
	TerminalID string          `json:"terminal_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewAuditLogEntry builds an entry, marshalling old and new values to JSON.
// Nil values are left empty.
func NewAuditLogEntry(action AuditAction, table, recordID, staffID, terminalID string, oldValues, newValues any, at time.Time) (AuditLogEntry, error) {
	entry := AuditLogEntry{
		Action:     action,
		TableName:  table,
		RecordID:   recordID,
		StaffID:    staffID,
		TerminalID: terminalID,
		CreatedAt:  at,
	}
	var err error
	if oldValues != nil {
		if entry.OldValues, err = json.Marshal(oldValues); err != nil {
			return AuditLogEntry{}, err
		}
	}
	if newValues != nil {
		if entry.NewValues, err = json.Marshal(newValues); err != nil {
			return AuditLogEntry{}, err
		}
	}
	return entry, nil
}

// AuditLogFilter narrows an audit log listing. Since/Until bound created_at.
type AuditLogFilter struct {
	Action  AuditAction
	StaffID string
	Since   *time.Time
	Until   *time.Time
	Page
}
