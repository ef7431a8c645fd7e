package models

import (
	"database/sql"
	"time"
)

// AuditLog is a row of the append-only audit_logs table.
type AuditLog struct {
	LogID      int64          `db:"log_id"` // Serial Primary Key
	Action     string         `db:"action"`
	TableName  string         `db:"table_name"`
	RecordID   string         `db:"record_id"`
	OldValues  []byte         `db:"old_values"` // JSON, NULL when absent
	NewValues  []byte         `db:"new_values"` // JSON, NULL when absent
	StaffID    sql.NullString `db:"staff_id"`
	TerminalID sql.NullString `db:"terminal_id"`
	CreatedAt  time.Time      `db:"created_at"`
}
