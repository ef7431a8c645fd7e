package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
)

const selectAuditLogFields = `
	log_id, action, table_name, record_id, old_values, new_values, staff_id, terminal_id, created_at
`

type SQLAuditLogRepository struct {
	BaseRepository
}

func newSQLAuditLogRepository(db *sql.DB) portsrepo.AuditLogRepositoryFacade {
	return &SQLAuditLogRepository{
		BaseRepository: BaseRepository{DB: db},
	}
}

var _ portsrepo.AuditLogRepositoryFacade = (*SQLAuditLogRepository)(nil)

// AppendAuditLog stores an entry. log_id is assigned by the database.
func (r *SQLAuditLogRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	a := mapping.ToModelAuditLog(entry)
	query := `
		INSERT INTO audit_logs (action, table_name, record_id, old_values, new_values, staff_id, terminal_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.conn(ctx).ExecContext(ctx, query,
		a.Action,
		a.TableName,
		a.RecordID,
		jsonText(a.OldValues),
		jsonText(a.NewValues),
		a.StaffID,
		a.TerminalID,
		toMillis(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to append audit log %s %s: %w", a.Action, a.RecordID, err)
	}
	return nil
}

func jsonText(b []byte) sql.NullString {
	return sql.NullString{String: string(b), Valid: len(b) > 0}
}

// ListAuditLogs retrieves entries newest first.
func (r *SQLAuditLogRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Action != "" {
		conds = append(conds, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.StaffID != "" {
		conds = append(conds, "staff_id = ?")
		args = append(args, filter.StaffID)
	}
	if filter.Since != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, toMillis(*filter.Since))
	}
	if filter.Until != nil {
		conds = append(conds, "created_at < ?")
		args = append(args, toMillis(*filter.Until))
	}

	query := `SELECT ` + selectAuditLogFields + ` FROM audit_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, log_id DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var (
			a                    models.AuditLog
			oldValues, newValues sql.NullString
			createdAt            int64
		)
		if err := rows.Scan(
			&a.LogID,
			&a.Action,
			&a.TableName,
			&a.RecordID,
			&oldValues,
			&newValues,
			&a.StaffID,
			&a.TerminalID,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		if oldValues.Valid {
			a.OldValues = []byte(oldValues.String)
		}
		if newValues.Valid {
			a.NewValues = []byte(newValues.String)
		}
		a.CreatedAt = fromMillis(createdAt)
		logs = append(logs, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit logs: %w", err)
	}
	return mapping.ToDomainAuditLogSlice(logs), nil
}
