package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/g2ix/basic-registration/internal/core/domain"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
	"github.com/g2ix/basic-registration/internal/models"
	"github.com/g2ix/basic-registration/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectAuditLogFields = `
	log_id, action, table_name, record_id, old_values, new_values, staff_id, terminal_id, created_at
`

type PgxAuditLogRepository struct {
	BaseRepository
}

func newPgxAuditLogRepository(pool *pgxpool.Pool) portsrepo.AuditLogRepositoryFacade {
	return &PgxAuditLogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AuditLogRepositoryFacade = (*PgxAuditLogRepository)(nil)

// AppendAuditLog stores an entry. log_id is assigned by the database.
func (r *PgxAuditLogRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLogEntry) error {
	a := mapping.ToModelAuditLog(entry)
	query := `
		INSERT INTO audit_logs (action, table_name, record_id, old_values, new_values, staff_id, terminal_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		a.Action,
		a.TableName,
		a.RecordID,
		jsonbParam(a.OldValues),
		jsonbParam(a.NewValues),
		a.StaffID,
		a.TerminalID,
		a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit log %s %s: %w", a.Action, a.RecordID, err)
	}
	return nil
}

// jsonbParam sends raw JSON as text so Postgres casts it to JSONB, or NULL when empty.
func jsonbParam(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// ListAuditLogs retrieves entries newest first.
func (r *PgxAuditLogRepository) ListAuditLogs(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLogEntry, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Action != "" {
		conds = append(conds, "action = "+arg(string(filter.Action)))
	}
	if filter.StaffID != "" {
		conds = append(conds, "staff_id = "+arg(filter.StaffID))
	}
	if filter.Since != nil {
		conds = append(conds, "created_at >= "+arg(*filter.Since))
	}
	if filter.Until != nil {
		conds = append(conds, "created_at < "+arg(*filter.Until))
	}

	query := `SELECT ` + selectAuditLogFields + ` FROM audit_logs`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, log_id DESC LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.conn(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit logs: %w", err)
	}
	defer rows.Close()

	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AuditLog, error) {
		var a models.AuditLog
		err := row.Scan(
			&a.LogID,
			&a.Action,
			&a.TableName,
			&a.RecordID,
			&a.OldValues,
			&a.NewValues,
			&a.StaffID,
			&a.TerminalID,
			&a.CreatedAt,
		)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit logs: %w", err)
	}
	return mapping.ToDomainAuditLogSlice(logs), nil
}
