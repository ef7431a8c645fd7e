package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/g2ix/basic-registration/internal/apperrors"
	portsrepo "github.com/g2ix/basic-registration/internal/core/ports/repositories"
)

// txKey carries the active *sql.Tx in a context.
type txKey struct{}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	DB *sql.DB
}

// conn returns the transaction bound to ctx, or the database when there is none.
func (r *BaseRepository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return r.DB
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(tx *sql.Tx) error {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// SQLTransactor implements portsrepo.Transactor on a database/sql handle.
type SQLTransactor struct {
	BaseRepository
}

func newSQLTransactor(db *sql.DB) *SQLTransactor {
	return &SQLTransactor{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.Transactor = (*SQLTransactor)(nil)

// WithinTransaction runs fn in a transaction. Calls nested inside fn join the outer transaction.
func (t *SQLTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed
	defer t.Rollback(tx)

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	return t.Commit(tx)
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func toNullMillis(value sql.NullTime) sql.NullInt64 {
	if !value.Valid {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(value.Time), Valid: true}
}

func fromNullMillis(value sql.NullInt64) sql.NullTime {
	if !value.Valid {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: fromMillis(value.Int64), Valid: true}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
