package repositories

import "context"

// Transactor runs a unit of work atomically. Repositories called with the
// context passed to fn take part in the same store transaction.
type Transactor interface {
	// WithinTransaction begins a transaction, runs fn and commits it.
	// Any error returned by fn rolls the transaction back.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
