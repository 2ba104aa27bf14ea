// Package tx defines transaction management contracts.
// Domain services depend on these interfaces; the concrete implementation
// lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager is the contract for atomic execution of multi-step mutations.
// Implementations handle BEGIN, COMMIT and ROLLBACK.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the transaction already carried in ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transaction support,
// useful for multi-query reads that need a consistent snapshot.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	// Attempts to modify data will fail.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
