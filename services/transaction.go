package services

import (
	"context"
	"fmt"

	"github.com/upb/wte-dashboard/backend/repositories"
)

// InTransaction runs fn with a context bound to a new transaction and
// commits when fn succeeds. An error or panic from fn rolls it back.
func InTransaction[T any](ctx context.Context, txMgr repositories.TransactionManager, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	tx, err := txMgr.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("failed to begin transaction: %w", err)
	}

	finished := false
	defer func() {
		if !finished {
			_ = tx.Rollback()
		}
	}()

	result, err := fn(tx.Context())
	if err != nil {
		finished = true
		if rbErr := tx.Rollback(); rbErr != nil {
			return zero, fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return zero, err
	}

	finished = true
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}
