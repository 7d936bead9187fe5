package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/repositories"
)

type txKey struct{}

// querier is the statement surface shared by *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// conn returns the transaction begun by TxManager on ctx, or the pool.
func (db *DB) conn(ctx context.Context) querier {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		return t.sqlTx
	}
	return db.DB
}

// TxManager begins transactions that repositories join through the context
type TxManager struct {
	db     *DB
	logger *zap.Logger
}

func NewTxManager(db *DB, logger *zap.Logger) *TxManager {
	return &TxManager{db: db, logger: logger}
}

// Begin opens a transaction. Repository calls made with the returned
// transaction's Context run inside it.
func (m *TxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	sqlTx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	t := &tx{sqlTx: sqlTx, logger: m.logger}
	t.ctx = context.WithValue(ctx, txKey{}, t)
	return t, nil
}

type tx struct {
	sqlTx  *sql.Tx
	ctx    context.Context
	logger *zap.Logger
}

func (t *tx) Context() context.Context { return t.ctx }

func (t *tx) Commit() error {
	if err := t.sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Rollback is a no-op on a finished transaction
func (t *tx) Rollback() error {
	err := t.sqlTx.Rollback()
	if err == nil || errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	t.logger.Warn("rollback failed", zap.Error(err))
	return fmt.Errorf("rollback transaction: %w", err)
}
