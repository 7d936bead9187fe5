// Package servicestest holds testify mocks shared by service tests.
package servicestest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/upb/wte-dashboard/backend/repositories"
)

// MockTransactionManager is a mock implementation of repositories.TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	args := m.Called(ctx)
	if tx := args.Get(0); tx != nil {
		return tx.(repositories.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTransaction is a mock implementation of repositories.Transaction
type MockTransaction struct {
	mock.Mock
	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit() error {
	args := m.Called()
	m.Committed = true
	return args.Error(0)
}

func (m *MockTransaction) Rollback() error {
	args := m.Called()
	m.RolledBack = true
	return args.Error(0)
}

func (m *MockTransaction) Context() context.Context {
	args := m.Called()
	return args.Get(0).(context.Context)
}

// NewTx returns a manager whose Begin yields a transaction carrying ctx.
// Commit and Rollback expectations are left to the caller.
func NewTx(ctx context.Context) (*MockTransactionManager, *MockTransaction) {
	mgr := new(MockTransactionManager)
	tx := new(MockTransaction)
	mgr.On("Begin", mock.Anything).Return(tx, nil)
	tx.On("Context").Return(ctx)
	return mgr, tx
}
