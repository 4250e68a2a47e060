package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kar1timmins/DineLocal/pkg/dbmetrics"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionManager(dbmetrics.Wrap(db, nil)), mock
}

func TestTransactionManager_Commit(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE availability").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		exec := dbmetrics.GetExecutor(ctx, nil)
		_, err := exec.ExecContext(ctx, "UPDATE availability SET booked_slots = 1")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	m, mock := newManager(t)
	errBusiness := errors.New("capacity exceeded")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NestedJoinsOuter(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.Do(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnPanic(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = m.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_BeginFails(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrBeginTx)
}
