package txmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotBooking/pkg/dbmetrics"
)

func newManager(t *testing.T, opts ...Option) (*TransactionManager, sqlmock.Sqlmock, *dbmetrics.DB) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil)
	opts = append([]Option{WithBackoff(time.Millisecond)}, opts...)
	return NewTransactionManager(wrapped, opts...), mock, wrapped
}

func insert(wrapped *dbmetrics.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := dbmetrics.GetExecutor(ctx, wrapped).ExecContext(ctx, "INSERT INTO appointments DEFAULT VALUES")
		return err
	}
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	mgr, mock, wrapped := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return insert(wrapped)(ctx)
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoReadOnly_SkipsLockTimeout(t *testing.T) {
	mgr, mock, wrapped := newManager(t, WithLockTimeout(time.Second))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM appointments").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := mgr.DoReadOnly(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		var id int64
		return dbmetrics.GetExecutor(ctx, wrapped).QueryRowContext(ctx, "SELECT id FROM appointments").Scan(&id)
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollsBackOnError(t *testing.T) {
	mgr, mock, _ := newManager(t)
	errBusiness := errors.New("slot taken")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RetriesSerializationFailure(t *testing.T) {
	mgr, mock, wrapped := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: codeSerializationFailure})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mgr.DoSerializable(context.Background(), insert(wrapped))

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	mgr, mock, wrapped := newManager(t, WithMaxRetries(1))

	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: codeSerializationFailure})
		mock.ExpectRollback()
	}

	err := mgr.DoSerializable(context.Background(), insert(wrapped))

	assert.ErrorIs(t, err, ErrSerializationFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_LockTimeout(t *testing.T) {
	mgr, mock, wrapped := newManager(t, WithLockTimeout(250*time.Millisecond))

	mock.ExpectBegin()
	mock.ExpectExec("SET LOCAL lock_timeout = '250ms'").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: codeLockNotAvailable})
	mock.ExpectRollback()

	err := mgr.DoSerializable(context.Background(), insert(wrapped))

	assert.ErrorIs(t, err, ErrLockNotAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedCallReusesTransaction(t *testing.T) {
	mgr, mock, wrapped := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoSerializable(ctx, insert(wrapped))
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
