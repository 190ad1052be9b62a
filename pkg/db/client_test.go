package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T) (*SQLClient, sqlmock.Sqlmock) {
	t.Helper()
	dbh, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { dbh.Close() })
	return NewWithDB(dbh), mock
}

func TestWithTransaction_Commit(t *testing.T) {
	client, mock := newMockedClient(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := client.WithTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		_, execErr := tx.ExecContext(ctx, "INSERT INTO orders (id) VALUES (?)", 1)
		return execErr
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	client, mock := newMockedClient(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("insert failed")
	err := client.WithTransaction(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		return wantErr
	})

	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecContext(t *testing.T) {
	client, mock := newMockedClient(t)

	mock.ExpectExec("UPDATE orders").WillReturnResult(sqlmock.NewResult(0, 2))

	res, err := client.ExecContext(context.Background(), "UPDATE orders SET status = ?", "confirmed")
	require.NoError(t, err)

	affected, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}
