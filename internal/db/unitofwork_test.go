package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/focussim/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUOW(t *testing.T) (*db.SQLiteUnitOfWork, *sql.DB) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database), database
}

func insertSummary(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO session_summaries (id, environment, level, started_at, ended_at, created_at)
		 VALUES (?, 'desk', 2, 'a', 'b', 'c')`, id)
	return err
}

func summaryExists(t *testing.T, database *sql.DB, id string) bool {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM session_summaries WHERE id = ?`, id).Scan(&n))
	return n == 1
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow, database := newUOW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertSummary(ctx, tx, "s1")
	})
	require.NoError(t, err)
	assert.True(t, summaryExists(t, database, "s1"))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow, database := newUOW(t)
	errBoom := errors.New("event insert failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertSummary(ctx, tx, "s2"); err != nil {
			return err
		}
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)
	assert.False(t, summaryExists(t, database, "s2"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow, database := newUOW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertSummary(ctx, tx, "s3")
			panic("boom")
		})
	})
	assert.False(t, summaryExists(t, database, "s3"))
}
