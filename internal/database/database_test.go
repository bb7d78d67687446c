package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wichananm65/gumtree-backend/internal/logging"
)

func TestConnect_RetriesUntilPingSucceeds(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	opts := Options{ConnectTimeout: time.Second, RetryInterval: time.Millisecond}
	err = Connect(context.Background(), db, opts, logging.Discard())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnect_StopsOnContextCancel(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	for i := 0; i < 100; i++ {
		mock.ExpectPing().WillReturnError(errors.New("unreachable"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	opts := Options{ConnectTimeout: time.Second, RetryInterval: 10 * time.Millisecond}
	err = Connect(ctx, db, opts, logging.Discard())
	assert.Error(t, err)
}

func TestMigrate_UsesEmbeddedMigrations(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	called := false
	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		called = true
		assert.Equal(t, ".", dir)
		return nil
	}

	require.NoError(t, Migrate(context.Background(), nil))
	assert.True(t, called)
}

func TestMigrate_WrapsError(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
		return errors.New("boom")
	}

	err := Migrate(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error: boom")
}
