// Package database opens the Postgres pool and applies schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	"github.com/wichananm65/gumtree-backend/internal/database/migrations"
	"github.com/wichananm65/gumtree-backend/internal/logging"
)

// Options controls pool size and startup connection behaviour.
type Options struct {
	MaxOpenConns   int
	ConnectTimeout time.Duration
	RetryInterval  time.Duration
}

// Open creates the pool and blocks until the database answers a ping.
func Open(ctx context.Context, dsn string, opts Options, log logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxOpenConns)
	}
	db.SetConnMaxLifetime(time.Hour)

	if err := Connect(ctx, db, opts, log); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Connect pings db until it succeeds. Each attempt is bounded by
// ConnectTimeout; failed attempts are retried every RetryInterval with no
// attempt limit. Only ctx cancellation stops the loop.
func Connect(ctx context.Context, db *sql.DB, opts Options, log logging.Logger) error {
	interval := opts.RetryInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	attempt := 0
	err := retry.Do(ctx, retry.NewConstant(interval), func(ctx context.Context) error {
		attempt++
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		if err := db.PingContext(pingCtx); err != nil {
			log.Warn(ctx, "database connection failed, retrying", "attempt", attempt, "retry_in", interval.String(), "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("db connect error: %w", err)
	}

	log.Info(ctx, "database connected", "attempts", attempt)
	return nil
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Migrate applies the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}
