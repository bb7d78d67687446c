package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wichananm65/gumtree-backend/internal/admin"
	"github.com/wichananm65/gumtree-backend/internal/auth"
	"github.com/wichananm65/gumtree-backend/internal/config"
	"github.com/wichananm65/gumtree-backend/internal/database"
	"github.com/wichananm65/gumtree-backend/internal/logging"
)

// env is what every command needs before it can do work.
type env struct {
	cfg config.Config
	log *logging.SlogLogger
	db  *sql.DB
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logging.New(cfg.IsProduction())
	if cfg.InsecureSecret {
		log.Warn(ctx, "JWT_SECRET not set, signing tokens with the insecure development secret")
	}

	db, err := database.Open(ctx, cfg.DatabaseURL, database.Options{
		MaxOpenConns:   cfg.DBMaxOpenConns,
		ConnectTimeout: cfg.DBConnectTimeout,
		RetryInterval:  cfg.DBRetryInterval,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return &env{cfg: cfg, log: log, db: db}, nil
}

func (e *env) migrate(ctx context.Context) error {
	if err := database.Migrate(ctx, e.db); err != nil {
		return err
	}
	e.log.Info(ctx, "migrations applied")
	return nil
}

func (e *env) adminService() *admin.Service {
	return admin.NewService(admin.NewPostgresRepository(e.db), auth.NewIssuer(e.cfg.JWTSecret, e.cfg.TokenTTL))
}

func (e *env) seedAdmin(ctx context.Context, svc *admin.Service) error {
	created, err := svc.EnsureSeeded(ctx, e.cfg.AdminUsername, e.cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if created {
		e.log.Info(ctx, "admin account created", "username", e.cfg.AdminUsername)
	}
	return nil
}
