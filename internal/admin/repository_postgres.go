package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getAdminByUsernameQuery = `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = $1
	`
	insertAdminQuery = `
		INSERT INTO admins (username, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
		RETURNING id, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (Admin, error) {
	var a Admin
	err := r.db.QueryRowContext(ctx, getAdminByUsernameQuery, username).
		Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrNotFound
		}
		return Admin{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, a Admin) (Admin, error) {
	err := r.db.QueryRowContext(ctx, insertAdminQuery, a.Username, a.PasswordHash).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Admin{}, ErrUsernameExists
		}
		return Admin{}, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
