package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	productColumns = `id, name, category, description, thicknesses, image_url, created_at, updated_at`

	listProductsQuery = `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC, id DESC
	`
	listProductsByCategoryQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE category = $1
		ORDER BY created_at DESC, id DESC
	`
	getProductByIDQuery = `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`
	insertProductQuery = `
		INSERT INTO products (name, category, description, thicknesses, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	// COALESCE keeps the stored value for every parameter passed as NULL.
	updateProductQuery = `
		UPDATE products
		SET name = COALESCE($1, name),
			category = COALESCE($2, category),
			description = COALESCE($3, description),
			thicknesses = COALESCE($4::text[], thicknesses),
			image_url = COALESCE($5, image_url),
			updated_at = now()
		WHERE id = $6
		RETURNING ` + productColumns + `
	`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var (
		p           Product
		thicknesses []string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, pq.Array(&thicknesses), &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	p.Thicknesses = Thicknesses(thicknesses)
	if p.Thicknesses == nil {
		p.Thicknesses = Thicknesses{}
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context, category string) ([]Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category != "" {
		rows, err = r.db.QueryContext(ctx, listProductsByCategoryQuery, category)
	} else {
		rows, err = r.db.QueryContext(ctx, listProductsQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	if p.Thicknesses == nil {
		p.Thicknesses = Thicknesses{}
	}
	err := r.db.QueryRowContext(ctx, insertProductQuery,
		p.Name, p.Category, p.Description, pq.Array([]string(p.Thicknesses)), p.ImageURL,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, in Input) (Product, error) {
	var thicknesses any
	if in.Thicknesses != nil {
		thicknesses = pq.Array([]string(*in.Thicknesses))
	}

	row := r.db.QueryRowContext(ctx, updateProductQuery,
		nullable(in.Name), nullable(in.Category), nullable(in.Description), thicknesses, nullable(in.ImageURL), id,
	)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, deleteProductQuery, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
