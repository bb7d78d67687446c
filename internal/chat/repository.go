package chat

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

type Repository interface {
	Append(ctx context.Context, m Message) (Message, error)
	// History returns a session's messages oldest first.
	History(ctx context.Context, sessionID string) ([]Message, error)
}

type InMemoryRepository struct {
	mu     sync.Mutex
	items  []Message
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Append(_ context.Context, m Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now().UTC()
	r.items = append(r.items, m)
	return m, nil
}

func (r *InMemoryRepository) History(_ context.Context, sessionID string) ([]Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, 0)
	for _, m := range r.items {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, m Message) (Message, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO chat_messages (session_id, role, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, m.SessionID, m.Role, m.Text).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return Message{}, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) History(ctx context.Context, sessionID string) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, role, text, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}
