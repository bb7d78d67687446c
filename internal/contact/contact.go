// Package contact stores messages sent through the storefront contact form.
package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

var ErrValidation = errors.New("Name and message are required")

type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate trims the free-text fields and requires a name and a message.
func (m *Message) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Message = strings.TrimSpace(m.Message)
	if m.Name == "" || m.Message == "" {
		return ErrValidation
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, m Message) (Message, error)
}

type InMemoryRepository struct {
	mu     sync.Mutex
	items  []Message
	nextID int64
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Create(_ context.Context, m Message) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now().UTC()
	r.items = append(r.items, m)
	return m, nil
}

// all returns a copy of the stored messages in insertion order.
func (r *InMemoryRepository) all() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.items...)
}
