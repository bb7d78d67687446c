package admin

import (
	"context"
	"errors"
	"sync"
	"time"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
)

type Repository interface {
	GetByUsername(ctx context.Context, username string) (Admin, error)
	// Create inserts a, returning ErrUsernameExists if the username is taken.
	Create(ctx context.Context, a Admin) (Admin, error)
}

// InMemoryRepository is a Repository for tests and local runs.
type InMemoryRepository struct {
	mu     sync.RWMutex
	admins []Admin
	nextID int64
}

func NewInMemoryRepository(seed []Admin) *InMemoryRepository {
	repo := &InMemoryRepository{
		admins: make([]Admin, 0, len(seed)),
		nextID: 1,
	}

	var maxID int64
	for _, a := range seed {
		repo.admins = append(repo.admins, a)
		if a.ID > maxID {
			maxID = a.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByUsername(_ context.Context, username string) (Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Username == username {
			return a, nil
		}
	}
	return Admin{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, a Admin) (Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.admins {
		if existing.Username == a.Username {
			return Admin{}, ErrUsernameExists
		}
	}

	if a.ID == 0 {
		a.ID = r.nextID
		r.nextID++
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.admins = append(r.admins, a)
	return a, nil
}

func (r *InMemoryRepository) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.admins)
}
