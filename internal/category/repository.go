package category

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrDuplicateSlug = errors.New("category already exists")
	ErrValidation    = errors.New("name and imageUrl are required")
)

// Repository provides access to category records.
type Repository interface {
	// List returns categories newest first.
	List(ctx context.Context) ([]Category, error)
	// Create inserts c unless a category with the same slug exists, in which
	// case it returns ErrDuplicateSlug and writes nothing.
	Create(ctx context.Context, c Category) (Category, error)
	// Delete removes the category with id. Unknown ids are not an error.
	Delete(ctx context.Context, id int64) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

// InMemoryRepository is a Repository for tests and local runs. The slug
// check and insert happen under one lock.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
	nextID  int64
	now     func() time.Time
}

func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Category, 0, len(seed)),
		nextID:  1,
		now:     func() time.Time { return time.Now().UTC() },
	}

	var maxID int64
	for _, c := range seed {
		r.storage = append(r.storage, c)
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(_ context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) Create(_ context.Context, c Category) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.storage {
		if existing.Slug == c.Slug {
			return Category{}, ErrDuplicateSlug
		}
	}

	c.ID = r.nextID
	r.nextID++
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	r.storage = append(r.storage, c)
	return c, nil
}

func (r *InMemoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *InMemoryRepository) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.storage {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}
