package product

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrNotFound        = errors.New("product not found")
	ErrValidation      = errors.New("name and category are required")
	ErrUnknownCategory = errors.New("category does not exist")
)

type Repository interface {
	// List returns products newest first, restricted to category when it is non-empty.
	List(ctx context.Context, category string) ([]Product, error)
	GetByID(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	// Update applies the non-nil fields of in to the product with id.
	Update(ctx context.Context, id int64, in Input) (Product, error)
	// Delete removes the product with id. Unknown ids are not an error.
	Delete(ctx context.Context, id int64) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// local runs.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
	nextID  int64
	now     func() time.Time
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{
		storage: make([]Product, 0, len(seed)),
		nextID:  1,
		now:     func() time.Time { return time.Now().UTC() },
	}

	var maxID int64
	for _, p := range seed {
		r.storage = append(r.storage, p)
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	r.nextID = maxID + 1
	return r
}

func (r *InMemoryRepository) List(_ context.Context, category string) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	for _, p := range r.storage {
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id int64) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	now := r.now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Thicknesses == nil {
		p.Thicknesses = Thicknesses{}
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) Update(_ context.Context, id int64, in Input) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		if r.storage[i].ID != id {
			continue
		}
		p := r.storage[i]
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.Category != nil {
			p.Category = *in.Category
		}
		if in.Description != nil {
			p.Description = *in.Description
		}
		if in.Thicknesses != nil {
			p.Thicknesses = *in.Thicknesses
		}
		if in.ImageURL != nil {
			p.ImageURL = *in.ImageURL
		}
		p.UpdatedAt = r.now()
		r.storage[i] = p
		return p, nil
	}
	return Product{}, ErrNotFound
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
