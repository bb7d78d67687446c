package category

import (
	"context"
	"strings"
)

// Service provides business logic for categories.
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) List(ctx context.Context) ([]Category, error) {
	return s.repo.List(ctx)
}

// Create validates input, derives the slug and stores the category. The slug
// is fixed at creation; categories cannot be renamed.
func (s *Service) Create(ctx context.Context, name, imageURL string) (Category, error) {
	name = strings.TrimSpace(name)
	imageURL = strings.TrimSpace(imageURL)
	if name == "" || imageURL == "" {
		return Category{}, ErrValidation
	}

	return s.repo.Create(ctx, Category{
		Name:     name,
		Slug:     Slugify(name),
		ImageURL: imageURL,
	})
}

// Delete removes a category. Products that reference its slug are left as they are.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// SlugExists satisfies product.CategoryLookup.
func (s *Service) SlugExists(ctx context.Context, slug string) (bool, error) {
	return s.repo.SlugExists(ctx, slug)
}
