package product

import (
	"context"
	"strings"
)

// CategoryLookup reports whether a category slug exists. Only used in strict mode.
type CategoryLookup interface {
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type Service struct {
	repo       Repository
	categories CategoryLookup
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// WithStrictCategories makes Create and Update reject categories that do not
// match an existing slug. The stored shape is unchanged.
func (s *Service) WithStrictCategories(lookup CategoryLookup) *Service {
	s.categories = lookup
	return s
}

func (s *Service) List(ctx context.Context, category string) ([]Product, error) {
	return s.repo.List(ctx, strings.TrimSpace(category))
}

func (s *Service) GetByID(ctx context.Context, id int64) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (Product, error) {
	p := Product{Thicknesses: Thicknesses{}}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if p.Name == "" || p.Category == "" {
		return Product{}, ErrValidation
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Thicknesses != nil {
		p.Thicknesses = *in.Thicknesses
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}

	if err := s.checkCategory(ctx, p.Category); err != nil {
		return Product{}, err
	}
	return s.repo.Create(ctx, p)
}

// Update merges the provided fields into the stored product. A missing
// product is reported before any field is validated.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Product, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return Product{}, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Product{}, ErrValidation
		}
		in.Name = &name
	}
	if in.Category != nil {
		cat := strings.TrimSpace(*in.Category)
		if cat == "" {
			return Product{}, ErrValidation
		}
		in.Category = &cat
		if err := s.checkCategory(ctx, cat); err != nil {
			return Product{}, err
		}
	}
	return s.repo.Update(ctx, id, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) checkCategory(ctx context.Context, slug string) error {
	if s.categories == nil {
		return nil
	}
	ok, err := s.categories.SlugExists(ctx, slug)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownCategory
	}
	return nil
}
