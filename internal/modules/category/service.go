package category

import (
	"context"
	"errors"

	"profhub/internal/domain"
	"profhub/internal/repository"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) error
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service struct {
	categories CategoryRepository
}

func NewService(categories CategoryRepository) *Service {
	return &Service{categories: categories}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.GetAll(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Category, error) {
	if id <= 0 {
		return nil, ErrInvalidRequest
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	c := &domain.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Create(ctx, c); err != nil {
		switch {
		case errors.Is(err, repository.ErrValidation):
			return nil, ErrInvalidRequest
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrConflict
		}
		return nil, err
	}
	return c, nil
}

// Delete removes the category and detaches it from every professional.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidRequest
	}
	ok, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
