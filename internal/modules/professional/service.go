package professional

import (
	"context"
	"errors"

	"profhub/internal/domain"
	"profhub/internal/repository"
)

type Service struct {
	repo ProfessionalRepository
}

func NewService(repo ProfessionalRepository) *Service {
	return &Service{repo: repo}
}

// Create registers a profile for userID. A zero userID falls back to the id
// in the request body.
func (s *Service) Create(ctx context.Context, userID int64, req CreateProfessionalRequest) (*domain.Professional, error) {
	if userID <= 0 {
		userID = req.UserID
	}
	if userID <= 0 {
		return nil, ErrInvalidRequest
	}

	p, err := s.repo.Create(ctx, domain.CreateProfessional{
		UserID:            userID,
		PhoneNumber:       req.PhoneNumber,
		Description:       req.Description,
		Categories:        req.Categories,
		NotificationToken: req.NotificationToken,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Professional, error) {
	out, err := s.repo.FindAll(ctx)
	return out, mapRepoError(err)
}

func (s *Service) Ranking(ctx context.Context) ([]domain.RatedProfessional, error) {
	out, err := s.repo.FindSortedByRating(ctx)
	return out, mapRepoError(err)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Professional, error) {
	if id <= 0 {
		return nil, ErrInvalidRequest
	}
	p, err := s.repo.FindOne(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}

func (s *Service) GetWithCategories(ctx context.Context, id int64) (*domain.Professional, error) {
	if id <= 0 {
		return nil, ErrInvalidRequest
	}
	p, err := s.repo.GetWithCategories(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}

// Update applies the patch and returns the professional with its categories.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProfessionalRequest) (*domain.Professional, error) {
	if id <= 0 {
		return nil, ErrInvalidRequest
	}

	ok, err := s.repo.Update(ctx, id, domain.UpdateProfessional{
		PhoneNumber: req.PhoneNumber,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	p, err := s.repo.GetWithCategories(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidRequest
	}
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return mapRepoError(err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func mapRepoError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrValidation):
		return errors.Join(ErrInvalidRequest, err)
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferential):
		return ErrReferential
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}
