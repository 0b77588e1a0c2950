package review

import (
	"context"
	"errors"
	"strings"

	"profhub/internal/domain"
	"profhub/internal/repository"
)

type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByProfessional(ctx context.Context, professionalID int64, limit, offset int) ([]domain.Review, error)
	ExistsByUserAndProfessional(ctx context.Context, userID, professionalID int64) (bool, error)
}

type ProfessionalGate interface {
	FindOne(ctx context.Context, id int64) (*domain.Professional, error)
}

type Service struct {
	reviews       ReviewStore
	professionals ProfessionalGate
}

func NewService(reviews ReviewStore, professionals ProfessionalGate) *Service {
	return &Service{reviews: reviews, professionals: professionals}
}

// Create stores one review per user per professional. Professionals cannot
// review themselves.
func (s *Service) Create(ctx context.Context, userID, professionalID int64, req CreateReviewRequest) (*domain.Review, error) {
	if userID <= 0 || professionalID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	p, err := s.professionals.FindOne(ctx, professionalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID == userID {
		return nil, ErrForbidden
	}

	exists, err := s.reviews.ExistsByUserAndProfessional(ctx, userID, professionalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrConflict
	}

	rv := &domain.Review{
		ProfessionalID: professionalID,
		UserID:         userID,
		Rating:         req.Rating,
		Comment:        strings.TrimSpace(req.Comment),
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		switch {
		case errors.Is(err, repository.ErrValidation):
			return nil, ErrInvalidRequest
		case errors.Is(err, repository.ErrReferential):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrConflict):
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) GetByProfessional(ctx context.Context, professionalID int64, limit, offset int) ([]domain.Review, error) {
	if professionalID <= 0 {
		return nil, ErrInvalidRequest
	}
	if _, err := s.professionals.FindOne(ctx, professionalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.reviews.GetByProfessional(ctx, professionalID, limit, offset)
}
