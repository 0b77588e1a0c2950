package professional

import (
	"context"

	"profhub/internal/domain"
)

type ProfessionalRepository interface {
	Create(ctx context.Context, in domain.CreateProfessional) (*domain.Professional, error)
	GetWithCategories(ctx context.Context, id int64) (*domain.Professional, error)
	FindAll(ctx context.Context) ([]domain.Professional, error)
	FindOne(ctx context.Context, id int64) (*domain.Professional, error)
	Update(ctx context.Context, id int64, in domain.UpdateProfessional) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	FindSortedByRating(ctx context.Context) ([]domain.RatedProfessional, error)
}
