package auth

import (
	"context"
	"time"

	"profhub/internal/domain"
)

// UserRepositoryInterface lists only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type jwtService interface {
	GenerateToken(userID int64, email string) (string, error)
	TTL() time.Duration
}
