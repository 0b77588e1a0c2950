package repository

import (
	"context"
	"testing"

	"profhub/internal/domain"
	"profhub/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewRepository_CreateListAndAverage(t *testing.T) {
	db := setupTestDB(t)
	reviews := NewReviewRepository(db)
	professionals := NewProfessionalRepository(db, logger.Nop())
	ctx := context.Background()

	seedUser(t, db, 1)
	seedUser(t, db, 2)
	seedUser(t, db, 3)
	p := seedProfessional(t, professionals, 1)

	require.NoError(t, reviews.Create(ctx, &domain.Review{ProfessionalID: p.ID, UserID: 2, Rating: 2, Comment: "late"}))
	require.NoError(t, reviews.Create(ctx, &domain.Review{ProfessionalID: p.ID, UserID: 3, Rating: 5}))

	list, err := reviews.GetByProfessional(ctx, p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	exists, err := reviews.ExistsByUserAndProfessional(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	summaries, err := reviews.AverageByProfessional(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, p.ID, summaries[0].ProfessionalID)
	assert.InDelta(t, 3.5, summaries[0].Average, 1e-9)
	assert.Equal(t, int64(2), summaries[0].Count)
}

func TestReviewRepository_Rejects(t *testing.T) {
	db := setupTestDB(t)
	reviews := NewReviewRepository(db)
	seedUser(t, db, 1)

	assert.ErrorIs(t, reviews.Create(context.Background(), &domain.Review{ProfessionalID: 1, UserID: 1, Rating: 6}), ErrValidation)
	assert.ErrorIs(t, reviews.Create(context.Background(), &domain.Review{ProfessionalID: 77, UserID: 1, Rating: 4}), ErrReferential)
}
