package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"profhub/internal/database"
	"profhub/internal/domain"
	"profhub/internal/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:repo_test_%s?mode=memory&cache=shared", name)
	db, err := database.Connect(dsn, database.Options{Log: logger.Nop(), LogLevel: gormlogger.Silent})
	require.NoError(t, err, "failed to open sqlite db")
	require.NoError(t, AutoMigrate(db), "failed to migrate db")

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id int64) userModel {
	t.Helper()

	m := userModel{
		ID:           id,
		Name:         fmt.Sprintf("User %d", id),
		Email:        fmt.Sprintf("user%d@example.com", id),
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func seedCategories(t *testing.T, db *gorm.DB, ids ...int64) {
	t.Helper()

	for _, id := range ids {
		m := categoryModel{ID: id, Name: fmt.Sprintf("Category %d", id)}
		require.NoError(t, db.Create(&m).Error)
	}
}

func seedProfessional(t *testing.T, repo *ProfessionalRepository, userID int64, categories ...int64) *domain.Professional {
	t.Helper()

	p, err := repo.Create(context.Background(), domain.CreateProfessional{
		UserID:      userID,
		PhoneNumber: "+1 555 0100",
		Description: fmt.Sprintf("Professional of user %d", userID),
		Categories:  categories,
	})
	require.NoError(t, err)
	return p
}

func associationCount(t *testing.T, db *gorm.DB, professionalID int64) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&professionalCategoryModel{}).Where("professional_id = ?", professionalID).Count(&n).Error)
	return n
}

func categoryIDsOf(cats []domain.Category) []int64 {
	ids := make([]int64, 0, len(cats))
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	return ids
}
