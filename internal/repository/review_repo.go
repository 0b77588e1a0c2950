package repository

import (
	"context"

	"profhub/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func toDomainReview(m reviewModel) domain.Review {
	return domain.Review{
		ID:             m.ID,
		ProfessionalID: m.ProfessionalID,
		UserID:         m.UserID,
		Rating:         m.Rating,
		Comment:        strVal(m.Comment),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toReviewModel(r *domain.Review) reviewModel {
	return reviewModel{
		ID:             r.ID,
		ProfessionalID: r.ProfessionalID,
		UserID:         r.UserID,
		Rating:         r.Rating,
		Comment:        strPtr(r.Comment),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if rv.Rating < 1 || rv.Rating > 5 {
		return validationError("rating must be between 1 and 5")
	}

	m := toReviewModel(rv)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classifyError(err)
	}
	*rv = toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByProfessional(ctx context.Context, professionalID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var rows []reviewModel
	tx := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, classifyError(tx.Error)
	}

	out := make([]domain.Review, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) ExistsByUserAndProfessional(ctx context.Context, userID, professionalID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&reviewModel{}).
		Where("user_id = ? AND professional_id = ?", userID, professionalID).
		Count(&count).Error
	return count > 0, classifyError(err)
}

// AverageByProfessional returns one aggregate per reviewed professional.
func (r *ReviewRepository) AverageByProfessional(ctx context.Context) ([]domain.RatingSummary, error) {
	out, err := ratingSummaries(r.db.WithContext(ctx))
	return out, classifyError(err)
}

func ratingSummaries(db *gorm.DB) ([]domain.RatingSummary, error) {
	var rows []struct {
		ProfessionalID int64
		Average        float64
		Count          int64
	}
	err := db.Model(&reviewModel{}).
		Select("professional_id, CAST(AVG(rating) AS FLOAT) AS average, COUNT(*) AS count").
		Group("professional_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.RatingSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.RatingSummary{
			ProfessionalID: row.ProfessionalID,
			Average:        row.Average,
			Count:          row.Count,
		})
	}
	return out, nil
}
