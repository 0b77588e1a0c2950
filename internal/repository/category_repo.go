package repository

import (
	"context"
	"strings"

	"profhub/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func toDomainCategory(m categoryModel) domain.Category {
	return domain.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: strVal(m.Description),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return validationError("category name is required")
	}

	m := categoryModel{Name: name, Description: strPtr(strings.TrimSpace(c.Description))}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return classifyError(err)
	}
	*c = toDomainCategory(m)
	return nil
}

func (r *CategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, classifyError(err)
	}

	out := make([]domain.Category, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainCategory(m))
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var m categoryModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, classifyError(err)
	}
	c := toDomainCategory(m)
	return &c, nil
}

// GetByIDs returns the categories that exist among ids, ordered by id.
func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	out := []domain.Category{}
	if len(ids) == 0 {
		return out, nil
	}

	var rows []categoryModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&rows).Error; err != nil {
		return nil, classifyError(err)
	}
	for _, m := range rows {
		out = append(out, toDomainCategory(m))
	}
	return out, nil
}

// Delete removes the category. Association rows go with it through the
// foreign key cascade.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&professionalCategoryModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&categoryModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, classifyError(err)
	}
	return deleted, nil
}
