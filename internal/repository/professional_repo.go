package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"profhub/internal/domain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const professionalPublicColumns = `professionals.id,
	professionals.user_id,
	users.name,
	users.email,
	users.is_active,
	professionals.phone_number,
	professionals.description,
	professionals.notification_token,
	professionals.created_at,
	professionals.updated_at`

// professionalRow is a professional joined with its owning user.
type professionalRow struct {
	ID                int64
	UserID            int64
	Name              string
	Email             string
	Password          string
	IsActive          bool
	PhoneNumber       string
	Description       string
	NotificationToken *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (row professionalRow) toDomain() domain.Professional {
	return domain.Professional{
		ID:                row.ID,
		UserID:            row.UserID,
		Name:              row.Name,
		Email:             row.Email,
		Password:          row.Password,
		IsActive:          row.IsActive,
		PhoneNumber:       row.PhoneNumber,
		Description:       row.Description,
		NotificationToken: row.NotificationToken,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}
}

type ProfessionalRepository struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewProfessionalRepository(db *gorm.DB, log zerolog.Logger) *ProfessionalRepository {
	return &ProfessionalRepository{
		db:  db,
		log: log.With().Str("repository", "professional").Logger(),
	}
}

// Create inserts the professional and one association row per category id
// in a single transaction, then reads back the owning user's fields.
func (r *ProfessionalRepository) Create(ctx context.Context, in domain.CreateProfessional) (*domain.Professional, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m := professionalModel{
		UserID:            in.UserID,
		PhoneNumber:       strings.TrimSpace(in.PhoneNumber),
		Description:       strings.TrimSpace(in.Description),
		NotificationToken: in.NotificationToken,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	categoryIDs := uniqueIDs(in.Categories)

	var owner userModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if err := insertAssociations(tx, m.ID, categoryIDs); err != nil {
			return err
		}
		return tx.Select("id", "name", "email", "password_hash", "is_active").
			Where("id = ?", in.UserID).
			First(&owner).Error
	})
	if err != nil {
		err = classifyError(err)
		r.log.Error().Err(err).Int64("user_id", in.UserID).Msg("create professional failed")
		return nil, err
	}

	r.log.Info().Int64("professional_id", m.ID).Int("categories", len(categoryIDs)).Msg("professional created")

	return &domain.Professional{
		ID:                m.ID,
		UserID:            m.UserID,
		Name:              owner.Name,
		Email:             owner.Email,
		Password:          owner.PasswordHash,
		IsActive:          owner.IsActive,
		PhoneNumber:       m.PhoneNumber,
		Description:       m.Description,
		NotificationToken: m.NotificationToken,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		CategoryIDs:       append([]int64(nil), in.Categories...),
	}, nil
}

// GetWithCategories returns the professional with its owner's fields and the
// full category records. Categories is empty, never nil, when there are none.
func (r *ProfessionalRepository) GetWithCategories(ctx context.Context, id int64) (*domain.Professional, error) {
	var rows []professionalRow
	err := r.joined(ctx, professionalPublicColumns+", users.password_hash AS password").
		Where("professionals.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	var cats []categoryModel
	err = r.db.WithContext(ctx).
		Model(&categoryModel{}).
		Select("categories.*").
		Joins("JOIN professionals_categories ON categories.id = professionals_categories.category_id").
		Where("professionals_categories.professional_id = ?", id).
		Order("categories.id").
		Find(&cats).Error
	if err != nil {
		return nil, classifyError(err)
	}

	p := rows[0].toDomain()
	p.Categories = make([]domain.Category, 0, len(cats))
	for _, c := range cats {
		p.Categories = append(p.Categories, toDomainCategory(c))
	}
	return &p, nil
}

// FindAll returns every professional joined with its owner. Categories are
// not loaded.
func (r *ProfessionalRepository) FindAll(ctx context.Context) ([]domain.Professional, error) {
	var rows []professionalRow
	err := r.joined(ctx, professionalPublicColumns).
		Order("professionals.id").
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}

	out := make([]domain.Professional, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ProfessionalRepository) FindOne(ctx context.Context, id int64) (*domain.Professional, error) {
	var rows []professionalRow
	err := r.joined(ctx, professionalPublicColumns).
		Where("professionals.id = ?", id).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, classifyError(err)
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}

	p := rows[0].toDomain()
	return &p, nil
}

// Update applies the present scalar fields and, when Categories is set,
// replaces the association set. Both happen in one transaction. It reports
// false when no professional has the id.
func (r *ProfessionalRepository) Update(ctx context.Context, id int64, in domain.UpdateProfessional) (bool, error) {
	updates := map[string]any{"updated_at": time.Now().UTC()}
	if in.PhoneNumber != nil {
		v := strings.TrimSpace(*in.PhoneNumber)
		if v == "" {
			return false, validationError("phone number must not be empty")
		}
		updates["phone_number"] = v
	}
	if in.Description != nil {
		v := strings.TrimSpace(*in.Description)
		if v == "" {
			return false, validationError("description must not be empty")
		}
		updates["description"] = v
	}

	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&professionalModel{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		updated = true

		if in.Categories == nil {
			return nil
		}
		return replaceAssociations(tx, id, uniqueIDs(*in.Categories))
	})
	if err != nil {
		err = classifyError(err)
		r.log.Error().Err(err).Int64("professional_id", id).Msg("update professional failed")
		return false, err
	}

	if updated {
		r.log.Info().Int64("professional_id", id).Bool("categories_replaced", in.Categories != nil).Msg("professional updated")
	}
	return updated, nil
}

// Delete removes the professional and all of its association rows.
func (r *ProfessionalRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("professional_id = ?", id).Delete(&professionalCategoryModel{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&professionalModel{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		err = classifyError(err)
		r.log.Error().Err(err).Int64("professional_id", id).Msg("delete professional failed")
		return false, err
	}

	if deleted {
		r.log.Info().Int64("professional_id", id).Msg("professional deleted")
	}
	return deleted, nil
}

// FindSortedByRating lists all professionals by average review rating,
// highest first. Professionals without reviews rank as 0 and equal averages
// keep the FindAll order.
func (r *ProfessionalRepository) FindSortedByRating(ctx context.Context) ([]domain.RatedProfessional, error) {
	pros, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := ratingSummaries(r.db.WithContext(ctx))
	if err != nil {
		return nil, classifyError(err)
	}
	idx := domain.NewRatingIndex(summaries)

	out := make([]domain.RatedProfessional, 0, len(pros))
	for _, p := range pros {
		out = append(out, domain.RatedProfessional{
			Professional:  p,
			AverageRating: idx.Average(p.ID),
			ReviewCount:   idx.Count(p.ID),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageRating > out[j].AverageRating
	})
	return out, nil
}

// CategoryIDs returns the ids currently associated with the professional.
func (r *ProfessionalRepository) CategoryIDs(ctx context.Context, id int64) ([]int64, error) {
	ids := []int64{}
	err := r.db.WithContext(ctx).
		Model(&professionalCategoryModel{}).
		Where("professional_id = ?", id).
		Order("category_id").
		Pluck("category_id", &ids).Error
	return ids, classifyError(err)
}

func (r *ProfessionalRepository) joined(ctx context.Context, columns string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("professionals").
		Select(columns).
		Joins("JOIN users ON users.id = professionals.user_id")
}

func validateCreate(in domain.CreateProfessional) error {
	switch {
	case in.UserID <= 0:
		return validationError("user id is required")
	case strings.TrimSpace(in.PhoneNumber) == "":
		return validationError("phone number is required")
	case strings.TrimSpace(in.Description) == "":
		return validationError("description is required")
	}
	for _, id := range in.Categories {
		if id <= 0 {
			return validationError("category ids must be positive")
		}
	}
	return nil
}

func insertAssociations(tx *gorm.DB, professionalID int64, categoryIDs []int64) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	rows := make([]professionalCategoryModel, 0, len(categoryIDs))
	for _, cid := range categoryIDs {
		rows = append(rows, professionalCategoryModel{ProfessionalID: professionalID, CategoryID: cid})
	}
	return tx.Create(&rows).Error
}

// replaceAssociations makes the association set equal to categoryIDs by
// deleting the rows that are no longer wanted and inserting the missing ones.
func replaceAssociations(tx *gorm.DB, professionalID int64, categoryIDs []int64) error {
	for _, id := range categoryIDs {
		if id <= 0 {
			return validationError("category ids must be positive")
		}
	}

	var current []int64
	if err := tx.Model(&professionalCategoryModel{}).
		Where("professional_id = ?", professionalID).
		Pluck("category_id", &current).Error; err != nil {
		return err
	}

	want := make(map[int64]struct{}, len(categoryIDs))
	for _, id := range categoryIDs {
		want[id] = struct{}{}
	}
	have := make(map[int64]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}

	var stale []int64
	for _, id := range current {
		if _, ok := want[id]; !ok {
			stale = append(stale, id)
		}
	}
	var missing []int64
	for _, id := range categoryIDs {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}

	if len(stale) > 0 {
		if err := tx.Where("professional_id = ? AND category_id IN ?", professionalID, stale).
			Delete(&professionalCategoryModel{}).Error; err != nil {
			return err
		}
	}
	return insertAssociations(tx, professionalID, missing)
}

// uniqueIDs drops duplicates and keeps first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
