package repository

import (
	"time"

	"gorm.io/gorm"
)

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name;not null"`
	Email        string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type professionalModel struct {
	ID                int64     `gorm:"column:id;primaryKey"`
	UserID            int64     `gorm:"column:user_id;not null;uniqueIndex"`
	PhoneNumber       string    `gorm:"column:phone_number;not null"`
	Description       string    `gorm:"column:description;not null"`
	NotificationToken *string   `gorm:"column:notification_token"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`

	User *userModel `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (professionalModel) TableName() string { return "professionals" }

type categoryModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Description *string   `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (categoryModel) TableName() string { return "categories" }

// professionalCategoryModel is an association row. The pair is the key.
type professionalCategoryModel struct {
	ProfessionalID int64 `gorm:"column:professional_id;primaryKey;autoIncrement:false"`
	CategoryID     int64 `gorm:"column:category_id;primaryKey;autoIncrement:false;index"`

	Professional *professionalModel `gorm:"foreignKey:ProfessionalID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category     *categoryModel     `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (professionalCategoryModel) TableName() string { return "professionals_categories" }

type reviewModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	ProfessionalID int64     `gorm:"column:professional_id;not null;index"`
	UserID         int64     `gorm:"column:user_id;not null;index"`
	Rating         int       `gorm:"column:rating;not null;check:rating BETWEEN 1 AND 5"`
	Comment        *string   `gorm:"column:comment"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`

	Professional *professionalModel `gorm:"foreignKey:ProfessionalID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	User         *userModel         `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (reviewModel) TableName() string { return "reviews" }

// AutoMigrate creates or updates the tables owned by this service.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&categoryModel{},
		&professionalModel{},
		&professionalCategoryModel{},
		&reviewModel{},
	)
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
