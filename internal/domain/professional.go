package domain

import "time"

// Professional is a professional profile joined with the public fields of
// the user that owns it.
type Professional struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	Password          string    `json:"-"`
	IsActive          bool      `json:"is_active"`
	PhoneNumber       string    `json:"phone_number"`
	Description       string    `json:"description"`
	NotificationToken *string   `json:"notification_token,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// CategoryIDs is set by Create with the ids it was given.
	CategoryIDs []int64 `json:"category_ids,omitempty"`
	// Categories is set only by reads that load associations; it is never
	// nil on those paths.
	Categories []Category `json:"categories"`
}

type CreateProfessional struct {
	UserID            int64
	PhoneNumber       string
	Description       string
	Categories        []int64
	NotificationToken *string
}

// UpdateProfessional carries a partial update. A nil field is left as is;
// a non-nil Categories replaces the whole association set.
type UpdateProfessional struct {
	PhoneNumber *string
	Description *string
	Categories  *[]int64
}

// RatedProfessional is a professional with its review aggregate.
type RatedProfessional struct {
	Professional
	AverageRating float64 `json:"average_rating"`
	ReviewCount   int64   `json:"review_count"`
}

// RatingIndex maps professional id to its review aggregate.
type RatingIndex map[int64]RatingSummary

func NewRatingIndex(rows []RatingSummary) RatingIndex {
	idx := make(RatingIndex, len(rows))
	for _, r := range rows {
		idx[r.ProfessionalID] = r
	}
	return idx
}

// Average returns 0 for professionals without reviews.
func (idx RatingIndex) Average(professionalID int64) float64 {
	return idx[professionalID].Average
}

func (idx RatingIndex) Count(professionalID int64) int64 {
	return idx[professionalID].Count
}
