package domain

import "time"

type Review struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professional_id"`
	UserID         int64     `json:"user_id"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RatingSummary is one row of the per-professional review aggregate.
type RatingSummary struct {
	ProfessionalID int64   `json:"professional_id"`
	Average        float64 `json:"average"`
	Count          int64   `json:"count"`
}
