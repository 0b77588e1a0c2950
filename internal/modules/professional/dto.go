package professional

type CreateProfessionalRequest struct {
	UserID            int64   `json:"user_id" validate:"omitempty,gt=0"`
	PhoneNumber       string  `json:"phone_number" validate:"required,max=32"`
	Description       string  `json:"description" validate:"required,max=2000"`
	Categories        []int64 `json:"categories" validate:"omitempty,dive,gt=0"`
	NotificationToken *string `json:"notification_token,omitempty"`
}

// UpdateProfessionalRequest distinguishes an absent categories key (nil) from
// an empty list, which clears every association.
type UpdateProfessionalRequest struct {
	PhoneNumber *string  `json:"phone_number,omitempty" validate:"omitempty,min=1,max=32"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Categories  *[]int64 `json:"categories,omitempty"`
}
