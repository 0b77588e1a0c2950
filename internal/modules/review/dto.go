package review

type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment,omitempty" validate:"max=2000"`
}
