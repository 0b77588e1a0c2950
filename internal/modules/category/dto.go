package category

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=80"`
	Description string `json:"description,omitempty" validate:"max=500"`
}
