package models

// Service is an offering listed on the services page.
type Service struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Icon        *string `json:"icon"`
}

type ServiceInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
}

type ServicePatch struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
}

func (p ServicePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Icon == nil
}
