package models

import "time"

// Project is a property (homestay) shown on the public site.
type Project struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Slogan      *string   `json:"slogan"`
	Description string    `json:"description"`
	AirbnbURL   *string   `json:"airbnbUrl"`
	IsFeatured  bool      `json:"isFeatured"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"createdAt"`
}

type ProjectInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Slug        string   `json:"slug" validate:"required,slug,max=200"`
	Slogan      *string  `json:"slogan" validate:"omitempty,max=500"`
	Description string   `json:"description" validate:"required"`
	AirbnbURL   *string  `json:"airbnbUrl" validate:"omitempty,url"`
	IsFeatured  bool     `json:"isFeatured"`
	Tags        []string `json:"tags"`
	Images      []string `json:"images"`
	Type        string   `json:"type" validate:"omitempty,max=50"`
}

// ProjectPatch is a partial update: nil fields are left untouched.
type ProjectPatch struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Slug        *string   `json:"slug" validate:"omitempty,slug,max=200"`
	Slogan      *string   `json:"slogan" validate:"omitempty,max=500"`
	Description *string   `json:"description" validate:"omitempty,min=1"`
	AirbnbURL   *string   `json:"airbnbUrl" validate:"omitempty,url"`
	IsFeatured  *bool     `json:"isFeatured"`
	Tags        *[]string `json:"tags"`
	Images      *[]string `json:"images"`
	Type        *string   `json:"type" validate:"omitempty,min=1,max=50"`
}

func (p ProjectPatch) IsEmpty() bool {
	return p.Name == nil && p.Slug == nil && p.Slogan == nil && p.Description == nil &&
		p.AirbnbURL == nil && p.IsFeatured == nil && p.Tags == nil && p.Images == nil && p.Type == nil
}
