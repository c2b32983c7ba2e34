package models

import "time"

type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	Author      *string   `json:"author"`
	ImageURL    *string   `json:"imageUrl"`
	PublishedAt time.Time `json:"publishedAt"`
}

type PostInput struct {
	Title       string     `json:"title" validate:"required,max=300"`
	Slug        string     `json:"slug" validate:"required,slug,max=200"`
	Content     string     `json:"content" validate:"required"`
	Category    string     `json:"category" validate:"required,max=100"`
	Author      *string    `json:"author" validate:"omitempty,max=200"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,max=2000"`
	PublishedAt *time.Time `json:"publishedAt"`
}

type PostPatch struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=300"`
	Slug        *string    `json:"slug" validate:"omitempty,slug,max=200"`
	Content     *string    `json:"content" validate:"omitempty,min=1"`
	Category    *string    `json:"category" validate:"omitempty,min=1,max=100"`
	Author      *string    `json:"author" validate:"omitempty,max=200"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,max=2000"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Slug == nil && p.Content == nil && p.Category == nil &&
		p.Author == nil && p.ImageURL == nil && p.PublishedAt == nil
}
