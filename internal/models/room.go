package models

import "time"

type Room struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Price       int64     `json:"price"`
	Status      string    `json:"status"`
	ProjectID   *int64    `json:"projectId"`
	Description *string   `json:"description"`
	Amenities   []string  `json:"amenities"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RoomInput struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Type        string   `json:"type" validate:"required,roomtype"`
	Price       *int64   `json:"price" validate:"required,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,roomstatus"`
	ProjectID   *int64   `json:"projectId" validate:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

type RoomPatch struct {
	Name        *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Type        *string   `json:"type" validate:"omitempty,roomtype"`
	Price       *int64    `json:"price" validate:"omitempty,gte=0"`
	Status      *string   `json:"status" validate:"omitempty,roomstatus"`
	ProjectID   *int64    `json:"projectId" validate:"omitempty,gt=0"`
	Description *string   `json:"description"`
	Amenities   *[]string `json:"amenities"`
	Images      *[]string `json:"images"`
}

func (p RoomPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Price == nil && p.Status == nil &&
		p.ProjectID == nil && p.Description == nil && p.Amenities == nil && p.Images == nil
}

// RoomSaveRequest is the body of the combined create-or-update endpoint.
// A present ID selects update, an absent one create.
type RoomSaveRequest struct {
	ID *int64 `json:"id" validate:"omitempty,gt=0"`
	RoomInput
}

// Patch converts the request into an update touching every supplied field.
func (r RoomSaveRequest) Patch() RoomPatch {
	name, typ := r.Name, r.Type
	p := RoomPatch{
		Name:        &name,
		Type:        &typ,
		Price:       r.Price,
		Status:      r.Status,
		ProjectID:   r.ProjectID,
		Description: r.Description,
	}
	if r.Amenities != nil {
		amenities := r.Amenities
		p.Amenities = &amenities
	}
	if r.Images != nil {
		images := r.Images
		p.Images = &images
	}
	return p
}

// RoomFilter narrows ListRooms. Zero values disable a filter.
type RoomFilter struct {
	Type      string
	Status    string
	ProjectID *int64
	MinPrice  *int64
	MaxPrice  *int64
}
