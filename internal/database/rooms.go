package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"homestay/internal/models"
)

const roomColumns = `id, name, type, price, status, project_id, description, amenities, images, created_at`

type roomRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Type        string         `db:"type"`
	Price       int64          `db:"price"`
	Status      string         `db:"status"`
	ProjectID   *int64         `db:"project_id"`
	Description *string        `db:"description"`
	Amenities   sql.NullString `db:"amenities"`
	Images      sql.NullString `db:"images"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (db *DB) toRoom(r *roomRow) models.Room {
	return models.Room{
		ID:          r.ID,
		Name:        r.Name,
		Type:        r.Type,
		Price:       r.Price,
		Status:      r.Status,
		ProjectID:   r.ProjectID,
		Description: r.Description,
		Amenities:   db.decodeListField("rooms", "amenities", r.ID, r.Amenities),
		Images:      db.decodeListField("rooms", "images", r.ID, r.Images),
		CreatedAt:   r.CreatedAt,
	}
}

// ListRooms returns rooms matching filter, newest first.
func (db *DB) ListRooms(ctx context.Context, filter models.RoomFilter) ([]models.Room, error) {
	var (
		conds []string
		args  []interface{}
	)
	if filter.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, filter.Type)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.ProjectID != nil {
		conds = append(conds, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.MinPrice != nil {
		conds = append(conds, "price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		conds = append(conds, "price <= ?")
		args = append(args, *filter.MaxPrice)
	}

	query := `SELECT ` + roomColumns + ` FROM rooms`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var rows []roomRow
	if err := db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	rooms := make([]models.Room, 0, len(rows))
	for i := range rows {
		rooms = append(rooms, db.toRoom(&rows[i]))
	}
	return rooms, nil
}

func (db *DB) GetRoomByID(ctx context.Context, id int64) (*models.Room, error) {
	var row roomRow
	err := db.GetContext(ctx, &row, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	r := db.toRoom(&row)
	return &r, nil
}

func (db *DB) CreateRoom(ctx context.Context, in models.RoomInput) (*models.Room, error) {
	if in.Price == nil {
		return nil, errors.New("room price is required")
	}
	amenities, err := encodeList(in.Amenities)
	if err != nil {
		return nil, err
	}
	images, err := encodeList(in.Images)
	if err != nil {
		return nil, err
	}

	status := models.RoomStatusAvailable
	if in.Status != nil {
		status = *in.Status
	}

	row := roomRow{
		Name:        in.Name,
		Type:        in.Type,
		Price:       *in.Price,
		Status:      status,
		ProjectID:   in.ProjectID,
		Description: in.Description,
		Amenities:   amenities,
		Images:      images,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := db.NamedExecContext(ctx, `
        INSERT INTO rooms (name, type, price, status, project_id, description, amenities, images, created_at)
        VALUES (:name, :type, :price, :status, :project_id, :description, :amenities, :images, :created_at)`, &row)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetRoomByID(ctx, id)
}

func (db *DB) UpdateRoom(ctx context.Context, id int64, patch models.RoomPatch) (*models.Room, error) {
	u := &updateSet{}
	if patch.Name != nil {
		u.set("name", *patch.Name)
	}
	if patch.Type != nil {
		u.set("type", *patch.Type)
	}
	if patch.Price != nil {
		u.set("price", *patch.Price)
	}
	if patch.Status != nil {
		u.set("status", *patch.Status)
	}
	if patch.ProjectID != nil {
		u.set("project_id", *patch.ProjectID)
	}
	if patch.Description != nil {
		u.set("description", *patch.Description)
	}
	if patch.Amenities != nil {
		v, err := encodeList(*patch.Amenities)
		if err != nil {
			return nil, err
		}
		u.set("amenities", v)
	}
	if patch.Images != nil {
		v, err := encodeList(*patch.Images)
		if err != nil {
			return nil, err
		}
		u.set("images", v)
	}

	if u.empty() {
		return db.GetRoomByID(ctx, id)
	}

	found, err := db.applyUpdate(ctx, "rooms", id, u)
	if err != nil || !found {
		return nil, err
	}
	return db.GetRoomByID(ctx, id)
}

func (db *DB) DeleteRoom(ctx context.Context, id int64) (bool, error) {
	return db.deleteByID(ctx, "rooms", id)
}

func (db *DB) CountRooms(ctx context.Context) (int, error) {
	return db.count(ctx, "rooms")
}
