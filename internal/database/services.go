package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"homestay/internal/models"
)

const serviceColumns = `id, title, description, icon`

type serviceRow struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description string  `db:"description"`
	Icon        *string `db:"icon"`
}

func (r *serviceRow) model() models.Service {
	return models.Service{ID: r.ID, Title: r.Title, Description: r.Description, Icon: r.Icon}
}

func (db *DB) ListServices(ctx context.Context) ([]models.Service, error) {
	var rows []serviceRow
	if err := db.SelectContext(ctx, &rows, `SELECT `+serviceColumns+` FROM services ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	services := make([]models.Service, 0, len(rows))
	for i := range rows {
		services = append(services, rows[i].model())
	}
	return services, nil
}

func (db *DB) GetServiceByID(ctx context.Context, id int64) (*models.Service, error) {
	var row serviceRow
	err := db.GetContext(ctx, &row, `SELECT `+serviceColumns+` FROM services WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	s := row.model()
	return &s, nil
}

func (db *DB) CreateService(ctx context.Context, in models.ServiceInput) (*models.Service, error) {
	id, err := insertService(ctx, db, in)
	if err != nil {
		return nil, err
	}
	return db.GetServiceByID(ctx, id)
}

func insertService(ctx context.Context, ex execer, in models.ServiceInput) (int64, error) {
	res, err := ex.ExecContext(ctx,
		`INSERT INTO services (title, description, icon) VALUES (?, ?, ?)`,
		in.Title, in.Description, in.Icon)
	if err != nil {
		return 0, fmt.Errorf("failed to create service: %w", err)
	}
	return res.LastInsertId()
}

func (db *DB) UpdateService(ctx context.Context, id int64, patch models.ServicePatch) (*models.Service, error) {
	u := &updateSet{}
	if patch.Title != nil {
		u.set("title", *patch.Title)
	}
	if patch.Description != nil {
		u.set("description", *patch.Description)
	}
	if patch.Icon != nil {
		u.set("icon", *patch.Icon)
	}

	if u.empty() {
		return db.GetServiceByID(ctx, id)
	}

	found, err := db.applyUpdate(ctx, "services", id, u)
	if err != nil || !found {
		return nil, err
	}
	return db.GetServiceByID(ctx, id)
}

func (db *DB) DeleteService(ctx context.Context, id int64) (bool, error) {
	return db.deleteByID(ctx, "services", id)
}

func (db *DB) CountServices(ctx context.Context) (int, error) {
	return db.count(ctx, "services")
}
