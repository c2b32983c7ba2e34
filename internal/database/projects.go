package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homestay/internal/models"
)

const projectColumns = `id, name, slug, slogan, description, airbnb_url, is_featured, tags, images, type, created_at`

type projectRow struct {
	ID          int64          `db:"id"`
	Name        string         `db:"name"`
	Slug        string         `db:"slug"`
	Slogan      *string        `db:"slogan"`
	Description string         `db:"description"`
	AirbnbURL   *string        `db:"airbnb_url"`
	IsFeatured  bool           `db:"is_featured"`
	Tags        sql.NullString `db:"tags"`
	Images      sql.NullString `db:"images"`
	Type        string         `db:"type"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (db *DB) toProject(r *projectRow) models.Project {
	return models.Project{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Slogan:      r.Slogan,
		Description: r.Description,
		AirbnbURL:   r.AirbnbURL,
		IsFeatured:  r.IsFeatured,
		Tags:        db.decodeListField("projects", "tags", r.ID, r.Tags),
		Images:      db.decodeListField("projects", "images", r.ID, r.Images),
		Type:        r.Type,
		CreatedAt:   r.CreatedAt,
	}
}

// ListProjects returns every project, newest first.
func (db *DB) ListProjects(ctx context.Context) ([]models.Project, error) {
	var rows []projectRow
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC, id DESC`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]models.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, db.toProject(&rows[i]))
	}
	return projects, nil
}

func (db *DB) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	return db.getProject(ctx, "id = ?", id)
}

func (db *DB) GetProjectBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return db.getProject(ctx, "slug = ?", slug)
}

func (db *DB) getProject(ctx context.Context, where string, arg interface{}) (*models.Project, error) {
	var row projectRow
	err := db.GetContext(ctx, &row, `SELECT `+projectColumns+` FROM projects WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	p := db.toProject(&row)
	return &p, nil
}

func (db *DB) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	id, err := insertProject(ctx, db, in)
	if err != nil {
		return nil, err
	}
	return db.GetProjectByID(ctx, id)
}

func insertProject(ctx context.Context, ex execer, in models.ProjectInput) (int64, error) {
	tags, err := encodeList(in.Tags)
	if err != nil {
		return 0, err
	}
	images, err := encodeList(in.Images)
	if err != nil {
		return 0, err
	}

	projectType := in.Type
	if projectType == "" {
		projectType = models.DefaultProjectType
	}

	row := projectRow{
		Name:        in.Name,
		Slug:        in.Slug,
		Slogan:      in.Slogan,
		Description: in.Description,
		AirbnbURL:   in.AirbnbURL,
		IsFeatured:  in.IsFeatured,
		Tags:        tags,
		Images:      images,
		Type:        projectType,
		CreatedAt:   time.Now().UTC(),
	}

	res, err := ex.NamedExecContext(ctx, `
        INSERT INTO projects (name, slug, slogan, description, airbnb_url, is_featured, tags, images, type, created_at)
        VALUES (:name, :slug, :slogan, :description, :airbnb_url, :is_featured, :tags, :images, :type, :created_at)`, &row)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("project slug %q: %w", in.Slug, ErrConflict)
		}
		return 0, fmt.Errorf("failed to create project: %w", err)
	}
	return res.LastInsertId()
}

// UpdateProject applies the non-nil fields of patch. It returns nil, nil
// when no project has the id.
func (db *DB) UpdateProject(ctx context.Context, id int64, patch models.ProjectPatch) (*models.Project, error) {
	u := &updateSet{}
	if patch.Name != nil {
		u.set("name", *patch.Name)
	}
	if patch.Slug != nil {
		u.set("slug", *patch.Slug)
	}
	if patch.Slogan != nil {
		u.set("slogan", *patch.Slogan)
	}
	if patch.Description != nil {
		u.set("description", *patch.Description)
	}
	if patch.AirbnbURL != nil {
		u.set("airbnb_url", *patch.AirbnbURL)
	}
	if patch.IsFeatured != nil {
		u.set("is_featured", *patch.IsFeatured)
	}
	if patch.Tags != nil {
		v, err := encodeList(*patch.Tags)
		if err != nil {
			return nil, err
		}
		u.set("tags", v)
	}
	if patch.Images != nil {
		v, err := encodeList(*patch.Images)
		if err != nil {
			return nil, err
		}
		u.set("images", v)
	}
	if patch.Type != nil {
		u.set("type", *patch.Type)
	}

	if u.empty() {
		return db.GetProjectByID(ctx, id)
	}

	found, err := db.applyUpdate(ctx, "projects", id, u)
	if err != nil || !found {
		return nil, err
	}
	return db.GetProjectByID(ctx, id)
}

// DeleteProject refuses to remove a project that rooms still point at.
func (db *DB) DeleteProject(ctx context.Context, id int64) (bool, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback() //nolint:errcheck

	var rooms int
	if err := tx.GetContext(ctx, &rooms, `SELECT COUNT(*) FROM rooms WHERE project_id = ?`, id); err != nil {
		return false, fmt.Errorf("failed to count project rooms: %w", err)
	}
	if rooms > 0 {
		return false, fmt.Errorf("project %d has %d room(s): %w", id, rooms, ErrProjectInUse)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (db *DB) CountProjects(ctx context.Context) (int, error) {
	return db.count(ctx, "projects")
}
