package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homestay/internal/models"
)

const postColumns = `id, title, slug, content, category, author, image_url, published_at`

type postRow struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Slug        string    `db:"slug"`
	Content     string    `db:"content"`
	Category    string    `db:"category"`
	Author      *string   `db:"author"`
	ImageURL    *string   `db:"image_url"`
	PublishedAt time.Time `db:"published_at"`
}

func (r *postRow) model() models.Post {
	return models.Post{
		ID:          r.ID,
		Title:       r.Title,
		Slug:        r.Slug,
		Content:     r.Content,
		Category:    r.Category,
		Author:      r.Author,
		ImageURL:    r.ImageURL,
		PublishedAt: r.PublishedAt,
	}
}

// ListPosts returns posts by publication date, newest first.
func (db *DB) ListPosts(ctx context.Context) ([]models.Post, error) {
	var rows []postRow
	query := `SELECT ` + postColumns + ` FROM posts ORDER BY published_at DESC, id DESC`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	posts := make([]models.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, rows[i].model())
	}
	return posts, nil
}

func (db *DB) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	return db.getPost(ctx, "id = ?", id)
}

func (db *DB) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return db.getPost(ctx, "slug = ?", slug)
}

func (db *DB) getPost(ctx context.Context, where string, arg interface{}) (*models.Post, error) {
	var row postRow
	err := db.GetContext(ctx, &row, `SELECT `+postColumns+` FROM posts WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	p := row.model()
	return &p, nil
}

func (db *DB) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	id, err := insertPost(ctx, db, in)
	if err != nil {
		return nil, err
	}
	return db.GetPostByID(ctx, id)
}

func insertPost(ctx context.Context, ex execer, in models.PostInput) (int64, error) {
	publishedAt := time.Now().UTC()
	if in.PublishedAt != nil {
		publishedAt = in.PublishedAt.UTC()
	}

	row := postRow{
		Title:       in.Title,
		Slug:        in.Slug,
		Content:     in.Content,
		Category:    in.Category,
		Author:      in.Author,
		ImageURL:    in.ImageURL,
		PublishedAt: publishedAt,
	}

	res, err := ex.NamedExecContext(ctx, `
        INSERT INTO posts (title, slug, content, category, author, image_url, published_at)
        VALUES (:title, :slug, :content, :category, :author, :image_url, :published_at)`, &row)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("post slug %q: %w", in.Slug, ErrConflict)
		}
		return 0, fmt.Errorf("failed to create post: %w", err)
	}
	return res.LastInsertId()
}

func (db *DB) UpdatePost(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error) {
	u := &updateSet{}
	if patch.Title != nil {
		u.set("title", *patch.Title)
	}
	if patch.Slug != nil {
		u.set("slug", *patch.Slug)
	}
	if patch.Content != nil {
		u.set("content", *patch.Content)
	}
	if patch.Category != nil {
		u.set("category", *patch.Category)
	}
	if patch.Author != nil {
		u.set("author", *patch.Author)
	}
	if patch.ImageURL != nil {
		u.set("image_url", *patch.ImageURL)
	}
	if patch.PublishedAt != nil {
		u.set("published_at", patch.PublishedAt.UTC())
	}

	if u.empty() {
		return db.GetPostByID(ctx, id)
	}

	found, err := db.applyUpdate(ctx, "posts", id, u)
	if err != nil || !found {
		return nil, err
	}
	return db.GetPostByID(ctx, id)
}

func (db *DB) DeletePost(ctx context.Context, id int64) (bool, error) {
	return db.deleteByID(ctx, "posts", id)
}

func (db *DB) CountPosts(ctx context.Context) (int, error) {
	return db.count(ctx, "posts")
}
