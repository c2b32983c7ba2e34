package database

import (
	"context"
	"fmt"
	"os"

	"homestay/internal/models"

	"gopkg.in/yaml.v3"
)

// SeedData is the layout of the seed YAML file.
type SeedData struct {
	Projects []SeedProject `yaml:"projects"`
	Services []SeedService `yaml:"services"`
	Posts    []SeedPost    `yaml:"posts"`
}

type SeedProject struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Slogan      string   `yaml:"slogan"`
	Description string   `yaml:"description"`
	AirbnbURL   string   `yaml:"airbnb_url"`
	IsFeatured  bool     `yaml:"is_featured"`
	Tags        []string `yaml:"tags"`
	Images      []string `yaml:"images"`
	Type        string   `yaml:"type"`
}

type SeedService struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

type SeedPost struct {
	Title    string `yaml:"title"`
	Slug     string `yaml:"slug"`
	Content  string `yaml:"content"`
	Category string `yaml:"category"`
	Author   string `yaml:"author"`
	ImageURL string `yaml:"image_url"`
}

func LoadSeedFile(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return &data, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Seed loads initial content when the projects table is empty. All rows
// go in one transaction, so a failed seed leaves the tables empty and the
// next start tries again. It returns the number of rows inserted.
func (db *DB) Seed(ctx context.Context, data *SeedData) (int, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var existing int
	if err := tx.GetContext(ctx, &existing, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	if existing > 0 {
		db.logger.Debug().Int("projects", existing).Msg("seed skipped, content present")
		return 0, nil
	}

	inserted := 0
	for _, p := range data.Projects {
		_, err := insertProject(ctx, tx, models.ProjectInput{
			Name:        p.Name,
			Slug:        p.Slug,
			Slogan:      optional(p.Slogan),
			Description: p.Description,
			AirbnbURL:   optional(p.AirbnbURL),
			IsFeatured:  p.IsFeatured,
			Tags:        p.Tags,
			Images:      p.Images,
			Type:        p.Type,
		})
		if err != nil {
			return 0, fmt.Errorf("seed project %q: %w", p.Slug, err)
		}
		inserted++
	}

	for _, s := range data.Services {
		_, err := insertService(ctx, tx, models.ServiceInput{
			Title:       s.Title,
			Description: s.Description,
			Icon:        optional(s.Icon),
		})
		if err != nil {
			return 0, fmt.Errorf("seed service %q: %w", s.Title, err)
		}
		inserted++
	}

	for _, p := range data.Posts {
		_, err := insertPost(ctx, tx, models.PostInput{
			Title:    p.Title,
			Slug:     p.Slug,
			Content:  p.Content,
			Category: p.Category,
			Author:   optional(p.Author),
			ImageURL: optional(p.ImageURL),
		})
		if err != nil {
			return 0, fmt.Errorf("seed post %q: %w", p.Slug, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}

	db.logger.Info().Int("rows", inserted).Msg("database seeded")
	return inserted, nil
}
