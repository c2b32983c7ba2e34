package service

import (
	"context"
	"fmt"
	"math"

	"homestay/internal/models"
)

// Counter is the subset of the repository the dashboard reads.
type Counter interface {
	CountProjects(ctx context.Context) (int, error)
	CountServices(ctx context.Context) (int, error)
	CountPosts(ctx context.Context) (int, error)
	CountMessages(ctx context.Context) (int, error)
	CountRooms(ctx context.Context) (int, error)
}

type DashboardService struct {
	repo Counter
}

func NewDashboardService(repo Counter) *DashboardService {
	return &DashboardService{repo: repo}
}

func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	counts := []struct {
		name  string
		count func(context.Context) (int, error)
		dst   *models.StatEntry
	}{
		{"projects", s.repo.CountProjects, &stats.Projects},
		{"services", s.repo.CountServices, &stats.Services},
		{"posts", s.repo.CountPosts, &stats.Posts},
		{"messages", s.repo.CountMessages, &stats.Messages},
		{"rooms", s.repo.CountRooms, &stats.Rooms},
	}

	for _, c := range counts {
		total, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.name, err)
		}
		*c.dst = models.StatEntry{Total: total, Growth: Growth(total)}
	}
	return stats, nil
}

// Growth approximates period-over-period growth against a baseline of 80%
// of the current total. There is no historical data behind it.
func Growth(total int) int {
	baseline := int(math.Floor(float64(total) * 0.8))
	if baseline == 0 {
		if total > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(total-baseline) / float64(baseline) * 100))
}
