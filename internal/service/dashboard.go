package service

import (
	"context"
	"math"

	"github.com/portfolio/internal/view"
	"golang.org/x/sync/errgroup"
)

// DashboardStats are the admin summary counters.
type DashboardStats struct {
	ProjectTotal       int
	ProjectsByCategory map[string]int
	BlogTotal          int
	BlogCategories     int
	AvgReadTime        int
}

// Dashboard is everything the admin page lists.
type Dashboard struct {
	Projects  []view.Project
	BlogPosts []view.BlogPost
	Stats     DashboardStats
}

// LoadDashboard reads both tables concurrently. A failure in one table still returns the
// other one; the first error is reported.
func LoadDashboard(ctx context.Context, projects *ProjectService, posts *BlogPostService) (Dashboard, error) {
	var (
		g         errgroup.Group
		dashboard Dashboard
	)
	g.Go(func() error {
		items, err := projects.Load(ctx)
		dashboard.Projects = items
		return err
	})
	g.Go(func() error {
		items, err := posts.Load(ctx)
		dashboard.BlogPosts = items
		return err
	})
	err := g.Wait()

	dashboard.Stats = ComputeStats(dashboard.Projects, dashboard.BlogPosts)
	return dashboard, err
}

func ComputeStats(projects []view.Project, posts []view.BlogPost) DashboardStats {
	stats := DashboardStats{
		ProjectTotal:       len(projects),
		ProjectsByCategory: view.CountByCategory(projects),
		BlogTotal:          len(posts),
	}

	categories := make(map[string]struct{}, len(posts))
	totalReadTime := 0
	for _, post := range posts {
		categories[post.Category] = struct{}{}
		totalReadTime += post.ReadTime
	}
	stats.BlogCategories = len(categories)
	if len(posts) > 0 {
		stats.AvgReadTime = int(math.Round(float64(totalReadTime) / float64(len(posts))))
	}
	return stats
}
