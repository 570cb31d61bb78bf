// Package seed inserts demo bilingual content into an empty backend.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/db"
	"go.uber.org/zap"
)

// Result reports how many rows were inserted per table.
type Result struct {
	Projects  int
	BlogPosts int
}

func strPtr(value string) *string { return &value }

// DemoProjects returns the demo project rows.
func DemoProjects() []db.Project {
	return []db.Project{
		{
			TitleEN:       "E-Commerce Platform",
			TitleAR:       "منصة التجارة الإلكترونية",
			DescriptionEN: "A storefront with **cart**, checkout and an order dashboard.",
			DescriptionAR: "متجر إلكتروني مع **سلة** وإتمام الشراء ولوحة للطلبات.",
			Image:         "https://images.pexels.com/photos/230544/pexels-photo-230544.jpeg",
			Technologies:  []string{"Go", "PostgreSQL", "Stripe"},
			LiveURL:       strPtr("https://example.com/shop"),
			GitHubURL:     strPtr("https://github.com/example/shop"),
			Category:      db.ProjectCategoryTechnology,
		},
		{
			TitleEN:       "Web Development Bootcamp",
			TitleAR:       "معسكر تطوير الويب",
			DescriptionEN: "A twelve week training program covering HTML, CSS and JavaScript.",
			DescriptionAR: "برنامج تدريبي لمدة اثني عشر أسبوعاً يغطي HTML و CSS و JavaScript.",
			Image:         "https://images.pexels.com/photos/1181671/pexels-photo-1181671.jpeg",
			Technologies:  []string{"HTML", "CSS", "JavaScript"},
			Category:      db.ProjectCategoryTraining,
		},
		{
			TitleEN:       "Community Volunteering",
			TitleAR:       "العمل التطوعي المجتمعي",
			DescriptionEN: "Organizing monthly coding meetups for students.",
			DescriptionAR: "تنظيم لقاءات برمجة شهرية للطلاب.",
			Image:         "https://images.pexels.com/photos/3184418/pexels-photo-3184418.jpeg",
			Technologies:  []string{},
			Category:      db.ProjectCategoryOther,
		},
	}
}

// DemoBlogPosts returns the demo blog rows dated relative to now.
func DemoBlogPosts(now time.Time) []db.BlogPost {
	return []db.BlogPost{
		{
			TitleEN:   "The Future of Web Development",
			TitleAR:   "مستقبل تطوير الويب",
			ExcerptEN: "Trends shaping how we build for the web.",
			ExcerptAR: "الاتجاهات التي تشكل طريقة بنائنا للويب.",
			Image:     "https://images.pexels.com/photos/270348/pexels-photo-270348.jpeg",
			Date:      now.AddDate(0, 0, -3).Format(db.DateLayout),
			Category:  "Technology",
			ReadTime:  5,
		},
		{
			TitleEN:   "Lessons From Teaching Beginners",
			TitleAR:   "دروس من تعليم المبتدئين",
			ExcerptEN: "What a year of mentoring taught me.",
			ExcerptAR: "ما علمني إياه عام من الإرشاد.",
			Image:     "https://images.pexels.com/photos/5905709/pexels-photo-5905709.jpeg",
			Date:      now.AddDate(0, 0, -10).Format(db.DateLayout),
			Category:  "Training",
			ReadTime:  7,
		},
	}
}

// Run inserts the demo rows into each table that is currently empty.
func Run(ctx context.Context, projects backend.Repository[db.Project], posts backend.Repository[db.BlogPost], now time.Time, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var result Result

	existingProjects, err := projects.List(ctx, backend.Query{Limit: 1})
	if err != nil {
		return result, fmt.Errorf("check projects: %w", err)
	}
	if len(existingProjects) == 0 {
		for _, row := range DemoProjects() {
			if _, err := projects.Insert(ctx, row); err != nil {
				return result, fmt.Errorf("insert project %q: %w", row.TitleEN, err)
			}
			result.Projects++
		}
	} else {
		logger.Info("projects table not empty, skipping demo projects")
	}

	existingPosts, err := posts.List(ctx, backend.Query{Limit: 1})
	if err != nil {
		return result, fmt.Errorf("check blog posts: %w", err)
	}
	if len(existingPosts) == 0 {
		for _, row := range DemoBlogPosts(now) {
			if _, err := posts.Insert(ctx, row); err != nil {
				return result, fmt.Errorf("insert blog post %q: %w", row.TitleEN, err)
			}
			result.BlogPosts++
		}
	} else {
		logger.Info("blog_posts table not empty, skipping demo posts")
	}

	return result, nil
}
