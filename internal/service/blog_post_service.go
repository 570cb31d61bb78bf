package service

import (
	"context"
	"errors"

	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/realtime"
	"github.com/portfolio/internal/view"
	"go.uber.org/zap"
)

var ErrBlogPostNotFound = errors.New("blog post not found")

// BlogPostService serves blog posts by date, newest first.
type BlogPostService struct {
	*LiveCollection[db.BlogPost, view.BlogPost]
}

func NewBlogPostService(repo backend.Repository[db.BlogPost], hub *realtime.Hub, logger *zap.Logger) *BlogPostService {
	return &BlogPostService{
		LiveCollection: NewLiveCollection(CollectionOptions[db.BlogPost, view.BlogPost]{
			Repo:  repo,
			Hub:   hub,
			Table: backend.TableBlogPosts,
			Query: backend.Query{
				Order: []backend.Order{{Column: "date", Descending: true}},
			},
			Map:      view.BlogPostFromRow,
			NotFound: ErrBlogPostNotFound,
			Logger:   logger,
		}),
	}
}

// Get reads one post for its detail page.
func (s *BlogPostService) Get(ctx context.Context, id string) (view.BlogPost, error) {
	row, err := s.Row(ctx, id)
	if err != nil {
		return view.BlogPost{}, err
	}
	return view.BlogPostFromRow(row), nil
}
