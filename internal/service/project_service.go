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

var ErrProjectNotFound = errors.New("project not found")

// ProjectService serves projects newest first.
type ProjectService struct {
	*LiveCollection[db.Project, view.Project]
}

func NewProjectService(repo backend.Repository[db.Project], hub *realtime.Hub, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		LiveCollection: NewLiveCollection(CollectionOptions[db.Project, view.Project]{
			Repo:  repo,
			Hub:   hub,
			Table: backend.TableProjects,
			Query: backend.Query{
				Order: []backend.Order{{Column: "created_at", Descending: true}},
			},
			Map:      view.ProjectFromRow,
			NotFound: ErrProjectNotFound,
			Logger:   logger,
		}),
	}
}

// ByCategory filters the current snapshot.
func (s *ProjectService) ByCategory(ctx context.Context, category string) []view.Project {
	return view.FilterProjects(s.List(ctx), category)
}

// Get reads one project for its detail page.
func (s *ProjectService) Get(ctx context.Context, id string) (view.Project, error) {
	row, err := s.Row(ctx, id)
	if err != nil {
		return view.Project{}, err
	}
	return view.ProjectFromRow(row), nil
}
