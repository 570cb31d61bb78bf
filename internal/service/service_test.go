package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/realtime"
	"github.com/portfolio/internal/view"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testDBCounter atomic.Int64

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return gdb
}

type testBackend struct {
	hub      *realtime.Hub
	projects backend.Repository[db.Project]
	posts    backend.Repository[db.BlogPost]
	rawRepo  backend.Repository[db.Project]
}

func newTestBackend(t *testing.T) testBackend {
	t.Helper()
	gdb := setupServiceTestDB(t)
	hub := realtime.NewHub(nil)
	t.Cleanup(hub.Close)

	raw := backend.NewGormRepository[db.Project](gdb)
	return testBackend{
		hub:      hub,
		projects: backend.Notifying[db.Project](raw, hub, backend.TableProjects, func(p db.Project) string { return p.ID }),
		posts: backend.Notifying[db.BlogPost](backend.NewGormRepository[db.BlogPost](gdb), hub,
			backend.TableBlogPosts, func(p db.BlogPost) string { return p.ID }),
		rawRepo: raw,
	}
}

type failingRepo[R any] struct {
	err error
}

func (f failingRepo[R]) List(context.Context, backend.Query) ([]R, error) { return nil, f.err }
func (f failingRepo[R]) Get(context.Context, string) (R, error) {
	var zero R
	return zero, f.err
}
func (f failingRepo[R]) Insert(context.Context, R) (R, error) {
	var zero R
	return zero, f.err
}
func (f failingRepo[R]) Update(context.Context, string, R) (R, error) {
	var zero R
	return zero, f.err
}
func (f failingRepo[R]) Delete(context.Context, string) error { return f.err }

// switchRepo delegates to ok until failing is set.
type switchRepo struct {
	backend.Repository[db.Project]
	failing atomic.Bool
}

func (s *switchRepo) List(ctx context.Context, query backend.Query) ([]db.Project, error) {
	if s.failing.Load() {
		return nil, errors.New("connection reset")
	}
	return s.Repository.List(ctx, query)
}

func TestCreateThenFetchMapsBilingualFields(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewProjectService(tb.projects, tb.hub, nil)
	ctx := context.Background()
	svc.Start(ctx)
	defer svc.Stop()

	require.Empty(t, svc.List(ctx))

	created, err := svc.Create(ctx, db.Project{TitleEN: "A", TitleAR: "أ", Category: "other"})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list := svc.List(ctx)
	require.Len(t, list, 1)
	require.Equal(t, view.Bilingual{En: "A", Ar: "أ"}, list[0].Title)
	require.Equal(t, "other", list[0].Category)
	require.Equal(t, created.ID, list[0].ID)
}

func TestUpdateThenFetch(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewProjectService(tb.projects, tb.hub, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, db.Project{TitleEN: "Old", TitleAR: "قديم", Category: db.ProjectCategoryTraining})
	require.NoError(t, err)

	created.TitleEN = "New"
	_, err = svc.Update(ctx, created.ID, created)
	require.NoError(t, err)

	list := svc.List(ctx)
	require.Len(t, list, 1)
	require.Equal(t, "New", list[0].Title.En)

	_, err = svc.Update(ctx, "missing", created)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestDeleteThenFetch(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewProjectService(tb.projects, tb.hub, nil)
	ctx := context.Background()

	keep, err := svc.Create(ctx, db.Project{TitleEN: "Keep", TitleAR: "إبقاء", Category: db.ProjectCategoryOther})
	require.NoError(t, err)
	drop, err := svc.Create(ctx, db.Project{TitleEN: "Drop", TitleAR: "حذف", Category: db.ProjectCategoryOther})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, drop.ID))
	list := svc.List(ctx)
	require.Len(t, list, 1)
	require.Equal(t, keep.ID, list[0].ID)

	err = svc.Delete(ctx, drop.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
	require.ErrorIs(t, err, backend.ErrNotFound)
}

func TestProjectsOrderedNewestFirst(t *testing.T) {
	tb := newTestBackend(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"first", "second", "third"} {
		_, err := tb.rawRepo.Insert(ctx, db.Project{TitleEN: title, Category: db.ProjectCategoryOther, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	svc := NewProjectService(tb.projects, nil, nil)
	list := svc.Refetch(ctx)
	require.Len(t, list, 3)
	require.Equal(t, []string{"third", "second", "first"}, []string{list[0].Title.En, list[1].Title.En, list[2].Title.En})
}

func TestBlogPostsOrderedByDate(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewBlogPostService(tb.posts, tb.hub, nil)
	ctx := context.Background()

	for _, date := range []string{"2024-02-01", "2024-05-10", "2023-12-31"} {
		_, err := svc.Create(ctx, db.BlogPost{TitleEN: date, Date: date, Category: "Technology", ReadTime: 3})
		require.NoError(t, err)
	}

	list := svc.List(ctx)
	require.Len(t, list, 3)
	require.Equal(t, "2024-05-10", list[0].Date)
	require.Equal(t, "2023-12-31", list[2].Date)

	post, err := svc.Get(ctx, list[1].ID)
	require.NoError(t, err)
	require.Equal(t, "2024-02-01", post.Title.En)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrBlogPostNotFound)
}

func TestUnconfiguredBackendServesEmptyList(t *testing.T) {
	svc := NewProjectService(backend.Unconfigured[db.Project](), nil, nil)
	ctx := context.Background()
	svc.Start(ctx)

	list := svc.List(ctx)
	require.NotNil(t, list)
	require.Empty(t, list)

	_, err := svc.Load(ctx)
	require.ErrorIs(t, err, backend.ErrUnconfigured)

	_, err = svc.Create(ctx, db.Project{TitleEN: "A"})
	require.ErrorIs(t, err, backend.ErrUnconfigured)
}

func TestFetchFailureDegradesToEmptyList(t *testing.T) {
	tb := newTestBackend(t)
	repo := &switchRepo{Repository: tb.projects}
	svc := NewProjectService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, db.Project{TitleEN: "A", TitleAR: "أ", Category: "other"})
	require.NoError(t, err)
	require.Len(t, svc.List(ctx), 1)

	repo.failing.Store(true)
	require.Empty(t, svc.Refetch(ctx))
	require.Empty(t, svc.List(ctx))

	broken := NewBlogPostService(failingRepo[db.BlogPost]{err: &backend.Error{Status: 500, Message: "boom"}}, nil, nil)
	require.Empty(t, broken.List(ctx))
	_, err = broken.Get(ctx, "x")
	var apiErr *backend.Error
	require.ErrorAs(t, err, &apiErr)
	require.NotErrorIs(t, err, ErrBlogPostNotFound)
}

func TestChangeNotificationTriggersRefetch(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewProjectService(tb.projects, tb.hub, nil)
	ctx := context.Background()
	svc.Start(ctx)
	defer svc.Stop()

	// 绕过通知包装，模拟其他客户端写入
	_, err := tb.rawRepo.Insert(ctx, db.Project{TitleEN: "External", Category: db.ProjectCategoryOther})
	require.NoError(t, err)
	require.Empty(t, svc.List(ctx))

	tb.hub.Publish(realtime.Event{Type: realtime.EventExternal, Table: backend.TableProjects})
	require.Eventually(t, func() bool {
		return len(svc.List(ctx)) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestEveryNotificationRefetches(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewProjectService(tb.projects, tb.hub, nil)
	ctx := context.Background()
	svc.Start(ctx)
	defer svc.Stop()

	before := svc.Refetches()
	for i := 0; i < 3; i++ {
		tb.hub.Publish(realtime.Event{Type: realtime.EventExternal, Table: backend.TableProjects})
	}
	tb.hub.Publish(realtime.Event{Type: realtime.EventExternal, Table: backend.TableBlogPosts})

	require.Eventually(t, func() bool {
		return svc.Refetches() == before+3
	}, time.Second, 10*time.Millisecond)
}

func TestByCategory(t *testing.T) {
	tb := newTestBackend(t)
	svc := NewProjectService(tb.projects, nil, nil)
	ctx := context.Background()

	for _, category := range []string{db.ProjectCategoryTechnology, db.ProjectCategoryTraining, db.ProjectCategoryTechnology} {
		_, err := svc.Create(ctx, db.Project{TitleEN: category, Category: category})
		require.NoError(t, err)
	}

	require.Len(t, svc.ByCategory(ctx, view.CategoryAll), 3)
	require.Len(t, svc.ByCategory(ctx, db.ProjectCategoryTechnology), 2)
	require.Len(t, svc.ByCategory(ctx, db.ProjectCategoryOther), 0)
}

func TestLoadDashboard(t *testing.T) {
	tb := newTestBackend(t)
	projects := NewProjectService(tb.projects, nil, nil)
	posts := NewBlogPostService(tb.posts, nil, nil)
	ctx := context.Background()

	_, err := projects.Create(ctx, db.Project{TitleEN: "A", Category: db.ProjectCategoryTechnology})
	require.NoError(t, err)
	_, err = projects.Create(ctx, db.Project{TitleEN: "B", Category: db.ProjectCategoryOther})
	require.NoError(t, err)
	for _, post := range []db.BlogPost{
		{TitleEN: "1", Date: "2024-01-01", Category: "Technology", ReadTime: 4},
		{TitleEN: "2", Date: "2024-01-02", Category: "Training", ReadTime: 5},
		{TitleEN: "3", Date: "2024-01-03", Category: "Technology", ReadTime: 8},
	} {
		_, err := posts.Create(ctx, post)
		require.NoError(t, err)
	}

	dashboard, err := LoadDashboard(ctx, projects, posts)
	require.NoError(t, err)
	require.Len(t, dashboard.Projects, 2)
	require.Len(t, dashboard.BlogPosts, 3)
	require.Equal(t, 2, dashboard.Stats.ProjectTotal)
	require.Equal(t, 1, dashboard.Stats.ProjectsByCategory[db.ProjectCategoryTechnology])
	require.Equal(t, 0, dashboard.Stats.ProjectsByCategory[db.ProjectCategoryTraining])
	require.Equal(t, 3, dashboard.Stats.BlogTotal)
	require.Equal(t, 2, dashboard.Stats.BlogCategories)
	require.Equal(t, 6, dashboard.Stats.AvgReadTime)
}

func TestLoadDashboardPartialFailure(t *testing.T) {
	tb := newTestBackend(t)
	projects := NewProjectService(tb.projects, nil, nil)
	posts := NewBlogPostService(failingRepo[db.BlogPost]{err: errors.New("timeout")}, nil, nil)
	ctx := context.Background()

	_, err := projects.Create(ctx, db.Project{TitleEN: "A", Category: db.ProjectCategoryTechnology})
	require.NoError(t, err)

	dashboard, err := LoadDashboard(ctx, projects, posts)
	require.Error(t, err)
	require.Len(t, dashboard.Projects, 1)
	require.Empty(t, dashboard.BlogPosts)
	require.Equal(t, 0, dashboard.Stats.AvgReadTime)
}
