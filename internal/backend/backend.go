package backend

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/realtime"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Table names shared by every driver.
const (
	TableProjects  = "projects"
	TableBlogPosts = "blog_posts"
)

var (
	// ErrNotFound is the single special-cased backend error: the requested row does not exist.
	ErrNotFound = errors.New("row not found")
	// ErrUnconfigured is returned by writes when no usable backend is configured.
	ErrUnconfigured = errors.New("backend is not configured")
	// ErrInvalidColumn rejects query columns that are not plain identifiers.
	ErrInvalidColumn = errors.New("invalid column name")
)

// Error is a failure reported by the backend itself.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("backend error %s (status %d): %s", e.Code, e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}

// Filter restricts a list query to rows whose Column equals Value.
type Filter struct {
	Column string
	Value  string
}

// Order sorts a list query.
type Order struct {
	Column     string
	Descending bool
}

// Query describes a read-all request.
type Query struct {
	Filters []Filter
	Order   []Order
	Limit   int
}

var columnPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Validate checks that every column is a plain identifier.
func (q Query) Validate() error {
	for _, filter := range q.Filters {
		if !columnPattern.MatchString(filter.Column) {
			return fmt.Errorf("%w: %q", ErrInvalidColumn, filter.Column)
		}
	}
	for _, order := range q.Order {
		if !columnPattern.MatchString(order.Column) {
			return fmt.Errorf("%w: %q", ErrInvalidColumn, order.Column)
		}
	}
	return nil
}

// Repository is the generic query/insert/update/delete client for one table.
type Repository[R any] interface {
	List(ctx context.Context, query Query) ([]R, error)
	Get(ctx context.Context, id string) (R, error)
	Insert(ctx context.Context, row R) (R, error)
	Update(ctx context.Context, id string, row R) (R, error)
	Delete(ctx context.Context, id string) error
}

// Backend bundles the content tables and their change feed.
type Backend struct {
	Projects   Repository[db.Project]
	BlogPosts  Repository[db.BlogPost]
	Changes    *realtime.Hub
	Driver     string
	Configured bool
}

// Open selects the content driver. A postgrest driver with missing or placeholder settings
// does not fail: it degrades to an unconfigured backend with empty reads.
func Open(cfg config.BackendConfig, gdb *gorm.DB, hub *realtime.Hub, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if hub == nil {
		hub = realtime.NewHub(logger)
	}

	b := &Backend{Changes: hub, Driver: cfg.Driver}

	switch cfg.Driver {
	case "", config.DriverSQLite:
		if gdb == nil {
			return nil, errors.New("sqlite backend requires a database")
		}
		b.Driver = config.DriverSQLite
		b.Configured = true
		b.Projects = Notifying[db.Project](NewGormRepository[db.Project](gdb), hub, TableProjects, projectID)
		b.BlogPosts = Notifying[db.BlogPost](NewGormRepository[db.BlogPost](gdb), hub, TableBlogPosts, blogPostID)
	case config.DriverPostgREST:
		if !cfg.Configured() {
			logger.Warn("backend settings missing or placeholder, serving empty data",
				zap.Bool("url_valid", cfg.ValidURL()),
				zap.Bool("key_valid", cfg.ValidKey()),
			)
			b.Projects = Unconfigured[db.Project]()
			b.BlogPosts = Unconfigured[db.BlogPost]()
			return b, nil
		}
		client := NewRESTClient(cfg.URL, cfg.AnonKey, cfg.ServiceKey, cfg.Timeout)
		b.Configured = true
		b.Projects = Notifying[db.Project](NewRESTRepository[db.Project](client, TableProjects), hub, TableProjects, projectID)
		b.BlogPosts = Notifying[db.BlogPost](NewRESTRepository[db.BlogPost](client, TableBlogPosts), hub, TableBlogPosts, blogPostID)
	default:
		return nil, fmt.Errorf("unknown backend driver %q", cfg.Driver)
	}

	return b, nil
}

func projectID(p db.Project) string   { return p.ID }
func blogPostID(p db.BlogPost) string { return p.ID }
