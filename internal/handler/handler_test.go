package handler

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/realtime"
	"github.com/portfolio/internal/service"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "secret-pass"
)

type renderedPage struct {
	name string
	data gin.H
}

// stubHTMLRender records template name and data instead of executing templates.
type stubHTMLRender struct {
	mu    sync.Mutex
	pages []renderedPage
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	payload, _ := data.(gin.H)
	r.mu.Lock()
	r.pages = append(r.pages, renderedPage{name: name, data: payload})
	r.mu.Unlock()
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLRender) last(t *testing.T) renderedPage {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.pages, "expected a rendered page")
	return r.pages[len(r.pages)-1]
}

func (r *stubHTMLInstance) Render(w http.ResponseWriter) error {
	_, err := fmt.Fprintf(w, "<!-- %s -->", r.name)
	return err
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

var handlerDBCounter atomic.Int64

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", handlerDBCounter.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	_, err = db.EnsureUser(gdb, testAdminUser, testAdminPassword)
	require.NoError(t, err)
	return gdb
}

type handlerEnv struct {
	api       *API
	router    *gin.Engine
	html      *stubHTMLRender
	gdb       *gorm.DB
	store     *backend.Backend
	hub       *realtime.Hub
	projects  *service.ProjectService
	posts     *service.BlogPostService
	uploadDir string
}

// newHandlerEnv wires handlers over an in-memory sqlite backend. The content backend can be
// swapped through the store option for failure cases.
func newHandlerEnv(t *testing.T, opts ...func(*config.AppConfig, *backend.Backend)) *handlerEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	hub := realtime.NewHub(nil)
	t.Cleanup(hub.Close)

	store, err := backend.Open(config.BackendConfig{Driver: config.DriverSQLite}, gdb, hub, nil)
	require.NoError(t, err)

	cfg := config.AppConfig{
		SiteName:      "Test Portfolio",
		SiteBaseURL:   "http://localhost:8080",
		UploadDir:     t.TempDir(),
		UploadURLPath: "/uploads",
	}
	for _, opt := range opts {
		opt(&cfg, store)
	}

	projects := service.NewProjectService(store.Projects, hub, nil)
	posts := service.NewBlogPostService(store.BlogPosts, hub, nil)
	api := NewAPI(Options{
		Users:    gdb,
		Store:    store,
		Projects: projects,
		Posts:    posts,
		Config:   cfg,
		Limiter:  NewLoginLimiter(3, time.Minute),
	})
	api.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	html := &stubHTMLRender{}
	r := gin.New()
	r.HTMLRender = html
	sessionStore := cookie.NewStore([]byte("test-secret"))
	sessionStore.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions("test_session", sessionStore))
	r.Use(api.LocaleMiddleware())

	r.GET("/", api.ShowHome)
	r.GET("/projects/:id", api.ShowProjectDetail)
	r.GET("/blog/:id", api.ShowBlogDetail)
	r.GET("/healthz", api.Healthz)
	r.GET("/api/projects", api.ListProjectsJSON)
	r.GET("/api/blog-posts", api.ListBlogPostsJSON)
	r.GET("/api/changes", api.StreamChanges)
	r.GET("/api/changes/ws", api.ChangesWebSocket)
	r.GET("/admin/login", api.ShowLoginPage)
	r.POST("/admin/login", api.Login)
	r.GET("/admin/logout", api.Logout)

	auth := r.Group("/admin", AuthRequired())
	auth.GET("", api.ShowDashboard)
	auth.POST("/projects", api.SaveProject)
	auth.POST("/projects/:id/delete", api.DeleteProject)
	auth.POST("/blog-posts", api.SaveBlogPost)
	auth.POST("/blog-posts/:id/delete", api.DeleteBlogPost)
	auth.GET("/api/projects", api.AdminListProjects)
	auth.GET("/api/projects/:id", api.AdminGetProject)
	auth.POST("/api/projects", api.AdminCreateProject)
	auth.PUT("/api/projects/:id", api.AdminUpdateProject)
	auth.DELETE("/api/projects/:id", api.AdminDeleteProject)
	auth.GET("/api/blog-posts", api.AdminListBlogPosts)
	auth.POST("/api/blog-posts", api.AdminCreateBlogPost)
	auth.PUT("/api/blog-posts/:id", api.AdminUpdateBlogPost)
	auth.DELETE("/api/blog-posts/:id", api.AdminDeleteBlogPost)
	auth.POST("/api/uploads", api.UploadImage)
	r.NoRoute(api.NotFound)

	return &handlerEnv{
		api:       api,
		router:    r,
		html:      html,
		gdb:       gdb,
		store:     store,
		hub:       hub,
		projects:  projects,
		posts:     posts,
		uploadDir: cfg.UploadDir,
	}
}

// testClient replays cookies between requests against the in-process router.
type testClient struct {
	handler http.Handler
	jar     http.CookieJar
}

func (e *handlerEnv) client(t *testing.T) *testClient {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{handler: e.router, jar: jar}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.jar.Cookies(req.URL) {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	c.jar.SetCookies(req.URL, w.Result().Cookies())
	return w
}

func (c *testClient) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, "http://localhost"+path, nil))
}

func (c *testClient) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "http://localhost"+path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *testClient) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://localhost"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *testClient) login(t *testing.T) {
	t.Helper()
	w := c.postForm("/admin/login", url.Values{"username": {testAdminUser}, "password": {testAdminPassword}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/admin", w.Header().Get("Location"))

	adminURL, err := url.Parse("http://localhost/admin")
	require.NoError(t, err)
	require.NotEmpty(t, c.jar.Cookies(adminURL), "session cookie is replayed over plain http")
}

func strPtr(value string) *string { return &value }

func sampleProject(category string) db.Project {
	return db.Project{
		TitleEN:       "Shop",
		TitleAR:       "متجر",
		DescriptionEN: "An **online** shop",
		DescriptionAR: "متجر **إلكتروني**",
		Image:         "/uploads/shop.jpg",
		Technologies:  []string{"Go", "SQL"},
		LiveURL:       strPtr("https://example.com"),
		Category:      category,
	}
}

func sampleBlogPost(date string) db.BlogPost {
	return db.BlogPost{
		TitleEN:   "Hello",
		TitleAR:   "مرحبا",
		ExcerptEN: "First post",
		ExcerptAR: "أول مقال",
		Image:     "/uploads/post.jpg",
		Date:      date,
		Category:  "Technology",
		ReadTime:  4,
	}
}
