package router

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/locale"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/web"
	"go.uber.org/zap"
)

const sessionName = "portfolio_session"

// SetupRouter 配置 Gin 引擎、模板与全部路由
func SetupRouter(cfg config.AppConfig, api *handler.API, logger *zap.Logger) (*gin.Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(logging.GinRecovery(logger), logging.GinLogger(logger))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.SiteBaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(api.LocaleMiddleware())

	templates, err := web.Templates(template.FuncMap{
		"t": locale.T,
	})
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(templates)

	r.StaticFS("/static", http.FS(web.Static()))
	if uploadURL := strings.TrimRight(cfg.UploadURLPath, "/"); uploadURL != "" && cfg.UploadDir != "" {
		r.Static(uploadURL, cfg.UploadDir)
	}

	r.GET("/", api.ShowHome)
	r.GET("/projects/:id", api.ShowProjectDetail)
	r.GET("/blog/:id", api.ShowBlogDetail)
	r.GET("/healthz", api.Healthz)

	public := r.Group("/api")
	{
		public.GET("/projects", api.ListProjectsJSON)
		public.GET("/blog-posts", api.ListBlogPostsJSON)
		public.GET("/changes", api.StreamChanges)
		public.GET("/changes/ws", api.ChangesWebSocket)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("", api.ShowDashboard)
			auth.POST("/projects", api.SaveProject)
			auth.POST("/projects/:id/delete", api.DeleteProject)
			auth.POST("/blog-posts", api.SaveBlogPost)
			auth.POST("/blog-posts/:id/delete", api.DeleteBlogPost)

			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/projects", api.AdminListProjects)
				apiGroup.GET("/projects/:id", api.AdminGetProject)
				apiGroup.POST("/projects", api.AdminCreateProject)
				apiGroup.PUT("/projects/:id", api.AdminUpdateProject)
				apiGroup.DELETE("/projects/:id", api.AdminDeleteProject)

				apiGroup.GET("/blog-posts", api.AdminListBlogPosts)
				apiGroup.GET("/blog-posts/:id", api.AdminGetBlogPost)
				apiGroup.POST("/blog-posts", api.AdminCreateBlogPost)
				apiGroup.PUT("/blog-posts/:id", api.AdminUpdateBlogPost)
				apiGroup.DELETE("/blog-posts/:id", api.AdminDeleteBlogPost)

				apiGroup.POST("/uploads", api.UploadImage)
			}
		}
	}

	r.NoRoute(api.NotFound)
	return r, nil
}
