package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/locale"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML(), html.WithUnsafe()),
	)
	sanitizer = buildContentSanitizer()
)

type categoryOption struct {
	Value  string
	Label  string
	Active bool
}

// ShowHome renders the projects grid with its category filter and the latest posts.
func (a *API) ShowHome(c *gin.Context) {
	lang := a.lang(c)
	category := strings.TrimSpace(c.Query("category"))
	if category != "" && category != view.CategoryAll && !db.IsProjectCategory(category) {
		category = view.CategoryAll
	}
	if category == "" {
		category = view.CategoryAll
	}

	ctx := c.Request.Context()
	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"titleKey":   "home",
		"projects":   a.projects.ByCategory(ctx, category),
		"posts":      a.posts.List(ctx),
		"categories": projectCategoryOptions(lang, category),
		"category":   category,
	})
}

func projectCategoryOptions(lang, active string) []categoryOption {
	options := []categoryOption{{Value: view.CategoryAll, Label: locale.T(lang, "allProjects"), Active: active == view.CategoryAll}}
	for _, category := range db.ProjectCategories {
		options = append(options, categoryOption{
			Value:  category,
			Label:  locale.T(lang, category+"Projects"),
			Active: active == category,
		})
	}
	return options
}

// ShowProjectDetail renders /projects/:id.
func (a *API) ShowProjectDetail(c *gin.Context) {
	project, err := a.projects.Get(c.Request.Context(), idParam(c))
	if err != nil {
		a.renderDetailError(c, "project_detail.html", err, errors.Is(err, service.ErrProjectNotFound))
		return
	}

	lang := a.lang(c)
	description, err := renderMarkdown(project.Description.Pick(lang), lang)
	if err != nil {
		a.renderDetailError(c, "project_detail.html", err, false)
		return
	}

	a.renderHTML(c, http.StatusOK, "project_detail.html", gin.H{
		"title":       project.Title.Pick(lang),
		"project":     project,
		"description": description,
	})
}

// ShowBlogDetail renders /blog/:id.
func (a *API) ShowBlogDetail(c *gin.Context) {
	post, err := a.posts.Get(c.Request.Context(), idParam(c))
	if err != nil {
		a.renderDetailError(c, "blog_detail.html", err, errors.Is(err, service.ErrBlogPostNotFound))
		return
	}

	lang := a.lang(c)
	excerpt, err := renderMarkdown(post.Excerpt.Pick(lang), lang)
	if err != nil {
		a.renderDetailError(c, "blog_detail.html", err, false)
		return
	}

	a.renderHTML(c, http.StatusOK, "blog_detail.html", gin.H{
		"title":   post.Title.Pick(lang),
		"post":    post,
		"excerpt": excerpt,
		"date":    post.FormatDate(lang),
	})
}

// renderDetailError shows the not-found page for missing rows and an inline error with a
// retry link for everything else.
func (a *API) renderDetailError(c *gin.Context, template string, err error, notFound bool) {
	if notFound {
		a.renderHTML(c, http.StatusNotFound, "error.html", gin.H{
			"titleKey": "notFound",
			"message":  locale.T(a.lang(c), "notFound"),
		})
		return
	}

	c.Error(err)
	a.renderHTML(c, http.StatusInternalServerError, template, gin.H{
		"titleKey": "loadFailed",
		"error":    locale.T(a.lang(c), "loadFailed"),
		"retryURL": c.Request.URL.RequestURI(),
	})
}

// renderMarkdown converts content to sanitized HTML. Standalone video links become players.
func renderMarkdown(content, lang string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(embedDemoVideos(content, lang)), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// ListProjectsJSON serves the project view models, optionally filtered by ?category=.
func (a *API) ListProjectsJSON(c *gin.Context) {
	projects := a.projects.ByCategory(c.Request.Context(), c.Query("category"))
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// ListBlogPostsJSON serves the blog post view models.
func (a *API) ListBlogPostsJSON(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": a.posts.List(c.Request.Context())})
}

// Healthz 提供健康检查端点：本地数据库不可用时返回 503，同时报告内容后端状态。
func (a *API) Healthz(c *gin.Context) {
	driver := ""
	if a.store != nil {
		driver = a.store.Driver
	}

	if a.users != nil {
		sqlDB, err := a.users.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.Error(err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "error",
				"message": "database unreachable",
				"backend": driver,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"backend":    driver,
		"configured": a.backendConfigured(),
	})
}

// NotFound renders the 404 page for HTML requests and a JSON error for API paths.
func (a *API) NotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	a.renderHTML(c, http.StatusNotFound, "error.html", gin.H{
		"titleKey": "notFound",
		"message":  locale.T(a.lang(c), "notFound"),
	})
}
