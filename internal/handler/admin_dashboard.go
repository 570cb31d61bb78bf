package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/locale"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

const (
	tabProjects = "projects"
	tabBlog     = "blog"

	formProject = "project"
	formBlog    = "blog"

	flashSuccess = "success"
	flashError   = "error"
)

// adminPanel is the dashboard form state. An empty Form is the idle state; otherwise the
// named form is shown in create or edit mode depending on whether a record was loaded.
type adminPanel struct {
	Tab         string
	Form        string
	ProjectForm view.ProjectForm
	BlogForm    view.BlogPostForm
	FieldErrors map[string]string
}

func (p adminPanel) Mode() string {
	switch p.Form {
	case formProject:
		return p.ProjectForm.Mode()
	case formBlog:
		return p.BlogForm.Mode()
	}
	return ""
}

func (p adminPanel) Editing() bool {
	return p.Mode() == view.FormModeEdit
}

type notification struct {
	Type    string
	Message string
}

func normalizeTab(raw string) string {
	if strings.TrimSpace(raw) == tabBlog {
		return tabBlog
	}
	return tabProjects
}

// ShowDashboard renders the admin panel. ?form=project|blog opens the create form and an
// additional ?id= loads that record into the edit form.
func (a *API) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()
	lang := a.lang(c)
	panel := adminPanel{Tab: normalizeTab(c.Query("tab"))}
	id := strings.TrimSpace(c.Query("id"))

	switch c.Query("form") {
	case formProject:
		panel.Tab = tabProjects
		panel.Form = formProject
		panel.ProjectForm = view.NewProjectForm()
		if id != "" {
			row, err := a.projects.Row(ctx, id)
			if err != nil {
				c.Error(err)
				a.addFlash(c, flashError, mutationMessage(lang, err, "loadFailed"))
				c.Redirect(http.StatusFound, "/admin?tab="+tabProjects)
				return
			}
			panel.ProjectForm = view.ProjectFormFromRow(row)
		}
	case formBlog:
		panel.Tab = tabBlog
		panel.Form = formBlog
		panel.BlogForm = view.NewBlogPostForm(a.now())
		if id != "" {
			row, err := a.posts.Row(ctx, id)
			if err != nil {
				c.Error(err)
				a.addFlash(c, flashError, mutationMessage(lang, err, "loadFailed"))
				c.Redirect(http.StatusFound, "/admin?tab="+tabBlog)
				return
			}
			panel.BlogForm = view.BlogPostFormFromRow(row)
		}
	}

	a.renderDashboard(c, http.StatusOK, panel, a.popFlash(c))
}

// SaveProject submits the project form. Success returns to the idle state; failures keep
// the form open with the submitted values.
func (a *API) SaveProject(c *gin.Context) {
	lang := a.lang(c)
	var form view.ProjectForm
	if err := c.ShouldBind(&form); err != nil {
		panel := adminPanel{Tab: tabProjects, Form: formProject, ProjectForm: form, FieldErrors: fieldErrors(err, lang)}
		a.renderDashboard(c, http.StatusUnprocessableEntity, panel, &notification{Type: flashError, Message: locale.T(lang, "saveFailed")})
		return
	}

	ctx := c.Request.Context()
	var (
		err        error
		successKey = "projectCreated"
	)
	if form.Mode() == view.FormModeEdit {
		successKey = "projectUpdated"
		_, err = a.projects.Update(ctx, strings.TrimSpace(form.ID), form.ToRow())
	} else {
		_, err = a.projects.Create(ctx, form.ToRow())
	}
	if err != nil {
		c.Error(err)
		panel := adminPanel{Tab: tabProjects, Form: formProject, ProjectForm: form}
		a.renderDashboard(c, mutationStatus(err), panel, &notification{Type: flashError, Message: mutationMessage(lang, err, "saveFailed")})
		return
	}

	a.addFlash(c, flashSuccess, locale.T(lang, successKey))
	c.Redirect(http.StatusFound, "/admin?tab="+tabProjects)
}

// DeleteProject removes a project and returns to the idle state.
func (a *API) DeleteProject(c *gin.Context) {
	lang := a.lang(c)
	if err := a.projects.Delete(c.Request.Context(), idParam(c)); err != nil {
		c.Error(err)
		a.addFlash(c, flashError, mutationMessage(lang, err, "deleteFailed"))
	} else {
		a.addFlash(c, flashSuccess, locale.T(lang, "projectDeleted"))
	}
	c.Redirect(http.StatusFound, "/admin?tab="+tabProjects)
}

// SaveBlogPost submits the blog post form.
func (a *API) SaveBlogPost(c *gin.Context) {
	lang := a.lang(c)
	var form view.BlogPostForm
	if err := c.ShouldBind(&form); err != nil {
		panel := adminPanel{Tab: tabBlog, Form: formBlog, BlogForm: form, FieldErrors: fieldErrors(err, lang)}
		a.renderDashboard(c, http.StatusUnprocessableEntity, panel, &notification{Type: flashError, Message: locale.T(lang, "saveFailed")})
		return
	}

	ctx := c.Request.Context()
	var (
		err        error
		successKey = "postCreated"
	)
	if form.Mode() == view.FormModeEdit {
		successKey = "postUpdated"
		_, err = a.posts.Update(ctx, strings.TrimSpace(form.ID), form.ToRow())
	} else {
		_, err = a.posts.Create(ctx, form.ToRow())
	}
	if err != nil {
		c.Error(err)
		panel := adminPanel{Tab: tabBlog, Form: formBlog, BlogForm: form}
		a.renderDashboard(c, mutationStatus(err), panel, &notification{Type: flashError, Message: mutationMessage(lang, err, "saveFailed")})
		return
	}

	a.addFlash(c, flashSuccess, locale.T(lang, successKey))
	c.Redirect(http.StatusFound, "/admin?tab="+tabBlog)
}

// DeleteBlogPost removes a blog post and returns to the idle state.
func (a *API) DeleteBlogPost(c *gin.Context) {
	lang := a.lang(c)
	if err := a.posts.Delete(c.Request.Context(), idParam(c)); err != nil {
		c.Error(err)
		a.addFlash(c, flashError, mutationMessage(lang, err, "deleteFailed"))
	} else {
		a.addFlash(c, flashSuccess, locale.T(lang, "postDeleted"))
	}
	c.Redirect(http.StatusFound, "/admin?tab="+tabBlog)
}

func (a *API) renderDashboard(c *gin.Context, status int, panel adminPanel, note *notification) {
	lang := a.lang(c)
	dashboard, err := service.LoadDashboard(c.Request.Context(), a.projects, a.posts)
	if err != nil {
		c.Error(err)
		if note == nil {
			message := locale.T(lang, "loadFailed")
			if errors.Is(err, backend.ErrUnconfigured) {
				message = locale.T(lang, "backendMissing")
			}
			note = &notification{Type: flashError, Message: message}
		}
	}

	categoryOptions := make([]categoryOption, 0, len(db.ProjectCategories))
	for _, category := range db.ProjectCategories {
		categoryOptions = append(categoryOptions, categoryOption{
			Value:  category,
			Label:  locale.T(lang, category+"Projects"),
			Active: panel.ProjectForm.Category == category,
		})
	}

	a.renderHTML(c, status, "dashboard.html", gin.H{
		"titleKey":          "dashboard",
		"username":          currentUsername(c),
		"panel":             panel,
		"projects":          dashboard.Projects,
		"posts":             dashboard.BlogPosts,
		"stats":             dashboard.Stats,
		"notification":      note,
		"projectCategories": categoryOptions,
		"blogCategories":    db.BlogCategories,
	})
}

func mutationStatus(err error) int {
	switch {
	case errors.Is(err, backend.ErrUnconfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, service.ErrProjectNotFound), errors.Is(err, service.ErrBlogPostNotFound):
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func mutationMessage(lang string, err error, failKey string) string {
	switch {
	case errors.Is(err, backend.ErrUnconfigured):
		return locale.T(lang, "backendMissing")
	case errors.Is(err, backend.ErrNotFound), errors.Is(err, service.ErrProjectNotFound), errors.Is(err, service.ErrBlogPostNotFound):
		return locale.T(lang, "notFound")
	}
	return locale.T(lang, failKey) + ": " + err.Error()
}

func (a *API) addFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, "flash_"+kind)
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

func (a *API) popFlash(c *gin.Context) *notification {
	session := sessions.Default(c)
	var note *notification
	for _, kind := range []string{flashError, flashSuccess} {
		flashes := session.Flashes("flash_" + kind)
		if len(flashes) == 0 || note != nil {
			continue
		}
		if message, ok := flashes[len(flashes)-1].(string); ok {
			note = &notification{Type: kind, Message: message}
		}
	}
	if note != nil {
		if err := session.Save(); err != nil {
			c.Error(err)
		}
	}
	return note
}
