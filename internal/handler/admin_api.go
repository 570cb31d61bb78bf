package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/view"
)

// listQuery builds a backend query from ?category= and ?limit=.
func listQuery(c *gin.Context, orderColumn string) (backend.Query, error) {
	query := backend.Query{Order: []backend.Order{{Column: orderColumn, Descending: true}}}
	if category := strings.TrimSpace(c.Query("category")); category != "" && category != view.CategoryAll {
		query.Filters = append(query.Filters, backend.Filter{Column: "category", Value: category})
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return query, errors.New("invalid limit")
		}
		query.Limit = limit
	}
	return query, nil
}

func (a *API) respondBackendError(c *gin.Context, err error) {
	c.Error(err)
	respondError(c, mutationStatus(err), mutationMessage(a.lang(c), err, "saveFailed"))
}

// AdminListProjects returns raw project rows straight from the backend.
func (a *API) AdminListProjects(c *gin.Context) {
	query, err := listQuery(c, "created_at")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := a.store.Projects.List(c.Request.Context(), query)
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": rows})
}

func (a *API) AdminGetProject(c *gin.Context) {
	row, err := a.projects.Row(c.Request.Context(), idParam(c))
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *API) AdminCreateProject(c *gin.Context) {
	var form view.ProjectForm
	if !bindJSON(c, &form, a.lang(c)) {
		return
	}
	form.ID = ""
	row, err := a.projects.Create(c.Request.Context(), form.ToRow())
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (a *API) AdminUpdateProject(c *gin.Context) {
	var form view.ProjectForm
	if !bindJSON(c, &form, a.lang(c)) {
		return
	}
	id := idParam(c)
	form.ID = id
	row, err := a.projects.Update(c.Request.Context(), id, form.ToRow())
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *API) AdminDeleteProject(c *gin.Context) {
	if err := a.projects.Delete(c.Request.Context(), idParam(c)); err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminListBlogPosts returns raw blog post rows straight from the backend.
func (a *API) AdminListBlogPosts(c *gin.Context) {
	query, err := listQuery(c, "date")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := a.store.BlogPosts.List(c.Request.Context(), query)
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": rows})
}

func (a *API) AdminGetBlogPost(c *gin.Context) {
	row, err := a.posts.Row(c.Request.Context(), idParam(c))
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *API) AdminCreateBlogPost(c *gin.Context) {
	var form view.BlogPostForm
	if !bindJSON(c, &form, a.lang(c)) {
		return
	}
	form.ID = ""
	row, err := a.posts.Create(c.Request.Context(), form.ToRow())
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (a *API) AdminUpdateBlogPost(c *gin.Context) {
	var form view.BlogPostForm
	if !bindJSON(c, &form, a.lang(c)) {
		return
	}
	id := idParam(c)
	form.ID = id
	row, err := a.posts.Update(c.Request.Context(), id, form.ToRow())
	if err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (a *API) AdminDeleteBlogPost(c *gin.Context) {
	if err := a.posts.Delete(c.Request.Context(), idParam(c)); err != nil {
		a.respondBackendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
