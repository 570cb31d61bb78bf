package view

import (
	"strings"
	"time"

	"github.com/portfolio/internal/db"
)

const (
	FormModeCreate = "create"
	FormModeEdit   = "edit"
)

const defaultReadTime = 5

// ProjectForm is the admin form state of a project. An ID means an existing record was
// loaded and the form submits an update.
type ProjectForm struct {
	ID            string `form:"id" json:"id"`
	TitleEN       string `form:"title_en" json:"title_en" binding:"required"`
	TitleAR       string `form:"title_ar" json:"title_ar" binding:"required"`
	DescriptionEN string `form:"description_en" json:"description_en" binding:"required"`
	DescriptionAR string `form:"description_ar" json:"description_ar" binding:"required"`
	Image         string `form:"image" json:"image" binding:"required"`
	Technologies  string `form:"technologies" json:"technologies"`
	LiveURL       string `form:"live_url" json:"live_url" binding:"omitempty,url"`
	GitHubURL     string `form:"github_url" json:"github_url" binding:"omitempty,url"`
	Category      string `form:"category" json:"category" binding:"required,oneof=technology training other"`
}

// NewProjectForm returns the blank create form.
func NewProjectForm() ProjectForm {
	return ProjectForm{Category: db.ProjectCategoryTechnology}
}

// ProjectFormFromRow loads an existing record into form state.
func ProjectFormFromRow(row db.Project) ProjectForm {
	return ProjectForm{
		ID:            row.ID,
		TitleEN:       row.TitleEN,
		TitleAR:       row.TitleAR,
		DescriptionEN: row.DescriptionEN,
		DescriptionAR: row.DescriptionAR,
		Image:         row.Image,
		Technologies:  strings.Join(row.Technologies, ", "),
		LiveURL:       derefString(row.LiveURL),
		GitHubURL:     derefString(row.GitHubURL),
		Category:      row.Category,
	}
}

func (f ProjectForm) Mode() string {
	if strings.TrimSpace(f.ID) != "" {
		return FormModeEdit
	}
	return FormModeCreate
}

// ToRow builds the row payload. Technologies are split on commas with blanks dropped, and
// empty URLs become NULL.
func (f ProjectForm) ToRow() db.Project {
	category := strings.TrimSpace(f.Category)
	if category == "" {
		category = db.ProjectCategoryTechnology
	}
	return db.Project{
		ID:            strings.TrimSpace(f.ID),
		TitleEN:       strings.TrimSpace(f.TitleEN),
		TitleAR:       strings.TrimSpace(f.TitleAR),
		DescriptionEN: strings.TrimSpace(f.DescriptionEN),
		DescriptionAR: strings.TrimSpace(f.DescriptionAR),
		Image:         strings.TrimSpace(f.Image),
		Technologies:  SplitTechnologies(f.Technologies),
		LiveURL:       optionalString(f.LiveURL),
		GitHubURL:     optionalString(f.GitHubURL),
		Category:      category,
	}
}

// SplitTechnologies parses a comma separated list. The result is never nil.
func SplitTechnologies(raw string) []string {
	technologies := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			technologies = append(technologies, trimmed)
		}
	}
	return technologies
}

// BlogPostForm is the admin form state of a blog post.
type BlogPostForm struct {
	ID        string `form:"id" json:"id"`
	TitleEN   string `form:"title_en" json:"title_en" binding:"required"`
	TitleAR   string `form:"title_ar" json:"title_ar" binding:"required"`
	ExcerptEN string `form:"excerpt_en" json:"excerpt_en" binding:"required"`
	ExcerptAR string `form:"excerpt_ar" json:"excerpt_ar" binding:"required"`
	Image     string `form:"image" json:"image" binding:"required"`
	Date      string `form:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Category  string `form:"category" json:"category" binding:"required"`
	ReadTime  int    `form:"read_time" json:"read_time" binding:"required,min=1,max=60"`
}

// NewBlogPostForm returns the blank create form dated today.
func NewBlogPostForm(now time.Time) BlogPostForm {
	return BlogPostForm{
		Date:     now.Format(db.DateLayout),
		Category: db.BlogCategories[0],
		ReadTime: defaultReadTime,
	}
}

// BlogPostFormFromRow loads an existing record into form state.
func BlogPostFormFromRow(row db.BlogPost) BlogPostForm {
	return BlogPostForm{
		ID:        row.ID,
		TitleEN:   row.TitleEN,
		TitleAR:   row.TitleAR,
		ExcerptEN: row.ExcerptEN,
		ExcerptAR: row.ExcerptAR,
		Image:     row.Image,
		Date:      row.Date,
		Category:  row.Category,
		ReadTime:  row.ReadTime,
	}
}

func (f BlogPostForm) Mode() string {
	if strings.TrimSpace(f.ID) != "" {
		return FormModeEdit
	}
	return FormModeCreate
}

func (f BlogPostForm) ToRow() db.BlogPost {
	readTime := f.ReadTime
	if readTime <= 0 {
		readTime = defaultReadTime
	}
	return db.BlogPost{
		ID:        strings.TrimSpace(f.ID),
		TitleEN:   strings.TrimSpace(f.TitleEN),
		TitleAR:   strings.TrimSpace(f.TitleAR),
		ExcerptEN: strings.TrimSpace(f.ExcerptEN),
		ExcerptAR: strings.TrimSpace(f.ExcerptAR),
		Image:     strings.TrimSpace(f.Image),
		Date:      strings.TrimSpace(f.Date),
		Category:  strings.TrimSpace(f.Category),
		ReadTime:  readTime,
	}
}

func optionalString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
