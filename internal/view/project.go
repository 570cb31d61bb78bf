package view

import (
	"strings"

	"github.com/portfolio/internal/db"
)

// CategoryAll disables the project category filter.
const CategoryAll = "all"

// Project is the bilingual view model of a projects row.
type Project struct {
	ID           string    `json:"id"`
	Title        Bilingual `json:"title"`
	Description  Bilingual `json:"description"`
	Image        string    `json:"image"`
	Technologies []string  `json:"technologies"`
	LiveURL      string    `json:"liveUrl,omitempty"`
	GitHubURL    string    `json:"githubUrl,omitempty"`
	Category     string    `json:"category"`
}

// ProjectFromRow splits the _en/_ar columns into bilingual fields.
func ProjectFromRow(row db.Project) Project {
	technologies := make([]string, 0, len(row.Technologies))
	technologies = append(technologies, row.Technologies...)

	return Project{
		ID:           row.ID,
		Title:        Bilingual{En: row.TitleEN, Ar: row.TitleAR},
		Description:  Bilingual{En: row.DescriptionEN, Ar: row.DescriptionAR},
		Image:        row.Image,
		Technologies: technologies,
		LiveURL:      derefString(row.LiveURL),
		GitHubURL:    derefString(row.GitHubURL),
		Category:     row.Category,
	}
}

// ProjectsFromRows maps every row, preserving order.
func ProjectsFromRows(rows []db.Project) []Project {
	projects := make([]Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, ProjectFromRow(row))
	}
	return projects
}

// FilterProjects returns exactly the projects whose category matches. An empty category or
// CategoryAll returns the full list.
func FilterProjects(projects []Project, category string) []Project {
	category = strings.TrimSpace(category)
	if category == "" || category == CategoryAll {
		return projects
	}
	filtered := make([]Project, 0, len(projects))
	for _, project := range projects {
		if project.Category == category {
			filtered = append(filtered, project)
		}
	}
	return filtered
}

// CountByCategory counts projects per category.
func CountByCategory(projects []Project) map[string]int {
	counts := make(map[string]int, len(db.ProjectCategories))
	for _, category := range db.ProjectCategories {
		counts[category] = 0
	}
	for _, project := range projects {
		counts[project.Category]++
	}
	return counts
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
