package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project categories accepted by the admin form.
const (
	ProjectCategoryTechnology = "technology"
	ProjectCategoryTraining   = "training"
	ProjectCategoryOther      = "other"
)

// ProjectCategories lists the categories in display order.
var ProjectCategories = []string{
	ProjectCategoryTechnology,
	ProjectCategoryTraining,
	ProjectCategoryOther,
}

// Project is a row of the projects table. JSON names match the backend columns so the
// same struct travels over the REST backend.
type Project struct {
	ID            string                      `gorm:"primaryKey;size:36" json:"id,omitempty"`
	TitleEN       string                      `gorm:"column:title_en;not null" json:"title_en"`
	TitleAR       string                      `gorm:"column:title_ar;not null" json:"title_ar"`
	DescriptionEN string                      `gorm:"column:description_en;type:text" json:"description_en"`
	DescriptionAR string                      `gorm:"column:description_ar;type:text" json:"description_ar"`
	Image         string                      `json:"image"`
	Technologies  datatypes.JSONSlice[string] `json:"technologies"`
	LiveURL       *string                     `gorm:"column:live_url" json:"live_url"`
	GitHubURL     *string                     `gorm:"column:github_url" json:"github_url"`
	Category      string                      `gorm:"size:32;index;not null;default:technology" json:"category"`
	CreatedAt     time.Time                   `json:"created_at,omitempty"`
	UpdatedAt     time.Time                   `json:"updated_at,omitempty"`
}

// TableName 指定表名，与托管后端保持一致。
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns a uuid when the caller did not provide one.
func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// IsProjectCategory reports whether value is one of ProjectCategories.
func IsProjectCategory(value string) bool {
	for _, category := range ProjectCategories {
		if category == value {
			return true
		}
	}
	return false
}
