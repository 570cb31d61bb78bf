package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the storage format of BlogPost.Date.
const DateLayout = "2006-01-02"

// BlogCategories are offered by the admin form; any other string is accepted too.
var BlogCategories = []string{"Technology", "Training", "Opinion Posts"}

// BlogPost is a row of the blog_posts table.
type BlogPost struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id,omitempty"`
	TitleEN   string    `gorm:"column:title_en;not null" json:"title_en"`
	TitleAR   string    `gorm:"column:title_ar;not null" json:"title_ar"`
	ExcerptEN string    `gorm:"column:excerpt_en;type:text" json:"excerpt_en"`
	ExcerptAR string    `gorm:"column:excerpt_ar;type:text" json:"excerpt_ar"`
	Image     string    `json:"image"`
	Date      string    `gorm:"size:10;index" json:"date"`
	Category  string    `gorm:"size:64" json:"category"`
	ReadTime  int       `gorm:"column:read_time;default:5" json:"read_time"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// TableName 指定表名，与托管后端保持一致。
func (BlogPost) TableName() string {
	return "blog_posts"
}

// BeforeCreate assigns a uuid when the caller did not provide one.
func (p *BlogPost) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
