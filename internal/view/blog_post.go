package view

import (
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/locale"
)

// BlogPost is the bilingual view model of a blog_posts row.
type BlogPost struct {
	ID       string    `json:"id"`
	Title    Bilingual `json:"title"`
	Excerpt  Bilingual `json:"excerpt"`
	Image    string    `json:"image"`
	Date     string    `json:"date"`
	Category string    `json:"category"`
	ReadTime int       `json:"readTime"`
}

// BlogPostFromRow splits the _en/_ar columns into bilingual fields.
func BlogPostFromRow(row db.BlogPost) BlogPost {
	return BlogPost{
		ID:       row.ID,
		Title:    Bilingual{En: row.TitleEN, Ar: row.TitleAR},
		Excerpt:  Bilingual{En: row.ExcerptEN, Ar: row.ExcerptAR},
		Image:    row.Image,
		Date:     row.Date,
		Category: row.Category,
		ReadTime: row.ReadTime,
	}
}

// BlogPostsFromRows maps every row, preserving order.
func BlogPostsFromRows(rows []db.BlogPost) []BlogPost {
	posts := make([]BlogPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, BlogPostFromRow(row))
	}
	return posts
}

const longDateLayout = "January 2, 2006"

var arabicMonths = []string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// FormatDate renders the stored YYYY-MM-DD date for language. Unparseable dates are
// returned unchanged.
func (p BlogPost) FormatDate(language string) string {
	parsed, err := time.Parse(db.DateLayout, p.Date)
	if err != nil {
		return p.Date
	}
	if locale.NormalizeLanguage(language) == locale.LanguageArabic {
		return parsed.Format("2 ") + arabicMonths[parsed.Month()-1] + parsed.Format(" 2006")
	}
	return parsed.Format(longDateLayout)
}
