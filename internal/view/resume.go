package view

import (
	"strings"

	"github.com/portfolio/internal/config"
)

// ResumeItem is one experience or education entry.
type ResumeItem struct {
	Title       Bilingual
	Org         Bilingual
	Period      Bilingual
	Location    Bilingual
	Description Bilingual
}

type Skill struct {
	Name  string
	Level int
}

type Certification struct {
	Name string
	Year string
}

// Resume is the static resume section of the home page.
type Resume struct {
	DownloadURL    string
	Experience     []ResumeItem
	Education      []ResumeItem
	Skills         []Skill
	Certifications []Certification
}

// Empty reports whether there is nothing to render.
func (r Resume) Empty() bool {
	return len(r.Experience) == 0 && len(r.Education) == 0 &&
		len(r.Skills) == 0 && len(r.Certifications) == 0
}

// ResumeFromConfig maps the configured resume. Entries without a title or name are skipped
// and skill levels are clamped to 0-100.
func ResumeFromConfig(cfg config.ResumeConfig) Resume {
	resume := Resume{
		DownloadURL:    strings.TrimSpace(cfg.DownloadURL),
		Experience:     resumeItems(cfg.Experience),
		Education:      resumeItems(cfg.Education),
		Skills:         make([]Skill, 0, len(cfg.Skills)),
		Certifications: make([]Certification, 0, len(cfg.Certifications)),
	}
	for _, entry := range cfg.Skills {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		level := entry.Level
		if level < 0 {
			level = 0
		}
		if level > 100 {
			level = 100
		}
		resume.Skills = append(resume.Skills, Skill{Name: name, Level: level})
	}
	for _, entry := range cfg.Certifications {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			continue
		}
		resume.Certifications = append(resume.Certifications, Certification{
			Name: name,
			Year: strings.TrimSpace(entry.Year),
		})
	}
	return resume
}

func resumeItems(entries []config.ResumeEntry) []ResumeItem {
	items := make([]ResumeItem, 0, len(entries))
	for _, entry := range entries {
		title := NewBilingual(entry.TitleEN, entry.TitleAR)
		if title.Empty() {
			continue
		}
		items = append(items, ResumeItem{
			Title:       title,
			Org:         NewBilingual(entry.OrgEN, entry.OrgAR),
			Period:      NewBilingual(entry.PeriodEN, entry.PeriodAR),
			Location:    NewBilingual(entry.LocationEN, entry.LocationAR),
			Description: NewBilingual(entry.DescriptionEN, entry.DescriptionAR),
		})
	}
	return items
}
