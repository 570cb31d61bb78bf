package view

import (
	"strings"

	"github.com/portfolio/internal/locale"
)

// Bilingual is a value shown per active locale.
type Bilingual struct {
	En string `json:"en"`
	Ar string `json:"ar"`
}

// NewBilingual trims both halves.
func NewBilingual(en, ar string) Bilingual {
	return Bilingual{En: strings.TrimSpace(en), Ar: strings.TrimSpace(ar)}
}

// Pick returns the text for language, falling back to the other half when it is empty.
func (b Bilingual) Pick(language string) string {
	return locale.Pick(language, b.En, b.Ar)
}

// Empty reports whether both halves are blank.
func (b Bilingual) Empty() bool {
	return strings.TrimSpace(b.En) == "" && strings.TrimSpace(b.Ar) == ""
}
