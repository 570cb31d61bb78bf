package locale

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	LanguageEnglish = "en"
	LanguageArabic  = "ar"
)

const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// SupportedLanguages lists the site languages in switcher order.
var SupportedLanguages = []string{LanguageEnglish, LanguageArabic}

type Preference struct {
	Language string
	Locale   string
	HTMLLang string
	Dir      string
	Name     string
}

var matcher = language.NewMatcher([]language.Tag{
	language.English,
	language.Arabic,
})

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "ar") {
		return LanguageArabic
	}
	if strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage matches an Accept-Language header against the supported
// languages. Headers without a confident match return "".
func LanguageFromAcceptLanguage(header string) string {
	trimmed := strings.TrimSpace(header)
	if trimmed == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(trimmed)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence < language.High {
		return ""
	}
	return SupportedLanguages[index]
}

func PreferenceForLanguage(lang string) Preference {
	if NormalizeLanguage(lang) == LanguageArabic {
		return Preference{Language: LanguageArabic, Locale: "ar_AR", HTMLLang: "ar", Dir: DirRTL, Name: "العربية"}
	}
	return Preference{Language: LanguageEnglish, Locale: "en_US", HTMLLang: "en", Dir: DirLTR, Name: "English"}
}

// Dir returns the text direction of lang.
func Dir(lang string) string {
	return PreferenceForLanguage(lang).Dir
}

// Other returns the language the switcher toggles to.
func Other(lang string) string {
	if NormalizeLanguage(lang) == LanguageArabic {
		return LanguageEnglish
	}
	return LanguageArabic
}
