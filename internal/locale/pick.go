package locale

// Pick returns the text matching the request language, defaulting to English.
func Pick(lang, english, arabic string) string {
	if NormalizeLanguage(lang) == LanguageArabic {
		if arabic != "" {
			return arabic
		}
		return english
	}
	if english != "" {
		return english
	}
	return arabic
}
