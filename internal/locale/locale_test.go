package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "ar", want: LanguageArabic},
		{input: "ar-EG", want: LanguageArabic},
		{input: "AR_sa", want: LanguageArabic},
		{input: "en", want: LanguageEnglish},
		{input: "en-US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "ar-EG,ar;q=0.9", want: LanguageArabic},
		{input: "en-US,en;q=0.9", want: LanguageEnglish},
		{input: "fr-FR,ar;q=0.8", want: LanguageArabic},
		{input: "fr-FR,fr;q=0.9", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageFromAcceptLanguage(tc.input); got != tc.want {
			t.Fatalf("LanguageFromAcceptLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestPreferenceForLanguage(t *testing.T) {
	pref := PreferenceForLanguage("ar")
	if pref.Language != LanguageArabic || pref.Dir != DirRTL {
		t.Fatalf("expected arabic rtl, got %+v", pref)
	}
	if pref.Name != "العربية" {
		t.Fatalf("expected arabic name, got %q", pref.Name)
	}

	fallback := PreferenceForLanguage("")
	if fallback.Language != LanguageEnglish || fallback.Dir != DirLTR {
		t.Fatalf("expected english ltr fallback, got %+v", fallback)
	}
	if Dir("ar") != DirRTL || Dir("en") != DirLTR {
		t.Fatalf("unexpected directions")
	}
	if Other("ar") != LanguageEnglish || Other("en") != LanguageArabic {
		t.Fatalf("unexpected switch targets")
	}
}

func TestPick(t *testing.T) {
	if got := Pick("en", "english", "arabic"); got != "english" {
		t.Fatalf("Pick(en) = %q, want %q", got, "english")
	}
	if got := Pick("ar", "english", "arabic"); got != "arabic" {
		t.Fatalf("Pick(ar) = %q, want %q", got, "arabic")
	}
	if got := Pick("fr", "english", "arabic"); got != "english" {
		t.Fatalf("Pick(fr) = %q, want %q", got, "english")
	}
	if got := Pick("ar", "english", ""); got != "english" {
		t.Fatalf("Pick(ar) with empty arabic = %q, want fallback", got)
	}
}

func TestTranslate(t *testing.T) {
	if got := T("ar", "readMore"); got != "اقرأ المزيد" {
		t.Fatalf("T(ar, readMore) = %q", got)
	}
	if got := T("en", "readMore"); got != "Read More" {
		t.Fatalf("T(en, readMore) = %q", got)
	}
	if got := T("fr", "readMore"); got != "Read More" {
		t.Fatalf("T(fr, readMore) = %q", got)
	}
	if got := T("en", "unknownKey"); got != "unknownKey" {
		t.Fatalf("T(en, unknownKey) = %q, want the key", got)
	}
}

func TestTranslationTablesHaveSameKeys(t *testing.T) {
	for key := range messages[LanguageEnglish] {
		if _, ok := messages[LanguageArabic][key]; !ok {
			t.Errorf("arabic table is missing %q", key)
		}
	}
	for key := range messages[LanguageArabic] {
		if _, ok := messages[LanguageEnglish][key]; !ok {
			t.Errorf("english table is missing %q", key)
		}
	}
}
