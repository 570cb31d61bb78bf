package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/locale"
)

const (
	localeContextKey     = "__request_locale"
	languageCookieName   = "portfolio_lang"
	languageCookieMaxAge = 365 * 24 * 60 * 60
)

// LocaleMiddleware 解析请求语言，并设置 Content-Language 与 Vary。
// 语言优先级：?lang= 参数 > cookie > 配置的默认语言 > Accept-Language > en。
func (a *API) LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		pref := a.requestLocale(c)
		c.Header("Content-Language", pref.HTMLLang)
		if readLanguageCookie(c) != "" || locale.NormalizeLanguage(c.Query("lang")) != "" {
			c.Header("Vary", "Accept-Language, Cookie")
		} else {
			c.Header("Vary", "Accept-Language")
		}
		c.Next()
	}
}

func (a *API) requestLocale(c *gin.Context) locale.Preference {
	if cached, ok := c.Get(localeContextKey); ok {
		return cached.(locale.Preference)
	}

	language := a.defaultLanguage
	if override := locale.NormalizeLanguage(c.Query("lang")); override != "" {
		language = override
		a.persistLanguage(c, override)
	} else if cookie := readLanguageCookie(c); cookie != "" {
		language = cookie
	} else if language == "" {
		language = locale.LanguageFromAcceptLanguage(c.GetHeader("Accept-Language"))
	}
	if language == "" {
		language = locale.LanguageEnglish
	}

	pref := locale.PreferenceForLanguage(language)
	c.Set(localeContextKey, pref)
	return pref
}

func (a *API) lang(c *gin.Context) string {
	return a.requestLocale(c).Language
}

func readLanguageCookie(c *gin.Context) string {
	value, err := c.Cookie(languageCookieName)
	if err != nil {
		return ""
	}
	return locale.NormalizeLanguage(value)
}

// persistLanguage 记住显式切换的语言，Secure 与会话 cookie 一致取决于站点地址。
func (a *API) persistLanguage(c *gin.Context, language string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     languageCookieName,
		Value:    language,
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(a.site.BaseURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
}

// switchLanguageURL returns the current URL with ?lang= set to language.
func switchLanguageURL(c *gin.Context, language string) string {
	values := c.Request.URL.Query()
	values.Set("lang", language)
	return c.Request.URL.Path + "?" + values.Encode()
}
