package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/backend"
	"github.com/portfolio/internal/config"
	"github.com/portfolio/internal/locale"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultLoginAttempts = 5
	defaultLoginWindow   = 15 * time.Minute
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	users    *gorm.DB
	store    *backend.Backend
	projects *service.ProjectService
	posts    *service.BlogPostService
	limiter  *LoginLimiter
	logger   *zap.Logger

	site            siteViewModel
	defaultLanguage string
	uploadDir       string
	uploadURL       string
	now             func() time.Time
}

// Options carries what NewAPI needs. Users is the local database holding admin accounts,
// which stays on sqlite whichever content backend is selected.
type Options struct {
	Users    *gorm.DB
	Store    *backend.Backend
	Projects *service.ProjectService
	Posts    *service.BlogPostService
	Config   config.AppConfig
	Logger   *zap.Logger
	Limiter  *LoginLimiter
}

type siteViewModel struct {
	Name     string
	BaseURL  string
	Contacts []view.Contact
	Socials  []view.Contact
	Resume   view.Resume
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NewLoginLimiter(defaultLoginAttempts, defaultLoginWindow)
	}
	name := strings.TrimSpace(opts.Config.SiteName)
	if name == "" {
		name = "Portfolio"
	}
	uploadURL := strings.TrimRight(strings.TrimSpace(opts.Config.UploadURLPath), "/")
	if uploadURL == "" {
		uploadURL = "/uploads"
	}

	configureValidator()

	return &API{
		users:    opts.Users,
		store:    opts.Store,
		projects: opts.Projects,
		posts:    opts.Posts,
		limiter:  limiter,
		logger:   logger,
		site: siteViewModel{
			Name:     name,
			BaseURL:  strings.TrimRight(opts.Config.SiteBaseURL, "/"),
			Contacts: view.ContactsFromConfig(opts.Config.Contacts),
			Socials:  view.ContactsFromConfig(opts.Config.Socials),
			Resume:   view.ResumeFromConfig(opts.Config.Resume),
		},
		defaultLanguage: locale.NormalizeLanguage(opts.Config.DefaultLanguage),
		uploadDir:       strings.TrimSpace(opts.Config.UploadDir),
		uploadURL:       uploadURL,
		now:             time.Now,
	}
}

func (a *API) backendConfigured() bool {
	return a.store != nil && a.store.Configured
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	pref := a.requestLocale(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = a.site
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = a.site.Name
	}
	payload["lang"] = pref.Language
	payload["htmlLang"] = pref.HTMLLang
	payload["dir"] = pref.Dir
	payload["switchLang"] = locale.Other(pref.Language)
	payload["switchURL"] = switchLanguageURL(c, locale.Other(pref.Language))
	payload["switchName"] = locale.PreferenceForLanguage(locale.Other(pref.Language)).Name
	payload["backendConfigured"] = a.backendConfigured()
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}
	// titleKey 是界面文案的键，内容标题通过 title 原样传入
	if key, ok := payload["titleKey"].(string); ok {
		payload["title"] = locale.T(pref.Language, key)
	}

	c.HTML(status, template, payload)
}
