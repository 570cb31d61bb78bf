package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr      string `yaml:"listen_addr"`
	Port            string `yaml:"port"`
	DatabasePath    string `yaml:"database_path"`
	SessionSecret   string `yaml:"session_secret"`
	GinMode         string `yaml:"gin_mode"`
	UploadDir       string `yaml:"upload_dir"`
	UploadURLPath   string `yaml:"upload_url_path"`
	AdminUserName   string `yaml:"admin_user_name"`
	AdminPassword   string `yaml:"admin_password"`
	SiteBaseURL     string `yaml:"site_base_url"`
	SiteName        string `yaml:"site_name"`
	DefaultLanguage string `yaml:"default_language"`
	LogLevel        string `yaml:"log_level"`
	WatchDatabase   bool   `yaml:"watch_database"`

	BackendDriver     string        `yaml:"backend_driver"`
	BackendURL        string        `yaml:"backend_url"`
	BackendAnonKey    string        `yaml:"backend_anon_key"`
	BackendServiceKey string        `yaml:"backend_service_key"`
	BackendTimeout    time.Duration `yaml:"backend_timeout"`

	Contacts []ContactEntry `yaml:"contacts"`
	Socials  []ContactEntry `yaml:"socials"`
	Resume   ResumeConfig   `yaml:"resume"`
}

// ContactEntry 是首页联系方式或社交链接的一项，只能通过配置文件设置。
type ContactEntry struct {
	Icon    string `yaml:"icon"`
	LabelEN string `yaml:"label_en"`
	LabelAR string `yaml:"label_ar"`
	ValueEN string `yaml:"value_en"`
	ValueAR string `yaml:"value_ar"`
	Href    string `yaml:"href"`
}

// ResumeConfig 是首页简历区块的静态内容。
type ResumeConfig struct {
	DownloadURL    string               `yaml:"download_url"`
	Experience     []ResumeEntry        `yaml:"experience"`
	Education      []ResumeEntry        `yaml:"education"`
	Skills         []SkillEntry         `yaml:"skills"`
	Certifications []CertificationEntry `yaml:"certifications"`
}

// ResumeEntry describes a job or a degree. Org is the company or the school.
type ResumeEntry struct {
	TitleEN       string `yaml:"title_en"`
	TitleAR       string `yaml:"title_ar"`
	OrgEN         string `yaml:"org_en"`
	OrgAR         string `yaml:"org_ar"`
	PeriodEN      string `yaml:"period_en"`
	PeriodAR      string `yaml:"period_ar"`
	LocationEN    string `yaml:"location_en"`
	LocationAR    string `yaml:"location_ar"`
	DescriptionEN string `yaml:"description_en"`
	DescriptionAR string `yaml:"description_ar"`
}

// SkillEntry is a skill with a 0-100 proficiency level.
type SkillEntry struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

type CertificationEntry struct {
	Name string `yaml:"name"`
	Year string `yaml:"year"`
}

const (
	// DriverSQLite stores content tables in the local sqlite database.
	DriverSQLite = "sqlite"
	// DriverPostgREST talks to a hosted PostgREST endpoint.
	DriverPostgREST = "postgrest"
)

// BackendConfig is the subset of AppConfig the content backend needs.
type BackendConfig struct {
	Driver     string
	URL        string
	AnonKey    string
	ServiceKey string
	Timeout    time.Duration
}

var placeholderMarkers = []string{
	"your-project-id",
	"your_supabase_project_url",
	"your_supabase_anon_key",
	"example.supabase.co",
	"dummy.supabase.co",
	"undefined",
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若设置了 CONFIG_FILE，则先读取 YAML 文件，环境变量优先级更高。
func Load() (AppConfig, error) {
	var cfg AppConfig

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		cfg = fileCfg
	}

	applyEnv(&cfg)
	cfg.setDefaults()
	return cfg, nil
}

// LoadFile reads a YAML config file without applying env overrides or defaults.
func LoadFile(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.ListenAddr, "LISTEN_ADDR")
	overrideString(&cfg.DatabasePath, "DATABASE_PATH")
	overrideString(&cfg.SessionSecret, "SESSION_SECRET")
	overrideString(&cfg.GinMode, "GIN_MODE")
	overrideString(&cfg.UploadDir, "UPLOAD_DIR")
	overrideString(&cfg.UploadURLPath, "UPLOAD_URL_PATH")
	overrideString(&cfg.AdminUserName, "ADMIN_USER_NAME")
	overrideString(&cfg.AdminPassword, "ADMIN_PASSWORD")
	overrideString(&cfg.SiteBaseURL, "SITE_BASE_URL")
	overrideString(&cfg.SiteName, "SITE_NAME")
	overrideString(&cfg.DefaultLanguage, "DEFAULT_LANGUAGE")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.BackendDriver, "BACKEND_DRIVER")
	overrideString(&cfg.BackendURL, "BACKEND_URL")
	overrideString(&cfg.BackendAnonKey, "BACKEND_ANON_KEY")
	overrideString(&cfg.BackendServiceKey, "BACKEND_SERVICE_KEY")

	if raw := strings.TrimSpace(os.Getenv("BACKEND_TIMEOUT")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cfg.BackendTimeout = parsed
		}
	}
	if raw := strings.TrimSpace(os.Getenv("WATCH_DATABASE")); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			cfg.WatchDatabase = parsed
		}
	}
}

func overrideString(dst *string, key string) {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		*dst = value
	}
}

func (c *AppConfig) setDefaults() {
	c.Port = strings.TrimSpace(c.Port)
	if c.Port == "" {
		c.Port = "8080"
	}
	if strings.TrimSpace(c.ListenAddr) == "" {
		c.ListenAddr = fmt.Sprintf(":%s", c.Port)
	}
	if strings.TrimSpace(c.DatabasePath) == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		c.SessionSecret = "portfolio-dev-secret"
	}
	c.GinMode = strings.ToLower(strings.TrimSpace(c.GinMode))
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		c.GinMode = "release"
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		c.UploadDir = "data/uploads"
	}
	if strings.TrimSpace(c.UploadURLPath) == "" {
		c.UploadURLPath = "/uploads"
	}
	if strings.TrimSpace(c.SiteBaseURL) == "" {
		c.SiteBaseURL = "http://localhost:" + c.Port
	}
	if strings.TrimSpace(c.SiteName) == "" {
		c.SiteName = "Portfolio"
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = "info"
	}
	c.BackendDriver = strings.ToLower(strings.TrimSpace(c.BackendDriver))
	if c.BackendDriver == "" {
		c.BackendDriver = DriverSQLite
	}
	if c.BackendTimeout <= 0 {
		c.BackendTimeout = 10 * time.Second
	}
}

// Backend returns the content backend settings.
func (c AppConfig) Backend() BackendConfig {
	return BackendConfig{
		Driver:     c.BackendDriver,
		URL:        strings.TrimRight(strings.TrimSpace(c.BackendURL), "/"),
		AnonKey:    strings.TrimSpace(c.BackendAnonKey),
		ServiceKey: strings.TrimSpace(c.BackendServiceKey),
		Timeout:    c.BackendTimeout,
	}
}

// Configured reports whether the remote backend settings look usable. Placeholder
// values copied from an example env file count as missing.
func (b BackendConfig) Configured() bool {
	return b.ValidURL() && b.ValidKey()
}

// ValidURL reports whether URL is an absolute http(s) URL that is not a placeholder.
func (b BackendConfig) ValidURL() bool {
	url := strings.TrimSpace(b.URL)
	if url == "" || isPlaceholder(url) {
		return false
	}
	if strings.HasPrefix(url, "https://") {
		return true
	}
	return strings.HasPrefix(url, "http://localhost") || strings.HasPrefix(url, "http://127.0.0.1")
}

// ValidKey reports whether AnonKey looks like a real key.
func (b BackendConfig) ValidKey() bool {
	key := strings.TrimSpace(b.AnonKey)
	return len(key) > 10 && !isPlaceholder(key)
}

func isPlaceholder(value string) bool {
	lowered := strings.ToLower(value)
	for _, marker := range placeholderMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
