package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "PORT", "LISTEN_ADDR", "DATABASE_PATH", "SESSION_SECRET", "GIN_MODE",
		"UPLOAD_DIR", "UPLOAD_URL_PATH", "ADMIN_USER_NAME", "ADMIN_PASSWORD", "SITE_BASE_URL",
		"SITE_NAME", "DEFAULT_LANGUAGE", "LOG_LEVEL", "BACKEND_DRIVER", "BACKEND_URL",
		"BACKEND_ANON_KEY", "BACKEND_SERVICE_KEY", "BACKEND_TIMEOUT", "WATCH_DATABASE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.BackendDriver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.BackendDriver)
	}
	if cfg.BackendTimeout != 10*time.Second {
		t.Fatalf("expected default timeout, got %s", cfg.BackendTimeout)
	}
	if cfg.Backend().Configured() {
		t.Fatal("expected empty backend settings to be unconfigured")
	}
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("port: \"9000\"\nsite_name: From File\nbackend_driver: postgrest\nbackend_timeout: 3s\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SITE_NAME", "From Env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "9000" || cfg.ListenAddr != ":9000" {
		t.Fatalf("expected port from file, got %q / %q", cfg.Port, cfg.ListenAddr)
	}
	if cfg.SiteName != "From Env" {
		t.Fatalf("expected env to win, got %q", cfg.SiteName)
	}
	if cfg.BackendDriver != DriverPostgREST {
		t.Fatalf("expected postgrest driver, got %q", cfg.BackendDriver)
	}
	if cfg.BackendTimeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", cfg.BackendTimeout)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestBackendConfigured(t *testing.T) {
	cases := []struct {
		name string
		cfg  BackendConfig
		want bool
	}{
		{name: "valid", cfg: BackendConfig{URL: "https://abc.supabase.co", AnonKey: "eyJhbGciOiJIUzI1NiJ9.real"}, want: true},
		{name: "local http", cfg: BackendConfig{URL: "http://localhost:3000", AnonKey: "local-anon-key-123"}, want: true},
		{name: "missing url", cfg: BackendConfig{AnonKey: "eyJhbGciOiJIUzI1NiJ9.real"}, want: false},
		{name: "plain http remote", cfg: BackendConfig{URL: "http://abc.supabase.co", AnonKey: "eyJhbGciOiJIUzI1NiJ9.real"}, want: false},
		{name: "placeholder url", cfg: BackendConfig{URL: "https://your-project-id.supabase.co", AnonKey: "eyJhbGciOiJIUzI1NiJ9.real"}, want: false},
		{name: "placeholder key", cfg: BackendConfig{URL: "https://abc.supabase.co", AnonKey: "your_supabase_anon_key"}, want: false},
		{name: "short key", cfg: BackendConfig{URL: "https://abc.supabase.co", AnonKey: "short"}, want: false},
		{name: "undefined", cfg: BackendConfig{URL: "undefined", AnonKey: "undefined"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cfg.Configured(); got != tc.want {
				t.Fatalf("Configured() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBackendTrimsTrailingSlash(t *testing.T) {
	cfg := AppConfig{BackendURL: " https://abc.supabase.co/ ", BackendAnonKey: " key "}
	backend := cfg.Backend()
	if backend.URL != "https://abc.supabase.co" {
		t.Fatalf("unexpected url %q", backend.URL)
	}
	if backend.AnonKey != "key" {
		t.Fatalf("unexpected key %q", backend.AnonKey)
	}
}

func TestLoadFileContacts(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`contacts:
  - icon: email
    label_en: Email
    label_ar: البريد الإلكتروني
    value_en: me@example.com
    href: mailto:me@example.com
socials:
  - icon: github
    label_en: GitHub
    href: https://github.com/someone
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(cfg.Contacts) != 1 || cfg.Contacts[0].LabelAR != "البريد الإلكتروني" {
		t.Fatalf("unexpected contacts %+v", cfg.Contacts)
	}
	if len(cfg.Socials) != 1 || cfg.Socials[0].Href != "https://github.com/someone" {
		t.Fatalf("unexpected socials %+v", cfg.Socials)
	}
}

func TestLoadFileResume(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`resume:
  download_url: /uploads/cv.pdf
  experience:
    - title_en: Instructor
      title_ar: مدرب
      org_en: Institute
      period_en: 2012 - 2021
  skills:
    - name: Go
      level: 90
  certifications:
    - name: Cloud Developer
      year: "2022"
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Resume.DownloadURL != "/uploads/cv.pdf" {
		t.Fatalf("unexpected download url %q", cfg.Resume.DownloadURL)
	}
	if len(cfg.Resume.Experience) != 1 || cfg.Resume.Experience[0].TitleAR != "مدرب" {
		t.Fatalf("unexpected experience %+v", cfg.Resume.Experience)
	}
	if len(cfg.Resume.Skills) != 1 || cfg.Resume.Skills[0].Level != 90 {
		t.Fatalf("unexpected skills %+v", cfg.Resume.Skills)
	}
	if len(cfg.Resume.Certifications) != 1 || cfg.Resume.Certifications[0].Year != "2022" {
		t.Fatalf("unexpected certifications %+v", cfg.Resume.Certifications)
	}
}

func TestGinModeNormalized(t *testing.T) {
	cases := map[string]string{
		"":        "release",
		" DEBUG ": "debug",
		"test":    "test",
		"verbose": "release",
	}
	for raw, want := range cases {
		clearEnv(t)
		t.Setenv("GIN_MODE", raw)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}
		if cfg.GinMode != want {
			t.Fatalf("GIN_MODE %q: got %q, want %q", raw, cfg.GinMode, want)
		}
	}
}
