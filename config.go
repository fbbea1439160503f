package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/folio-blog/folio/auth"
	"github.com/folio-blog/folio/theme"
	"github.com/folio-blog/folio/views"
)

// Page is a standalone Markdown page served at /<slug>/. Protected pages are
// only shown to signed-in visitors and are left out of static exports.
type Page struct {
	Slug      string `yaml:"slug"`
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Protected bool   `yaml:"protected"`
}

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string          `yaml:"name"`        // Site name (default "Blog")
	URL         string          `yaml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string          `yaml:"description"` // RSS and meta description
	Author      string          `yaml:"author"`      // Author for JSON-LD
	Emoji       string          `yaml:"emoji"`       // Shown before the name in the navbar
	Nav         []views.NavLink `yaml:"nav"`
	Pages       []Page          `yaml:"pages"`

	Addr         string `yaml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path"` // SQLite path (default "data/folio.db")
	ContentDir   string `yaml:"content_dir"`   // Markdown posts for `folio import` (default "content/posts")

	AdminPassword string        `yaml:"admin_password"` // Required to serve
	SessionSecret string        `yaml:"session_secret"` // Required to serve
	CookieSecure  bool          `yaml:"cookie_secure"`  // Set true for HTTPS
	SessionTTL    time.Duration `yaml:"session_ttl"`    // Admin session lifetime (default 12h)
	AuthMode      string        `yaml:"auth_mode"`      // "session" (default) or "presence"

	PostCacheTTL time.Duration `yaml:"post_cache_ttl"` // default 5m
	FreshMonths  int           `yaml:"fresh_months"`   // "New!" window (default 2)
	Timezone     string        `yaml:"timezone"`       // zone used for "today" (default UTC)
	LogLevel     string        `yaml:"log_level"`      // debug, info, warn, error (default info)

	Theme theme.Theme `yaml:"theme"`
}

const (
	AuthModeSession  = "session"
	AuthModePresence = "presence"
)

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Nav == nil {
		c.Nav = views.DefaultNav()
	}
	if c.Pages == nil {
		c.Pages = []Page{
			{Slug: "about", Title: "About", Body: "# About\n\nHi, welcome to my corner of the web."},
			{Slug: "guides", Title: "Guides", Body: "# Guides\n\nLonger walkthroughs live here."},
		}
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/posts"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.AuthMode == "" {
		c.AuthMode = AuthModeSession
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.FreshMonths == 0 {
		c.FreshMonths = 2
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Theme.Fonts.Body == "" && c.Theme.MaxWidth == "" && c.Theme.Tags == nil {
		c.Theme = theme.Default()
	}
}

// Validate checks the settings needed to serve the site.
func (c *SiteConfig) Validate() error {
	if c.AdminPassword == "" {
		return errors.New("folio: admin_password is required")
	}
	if c.SessionSecret == "" {
		return errors.New("folio: session_secret is required")
	}
	switch c.AuthMode {
	case AuthModeSession, AuthModePresence:
	default:
		return fmt.Errorf("folio: unknown auth_mode %q", c.AuthMode)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("folio: timezone: %w", err)
		}
	}
	return nil
}

// page returns the configured page with slug.
func (c *SiteConfig) page(slug string) (Page, bool) {
	for _, p := range c.Pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}

// DefaultConfigPath returns ./folio.yaml when present, else the first
// folio/config.yaml found in the XDG config dirs, else "".
func DefaultConfigPath() string {
	if _, err := os.Stat("folio.yaml"); err == nil {
		return "folio.yaml"
	}
	if p, err := xdg.SearchConfigFile("folio/config.yaml"); err == nil {
		return p
	}
	return ""
}

// LoadConfig reads path (or DefaultConfigPath when empty), overlays it on the
// default theme and applies FOLIO_* environment overrides. A missing default
// file is not an error; a missing explicit path is.
func LoadConfig(path string) (SiteConfig, error) {
	cfg := SiteConfig{Theme: theme.Default()}
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("folio: parse %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return SiteConfig{}, fmt.Errorf("folio: read config: %w", err)
		}
	}
	cfg.applyEnv()
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv() {
	c.AdminPassword = EnvOr("FOLIO_ADMIN_PASSWORD", c.AdminPassword)
	c.SessionSecret = EnvOr("FOLIO_SESSION_SECRET", c.SessionSecret)
	c.DatabasePath = EnvOr("FOLIO_DATABASE_PATH", c.DatabasePath)
	c.Addr = EnvOr("FOLIO_ADDR", c.Addr)
	c.URL = EnvOr("FOLIO_URL", c.URL)
	c.LogLevel = EnvOr("FOLIO_LOG_LEVEL", c.LogLevel)
	if v := os.Getenv("FOLIO_COOKIE_SECURE"); v != "" {
		c.CookieSecure = strings.EqualFold(v, "true")
	}
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithClock replaces time.Now, which drives freshness markers and session expiry.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithVerifier replaces the token verifier chosen by AuthMode.
func WithVerifier(v auth.Verifier) Option {
	return func(a *App) {
		a.verifier = v
	}
}
