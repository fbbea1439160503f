package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
name: Field Notes
url: https://notes.example.com/
admin_password: pw
session_secret: secret
session_ttl: 30m
fresh_months: 3
timezone: Europe/Berlin
pages:
  - slug: now
    title: Now
    body: "# Now"
theme:
  tags:
    Go:
      color: "#123456"
      hover: "#654321"
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Field Notes", cfg.Name)
	assert.Equal(t, "https://notes.example.com", cfg.URL)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.FreshMonths)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
	assert.Equal(t, AuthModeSession, cfg.AuthMode)
	require.Len(t, cfg.Pages, 1)
	assert.Equal(t, "now", cfg.Pages[0].Slug)

	c, ok := cfg.Theme.Tags.Lookup("go")
	require.True(t, ok)
	assert.Equal(t, "#123456", c.Color, "mixed-case override replaces the default")
	assert.NotEmpty(t, cfg.Theme.Fonts.Body, "theme overlays the defaults")
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, "admin_password: from-file\n")
	t.Setenv("FOLIO_ADMIN_PASSWORD", "from-env")
	t.Setenv("FOLIO_COOKIE_SECURE", "TRUE")
	t.Setenv("FOLIO_ADDR", ":8080")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.AdminPassword)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}

func TestLoadConfigBadYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "name: [unterminated\n"))
	assert.ErrorContains(t, err, "parse")
}

func TestValidate(t *testing.T) {
	base := SiteConfig{AdminPassword: "pw", SessionSecret: "s"}
	base.setDefaults()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*SiteConfig)
		want   string
	}{
		{"no password", func(c *SiteConfig) { c.AdminPassword = "" }, "admin_password"},
		{"no secret", func(c *SiteConfig) { c.SessionSecret = "" }, "session_secret"},
		{"auth mode", func(c *SiteConfig) { c.AuthMode = "oauth" }, "auth_mode"},
		{"timezone", func(c *SiteConfig) { c.Timezone = "Mars/Olympus" }, "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, logLevel("debug"))
	assert.Equal(t, log.WARN, logLevel("WARN"))
	assert.Equal(t, log.OFF, logLevel("off"))
	assert.Equal(t, log.INFO, logLevel(""))
}
