// Package folio is a personal blog and portfolio server built with Go, Echo
// and templ. It serves a year-grouped blog index with fuzzy search and
// "New!" markers, standalone Markdown pages, an admin area backed by SQLite,
// RSS and sitemap feeds, and can export the public site as static files.
package folio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/folio-blog/folio/auth"
	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

// App is the central folio application. It wires together the store, cache,
// handlers, middleware and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache

	verifier     auth.Verifier
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	now          func() time.Time
	location     *time.Location
}

// New creates an App with the given configuration. Nothing is opened until Init.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
		now:       time.Now,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the store and builds the cache and token verifier. It does not
// register any routes, so commands that only need data can call it alone.
func (a *App) Init(ctx context.Context) error {
	if a.Store != nil {
		return nil
	}
	if a.Config.Timezone != "" {
		loc, err := time.LoadLocation(a.Config.Timezone)
		if err != nil {
			return fmt.Errorf("folio: timezone: %w", err)
		}
		a.location = loc
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.Cache.now = a.now

	if a.verifier == nil {
		switch a.Config.AuthMode {
		case AuthModePresence:
			a.verifier = auth.PresenceVerifier{}
		default:
			a.verifier = auth.SessionVerifier{Store: a.Store, Now: a.now}
		}
	}

	if n, err := a.Store.PurgeExpiredSessions(ctx, a.now()); err != nil {
		return fmt.Errorf("folio: purge sessions: %w", err)
	} else if n > 0 {
		a.Echo.Logger.Infof("purged %d expired admin sessions", n)
	}
	return nil
}

// Setup validates the configuration, runs Init and registers middleware and
// routes. After Setup the App can serve requests through a.Echo.
func (a *App) Setup(ctx context.Context) error {
	if err := a.Config.Validate(); err != nil {
		return err
	}
	a.Echo.Logger.SetLevel(logLevel(a.Config.LogLevel))
	if a.Config.AuthMode == AuthModePresence {
		a.Echo.Logger.Warn("auth_mode presence accepts any session token; use it for local previews only")
	}
	if err := a.Init(ctx); err != nil {
		return err
	}
	a.loginLimiter = newLoginLimiter(5, time.Minute, a.now)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the App up and serves until the server is shut down.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(ctx); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases resources. Call it when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Site returns the values every page is rendered with.
func (a *App) Site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Emoji:       a.Config.Emoji,
		Nav:         a.Config.Nav,
		Theme:       a.Config.Theme,
		Freshness: blog.FreshnessPolicy{
			Window:   a.Config.FreshMonths,
			Location: a.location,
			Now:      a.now,
		},
	}
}

func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
