package folio

import (
	"context"
	"errors"
	"html"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

var embeddedScripts = []string{"reveal.js", "colormode.js", "search.js"}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded scripts take precedence over the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	for _, name := range embeddedScripts {
		e.GET("/public/"+name, embeddedHandler)
	}
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/theme.css", a.handleThemeCSS)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/api/search", a.handleSearchAPI)
	e.GET("/", a.handleBlog)
	e.GET("/blog/", a.handleBlog)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/post/:slug/delete/", a.handleAdminDelete)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.POST("/admin/images/:filename/delete/", a.handleImageDelete)

	e.GET("/:page/", a.handlePage)
}

// Listing builds the blog index state for an optional tag filter and query.
// With a query the result is a flat ranked list; without, posts are grouped
// by year.
func (a *App) Listing(ctx context.Context, tag, query string) (blog.Listing, error) {
	posts, err := a.Cache.ListPosts(ctx, tag)
	if err != nil {
		return blog.Listing{}, err
	}
	var index *blog.Index
	if strings.TrimSpace(tag) == "" {
		if index, err = a.Cache.Index(ctx); err != nil {
			return blog.Listing{}, err
		}
	}
	view := blog.NewListView(posts, index, a.Site().Freshness, a.Config.Theme.Tags)
	view.Search(query)
	return view.Listing(), nil
}

func (a *App) handleBlog(c echo.Context) error {
	tag := c.QueryParam("tag")
	q := c.QueryParam("q")
	listing, err := a.Listing(c.Request().Context(), tag, q)
	if err != nil {
		return err
	}
	if listing.Searching {
		c.Logger().Debugf("search %q tag=%q: %d results", listing.Query, tag, listing.Total)
	}
	if c.QueryParam("partial") == "list" {
		return Render(c, views.BlogList(listing, tag))
	}
	return Render(c, views.BlogPage(a.Site(), listing, tag))
}

type searchHit struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Date    string       `json:"date"`
	URL     string       `json:"url"`
	Tags    []string     `json:"tags"`
	Fresh   bool         `json:"fresh"`
	Score   float64      `json:"score"`
	Matches []blog.Match `json:"matches,omitempty"`
}

func (a *App) handleSearchAPI(c echo.Context) error {
	listing, err := a.Listing(c.Request().Context(), c.QueryParam("tag"), c.QueryParam("q"))
	if err != nil {
		return err
	}
	entries := listing.Results
	if !listing.Searching {
		for _, s := range listing.Sections {
			entries = append(entries, s.Entries...)
		}
	}
	hits := make([]searchHit, 0, len(entries))
	for _, e := range entries {
		hits = append(hits, searchHit{
			ID:      e.Post.ID,
			Title:   e.Post.Title,
			Date:    e.Post.Date.String(),
			URL:     e.Post.Link(),
			Tags:    e.Post.Tags,
			Fresh:   e.Fresh,
			Score:   e.Score,
			Matches: e.Matches,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"query":   listing.Query,
		"total":   len(hits),
		"results": hits,
	})
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Cache.GetPost(ctx, c.Param("slug"))
	if err != nil {
		return err
	}
	posts, err := a.Cache.Posts(ctx)
	if err != nil {
		return err
	}
	return Render(c, views.PostPage(a.Site(), post, blog.Related(post, posts)))
}

func (a *App) handlePage(c echo.Context) error {
	p, ok := a.Config.page(c.Param("page"))
	if !ok {
		return echo.ErrNotFound
	}
	cmp := views.MarkdownPage(a.Site(), p.Title, "/"+p.Slug+"/", p.Body)
	if p.Protected {
		return RenderGuarded(c, cmp)
	}
	return Render(c, cmp)
}

func (a *App) handleThemeCSS(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/css; charset=utf-8", []byte(a.Config.Theme.CSS()))
}

// handleFavicon serves the user's favicon.svg, falling back to the site emoji.
func (a *App) handleFavicon(c echo.Context) error {
	path := filepath.Join(a.staticDir, "favicon.svg")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", a.faviconSVG())
}

func (a *App) faviconSVG() []byte {
	emoji := a.Config.Emoji
	if emoji == "" {
		emoji = "✍️"
	}
	return []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100"><text y=".9em" font-size="90">` + html.EscapeString(emoji) + `</text></svg>`)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	if errors.Is(err, ErrNotFound) {
		err = echo.ErrNotFound
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.Site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.Site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
