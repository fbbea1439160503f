package folio

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap lists the home page, the blog index, public pages and every post.
func (a *App) Sitemap(posts []blog.Post) ([]byte, error) {
	base := a.Config.URL
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.BuildURL(base, "blog")},
	}
	for _, p := range a.Config.Pages {
		if p.Protected {
			continue
		}
		urls = append(urls, sitemapURL{Loc: views.BuildURL(base, p.Slug)})
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, "blog", p.ID),
			LastMod: p.Date.String(),
		})
	}
	set := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(set); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Robots returns a robots.txt that keeps crawlers out of the admin area.
func (a *App) Robots() []byte {
	return []byte("User-agent: *\nDisallow: /admin/\n\nSitemap: " + a.Config.URL + "/sitemap.xml\n")
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	data, err := a.Sitemap(posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", data)
}

func (a *App) handleRobots(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/plain; charset=utf-8", a.Robots())
}
