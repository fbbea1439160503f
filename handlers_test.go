package folio

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogIndex(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)

	for _, path := range []string{"/", "/blog/"} {
		rec := c.get(path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		d := parse(t, rec)

		var years []string
		d.Find("h2.year-heading").Each(func(_ int, s *goquery.Selection) { years = append(years, s.Text()) })
		assert.Equal(t, []string{"2024", "2023", "2022"}, years, path)

		titles := d.Find("article.article h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
		assert.NotContains(t, titles, "Post wip", "drafts stay hidden")
		assert.Equal(t, 1, d.Find(".new-tag").Length(), "only hello is fresh")
	}
}

func TestBlogRedirectsToTrailingSlash(t *testing.T) {
	a := newTestApp(t, fixedNow())
	rec := newClient(t, a).get("/blog")
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/blog/", rec.Header().Get("Location"))
}

func TestBlogSearchPartial(t *testing.T) {
	a := newTestApp(t, fixedNow())
	rec := newClient(t, a).get("/blog/?q=serch&partial=list")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<html")

	d, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Find("h2.year-heading").Length())
	assert.Equal(t, "Post building-search", d.Find("article h3").First().Text())
	assert.Contains(t, d.Find(".search-meta").Text(), "“serch”")
}

func TestBlogTagFilter(t *testing.T) {
	a := newTestApp(t, fixedNow())
	d := parse(t, newClient(t, a).get("/blog/?tag=DOCKER"))
	titles := d.Find("article h3").Map(func(_ int, s *goquery.Selection) string { return s.Text() })
	assert.Equal(t, []string{"Post docker-notes"}, titles)
	assert.Contains(t, d.Find(".search-meta").Text(), "DOCKER")
}

func TestSearchAPI(t *testing.T) {
	a := newTestApp(t, fixedNow())
	rec := newClient(t, a).get("/api/search?q=hello")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Query   string `json:"query"`
		Total   int    `json:"total"`
		Results []struct {
			ID    string  `json:"id"`
			URL   string  `json:"url"`
			Fresh bool    `json:"fresh"`
			Score float64 `json:"score"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello", resp.Query)
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "hello", resp.Results[0].ID)
	assert.Equal(t, "/blog/hello/", resp.Results[0].URL)
	assert.True(t, resp.Results[0].Fresh)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestSearchAPIEmptyQueryListsAll(t *testing.T) {
	a := newTestApp(t, fixedNow())
	rec := newClient(t, a).get("/api/search")
	var resp struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Total)
}

func TestPostPage(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)

	rec := c.get("/blog/hello/")
	require.Equal(t, http.StatusOK, rec.Code)
	d := parse(t, rec)
	assert.Equal(t, "Post hello", d.Find("article.post h1").Text())
	assert.Equal(t, "/blog/building-search/", d.Find(".related a").AttrOr("href", ""))

	rec = c.get("/blog/missing/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page not found")

	rec = c.get("/blog/wip/")
	assert.Equal(t, http.StatusNotFound, rec.Code, "drafts are not public")
}

func TestMarkdownPages(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)

	d := parse(t, c.get("/about/"))
	assert.Equal(t, "About me", d.Find("article.page h1").Text())
	assert.Equal(t, "About", d.Find(`.sticky-nav [aria-current="page"]`).Text())

	rec := c.get("/nope/")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedPageRequiresLogin(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)

	rec := c.get("/drafts/")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", rec.Body.String())

	c.login()
	rec = c.get("/drafts/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Secret drafts")
	assert.Equal(t, "private, no-store", rec.Header().Get("Cache-Control"))
}

func TestSessionExpires(t *testing.T) {
	now := fixedNow()
	a := newTestApp(t, now)
	c := newClient(t, a)
	c.login()
	assert.Equal(t, http.StatusOK, c.get("/drafts/").Code)

	*now = now.Add(a.Config.SessionTTL)
	assert.Equal(t, http.StatusUnauthorized, c.get("/drafts/").Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)
	c.login()
	stolen := *c.cookies[sessionName]

	rec := c.post("/admin/logout/", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotContains(t, c.cookies, sessionName)

	c.cookies[sessionName] = &stolen
	assert.Equal(t, http.StatusUnauthorized, c.get("/drafts/").Code, "replayed cookie must not work")
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)
	c.get("/admin/")

	rec := c.post("/admin/login/", url.Values{"password": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password.")

	for i := 0; i < 4; i++ {
		c.post("/admin/login/", url.Values{"password": {"wrong"}})
	}
	rec = c.post("/admin/login/", url.Values{"password": {testPassword}})
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAdminRequiresCSRF(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)
	rec := c.post("/admin/login/", url.Values{"password": {testPassword}, "_csrf": {"forged"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.NotContains(t, c.cookies, sessionName)
}

func TestAdminSaveAndDelete(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)
	c.get("/blog/")
	c.login()

	rec := c.post("/admin/save/", url.Values{
		"title":     {"Café Opening"},
		"tags":      {"go, ,news"},
		"summary":   {"We opened."},
		"content":   {"Hello **there**"},
		"published": {"1"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/admin/?msg=")

	rec = c.get("/blog/cafe-opening/")
	require.Equal(t, http.StatusOK, rec.Code, "cache invalidated after save")
	d := parse(t, rec)
	assert.Equal(t, "2024-03-01", d.Find("article.post .article-date").Text())
	assert.Equal(t, "there", d.Find(".post-body strong").Text())

	d = parse(t, c.get("/admin/"))
	assert.Equal(t, 5, d.Find("table.admin-posts tbody tr").Length())

	rec = c.post("/admin/save/", url.Values{"title": {"Bad"}, "date": {"2024-13-40"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), url.QueryEscape("Invalid date format."))

	rec = c.post("/admin/post/cafe-opening/delete/", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, http.StatusNotFound, c.get("/blog/cafe-opening/").Code)
}

func TestAdminSaveRequiresLogin(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)
	c.get("/admin/")
	rec := c.post("/admin/save/", url.Values{"title": {"Sneaky"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/", rec.Header().Get("Location"))
	assert.Equal(t, http.StatusNotFound, c.get("/blog/sneaky/").Code)
}

func TestFeed(t *testing.T) {
	a := newTestApp(t, fixedNow())
	rec := newClient(t, a).get("/feed.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")

	feed, err := gofeed.NewParser().ParseString(rec.Body.String())
	require.NoError(t, err)
	assert.Equal(t, "Notes", feed.Title)
	require.Len(t, feed.Items, 3)
	assert.Equal(t, "Post hello", feed.Items[0].Title)
	assert.Equal(t, "https://example.com/blog/hello/", feed.Items[0].Link)
	assert.Equal(t, []string{"go"}, feed.Items[0].Categories)
	require.NotNil(t, feed.Items[0].PublishedParsed)
	assert.Equal(t, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), feed.Items[0].PublishedParsed.UTC())
}

func TestSitemapAndRobots(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)

	body := c.get("/sitemap.xml").Body.String()
	assert.Contains(t, body, "<loc>https://example.com/blog/hello/</loc>")
	assert.Contains(t, body, "<lastmod>2024-02-20</lastmod>")
	assert.Contains(t, body, "<loc>https://example.com/about/</loc>")
	assert.NotContains(t, body, "drafts")
	assert.NotContains(t, body, "/blog/wip/")

	robots := c.get("/robots.txt").Body.String()
	assert.Contains(t, robots, "Sitemap: https://example.com/sitemap.xml")
}

func TestAssets(t *testing.T) {
	a := newTestApp(t, fixedNow())
	c := newClient(t, a)

	rec := c.get("/theme.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Contains(t, rec.Body.String(), "--color-blue-500:#4C6EF5")

	rec = c.get("/public/reveal.js")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "IntersectionObserver")
	assert.Equal(t, "public, max-age=31536000, immutable", rec.Header().Get("Cache-Control"))

	rec = c.get("/favicon.svg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")
}
