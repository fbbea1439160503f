package folio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/blog"
)

const testPassword = "hunter2"

func testConfig(t *testing.T) SiteConfig {
	t.Helper()
	return SiteConfig{
		Name:          "Notes",
		URL:           "https://example.com",
		Description:   "A test blog",
		AdminPassword: testPassword,
		SessionSecret: "0123456789abcdef0123456789abcdef",
		DatabasePath:  filepath.Join(t.TempDir(), "folio.db"),
		LogLevel:      "off",
		Pages: []Page{
			{Slug: "about", Title: "About", Body: "# About me"},
			{Slug: "drafts", Title: "Drafts", Body: "# Secret drafts", Protected: true},
		},
	}
}

// newTestApp returns a set-up app whose clock reads from *now.
func newTestApp(t *testing.T, now *time.Time) *App {
	t.Helper()
	a := New(testConfig(t),
		WithStaticDir(t.TempDir()),
		WithClock(func() time.Time { return *now }),
	)
	require.NoError(t, a.Setup(context.Background()))
	t.Cleanup(func() { a.Close() })

	ctx := context.Background()
	require.NoError(t, a.Store.SavePosts(ctx, []blog.Post{
		testPost("hello", "2024-02-20", true, "go"),
		testPost("building-search", "2023-07-01", true, "go", "search"),
		testPost("docker-notes", "2022-01-05", true, "docker"),
		testPost("wip", "2024-02-25", false),
	}))
	return a
}

type testClient struct {
	t       *testing.T
	app     *App
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, a *App) *testClient {
	return &testClient{t: t, app: a, cookies: map[string]*http.Cookie{}}
}

func (c *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.app.Echo.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *testClient) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

// post sends a form with the CSRF token picked up by an earlier GET.
func (c *testClient) post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	if ck, ok := c.cookies["_csrf"]; ok {
		form.Set("_csrf", ck.Value)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *testClient) login() {
	c.t.Helper()
	c.get("/admin/")
	rec := c.post("/admin/login/", url.Values{"password": {testPassword}})
	require.Equal(c.t, http.StatusSeeOther, rec.Code)
	require.Contains(c.t, c.cookies, sessionName)
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return d
}

func fixedNow() *time.Time {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &now
}
