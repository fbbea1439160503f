package views

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/theme"
)

func testSite() Site {
	today := blog.MustParseDate("2024-03-01")
	return Site{
		Name:      "Notes",
		URL:       "https://example.com",
		Emoji:     "📝",
		Nav:       DefaultNav(),
		Theme:     theme.Default(),
		Freshness: blog.FreshnessPolicy{Now: today.Time},
	}
}

func doc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	d, err := goquery.NewDocumentFromReader(strings.NewReader(b.String()))
	require.NoError(t, err)
	return d
}

func testListing(t *testing.T, query string) blog.Listing {
	t.Helper()
	posts := []blog.Post{
		{ID: "fresh-post", Title: "Fresh <post>", Date: blog.MustParseDate("2024-02-01"), Tags: []string{"go", "misc"}},
		{ID: "older", Title: "Older", Date: blog.MustParseDate("2023-05-01")},
	}
	site := testSite()
	v := blog.NewListView(posts, nil, site.Freshness, site.Theme.Tags)
	v.Search(query)
	return v.Listing()
}

func TestRevealFrame(t *testing.T) {
	in := RevealFrame(true, RevealOptions{Order: 3})
	assert.Equal(t, 1.0, in.Scale)
	assert.Equal(t, 1.0, in.Opacity)
	assert.Equal(t, 600*time.Millisecond, in.Delay)
	assert.Equal(t, DefaultRevealDuration, in.Duration)
	assert.Equal(t, theme.EaseInOut, in.Easing)

	out := RevealFrame(false, RevealOptions{Order: 3, Duration: time.Second})
	assert.Zero(t, out.Scale)
	assert.Zero(t, out.Opacity)
	assert.Equal(t, in.Delay, out.Delay)
	assert.Equal(t, time.Second, out.Duration)
}

func TestRevealNegativeOrder(t *testing.T) {
	assert.Zero(t, RevealFrame(true, RevealOptions{Order: -2}).Delay)
}

func TestRevealMarkup(t *testing.T) {
	d := doc(t, Reveal(RevealOptions{Order: 1}, templ.Raw("<span>hi</span>")))
	sel := d.Find("div[data-reveal]")
	require.Equal(t, 1, sel.Length())
	style, _ := sel.Attr("style")
	assert.Equal(t, "--reveal-duration:300ms;--reveal-delay:200ms", style)
	assert.Equal(t, "hi", sel.Find("span").Text())

	d = doc(t, Reveal(RevealOptions{Easing: theme.CubicBezier{0, 0, 1, 1}}, templ.Raw("x")))
	style, _ = d.Find("div[data-reveal]").Attr("style")
	assert.Equal(t, "--reveal-duration:300ms;--reveal-delay:0ms;--reveal-ease:cubic-bezier(0,0,1,1)", style)
}

func TestNavbar(t *testing.T) {
	d := doc(t, Navbar(testSite(), "/blog/"))
	nav := d.Find(".sticky-nav nav")
	require.Equal(t, 1, nav.Length())
	assert.Contains(t, nav.Find(".nav-brand").Text(), "Notes")
	assert.Equal(t, "📝", nav.Find(".nav-emoji").Text())

	links := nav.Find("a.nav-link").Not(".nav-brand")
	assert.Equal(t, 3, links.Length())
	current := nav.Find(`[aria-current="page"]`)
	assert.Equal(t, "Blog", current.Text())
	assert.Equal(t, 1, nav.Find("[data-color-mode-toggle]").Length())
}

func TestBlogPageGroupsByYear(t *testing.T) {
	d := doc(t, BlogPage(testSite(), testListing(t, ""), ""))

	assert.Equal(t, "Blog", d.Find(".blog-header h2").Text())
	assert.Equal(t, "Articles, tutorials, snippets, musings, and everything else.", d.Find(".blog-header p").Text())
	input := d.Find("input.search-input")
	target, _ := input.Attr("data-live-search")
	assert.Equal(t, "#blog-list", target)

	var years []string
	d.Find("#blog-list h2.year-heading").Each(func(_ int, s *goquery.Selection) {
		years = append(years, s.Text())
		assert.True(t, s.Next().Is("hr"))
	})
	assert.Equal(t, []string{"2024", "2023"}, years)

	articles := d.Find("#blog-list [data-reveal] article.article")
	require.Equal(t, 2, articles.Length())
	assert.Equal(t, "Fresh <post>", articles.Eq(0).Find("h3").Text())
	assert.Equal(t, "New!", articles.Eq(0).Find(".new-tag").Text())
	assert.Equal(t, "Older", articles.Eq(1).Find("h3").Text())
	assert.Equal(t, 0, articles.Eq(1).Find(".new-tag").Length())
	href, _ := articles.Eq(0).Find("a.article-title").Attr("href")
	assert.Equal(t, "/blog/fresh-post/", href)
}

func TestTagChips(t *testing.T) {
	d := doc(t, BlogList(testListing(t, ""), ""))
	chips := d.Find("a.tag-chip")
	require.Equal(t, 2, chips.Length())

	style, ok := chips.Eq(0).Attr("style")
	require.True(t, ok)
	assert.Equal(t, "--tag-color:#00ADD8;--tag-hover:#008BAD", style)
	href, _ := chips.Eq(0).Attr("href")
	assert.Equal(t, "/blog/?tag=go", href)

	_, ok = chips.Eq(1).Attr("style")
	assert.False(t, ok, "unknown tags render unstyled")
}

func TestBlogListSearching(t *testing.T) {
	d := doc(t, BlogList(testListing(t, "older"), ""))
	assert.Equal(t, 0, d.Find("h2.year-heading").Length())
	assert.Contains(t, d.Find(".search-meta").Text(), "for “older”")
	assert.Equal(t, "Older", d.Find("article h3").First().Text())
}

func TestBlogListNoResults(t *testing.T) {
	d := doc(t, BlogList(testListing(t, "zzzzqqq"), ""))
	assert.Equal(t, "0 results for “zzzzqqq”", d.Find(".search-meta").Text())
	assert.Equal(t, 0, d.Find("article").Length())
}

func TestBlogListEmpty(t *testing.T) {
	d := doc(t, BlogList(blog.Listing{}, ""))
	assert.Equal(t, "No posts yet.", d.Find(".search-meta").Text())
}

func TestPostPage(t *testing.T) {
	site := testSite()
	p := blog.Post{ID: "hello", Title: "Hello", Date: blog.MustParseDate("2024-02-20"), Tags: []string{"go"}, Body: "## Intro\n\nSome *text*."}
	related := []blog.Post{{ID: "other", Title: "Other"}}
	d := doc(t, PostPage(site, p, related))

	assert.Equal(t, "Hello | Notes", d.Find("title").Text())
	assert.Equal(t, "Hello", d.Find("article.post h1").Text())
	assert.Equal(t, "New!", d.Find("article.post .new-tag").Text())
	assert.Equal(t, "Intro", d.Find(".post-body h2").Text())
	assert.Equal(t, "text", d.Find(".post-body em").Text())
	href, _ := d.Find(".related a").Attr("href")
	assert.Equal(t, "/blog/other/", href)
	canonical, _ := d.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://example.com/blog/hello/", canonical)
	assert.Contains(t, d.Find(`script[type="application/ld+json"]`).Text(), `"@type":"BlogPosting"`)
}

func TestLayoutAssets(t *testing.T) {
	d := doc(t, NotFound(testSite()))
	css, _ := d.Find(`link[rel="stylesheet"]`).Attr("href")
	assert.Equal(t, "/theme.css", css)
	assert.Equal(t, 1, d.Find(`script[src="/public/reveal.js"]`).Length())
	assert.Equal(t, 1, d.Find(`script[src="/public/search.js"]`).Length())
	assert.Equal(t, "Page not found", d.Find(".blog-header h2").Text())
}

func TestAdminForm(t *testing.T) {
	p := blog.Post{ID: "draft", Title: `Quote "me"`, Date: blog.MustParseDate("2024-01-02"), Tags: []string{"a", "b"}, Body: "</textarea><script>", Published: false}
	d := doc(t, AdminForm(p, "tok"))
	val, _ := d.Find(`input[name="title"]`).Attr("value")
	assert.Equal(t, `Quote "me"`, val)
	val, _ = d.Find(`input[name="tags"]`).Attr("value")
	assert.Equal(t, "a, b", val)
	val, _ = d.Find(`input[name="_csrf"]`).Attr("value")
	assert.Equal(t, "tok", val)
	assert.Equal(t, "</textarea><script>", d.Find("textarea").Text())
	_, checked := d.Find(`input[name="published"]`).Attr("checked")
	assert.False(t, checked)
}

func TestAdminImages(t *testing.T) {
	images := []Image{{Filename: "cat.jpg", OriginalName: "Cat.PNG", Width: 800, Height: 600, Size: 2048}}
	d := doc(t, AdminImages(testSite(), images, "tok"))
	src, _ := d.Find(".admin-images img").Attr("src")
	assert.Equal(t, "/public/uploads/cat.jpg", src)
	assert.Equal(t, "2.0 kB", d.Find(".admin-images span").Text())
	action, _ := d.Find(".admin-images form").Attr("action")
	assert.Equal(t, "/admin/images/cat.jpg/delete/", action)
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/a/", BuildURL("https://example.com", "blog", "a"))
	assert.Equal(t, "https://example.com", BuildURL("https://example.com"))
}
