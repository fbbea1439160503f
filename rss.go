package folio

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// RSS encodes posts as an RSS 2.0 feed for the configured site.
func (a *App) RSS(posts []blog.Post) ([]byte, error) {
	base := a.Config.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		postURL := views.BuildURL(base, "blog", p.ID)
		item := rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Summary,
			GUID:        postURL,
			Categories:  p.Tags,
		}
		if !p.Date.IsZero() {
			item.PubDate = p.Date.Time().Format("Mon, 02 Jan 2006 15:04:05 -0700")
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        views.BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(feed); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.Posts(c.Request().Context())
	if err != nil {
		return err
	}
	data, err := a.RSS(posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", data)
}
