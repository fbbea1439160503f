package blog

import (
	"strings"

	"github.com/folio-blog/folio/theme"
)

// TagChip is a tag ready for display. Styled is false for tags missing from
// the palette; those render without a colour.
type TagChip struct {
	Name   string
	Color  theme.TagColor
	Styled bool
}

// Entry is one post in a listing.
type Entry struct {
	Post    Post
	Fresh   bool
	Tags    []TagChip
	Score   float64
	Matches []Match
}

// Section is one year heading with its entries.
type Section struct {
	Year    int
	Entries []Entry
}

// Listing is the renderable state of the blog index. When Searching is false
// Sections holds every post grouped by year, most recent bucket first;
// otherwise Results holds the ranked matches.
type Listing struct {
	Query     string
	Searching bool
	Sections  []Section
	Results   []Entry
	Total     int
}

// ListView composes grouping, search and freshness for the blog index page.
// It owns the last search result set, which each Search call replaces.
type ListView struct {
	buckets Buckets
	index   *Index
	policy  FreshnessPolicy
	palette theme.TagPalette

	query string
	last  []Result
}

// NewListView builds a view over posts. A nil index is built from posts.
func NewListView(posts []Post, index *Index, policy FreshnessPolicy, palette theme.TagPalette) *ListView {
	if index == nil {
		index = NewIndex(posts)
	}
	return &ListView{
		buckets: GroupByYear(posts),
		index:   index,
		policy:  policy,
		palette: palette,
	}
}

// Search runs query against the index and stores the results as the view's
// current state. A blank query clears the search.
func (v *ListView) Search(query string) []Result {
	query = strings.TrimSpace(query)
	v.query = query
	if query == "" {
		v.last = nil
		return nil
	}
	v.last = v.index.Search(query)
	return v.last
}

// Query returns the active query, or "" when no search is active.
func (v *ListView) Query() string { return v.query }

// LastResults returns the results of the most recent non-blank search.
func (v *ListView) LastResults() []Result { return v.last }

// Buckets returns the year grouping in insertion order.
func (v *ListView) Buckets() Buckets { return v.buckets }

// Listing renders the current state into display order.
func (v *ListView) Listing() Listing {
	l := Listing{Query: v.query, Searching: v.query != ""}
	if l.Searching {
		l.Results = make([]Entry, 0, len(v.last))
		for _, r := range v.last {
			e := v.entry(r.Post)
			e.Score = r.Score
			e.Matches = r.Matches
			l.Results = append(l.Results, e)
		}
		l.Total = len(l.Results)
		return l
	}
	for _, b := range v.buckets.ByYear().Reversed() {
		s := Section{Year: b.Year, Entries: make([]Entry, 0, len(b.Posts))}
		for _, p := range b.Posts {
			s.Entries = append(s.Entries, v.entry(p))
		}
		l.Sections = append(l.Sections, s)
		l.Total += len(s.Entries)
	}
	return l
}

func (v *ListView) entry(p Post) Entry {
	e := Entry{Post: p, Fresh: v.policy.IsFresh(p.Date)}
	for _, t := range p.Tags {
		c, ok := v.palette.Lookup(t)
		e.Tags = append(e.Tags, TagChip{Name: t, Color: c, Styled: ok})
	}
	return e
}
