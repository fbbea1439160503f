package blog

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Key names a searchable post field and its relative weight.
type Key struct {
	Name   string
	Weight float64
}

const (
	KeyTitle = "title"
	KeyID    = "id"
	KeyDate  = "date"
)

// DefaultKeys searches title, id and date with equal weight.
var DefaultKeys = []Key{
	{Name: KeyTitle, Weight: 1},
	{Name: KeyID, Weight: 1},
	{Name: KeyDate, Weight: 1},
}

const (
	DefaultThreshold = 0.6
	DefaultDistance  = 100
)

// Match locates a query inside one field of a post. Offsets are rune offsets
// into the folded field text.
type Match struct {
	Key    string
	Value  string
	Start  int
	End    int
	Errors int
	Score  float64
}

// Result is a post ranked against a query. Lower scores are better; 0 is exact.
type Result struct {
	Post    Post
	Score   float64
	Matches []Match
}

// Index answers approximate queries over a fixed post collection. It is safe
// for concurrent use once built.
type Index struct {
	posts     []Post
	fields    [][][]rune
	keys      []Key
	threshold float64
	distance  float64
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithKeys replaces the searched fields.
func WithKeys(keys ...Key) IndexOption {
	return func(ix *Index) { ix.keys = keys }
}

// WithThreshold sets the worst score still reported. 0 only accepts exact prefix matches.
func WithThreshold(t float64) IndexOption {
	return func(ix *Index) { ix.threshold = t }
}

// WithDistance sets how far (in runes) from the start of a field a match may sit
// before its offset alone costs a full point of score.
func WithDistance(d float64) IndexOption {
	return func(ix *Index) { ix.distance = d }
}

// NewIndex builds an index over posts, keeping their order for tie breaks.
func NewIndex(posts []Post, opts ...IndexOption) *Index {
	ix := &Index{
		posts:     posts,
		keys:      DefaultKeys,
		threshold: DefaultThreshold,
		distance:  DefaultDistance,
	}
	for _, opt := range opts {
		opt(ix)
	}
	if ix.distance <= 0 {
		ix.distance = DefaultDistance
	}
	ix.fields = make([][][]rune, len(posts))
	for i, p := range posts {
		row := make([][]rune, len(ix.keys))
		for k, key := range ix.keys {
			row[k] = []rune(fold(fieldValue(p, key.Name)))
		}
		ix.fields[i] = row
	}
	return ix
}

// Len returns the number of indexed posts.
func (ix *Index) Len() int { return len(ix.posts) }

// Posts returns the indexed collection in source order.
func (ix *Index) Posts() []Post { return ix.posts }

// Search ranks posts against query. An empty query returns every post with a
// zero score in source order; a query matching nothing returns an empty slice.
func (ix *Index) Search(query string) []Result {
	q := []rune(fold(query))
	if len(q) == 0 {
		out := make([]Result, len(ix.posts))
		for i, p := range ix.posts {
			out[i] = Result{Post: p}
		}
		return out
	}

	// cover is the share of the best field spanned by its match. It breaks
	// score ties so a whole-field match outranks a prefix of a longer field.
	type ranked struct {
		Result
		cover float64
	}
	var hits []ranked
	for i, p := range ix.posts {
		best, cover := 1.0, 0.0
		var matches []Match
		for k, key := range ix.keys {
			errs, start, end := approxFind(q, ix.fields[i][k])
			score := float64(errs)/float64(len(q)) + float64(start)/ix.distance
			if score > 1 {
				score = 1
			}
			if score > ix.threshold {
				continue
			}
			matches = append(matches, Match{
				Key:    key.Name,
				Value:  fieldValue(p, key.Name),
				Start:  start,
				End:    end,
				Errors: errs,
				Score:  score,
			})
			c := coverage(start, end, len(ix.fields[i][k]))
			if w := weighted(score, key.Weight); w < best || (w == best && c > cover) {
				best, cover = w, c
			}
		}
		if len(matches) == 0 {
			continue
		}
		hits = append(hits, ranked{Result{Post: p, Score: best, Matches: matches}, cover})
	}
	sort.SliceStable(hits, func(a, b int) bool {
		if hits[a].Score != hits[b].Score {
			return hits[a].Score < hits[b].Score
		}
		return hits[a].cover > hits[b].cover
	})
	results := make([]Result, len(hits))
	for i, h := range hits {
		results[i] = h.Result
	}
	return results
}

func coverage(start, end, fieldLen int) float64 {
	if fieldLen == 0 {
		return 0
	}
	return float64(end-start) / float64(fieldLen)
}

func weighted(score, weight float64) float64 {
	if weight <= 0 {
		weight = 1
	}
	w := score / weight
	if w > 1 {
		return 1
	}
	return w
}

func fieldValue(p Post, key string) string {
	switch key {
	case KeyTitle:
		return p.Title
	case KeyID:
		return p.ID
	case KeyDate:
		return p.Date.String()
	case "summary":
		return p.Summary
	case "tags":
		return strings.Join(p.Tags, " ")
	}
	return ""
}

// fold lower-cases s and strips combining marks so "Oğuz" matches "oguz".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// approxFind returns the fewest edits turning pattern into some substring of
// text, and the rune span of that substring. The substring may start anywhere
// in text at no cost (Sellers' variant of Levenshtein distance).
func approxFind(pattern, text []rune) (errs, start, end int) {
	m := len(pattern)
	if m == 0 {
		return 0, 0, 0
	}
	prev := make([]int, m+1)
	prevStart := make([]int, m+1)
	cur := make([]int, m+1)
	curStart := make([]int, m+1)
	for i := range prev {
		prev[i] = i
	}
	errs, start, end = m, 0, 0

	for j := 1; j <= len(text); j++ {
		cur[0], curStart[0] = 0, j
		for i := 1; i <= m; i++ {
			cost := 1
			if pattern[i-1] == text[j-1] {
				cost = 0
			}
			best, from := prev[i-1]+cost, prevStart[i-1]
			if v := prev[i] + 1; v < best {
				best, from = v, prevStart[i]
			}
			if v := cur[i-1] + 1; v < best {
				best, from = v, curStart[i-1]
			}
			cur[i], curStart[i] = best, from
		}
		if cur[m] < errs {
			errs, start, end = cur[m], curStart[m], j
		}
		prev, cur = cur, prev
		prevStart, curStart = curStart, prevStart
	}
	return errs, start, end
}
