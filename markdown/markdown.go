// Package markdown renders the Markdown subset used by folio posts into HTML
// and exposes it as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reHeading     = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reOrderedItem = regexp.MustCompile(`^\d+\.\s+`)
	reBold        = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	reItalic      = regexp.MustCompile(`(?:\*([^*]+)\*)|(?:\b_([^_]+)_\b)`)
	reCode        = regexp.MustCompile("`([^`]+)`")
	reImage       = regexp.MustCompile(`!\[([^\]]*)\]\(([^)\s]+)\)`)
	reLink        = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// Component returns a templ.Component that renders md as HTML.
func Component(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(md))
		return err
	})
}

// Render converts md to HTML.
func Render(md string) string {
	r := &renderer{ids: map[string]int{}}
	for _, raw := range strings.Split(md, "\n") {
		r.line(strings.TrimRight(raw, "\r"))
	}
	r.close()
	return r.buf.String()
}

type block int

const (
	blockNone block = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockCode
)

var closers = map[block]string{
	blockPara:    "</p>",
	blockList:    "</ul>",
	blockOrdered: "</ol>",
	blockQuote:   "</blockquote>",
	blockCode:    "</code></pre>",
}

type renderer struct {
	buf  bytes.Buffer
	open block
	ids  map[string]int
}

func (r *renderer) close() {
	if r.open != blockNone {
		r.buf.WriteString(closers[r.open])
		r.open = blockNone
	}
}

// enter closes the current block unless it is already b, and reports whether
// a new block was opened.
func (r *renderer) enter(b block, opening string) bool {
	if r.open == b {
		return false
	}
	r.close()
	r.buf.WriteString(opening)
	r.open = b
	return true
}

func (r *renderer) line(line string) {
	if strings.HasPrefix(line, "```") {
		if r.open == blockCode {
			r.close()
			return
		}
		lang := strings.TrimSpace(line[3:])
		if lang == "" {
			r.enter(blockCode, `<pre class="code-block"><code>`)
		} else {
			r.enter(blockCode, `<pre class="code-block"><code class="language-`+html.EscapeString(lang)+`">`)
		}
		return
	}
	if r.open == blockCode {
		r.buf.WriteString(html.EscapeString(line))
		r.buf.WriteByte('\n')
		return
	}

	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		r.close()
	case trimmed == "---" || trimmed == "***":
		r.close()
		r.buf.WriteString("<hr/>")
	case reHeading.MatchString(trimmed):
		r.close()
		m := reHeading.FindStringSubmatch(trimmed)
		level := strconv.Itoa(len(m[1]))
		r.buf.WriteString(`<h` + level + ` id="` + r.anchor(m[2]) + `">`)
		r.buf.WriteString(Inline(m[2]))
		r.buf.WriteString(`</h` + level + `>`)
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		r.enter(blockList, "<ul>")
		r.buf.WriteString("<li>" + Inline(trimmed[2:]) + "</li>")
	case reOrderedItem.MatchString(trimmed):
		r.enter(blockOrdered, "<ol>")
		r.buf.WriteString("<li>" + Inline(reOrderedItem.ReplaceAllString(trimmed, "")) + "</li>")
	case strings.HasPrefix(trimmed, ">"):
		if !r.enter(blockQuote, "<blockquote>") {
			r.buf.WriteByte(' ')
		}
		r.buf.WriteString(Inline(strings.TrimSpace(trimmed[1:])))
	default:
		if !r.enter(blockPara, "<p>") {
			r.buf.WriteByte(' ')
		}
		r.buf.WriteString(Inline(trimmed))
	}
}

// anchor derives a unique heading id from its text.
func (r *renderer) anchor(text string) string {
	var b strings.Builder
	dash := false
	for _, c := range strings.ToLower(text) {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	id := strings.TrimRight(b.String(), "-")
	if id == "" {
		id = "section"
	}
	n := r.ids[id]
	r.ids[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}

// Inline escapes s and applies code, image, link, bold and italic formatting.
func Inline(s string) string {
	s = html.EscapeString(s)

	var codes []string
	s = reCode.ReplaceAllStringFunc(s, func(m string) string {
		codes = append(codes, "<code>"+reCode.FindStringSubmatch(m)[1]+"</code>")
		return "\x00" + strconv.Itoa(len(codes)-1) + "\x00"
	})
	s = reImage.ReplaceAllStringFunc(s, func(m string) string {
		sub := reImage.FindStringSubmatch(m)
		src := SafeURL(sub[2])
		if src == "" {
			return sub[1]
		}
		return `<img src="` + src + `" alt="` + sub[1] + `" loading="lazy" decoding="async"/>`
	})
	s = reLink.ReplaceAllStringFunc(s, func(m string) string {
		sub := reLink.FindStringSubmatch(m)
		href := SafeURL(sub[2])
		if href == "" {
			return sub[1]
		}
		attrs := ""
		if strings.HasPrefix(href, "http") {
			attrs = ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `"` + attrs + `>` + sub[1] + `</a>`
	})
	s = outsideTags(s, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$2</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1$2</em>")
	})
	for i, c := range codes {
		s = strings.Replace(s, "\x00"+strconv.Itoa(i)+"\x00", c, 1)
	}
	return s
}

// outsideTags applies fn to the text between HTML tags only, leaving
// attribute values such as hrefs untouched.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for s != "" {
		lt := strings.IndexByte(s, '<')
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		b.WriteString(fn(s[:lt]))
		gt := strings.IndexByte(s[lt:], '>')
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// SafeURL returns raw escaped for an attribute when it is relative, a fragment
// or uses http, https or mailto; otherwise "".
func SafeURL(raw string) string {
	v := strings.TrimSpace(html.UnescapeString(raw))
	if v == "" {
		return ""
	}
	if strings.HasPrefix(v, "/") || strings.HasPrefix(v, "#") {
		return html.EscapeString(v)
	}
	u, err := url.Parse(v)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(v)
	}
	return ""
}
