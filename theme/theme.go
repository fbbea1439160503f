// Package theme is the declarative visual configuration of a folio site:
// fonts, colours per colour mode, the tag colour table and animation easing.
// Views read it; nothing in it knows about components.
package theme

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TagColor is the display and hover colour of a tag chip.
type TagColor struct {
	Color string `yaml:"color"`
	Hover string `yaml:"hover"`
}

// TagPalette maps lower-case tag names to colours.
type TagPalette map[string]TagColor

// Lookup returns the colour of tag, matched case-insensitively. ok is false for
// unknown tags, which callers render unstyled.
func (p TagPalette) Lookup(tag string) (TagColor, bool) {
	c, ok := p[tagKey(tag)]
	return c, ok
}

// UnmarshalYAML merges the decoded entries into p under lower-case names, so
// an override written as "Go" replaces the default "go".
func (p *TagPalette) UnmarshalYAML(n *yaml.Node) error {
	var raw map[string]TagColor
	if err := n.Decode(&raw); err != nil {
		return err
	}
	if *p == nil {
		*p = make(TagPalette, len(raw))
	}
	for name, c := range raw {
		(*p)[tagKey(name)] = c
	}
	return nil
}

func tagKey(tag string) string { return strings.ToLower(strings.TrimSpace(tag)) }

// ModePair holds one value per colour mode.
type ModePair struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// CubicBezier is a CSS cubic-bezier easing curve (x1, y1, x2, y2).
type CubicBezier [4]float64

// EaseInOut is the default reveal curve.
var EaseInOut = CubicBezier{0.42, 0, 0.58, 1}

func (c CubicBezier) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "cubic-bezier(" + strings.Join(parts, ",") + ")"
}

// IsZero reports whether no curve was configured.
func (c CubicBezier) IsZero() bool { return c == CubicBezier{} }

type Fonts struct {
	Body    string `yaml:"body"`
	Heading string `yaml:"heading"`
}

type FontWeights struct {
	Normal int `yaml:"normal"`
	Medium int `yaml:"medium"`
	Bold   int `yaml:"bold"`
}

// Modes are the colours that change between light and dark mode.
type Modes struct {
	Background       ModePair `yaml:"background"`
	Text             ModePair `yaml:"text"`
	Muted            ModePair `yaml:"muted"`
	Title            ModePair `yaml:"title"`
	Article          ModePair `yaml:"article"`
	NewTagText       ModePair `yaml:"new_tag_text"`
	NewTagBackground ModePair `yaml:"new_tag_background"`
}

// Theme is the complete visual configuration.
type Theme struct {
	Fonts        Fonts             `yaml:"fonts"`
	FontWeights  FontWeights       `yaml:"font_weights"`
	Colors       map[string]string `yaml:"colors"`
	Modes        Modes             `yaml:"modes"`
	Tags         TagPalette        `yaml:"tags"`
	RevealEasing CubicBezier       `yaml:"reveal_easing"`
	MaxWidth     string            `yaml:"max_width"`
}

const systemStack = `-apple-system,BlinkMacSystemFont,"Segoe UI",Helvetica,Arial,sans-serif,"Apple Color Emoji","Segoe UI Emoji","Segoe UI Symbol"`

// Default returns the stock theme.
func Default() Theme {
	return Theme{
		Fonts: Fonts{
			Body:    "Inter, Avenir-Roman, " + systemStack,
			Heading: "Avenir-Roman, Inter, " + systemStack,
		},
		FontWeights: FontWeights{Normal: 400, Medium: 600, Bold: 700},
		Colors: map[string]string{
			"blue.500": "#4C6EF5",
			"nav":      "#4C6EF5",
			"nav_text": "#FFFFFF",
			"date":     "#787F87",
			"subtitle": "#60656C",
		},
		Modes: Modes{
			Background:       ModePair{Light: "#FFFFFF", Dark: "#1A202C"},
			Text:             ModePair{Light: "#1A202C", Dark: "#EDF2F7"},
			Muted:            ModePair{Light: "#60656C", Dark: "#A0AEC0"},
			Title:            ModePair{Light: "#1A202C", Dark: "#FFFFFF"},
			Article:          ModePair{Light: "#F8F9FA", Dark: "#2D3748"},
			NewTagText:       ModePair{Light: "#2B8A3E", Dark: "#D3F9D8"},
			NewTagBackground: ModePair{Light: "#D3F9D8", Dark: "#2B8A3E"},
		},
		Tags:         DefaultTags(),
		RevealEasing: EaseInOut,
		MaxWidth:     "1150px",
	}
}

// DefaultTags is the stock tag colour table.
func DefaultTags() TagPalette {
	return TagPalette{
		"javascript": {Color: "#E0B400", Hover: "#C29B00"},
		"typescript": {Color: "#3178C6", Hover: "#235A97"},
		"react":      {Color: "#00A3CC", Hover: "#0086A8"},
		"nextjs":     {Color: "#333333", Hover: "#000000"},
		"node":       {Color: "#3C873A", Hover: "#2D6A2B"},
		"go":         {Color: "#00ADD8", Hover: "#008BAD"},
		"css":        {Color: "#264DE4", Hover: "#1B3AB3"},
		"html":       {Color: "#E34C26", Hover: "#B83B1C"},
		"git":        {Color: "#F05032", Hover: "#C73E26"},
		"docker":     {Color: "#2496ED", Hover: "#1A78BF"},
		"python":     {Color: "#3776AB", Hover: "#2A5A83"},
		"testing":    {Color: "#99425B", Hover: "#7A3449"},
	}
}

// Color returns a named colour, or fallback when unset.
func (t Theme) Color(name, fallback string) string {
	if v, ok := t.Colors[name]; ok && v != "" {
		return v
	}
	return fallback
}

// CSS renders the stylesheet for t.
func (t Theme) CSS() string {
	var b strings.Builder
	easing := t.RevealEasing
	if easing.IsZero() {
		easing = EaseInOut
	}

	b.WriteString(":root{")
	fmt.Fprintf(&b, "--font-body:%s;--font-heading:%s;", t.Fonts.Body, t.Fonts.Heading)
	fmt.Fprintf(&b, "--weight-normal:%d;--weight-medium:%d;--weight-bold:%d;",
		t.FontWeights.Normal, t.FontWeights.Medium, t.FontWeights.Bold)
	fmt.Fprintf(&b, "--max-width:%s;--reveal-easing:%s;", t.MaxWidth, easing)
	names := make([]string, 0, len(t.Colors))
	for name := range t.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, "--color-%s:%s;", cssIdent(name), t.Colors[name])
	}
	writeMode(&b, t.Modes, func(p ModePair) string { return p.Light })
	b.WriteString("}\n")

	b.WriteString(`[data-color-mode="dark"]{`)
	writeMode(&b, t.Modes, func(p ModePair) string { return p.Dark })
	b.WriteString("}\n")

	b.WriteString(componentCSS)
	return b.String()
}

func writeMode(b *strings.Builder, m Modes, pick func(ModePair) string) {
	fmt.Fprintf(b, "--bg:%s;--text:%s;--muted:%s;--title:%s;--article-bg:%s;--new-tag-text:%s;--new-tag-bg:%s;",
		pick(m.Background), pick(m.Text), pick(m.Muted), pick(m.Title), pick(m.Article),
		pick(m.NewTagText), pick(m.NewTagBackground))
}

func cssIdent(s string) string {
	return strings.NewReplacer(".", "-", "_", "-", " ", "-").Replace(strings.ToLower(s))
}

const componentCSS = `*,*::before,*::after{box-sizing:border-box}
body{margin:0;font-family:var(--font-body);font-weight:var(--weight-normal);background:var(--bg);color:var(--text)}
h1,h2,h3,h4{font-family:var(--font-heading);font-weight:var(--weight-bold)}
a{color:inherit}
.sticky-nav{position:sticky;z-index:10;top:0;background:var(--color-nav);backdrop-filter:saturate(180%) blur(20px);transition:background-color .1s ease-in-out;box-shadow:0 3px 13px rgba(100,110,140,.1),0 2px 4px rgba(100,110,140,.15)}
.sticky-nav nav{display:flex;flex-direction:row;justify-content:space-between;align-items:center;width:100%;max-width:var(--max-width);margin:0 auto;padding:1rem}
.nav-link{display:inline-flex;align-items:center;padding:.5rem 1rem;border-radius:.375rem;color:var(--color-nav-text);font-weight:var(--weight-medium);text-decoration:none;background:none;border:0;cursor:pointer;font-size:1.1rem}
.nav-link:hover{background:rgba(0,0,0,.2)}
.nav-brand .nav-emoji{font-size:1.5rem;margin-right:.5rem}
main{max-width:var(--max-width);margin:0 auto;padding:1.5rem 1rem}
.blog-header{display:flex;flex-direction:column;align-items:center;margin:1.5rem 0}
.blog-header h2{font-size:3rem;margin:0 0 1rem;color:var(--title)}
.blog-header p{text-align:center;font-size:1.3rem;color:var(--color-subtitle);margin:0 0 1.5rem}
.search-input{width:100%;max-width:400px;padding:.5rem .75rem;border:1px solid var(--muted);border-radius:.375rem;background:transparent;color:inherit;font-size:1rem}
.year-heading{margin:4rem 0 0}
.year-heading:first-child{margin-top:0}
.article{display:flex;flex-direction:column;justify-content:space-between;gap:.5rem;margin:1rem 0;padding:1rem;border-radius:.5rem;background:var(--article-bg)}
.article-title{display:flex;align-items:center;text-decoration:none}
.article-date{color:var(--color-date);font-size:.8rem;font-weight:var(--weight-medium)}
.article-title h3{font-size:1.15rem;margin:0}
.new-tag{display:inline-block;margin:auto .4rem auto 0;padding:.3rem .5rem;border-radius:.3rem;font-size:.7rem;font-weight:var(--weight-bold);color:var(--new-tag-text);background:var(--new-tag-bg)}
.tags{display:flex;flex-wrap:wrap;justify-content:flex-end}
.tag-chip{display:inline-block;margin:0 .5rem 7px 0;padding:.3rem .5rem;border-radius:16px;font-size:.8rem;color:#fff;text-decoration:none;background-color:var(--tag-color)}
.tag-chip:hover{cursor:pointer;background-color:var(--tag-hover)}
.search-meta{color:var(--muted);font-size:.9rem}
[data-reveal]{transform:scale(0);opacity:0;transition:transform var(--reveal-duration) var(--reveal-ease,var(--reveal-easing)) var(--reveal-delay),opacity var(--reveal-duration) var(--reveal-ease,var(--reveal-easing)) var(--reveal-delay)}
[data-reveal].is-visible{transform:scale(1);opacity:1}
@media (prefers-reduced-motion:reduce){[data-reveal]{transition:none;transform:none;opacity:1}}
@media (max-width:48em){.blog-header h2{font-size:2rem}.nav-link{font-size:.85rem;padding:.25rem .5rem}.article-title h3{font-size:1rem}}
`
