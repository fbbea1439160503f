package views

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/folio-blog/folio/theme"
)

// DefaultRevealDuration is used when RevealOptions.Duration is zero.
const DefaultRevealDuration = 300 * time.Millisecond

// RevealOptions configures the entrance animation of one element.
type RevealOptions struct {
	Order    int // position in a staggered list; delay is Order/5 seconds
	Duration time.Duration
	Easing   theme.CubicBezier
}

// Frame is the animation target of a revealed element.
type Frame struct {
	Scale    float64
	Opacity  float64
	Delay    time.Duration
	Duration time.Duration
	Easing   theme.CubicBezier
}

// RevealFrame returns the state an element animates towards: full scale and
// opacity in view, zero of both out of view. Both directions share the same
// delay, duration and easing.
func RevealFrame(inView bool, opts RevealOptions) Frame {
	f := Frame{
		Delay:    revealDelay(opts.Order),
		Duration: opts.Duration,
		Easing:   opts.Easing,
	}
	if f.Duration <= 0 {
		f.Duration = DefaultRevealDuration
	}
	if f.Easing.IsZero() {
		f.Easing = theme.EaseInOut
	}
	if inView {
		f.Scale, f.Opacity = 1, 1
	}
	return f
}

func revealDelay(order int) time.Duration {
	if order < 0 {
		order = 0
	}
	return time.Duration(order) * time.Second / 5
}

// Reveal wraps c in an element that starts hidden and scales in whenever it
// enters the viewport. The observer lives in /public/reveal.js.
func Reveal(opts RevealOptions, c templ.Component) templ.Component {
	f := RevealFrame(true, opts)
	style := fmt.Sprintf("--reveal-duration:%dms;--reveal-delay:%dms", f.Duration.Milliseconds(), f.Delay.Milliseconds())
	// Without an explicit curve the stylesheet's theme easing applies.
	if !opts.Easing.IsZero() {
		style += ";--reveal-ease:" + opts.Easing.String()
	}
	return component(func(ctx context.Context, b *bytes.Buffer) error {
		b.WriteString("<div data-reveal")
		attr(b, "style", style)
		b.WriteString(">")
		if err := child(ctx, b, c); err != nil {
			return err
		}
		b.WriteString("</div>")
		return nil
	})
}
