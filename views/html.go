package views

import (
	"bytes"
	"context"
	"io"

	"github.com/a-h/templ"
)

// component buffers fn's output and writes it in one go, so a failing child
// never leaves half a page on the wire.
func component(fn func(ctx context.Context, b *bytes.Buffer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b bytes.Buffer
		if err := fn(ctx, &b); err != nil {
			return err
		}
		_, err := w.Write(b.Bytes())
		return err
	})
}

func esc(s string) string { return templ.EscapeString(s) }

func attr(b *bytes.Buffer, name, value string) {
	b.WriteString(" " + name + `="` + esc(value) + `"`)
}

func text(b *bytes.Buffer, s string) { b.WriteString(esc(s)) }

func child(ctx context.Context, b *bytes.Buffer, c templ.Component) error {
	if c == nil {
		return nil
	}
	return c.Render(ctx, b)
}
