package auth

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Unauthorized is the placeholder rendered in place of guarded content.
var Unauthorized templ.Component = templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
	_, err := io.WriteString(w, "Unauthorized")
	return err
})

// Guard renders protected when state is authenticated and Unauthorized otherwise.
func Guard(state State, protected templ.Component) templ.Component {
	return GuardWith(state, protected, Unauthorized)
}

// GuardWith is Guard with a custom fallback.
func GuardWith(state State, protected, fallback templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if state.Authenticated && protected != nil {
			return protected.Render(ctx, w)
		}
		if fallback == nil {
			return nil
		}
		return fallback.Render(ctx, w)
	})
}
