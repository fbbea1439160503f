package folio

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/folio-blog/folio/auth"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// RenderGuarded renders cmp for signed-in visitors and the Unauthorized
// fallback, with status 401, for everyone else.
func RenderGuarded(c echo.Context, cmp templ.Component) error {
	state := authState(c)
	code := http.StatusOK
	if !state.Authenticated {
		code = http.StatusUnauthorized
	}
	return RenderStatus(c, code, auth.Guard(state, cmp))
}
