package folio

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/folio-blog/folio/blog"
	"github.com/folio-blog/folio/views"
)

const adminSubject = "admin"

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.Site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminPost(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPostAny(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return Render(c, views.AdminPostPage(a.Site(), post, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Allow(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) != 1 {
		c.Logger().Warnf("failed admin login from %s", ip)
		return RenderStatus(c, http.StatusUnauthorized, views.AdminLogin(a.Site(), true, CsrfToken(c)))
	}
	a.loginLimiter.Reset(ip)

	ctx := c.Request().Context()
	sess, err := a.Store.CreateSession(ctx, adminSubject, a.Config.SessionTTL, a.now())
	if err != nil {
		return err
	}
	if err := setSessionToken(c, sess.ID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminLogout(c echo.Context) error {
	token, err := clearSession(c)
	if err != nil {
		return err
	}
	if token != "" {
		if err := a.Store.DeleteSession(c.Request().Context(), token); err != nil {
			return err
		}
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// postFromForm reads the editor form. The returned message is non-empty when
// the input is rejected.
func (a *App) postFromForm(c echo.Context) (blog.Post, string) {
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return blog.Post{}, "Slug is required. Add a title or slug."
	}
	if title == "" {
		return blog.Post{}, "Title is required."
	}
	date := blog.DateOf(a.now())
	if raw := strings.TrimSpace(c.FormValue("date")); raw != "" {
		d, err := blog.ParseDate(raw)
		if err != nil {
			return blog.Post{}, "Invalid date format. Use YYYY-MM-DD."
		}
		date = d
	}
	return blog.Post{
		ID:        slug,
		Title:     title,
		Date:      date,
		Tags:      SplitTags(c.FormValue("tags")),
		Summary:   strings.TrimSpace(c.FormValue("summary")),
		Body:      c.FormValue("content"),
		Published: c.FormValue("published") != "",
	}, ""
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, msg := a.postFromForm(c)
	if msg != "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape(msg))
	}
	if err := a.Store.SavePost(c.Request().Context(), post); err != nil {
		return err
	}
	a.Cache.Invalidate()
	c.Logger().Infof("saved post %s", post.ID)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("Saved "+post.ID+"."))
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeletePost(c.Request().Context(), slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	c.Logger().Infof("deleted post %s", slug)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+url.QueryEscape("Deleted "+slug+"."))
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts(c.Request().Context())
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return Render(c, views.AdminDashboard(a.Site(), posts, msg, CsrfToken(c)))
}
