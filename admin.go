package webzine

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	// Only failures count toward the limit.
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}

	status, err := ParseStatus(c.FormValue("status"))
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Unknown+post+status.")
	}

	var publishedAt *time.Time
	if raw := strings.TrimSpace(c.FormValue("published_at")); raw != "" {
		t, err := time.Parse("2006-01-02T15:04", raw)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+publication+date.")
		}
		publishedAt = &t
	} else if status == StatusPublished {
		// Publishing without an explicit date means "now".
		now := time.Now()
		publishedAt = &now
	}

	var categoryIDs []int64
	for _, raw := range FilterEmpty(c.Request().Form["category"]) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+category.")
		}
		categoryIDs = append(categoryIDs, id)
	}

	post := Post{
		Slug:          slug,
		Title:         title,
		Excerpt:       strings.TrimSpace(c.FormValue("excerpt")),
		Body:          c.FormValue("body"),
		FeaturedImage: strings.TrimSpace(c.FormValue("featured_image")),
		Author:        strings.TrimSpace(c.FormValue("author")),
		Status:        status,
		PublishedAt:   publishedAt,
		UpdatedAt:     time.Now(),
	}
	if err := a.Store.SavePost(post, categoryIDs); err != nil {
		return err
	}
	a.Cache.Invalidate()

	// Regenerate the persisted preview document so share links pick up the
	// edit. Best effort: a failed write only affects crawler previews.
	if post.Visible(time.Now()) {
		if _, err := a.ogPublisher.Publish(slug); err != nil {
			c.Logger().Errorf("og publish %s: %v", slug, err)
		}
	} else {
		a.ogPublisher.Remove(slug)
	}

	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminPostEdit(c echo.Context) error {
	slug := c.Param("slug")
	var post Post
	if slug != "new" {
		var err error
		post, err = a.Store.GetPostAny(slug)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return c.NoContent(http.StatusNotFound)
			}
			return err
		}
	} else {
		post.Status = StatusDraft
	}
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminPostForm(post, categories, CsrfToken(c)))
}

func (a *App) handleAdminDelete(c echo.Context) error {
	slug := c.Param("slug")
	if err := a.Store.DeletePost(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	a.ogPublisher.Remove(slug)
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) handleCategorySave(c echo.Context) error {
	name := strings.TrimSpace(c.FormValue("name"))
	if name == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Category+name+is+required.")
	}
	var id int64
	if raw := strings.TrimSpace(c.FormValue("id")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+category.")
		}
		id = parsed
	}
	if _, err := a.Store.SaveCategory(Category{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(c.FormValue("description")),
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "category saved")
}

func (a *App) handleCategoryDelete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}
	if err := a.Store.DeleteCategory(id); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "category deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts, err := a.Store.ListAllPosts()
	if err != nil {
		return err
	}
	categories, err := a.Store.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(posts, categories, msg, CsrfToken(c)))
}
