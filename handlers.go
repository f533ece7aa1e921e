package webzine

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabadvance/webzine/sanitize"
)

const homePostCount = 6

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	if len(posts) > homePostCount {
		posts = posts[:homePostCount]
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts, categories))
}

func (a *App) handleBlog(c echo.Context) error {
	category := c.QueryParam("category")
	posts, err := a.Cache.ListPosts(category)
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	return Render(c, a.Views.BlogList(posts, category, categories))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	// The body is author-submitted rich HTML; it never reaches a page
	// unsanitized, even though the editor is trusted.
	safeBody := sanitize.HTML(post.Body)
	share := BuildShareLinks(a.Config, post)
	return Render(c, a.Views.Post(post, safeBody, share))
}

func (a *App) handleChiSiamo(c echo.Context) error {
	return Render(c, a.Views.ChiSiamo())
}

func (a *App) handlePrivacy(c echo.Context) error {
	return Render(c, a.Views.Privacy())
}

func (a *App) handleCookies(c echo.Context) error {
	return Render(c, a.Views.Cookies())
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
