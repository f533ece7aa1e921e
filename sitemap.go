package webzine

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	categories, err := a.Cache.ListCategories()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts, categories)
}

func (a *App) renderSitemap(c echo.Context, posts []Post, categories []Category) error {
	base := a.Config.URL
	// Static and category pages carry the current date as lastmod; posts
	// carry their own update time.
	today := time.Now().UTC().Format(time.RFC3339)
	urls := []sitemapURL{
		{Loc: BuildURL(base), LastMod: today, ChangeFreq: "daily", Priority: "1.0"},
		{Loc: BuildURL(base, "blog"), LastMod: today, ChangeFreq: "daily", Priority: "0.9"},
		{Loc: BuildURL(base, "chi-siamo"), LastMod: today, ChangeFreq: "monthly", Priority: "0.8"},
		{Loc: BuildURL(base, "privacy"), LastMod: today, ChangeFreq: "yearly", Priority: "0.3"},
		{Loc: BuildURL(base, "cookies"), LastMod: today, ChangeFreq: "yearly", Priority: "0.3"},
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, "blog", p.Slug),
			LastMod:    p.UpdatedAt.UTC().Format(time.RFC3339),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}
	for _, cat := range categories {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(base, "blog") + "?category=" + cat.Slug,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
