// Package views provides the default templ components for a webzine site.
// Sites that want a custom look supply their own ViewFuncs instead; these
// components cover the full page set so a site works out of the box.
package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/sabadvance/webzine"
)

// New returns the default view set bound to the given site configuration.
func New(cfg webzine.SiteConfig) webzine.ViewFuncs {
	v := &viewSet{cfg: cfg}
	return webzine.ViewFuncs{
		Home:           v.Home,
		BlogList:       v.BlogList,
		Post:           v.Post,
		ChiSiamo:       v.ChiSiamo,
		Privacy:        v.Privacy,
		Cookies:        v.Cookies,
		AdminLogin:     v.AdminLogin,
		AdminDashboard: v.AdminDashboard,
		AdminPostForm:  v.AdminPostForm,
		NotFound:       v.NotFound,
		ServerError:    v.ServerError,
	}
}

type viewSet struct {
	cfg webzine.SiteConfig
}

func esc(s string) string { return html.EscapeString(s) }

// formatDate renders a time in the Italian day/month/year convention.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}

// pageMeta carries per-page head metadata into the layout.
type pageMeta struct {
	Title       string
	Description string
	Path        string
	JSONLD      string
}

// layout wraps body in the shared document shell: head metadata, header
// navigation, footer, and the engine scripts.
func (v *viewSet) layout(meta pageMeta, body func(w io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		cfg := v.cfg
		title := cfg.Name
		if meta.Title != "" {
			title = meta.Title + " | " + cfg.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = cfg.Description
		}
		canonical := cfg.URL + meta.Path

		fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="it">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<meta name="description" content="%s">
<link rel="canonical" href="%s">
<link rel="stylesheet" href="/public/style.css">
<link rel="alternate" type="application/rss+xml" title="%s" href="/feed.xml">
`, esc(title), esc(desc), esc(canonical), esc(cfg.Name))
		if meta.JSONLD != "" {
			fmt.Fprintf(w, "<script type=\"application/ld+json\">%s</script>\n", meta.JSONLD)
		}
		fmt.Fprintf(w, `</head>
<body>
<header class="site-header">
<a class="site-title" href="/">%s</a>
<nav>
<a href="/">Home</a>
<a href="/blog/">Blog</a>
<a href="/chi-siamo/">Chi Siamo</a>
</nav>
</header>
<main>
`, esc(cfg.Name))

		if err := body(w); err != nil {
			return err
		}

		fmt.Fprintf(w, `</main>
<footer class="site-footer">
<p>&copy; %d %s</p>
<nav>
<a href="/privacy/">Privacy</a>
<a href="/cookies/">Cookie Policy</a>
</nav>
</footer>
<script src="/public/share.js" defer></script>
<script src="/public/analytics.js" defer></script>
<script src="/public/chatbot.js" defer></script>
</body>
</html>
`, time.Now().Year(), esc(cfg.Name))
		return nil
	})
}

// postCard renders one entry in a listing.
func (v *viewSet) postCard(w io.Writer, p webzine.Post) {
	fmt.Fprintf(w, `<article class="post-card">`)
	if p.FeaturedImage != "" {
		fmt.Fprintf(w, `<a href="%s"><img src="%s" alt="%s" loading="lazy"></a>`,
			esc(p.Link), esc(p.FeaturedImage), esc(p.Title))
	}
	fmt.Fprintf(w, `<h2><a href="%s">%s</a></h2>`, esc(p.Link), esc(p.Title))
	if p.PublishedAt != nil {
		fmt.Fprintf(w, `<time datetime="%s">%s</time>`,
			esc(p.PublishedAt.Format(time.RFC3339)), formatDate(p.PublishedAt))
	}
	if p.Excerpt != "" {
		fmt.Fprintf(w, `<p>%s</p>`, esc(p.Excerpt))
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(w, `<ul class="category-pills">`)
		for _, cat := range p.Categories {
			fmt.Fprintf(w, `<li><a href="/blog/?category=%s">%s</a></li>`, esc(cat.Slug), esc(cat.Name))
		}
		fmt.Fprintf(w, `</ul>`)
	}
	fmt.Fprintf(w, `</article>`)
}

// categoryNav renders the category filter bar for listings.
func (v *viewSet) categoryNav(w io.Writer, categories []webzine.Category, active string) {
	fmt.Fprintf(w, `<nav class="category-nav"><a href="/blog/"%s>Tutti</a>`, activeAttr(active == ""))
	for _, cat := range categories {
		fmt.Fprintf(w, `<a href="/blog/?category=%s"%s>%s</a>`,
			esc(cat.Slug), activeAttr(active == cat.Slug), esc(cat.Name))
	}
	fmt.Fprintf(w, `</nav>`)
}

func activeAttr(active bool) string {
	if active {
		return ` class="active"`
	}
	return ""
}
