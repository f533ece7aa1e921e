// Package ogpage generates the crawler-facing Open-Graph preview documents
// for shared articles. A preview document carries the article's metadata in
// meta tags and immediately redirects human visitors to the canonical
// article page; social-media crawlers read the tags without following the
// redirect.
package ogpage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by a Lookup when no publicly visible article
// matches the requested slug.
var ErrNotFound = errors.New("ogpage: article not found")

// Article is the metadata snapshot a preview document is built from. Values
// are copied from the source post at generation time; the document is not
// kept consistent if the post changes afterwards.
type Article struct {
	Slug          string
	Title         string
	Excerpt       string
	FeaturedImage string
	PublishedAt   *time.Time
}

// Lookup fetches the publicly visible article for a slug. Implementations
// must return ErrNotFound (possibly wrapped) when no published article
// matches.
type Lookup func(slug string) (Article, error)

// Config carries the site-level values interpolated into every document.
type Config struct {
	SiteName     string
	SiteURL      string // base URL, no trailing slash
	Locale       string // og:locale, e.g. "it_IT"
	TwitterSite  string // twitter:site handle, e.g. "@sabadvance"
	DefaultImage string // preview image for articles without a featured image
}

// escape HTML-entity-escapes the characters that can break out of an
// attribute value or text node. Titles and excerpts are author-controlled,
// and these documents are served with elevated trust to crawlers.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

// CanonicalURL returns the article page URL the preview document points at.
func (cfg Config) CanonicalURL(slug string) string {
	return strings.TrimRight(cfg.SiteURL, "/") + "/blog/" + slug
}

// Build renders the complete preview document for an article. Output is
// deterministic: the same article and config always produce identical bytes.
func Build(cfg Config, a Article) []byte {
	postURL := cfg.CanonicalURL(a.Slug)
	image := a.FeaturedImage
	if image == "" {
		image = cfg.DefaultImage
	}
	description := a.Excerpt
	if description == "" {
		description = fmt.Sprintf("%s - Leggi l'articolo completo su %s", a.Title, cfg.SiteName)
	}

	safeTitle := escape(a.Title)
	safeDescription := escape(description)
	safeImage := escape(image)
	safeURL := escape(postURL)
	lang := "it"
	if i := strings.IndexByte(cfg.Locale, '_'); i > 0 {
		lang = cfg.Locale[:i]
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", lang)
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "<title>%s | %s</title>\n", safeTitle, escape(cfg.SiteName))
	fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", safeDescription)
	fmt.Fprintf(&b, "<link rel=\"canonical\" href=\"%s\">\n", safeURL)

	fmt.Fprintf(&b, "<meta property=\"og:title\" content=\"%s | %s\">\n", safeTitle, escape(cfg.SiteName))
	fmt.Fprintf(&b, "<meta property=\"og:description\" content=\"%s\">\n", safeDescription)
	b.WriteString("<meta property=\"og:type\" content=\"article\">\n")
	fmt.Fprintf(&b, "<meta property=\"og:url\" content=\"%s\">\n", safeURL)
	fmt.Fprintf(&b, "<meta property=\"og:image\" content=\"%s\">\n", safeImage)
	b.WriteString("<meta property=\"og:image:width\" content=\"1200\">\n")
	b.WriteString("<meta property=\"og:image:height\" content=\"630\">\n")
	fmt.Fprintf(&b, "<meta property=\"og:site_name\" content=\"%s\">\n", escape(cfg.SiteName))
	fmt.Fprintf(&b, "<meta property=\"og:locale\" content=\"%s\">\n", escape(cfg.Locale))
	if a.PublishedAt != nil {
		fmt.Fprintf(&b, "<meta property=\"article:published_time\" content=\"%s\">\n",
			a.PublishedAt.UTC().Format(time.RFC3339))
	}

	b.WriteString("<meta name=\"twitter:card\" content=\"summary_large_image\">\n")
	fmt.Fprintf(&b, "<meta name=\"twitter:title\" content=\"%s | %s\">\n", safeTitle, escape(cfg.SiteName))
	fmt.Fprintf(&b, "<meta name=\"twitter:description\" content=\"%s\">\n", safeDescription)
	fmt.Fprintf(&b, "<meta name=\"twitter:image\" content=\"%s\">\n", safeImage)
	if cfg.TwitterSite != "" {
		fmt.Fprintf(&b, "<meta name=\"twitter:site\" content=\"%s\">\n", escape(cfg.TwitterSite))
	}

	// Redirect humans to the canonical article page. Crawlers typically
	// execute neither mechanism, which is the point: they read the tags above.
	fmt.Fprintf(&b, "<meta http-equiv=\"refresh\" content=\"0;url=%s\">\n", safeURL)
	fmt.Fprintf(&b, "<script>window.location.replace(%q);</script>\n", postURL)

	b.WriteString("</head>\n<body style=\"font-family: sans-serif; text-align: center; padding: 50px;\">\n")
	b.WriteString("<p>Reindirizzamento in corso...</p>\n")
	fmt.Fprintf(&b, "<p><a href=\"%s\">Clicca qui se non vieni reindirizzato automaticamente</a></p>\n", safeURL)
	b.WriteString("</body>\n</html>\n")
	return b.Bytes()
}
