package webzine

import "net/url"

// ShareLinks holds the per-target share URLs for a post. Every target is
// built from the same canonical preview URL: the persisted Open-Graph
// document, with the post's updated-at token as a cache buster. Mixing
// preview strategies across targets leads to inconsistent crawler caches,
// so this is the only construction used anywhere.
type ShareLinks struct {
	URL      string // canonical shareable URL (also what copy-to-clipboard uses)
	WhatsApp string
	Facebook string
	Twitter  string
}

// ShareURL returns the canonical shareable URL for a post: the persisted
// preview document under /og/ plus a version token so social platforms
// regenerate their cached preview after an edit.
func ShareURL(cfg SiteConfig, p Post) string {
	return BuildURL(cfg.URL, "og", p.Slug+".html") + "?v=" + url.QueryEscape(p.ShareVersion())
}

// BuildShareLinks builds the share targets for a post.
func BuildShareLinks(cfg SiteConfig, p Post) ShareLinks {
	shareURL := ShareURL(cfg, p)
	return ShareLinks{
		URL: shareURL,
		// Messaging share: single pre-filled text "{title} - {url}".
		WhatsApp: "https://wa.me/?text=" + url.QueryEscape(p.Title+" - "+shareURL),
		// Sharer endpoint takes the URL only.
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + url.QueryEscape(shareURL),
		// Intent endpoint takes text and URL separately.
		Twitter: "https://twitter.com/intent/tweet?text=" + url.QueryEscape(p.Title) +
			"&url=" + url.QueryEscape(shareURL),
	}
}
