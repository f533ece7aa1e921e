package webzine

import (
	"net/url"
	"strings"
	"testing"
	"time"
)

func sharePost() Post {
	published := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	return Post{
		Slug:        "ricetta-torta",
		Title:       "La Torta Speciale",
		Status:      StatusPublished,
		PublishedAt: &published,
		UpdatedAt:   time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC),
	}
}

func shareConfig() SiteConfig {
	cfg := SiteConfig{URL: "https://sabadvance.it"}
	cfg.setDefaults()
	return cfg
}

func TestShareURLUsesPersistedDocument(t *testing.T) {
	got := ShareURL(shareConfig(), sharePost())
	want := "https://sabadvance.it/og/ricetta-torta.html?v=1741685400"
	if got != want {
		t.Errorf("ShareURL = %q, want %q", got, want)
	}
}

func TestBuildShareLinksSingleStrategy(t *testing.T) {
	links := BuildShareLinks(shareConfig(), sharePost())
	canonical := links.URL

	for name, link := range map[string]string{
		"whatsapp": links.WhatsApp,
		"facebook": links.Facebook,
		"twitter":  links.Twitter,
	} {
		if !strings.Contains(link, url.QueryEscape(canonical)) {
			t.Errorf("%s target does not embed the canonical URL: %q", name, link)
		}
	}
}

func TestBuildShareLinksTargets(t *testing.T) {
	links := BuildShareLinks(shareConfig(), sharePost())

	if !strings.HasPrefix(links.WhatsApp, "https://wa.me/?text=") {
		t.Errorf("WhatsApp = %q", links.WhatsApp)
	}
	// Messaging text is "{title} - {url}" in one parameter.
	wantText := url.QueryEscape("La Torta Speciale - " + links.URL)
	if !strings.HasSuffix(links.WhatsApp, wantText) {
		t.Errorf("WhatsApp text = %q, want suffix %q", links.WhatsApp, wantText)
	}

	if !strings.HasPrefix(links.Facebook, "https://www.facebook.com/sharer/sharer.php?u=") {
		t.Errorf("Facebook = %q", links.Facebook)
	}

	if !strings.HasPrefix(links.Twitter, "https://twitter.com/intent/tweet?text=") {
		t.Errorf("Twitter = %q", links.Twitter)
	}
	if !strings.Contains(links.Twitter, "&url=") {
		t.Error("Twitter intent should carry text and url as separate parameters")
	}
}
