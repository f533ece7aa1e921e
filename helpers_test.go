package webzine

import (
	"strings"
	"testing"
	"time"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"Lifestyle & Tempo Libero!", "lifestyle-tempo-libero"},
		{"  Già   Fatto  ", "gi-fatto"},
		{"UPPER case", "upper-case"},
		{"trailing---", "trailing"},
		{"123 numbers", "123-numbers"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://sabadvance.it", nil, "https://sabadvance.it"},
		{"https://sabadvance.it", []string{"blog", "slug"}, "https://sabadvance.it/blog/slug"},
		{"https://sabadvance.it/", []string{"og"}, "https://sabadvance.it/og"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	got := FilterEmpty([]string{"a", "", "  ", "b"})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("FilterEmpty = %v, want [a b]", got)
	}
}

func TestArticleJsonLD(t *testing.T) {
	cfg := SiteConfig{Name: "Sabadvance", URL: "https://sabadvance.it", Author: "Redazione"}
	published := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	post := Post{
		Slug:        "ricetta",
		Title:       "La Torta",
		Excerpt:     "Una ricetta",
		PublishedAt: &published,
		Categories:  []Category{{Name: "Cucina"}},
	}
	jsonld := ArticleJsonLD(cfg, post)
	for _, want := range []string{
		`"@type":"Article"`,
		`"headline":"La Torta"`,
		`"datePublished":"2025-03-10T08:00:00Z"`,
		`"keywords":"Cucina"`,
		`"url":"https://sabadvance.it/blog/ricetta"`,
	} {
		if !strings.Contains(jsonld, want) {
			t.Errorf("ArticleJsonLD missing %s in %s", want, jsonld)
		}
	}
}
