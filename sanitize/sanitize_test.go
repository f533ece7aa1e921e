package sanitize

import (
	"strings"
	"testing"
)

func TestHTMLKeepsAllowedMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "Hello, World!",
			want:  "Hello, World!",
		},
		{
			name:  "paragraph with formatting",
			input: `<p>Una <strong>ricetta</strong> <em>speciale</em></p>`,
			want:  `<p>Una <strong>ricetta</strong> <em>speciale</em></p>`,
		},
		{
			name:  "heading and list",
			input: `<h2>Ingredienti</h2><ul><li>farina</li><li>zucchero</li></ul>`,
			want:  `<h2>Ingredienti</h2><ul><li>farina</li><li>zucchero</li></ul>`,
		},
		{
			name:  "image with size",
			input: `<img src="/uploads/torta.jpg" alt="torta" width="800" height="600"/>`,
			want:  `<img src="/uploads/torta.jpg" alt="torta" width="800" height="600"/>`,
		},
		{
			name:  "https link",
			input: `<a href="https://example.com" target="_blank" rel="noopener">link</a>`,
			want:  `<a href="https://example.com" target="_blank" rel="noopener">link</a>`,
		},
	}

	for _, tt := range tests {
		got := HTML(tt.input)
		if got != tt.want {
			t.Errorf("%s: HTML(%q) = %q, want %q", tt.name, tt.input, got, tt.want)
		}
	}
}

func TestHTMLStripsScripts(t *testing.T) {
	tests := []string{
		`<script>alert(1)</script>`,
		`before<script>alert(1)</script>after`,
		`<SCRIPT SRC="evil.js"></SCRIPT>`,
		`<p>ok</p><script type="text/javascript">document.cookie</script>`,
	}
	for _, input := range tests {
		got := HTML(input)
		if strings.Contains(strings.ToLower(got), "<script") {
			t.Errorf("HTML(%q) = %q, still contains a script tag", input, got)
		}
		if strings.Contains(got, "alert(1)") {
			t.Errorf("HTML(%q) = %q, script body leaked into output", input, got)
		}
	}
}

func TestHTMLStripsForbiddenElements(t *testing.T) {
	tests := []string{
		`<object data="x"></object>`,
		`<embed src="x">`,
		`<form action="/steal"><input name="pw"></form>`,
		`<textarea>x</textarea>`,
	}
	for _, input := range tests {
		got := HTML(input)
		for _, tag := range []string{"<object", "<embed", "<form", "<input", "<textarea"} {
			if strings.Contains(got, tag) {
				t.Errorf("HTML(%q) = %q, contains forbidden %s", input, got, tag)
			}
		}
	}
}

func TestHTMLStripsEventHandlers(t *testing.T) {
	tests := []string{
		`<img src="/x.jpg" onerror="alert(1)">`,
		`<div onclick="alert(1)">x</div>`,
		`<p onmouseover="alert(1)">x</p>`,
		`<img src="/x.jpg" onload="alert(1)">`,
	}
	for _, input := range tests {
		got := HTML(input)
		if strings.Contains(got, "onerror") || strings.Contains(got, "onclick") ||
			strings.Contains(got, "onmouseover") || strings.Contains(got, "onload") {
			t.Errorf("HTML(%q) = %q, event handler survived", input, got)
		}
	}
}

func TestHTMLRejectsUnsafeURLs(t *testing.T) {
	got := HTML(`<a href="javascript:alert(1)">x</a>`)
	if strings.Contains(got, "javascript:") {
		t.Fatalf("javascript: URL survived: %q", got)
	}
	if !strings.Contains(got, "x") {
		t.Errorf("link text should be kept, got %q", got)
	}

	got = HTML(`<img src="data:text/html;base64,xxxx">`)
	if strings.Contains(got, "data:") {
		t.Errorf("data: URL survived: %q", got)
	}
}

func TestHTMLAllowsInertSchemes(t *testing.T) {
	tests := []string{
		`<a href="http://example.com">x</a>`,
		`<a href="https://example.com">x</a>`,
		`<a href="mailto:info@example.com">x</a>`,
		`<a href="tel:+390212345678">x</a>`,
		`<a href="/blog/ricetta-torta">x</a>`,
	}
	for _, input := range tests {
		got := HTML(input)
		if !strings.Contains(got, "href=") {
			t.Errorf("HTML(%q) = %q, safe href was dropped", input, got)
		}
	}
}

func TestHTMLIdempotent(t *testing.T) {
	inputs := []string{
		"Hello, World!",
		`<p>testo &amp; altro</p>`,
		`<script>alert(1)</script><p onclick="x()">ciao</p>`,
		`<a href="javascript:alert(1)">x</a>`,
		`<img src="/x.jpg" alt="a &quot;b&quot;">`,
		`<div><p>unclosed`,
	}
	for _, input := range inputs {
		once := HTML(input)
		twice := HTML(once)
		if once != twice {
			t.Errorf("not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}

func TestHTMLMalformedInputDoesNotPanic(t *testing.T) {
	inputs := []string{
		"",
		"<",
		"<<<>>>",
		"<p",
		`<a href=">`,
		strings.Repeat("<div>", 1000),
	}
	for _, input := range inputs {
		// Must never panic; any stripped best-effort output is acceptable.
		_ = HTML(input)
	}
}
