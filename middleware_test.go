package webzine

import "testing"

func TestCsrfExempt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/visits/", true},
		{"/api/chatbot/", true},
		{"/share/ricetta-torta", true},
		// Admin-gated routes keep the CSRF check.
		{"/api/og/ricetta-torta/", false},
		{"/admin/save/", false},
		{"/admin/post/ricetta-torta/", false},
		{"/blog/", false},
	}
	for _, tt := range tests {
		if got := csrfExempt(tt.path); got != tt.want {
			t.Errorf("csrfExempt(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
