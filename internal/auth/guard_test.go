package auth

import "testing"

func TestResolveReturnURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty falls back", "", "/abertos"},
		{"relative path kept", "/concluidos?page=2", "/concluidos?page=2"},
		{"dashboard kept", "/dashboard", "/dashboard"},
		{"login page ignored", "/login?returnUrl=%2Fabertos", "/abertos"},
		{"signup page ignored", "/cadastro", "/abertos"},
		{"absolute url ignored", "https://example.com/abertos", "/abertos"},
		{"protocol-relative ignored", "//example.com", "/abertos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveReturnURL(tt.raw); got != tt.want {
				t.Errorf("ResolveReturnURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
