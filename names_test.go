package cmdbind

import (
	"strings"
	"testing"
)

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"x", "X"},
		{"X", "X"},
		{"someCamelCaseName", "Some Camel Case Name"},
		{"someAPI", "Some API"},
		{"someAPIKey", "Some API Key"},
		{"ABC", "ABC"},
		{"ABCName", "ABC Name"},
		{"srcPath", "Src Path"},
		{"force", "Force"},
	}
	for _, tt := range tests {
		if got := DisplayLabel(tt.in); got != tt.want {
			t.Errorf("DisplayLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlagToken(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"x", "x"},
		{"X", "x"},
		{"someCamelCaseName", "some-camel-case-name"},
		{"someAPI", "some-api"},
		{"someAPIKey", "some-apikey"},
		{"ABC", "abc"},
		{"SomeName", "some-name"},
		{"dry-run", "dry-run"},
	}
	for _, tt := range tests {
		if got := FlagToken(tt.in); got != tt.want {
			t.Errorf("FlagToken(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlagTokenShape(t *testing.T) {
	// For letter-only identifiers the token is lowercase, has no
	// consecutive dashes, and never starts or ends with one.
	idents := []string{
		"a", "A", "ab", "aB", "Ab", "AB", "ABc", "aBC",
		"someCamelCaseName", "someAPI", "someAPIKey", "HTTPServer",
		"parseURL", "XMLHTTPRequest", "enableTLSVerification",
	}
	for _, id := range idents {
		tok := FlagToken(id)
		if tok != strings.ToLower(tok) {
			t.Errorf("FlagToken(%q) = %q: not lowercase", id, tok)
		}
		if strings.Contains(tok, "--") {
			t.Errorf("FlagToken(%q) = %q: consecutive dashes", id, tok)
		}
		if strings.HasPrefix(tok, "-") || strings.HasSuffix(tok, "-") {
			t.Errorf("FlagToken(%q) = %q: leading or trailing dash", id, tok)
		}
	}
}
