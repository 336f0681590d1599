package urlutils

import "testing"

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{name: "valid https URL", url: "https://recipe.glubina.org", expected: true},
		{name: "valid http URL with port", url: "http://127.0.0.1:8080", expected: true},
		{name: "valid URL with path", url: "https://example.com/api", expected: true},
		{name: "ftp scheme", url: "ftp://files.example.com", expected: false},
		{name: "empty string", url: "", expected: false},
		{name: "just domain without scheme", url: "example.com", expected: false},
		{name: "scheme without host", url: "https://", expected: false},
		{name: "malformed", url: "http://[::1", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidURL(tt.url); got != tt.expected {
				t.Errorf("IsValidURL(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		path     string
		expected string
		wantErr  bool
	}{
		{
			name:     "root base",
			base:     "https://recipe.glubina.org",
			path:     "/upload",
			expected: "https://recipe.glubina.org/upload",
		},
		{
			name:     "base with trailing slash",
			base:     "https://recipe.glubina.org/",
			path:     "/upload_text",
			expected: "https://recipe.glubina.org/upload_text",
		},
		{
			name:     "base with path prefix",
			base:     "http://localhost:8080/api",
			path:     "/upload_daily_recipe",
			expected: "http://localhost:8080/api/upload_daily_recipe",
		},
		{
			name:     "relative endpoint without slash",
			base:     "http://localhost:8080/api/",
			path:     "upload_audio",
			expected: "http://localhost:8080/api/upload_audio",
		},
		{
			name:     "absolute endpoint kept",
			base:     "https://recipe.glubina.org",
			path:     "http://other.example/upload",
			expected: "http://other.example/upload",
		},
		{
			name:    "base without host",
			base:    "/just/a/path",
			path:    "/upload",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ResolveURL(%q, %q) = %q, expected %q", tt.base, tt.path, got, tt.expected)
			}
		})
	}
}
