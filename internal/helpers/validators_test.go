package helpers

import "testing"

func TestIsValidHTTPURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid https", "https://www.google.com", false},
		{"valid http", "http://1.1.1.1", false},
		{"valid with path", "https://example.com/probe", false},
		{"empty", "", true},
		{"no scheme", "www.google.com", true},
		{"ftp scheme", "ftp://example.com", true},
		{"scheme only", "https://", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := IsValidHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("IsValidHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
