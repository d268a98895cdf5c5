package helpers

import (
	"fmt"
	"net/url"
)

// IsValidHTTPURL checks that a string parses as an absolute http or https URL.
func IsValidHTTPURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", rawURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL %q is missing a host", rawURL)
	}
	return nil
}
