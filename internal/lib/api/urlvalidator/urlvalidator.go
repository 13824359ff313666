package urlvalidator

import (
	"errors"
	"net/url"
	"strings"
)

var (
	// ErrEmptyURL indicates that no URL was given
	ErrEmptyURL = errors.New("url is empty")
	// ErrInvalidURL indicates that the URL format is invalid
	ErrInvalidURL = errors.New("invalid URL format")
	// ErrInvalidScheme indicates that the URL scheme is not allowed
	ErrInvalidScheme = errors.New("only http and https schemes are allowed")
)

// ValidateURL validates that the URL parses, has a host and uses the http or
// https scheme. No network access is performed.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return ErrInvalidURL
	}

	if parsedURL.Scheme == "" {
		return ErrInvalidURL
	}

	if !strings.EqualFold(parsedURL.Scheme, "http") && !strings.EqualFold(parsedURL.Scheme, "https") {
		return ErrInvalidScheme
	}

	if parsedURL.Host == "" {
		return ErrInvalidURL
	}

	return nil
}

// IsValidFormat reports whether candidate is a well-formed http(s) URL.
func IsValidFormat(candidate string) bool {
	return ValidateURL(candidate) == nil
}

// IsHTTPS reports whether rawURL uses the https scheme.
func IsHTTPS(rawURL string) bool {
	return len(rawURL) >= len("https://") && strings.EqualFold(rawURL[:len("https://")], "https://")
}

// HTTPEquivalent swaps an https scheme for http, leaving host, port, path and
// query untouched. Other URLs are returned unchanged.
func HTTPEquivalent(rawURL string) string {
	if !IsHTTPS(rawURL) {
		return rawURL
	}
	return "http://" + rawURL[len("https://"):]
}
