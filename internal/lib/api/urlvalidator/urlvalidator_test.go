package urlvalidator

import (
	"errors"
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr error
	}{
		{
			name: "Valid HTTP URL",
			url:  "http://example.com",
		},
		{
			name: "Valid HTTPS URL",
			url:  "https://example.com",
		},
		{
			name: "Valid URL with path, query and fragment",
			url:  "https://example.com/path?key=value#section",
		},
		{
			name: "Valid URL with port",
			url:  "https://example.com:8443/",
		},
		{
			name: "Uppercase scheme",
			url:  "HTTPS://example.com",
		},
		{
			name:    "Invalid URL format",
			url:     "not a url",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "FTP scheme (not allowed)",
			url:     "ftp://x",
			wantErr: ErrInvalidScheme,
		},
		{
			name:    "Javascript scheme (not allowed)",
			url:     "javascript:alert('xss')",
			wantErr: ErrInvalidScheme,
		},
		{
			name:    "Empty URL",
			url:     "",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "Missing scheme",
			url:     "example.com",
			wantErr: ErrInvalidURL,
		},
		{
			name:    "Scheme without host",
			url:     "https://",
			wantErr: ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateURL(tt.url)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateURL() error = %v, wantErr %v", err, tt.wantErr)
				}
				if !IsValidFormat(tt.url) {
					t.Errorf("IsValidFormat(%q) = false", tt.url)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateURL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if IsValidFormat(tt.url) {
				t.Errorf("IsValidFormat(%q) = true", tt.url)
			}
		})
	}
}

func TestHTTPEquivalent(t *testing.T) {
	cases := map[string]string{
		"https://example.com/":                 "http://example.com/",
		"https://example.com/path":             "http://example.com/path",
		"https://example.com:443/path?query=1": "http://example.com:443/path?query=1",
		"HTTPS://146.190.120.67/":              "http://146.190.120.67/",
		"http://example.com/already":           "http://example.com/already",
	}

	for in, want := range cases {
		if got := HTTPEquivalent(in); got != want {
			t.Errorf("HTTPEquivalent(%q) = %q, want %q", in, got, want)
		}
	}
}
