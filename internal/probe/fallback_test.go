package probe_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"

	"link-validator/internal/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProber answers from a fixed table keyed by URL and records calls.
type stubProber struct {
	mu      sync.Mutex
	calls   []string
	answers map[string]stubAnswer
}

type stubAnswer struct {
	status int
	err    error
}

func (s *stubProber) Probe(_ context.Context, rawURL string) (*probe.Outcome, error) {
	s.mu.Lock()
	s.calls = append(s.calls, rawURL)
	s.mu.Unlock()

	a, ok := s.answers[rawURL]
	if !ok {
		return nil, errors.New("unexpected url " + rawURL)
	}
	if a.err != nil {
		return nil, a.err
	}
	return &probe.Outcome{Status: a.status, Header: http.Header{}}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFallback_Probe(t *testing.T) {
	sslErr := errors.New("SSL certificate problem: self signed certificate")

	cases := []struct {
		name        string
		url         string
		answers     map[string]stubAnswer
		wantCalls   int
		wantErr     error
		wantStatus  int
		wantUpdated bool
	}{
		{
			name: "HTTPS works",
			url:  "https://example.com/a",
			answers: map[string]stubAnswer{
				"https://example.com/a": {status: 200},
			},
			wantCalls:  1,
			wantStatus: 200,
		},
		{
			name: "TLS failure falls back to HTTP",
			url:  "https://example.com:8443/a?q=1",
			answers: map[string]stubAnswer{
				"https://example.com:8443/a?q=1": {err: sslErr},
				"http://example.com:8443/a?q=1":  {status: 200},
			},
			wantCalls:   2,
			wantStatus:  200,
			wantUpdated: true,
		},
		{
			name: "Fallback redirect is accepted",
			url:  "https://example.com",
			answers: map[string]stubAnswer{
				"https://example.com": {err: sslErr},
				"http://example.com":  {status: 301},
			},
			wantCalls:   2,
			wantStatus:  301,
			wantUpdated: true,
		},
		{
			name: "Fallback 4xx keeps the TLS error",
			url:  "https://example.com",
			answers: map[string]stubAnswer{
				"https://example.com": {err: sslErr},
				"http://example.com":  {status: 404},
			},
			wantCalls: 2,
			wantErr:   sslErr,
		},
		{
			name: "Fallback network error keeps the TLS error",
			url:  "https://example.com",
			answers: map[string]stubAnswer{
				"https://example.com": {err: sslErr},
				"http://example.com":  {err: errors.New("connection refused")},
			},
			wantCalls: 2,
			wantErr:   sslErr,
		},
		{
			name: "Non-TLS error is not retried",
			url:  "https://example.com",
			answers: map[string]stubAnswer{
				"https://example.com": {err: errors.New("connection refused")},
			},
			wantCalls: 1,
		},
		{
			name: "HTTP URL is not retried",
			url:  "http://example.com",
			answers: map[string]stubAnswer{
				"http://example.com": {err: sslErr},
			},
			wantCalls: 1,
			wantErr:   sslErr,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			stub := &stubProber{answers: tc.answers}
			f := probe.NewFallback(discardLogger(), stub)

			outcome, err := f.Probe(context.Background(), tc.url)

			assert.Len(t, stub.calls, tc.wantCalls)

			if tc.wantStatus == 0 {
				require.Error(t, err)
				if tc.wantErr != nil {
					assert.ErrorIs(t, err, tc.wantErr)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, outcome.Status)
			assert.Equal(t, tc.wantUpdated, outcome.ProtocolUpdated)
			if tc.wantUpdated {
				assert.Equal(t, tc.url, outcome.OriginalURL)
				assert.Equal(t, "http://"+tc.url[len("https://"):], outcome.UpdatedURL)
				assert.Equal(t, probe.FallbackReason, outcome.UpdateReason)
			}
		})
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	stub := &stubProber{answers: map[string]stubAnswer{
		"https://down.example.com/a": {err: errors.New("connection refused")},
		"https://up.example.com/":    {status: 200},
	}}
	b := probe.NewBreaker(stub, probe.BreakerConfig{Failures: 2})

	for i := 0; i < 2; i++ {
		_, err := b.Probe(context.Background(), "https://down.example.com/a")
		require.Error(t, err)
	}

	_, err := b.Probe(context.Background(), "https://down.example.com/a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temporarily unavailable")
	assert.Len(t, stub.calls, 2, "open breaker must not reach the destination")

	outcome, err := b.Probe(context.Background(), "https://up.example.com/")
	require.NoError(t, err)
	assert.Equal(t, 200, outcome.Status)
}

func TestBreaker_StatusCodesAreNotFailures(t *testing.T) {
	stub := &stubProber{answers: map[string]stubAnswer{
		"https://example.com/missing": {status: 404},
	}}
	b := probe.NewBreaker(stub, probe.BreakerConfig{Failures: 1})

	for i := 0; i < 3; i++ {
		outcome, err := b.Probe(context.Background(), "https://example.com/missing")
		require.NoError(t, err)
		assert.Equal(t, 404, outcome.Status)
	}
	assert.Len(t, stub.calls, 3)
}
