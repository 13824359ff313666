package relay_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"link-validator/internal/http-server/handlers/relay"
	"link-validator/internal/http-server/handlers/relay/mocks"
	resp "link-validator/internal/lib/api/response"
	"link-validator/internal/probe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRelayHandler_RejectsBadTargets(t *testing.T) {
	cases := []struct {
		name      string
		target    string
		respError string
	}{
		{
			name:      "Missing url",
			target:    "",
			respError: "url parameter is required",
		},
		{
			name:      "Malformed url",
			target:    "not a url",
			respError: "invalid URL format",
		},
		{
			name:      "Unsupported scheme",
			target:    "ftp://example.com/file",
			respError: "only http and https URLs are supported",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			proberMock := mocks.NewMockProber(t)
			handler := relay.New(slog.New(slog.NewTextHandler(io.Discard, nil)), proberMock)

			path := "/relay"
			if tc.target != "" {
				path += "?url=" + url.QueryEscape(tc.target)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)

			var body resp.Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, resp.StatusError, body.Status)
			assert.Equal(t, tc.respError, body.Error)
		})
	}
}

func TestRelayHandler_ReportsOutcome(t *testing.T) {
	target := "https://example.com/doc"

	proberMock := mocks.NewMockProber(t)
	proberMock.On("Probe", mock.Anything, target).
		Return(&probe.Outcome{
			Status: http.StatusMovedPermanently,
			Header: http.Header{
				"Location":     []string{"https://example.com/new"},
				"Content-Type": []string{"text/html"},
			},
		}, nil).
		Once()

	handler := relay.New(slog.New(slog.NewTextHandler(io.Discard, nil)), proberMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/relay?url="+url.QueryEscape(target), nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var env probe.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.OK)
	assert.Equal(t, http.StatusMovedPermanently, env.Status)
	assert.Equal(t, "https://example.com/new", env.Headers["Location"])
	assert.Empty(t, env.Error)
}

func TestRelayHandler_ReportsProtocolFallback(t *testing.T) {
	target := "https://legacy.example.com"

	proberMock := mocks.NewMockProber(t)
	proberMock.On("Probe", mock.Anything, target).
		Return(&probe.Outcome{
			Status:          http.StatusOK,
			Header:          http.Header{},
			ProtocolUpdated: true,
			UpdatedURL:      "http://legacy.example.com",
			OriginalURL:     target,
			UpdateReason:    probe.FallbackReason,
		}, nil).
		Once()

	handler := relay.New(slog.New(slog.NewTextHandler(io.Discard, nil)), proberMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/relay?url="+url.QueryEscape(target), nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var env probe.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.ProtocolUpdated)
	assert.Equal(t, "http://legacy.example.com", env.UpdatedURL)
	assert.Equal(t, target, env.OriginalURL)
	assert.Equal(t, probe.FallbackReason, env.Reason)
}

func TestRelayHandler_ProbeFailure(t *testing.T) {
	target := "https://down.example.com"

	proberMock := mocks.NewMockProber(t)
	proberMock.On("Probe", mock.Anything, target).
		Return(nil, errors.New("connection refused")).
		Once()

	handler := relay.New(slog.New(slog.NewTextHandler(io.Discard, nil)), proberMock)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/relay?url="+url.QueryEscape(target), nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
	assert.Equal(t, false, raw["ok"])
	assert.Equal(t, float64(0), raw["status"])
	assert.Equal(t, map[string]any{}, raw["headers"])
	assert.Equal(t, "connection refused", raw["error"])
}
