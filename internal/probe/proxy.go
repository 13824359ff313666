package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxEnvelopeBytes bounds how much of a relay response is decoded.
const maxEnvelopeBytes = 1 << 20

// Proxy asks a relay endpoint to probe the destination on its behalf. The
// relay performs the HEAD request and any https to http fallback.
type Proxy struct {
	client   *http.Client
	endpoint string
	timeout  time.Duration
}

func NewProxy(client *http.Client, endpoint string, timeout time.Duration) *Proxy {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Proxy{
		client:   client,
		endpoint: endpoint,
		timeout:  timeout,
	}
}

// RelayURL appends the percent-encoded target to the relay endpoint.
func RelayURL(endpoint, target string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + "url=" + url.QueryEscape(target)
}

func (p *Proxy) Probe(ctx context.Context, rawURL string) (*Outcome, error) {
	const op = "probe.Proxy.Probe"

	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, RelayURL(p.endpoint, rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, contextError(ctx, probeCtx, err))
	}
	defer resp.Body.Close()

	// The relay answers failures with a non-2xx code and a regular envelope,
	// so the body is decoded regardless of the status.
	var env Envelope
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxEnvelopeBytes)).Decode(&env); err != nil {
		if ctxErr := contextError(ctx, probeCtx, err); ctxErr != err {
			return nil, fmt.Errorf("%s: %w", op, ctxErr)
		}
		return nil, fmt.Errorf("%s: decode relay response (status %d): %w", op, resp.StatusCode, err)
	}

	outcome, err := env.Outcome()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return outcome, nil
}
