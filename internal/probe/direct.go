package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// drainLimit caps how much of a HEAD response body is read before closing.
const drainLimit = 4 << 10

// Direct sends a HEAD request straight to the destination.
type Direct struct {
	client  *http.Client
	timeout time.Duration
}

// NewDirect creates a direct prober. The client must not follow redirects;
// NewHTTPClient builds one that doesn't.
func NewDirect(client *http.Client, timeout time.Duration) *Direct {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Direct{
		client:  client,
		timeout: timeout,
	}
}

func (d *Direct) Probe(ctx context.Context, rawURL string) (*Outcome, error) {
	const op = "probe.Direct.Probe"

	probeCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, contextError(ctx, probeCtx, err))
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))

	return &Outcome{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
	}, nil
}
