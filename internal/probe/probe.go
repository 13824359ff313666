// Package probe fetches response headers for a URL without following
// redirects, either directly or through a relay endpoint.
package probe

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single probe when no timeout is configured.
const DefaultTimeout = 10 * time.Second

var (
	// ErrTimeout is returned when the probe's own deadline fires.
	ErrTimeout = errors.New("request timeout")
	// ErrCanceled is returned when the caller's context is canceled mid-probe.
	ErrCanceled = errors.New("probe canceled")
	// ErrUnreachable is reported when the relay answers without a usable status.
	ErrUnreachable = errors.New("unable to reach the destination URL")
)

// Prober issues one header-only request for a URL. Cancellation of ctx must
// abort the request; implementations enforce their own timeout on top.
type Prober interface {
	Probe(ctx context.Context, rawURL string) (*Outcome, error)
}

// Outcome is what a probe observed. The shape is the same whichever Prober
// produced it.
type Outcome struct {
	Status          int
	Header          http.Header
	ProtocolUpdated bool
	UpdatedURL      string
	OriginalURL     string
	UpdateReason    string
}

// HeaderValue looks up a response header case-insensitively.
func (o *Outcome) HeaderValue(key string) string {
	if o == nil || o.Header == nil {
		return ""
	}
	return o.Header.Get(key)
}

// RelayError carries the failure text a relay reported for the destination.
type RelayError struct {
	Message string
}

func (e *RelayError) Error() string {
	return e.Message
}

// contextError maps a failed request onto ErrCanceled or ErrTimeout when one
// of the contexts involved explains the failure.
func contextError(parent, probeCtx context.Context, err error) error {
	if parent.Err() != nil {
		return errors.Join(ErrCanceled, parent.Err())
	}
	if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
