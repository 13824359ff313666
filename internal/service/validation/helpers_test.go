package validation_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	domain "link-validator/internal/domain/validation"
	"link-validator/internal/probe"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProber answers every probe with the same outcome or error. Probes for
// URLs listed in hold block until released or until ctx is canceled.
type fakeProber struct {
	outcome *probe.Outcome
	err     error

	mu      sync.Mutex
	calls   []string
	aborted []string
	hold    map[string]chan struct{}
	started chan string
}

func (f *fakeProber) Probe(ctx context.Context, rawURL string) (*probe.Outcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, rawURL)
	gate := f.hold[rawURL]
	f.mu.Unlock()

	if f.started != nil {
		f.started <- rawURL
	}

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			f.mu.Lock()
			f.aborted = append(f.aborted, rawURL)
			f.mu.Unlock()
			return nil, errors.Join(probe.ErrCanceled, ctx.Err())
		}
	}

	return f.outcome, f.err
}

func (f *fakeProber) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeProber) Aborted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.aborted...)
}

// delivery is one onResult invocation.
type delivery struct {
	result domain.Result
	input  string
}

func collector() (chan delivery, func(domain.Result, string)) {
	ch := make(chan delivery, 16)
	return ch, func(r domain.Result, input string) {
		ch <- delivery{result: r, input: input}
	}
}

// engineFunc adapts a function to the Engine interface.
type engineFunc func(ctx context.Context, rawURL string) (domain.Result, error)

func (f engineFunc) Validate(ctx context.Context, rawURL string) (domain.Result, error) {
	return f(ctx, rawURL)
}
