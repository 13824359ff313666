package probe

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker"
)

type BreakerConfig struct {
	// Failures is the number of consecutive transport failures that opens
	// the breaker for a host.
	Failures uint32
	// Timeout is how long a breaker stays open before letting a trial through.
	Timeout time.Duration
}

// Breaker keeps one circuit breaker per destination host so that a relay
// stops hammering hosts that keep failing at the transport level. HTTP
// statuses of any kind count as successes.
type Breaker struct {
	next     Prober
	cfg      BreakerConfig
	mu       sync.RWMutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewBreaker(next Prober, cfg BreakerConfig) *Breaker {
	if cfg.Failures == 0 {
		cfg.Failures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Breaker{
		next:     next,
		cfg:      cfg,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (b *Breaker) Probe(ctx context.Context, rawURL string) (*Outcome, error) {
	const op = "probe.Breaker.Probe"

	cb := b.breakerFor(hostKey(rawURL))

	out, err := cb.Execute(func() (interface{}, error) {
		return b.next.Probe(ctx, rawURL)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s: destination temporarily unavailable: %w", op, err)
		}
		return nil, err
	}

	outcome, ok := out.(*Outcome)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected probe result type %T", op, out)
	}

	return outcome, nil
}

func (b *Breaker) breakerFor(host string) *gobreaker.CircuitBreaker {
	b.mu.RLock()
	cb, exists := b.breakers[host]
	b.mu.RUnlock()

	if exists {
		return cb
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if cb, exists := b.breakers[host]; exists {
		return cb
	}

	failures := b.cfg.Failures
	cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        host,
		MaxRequests: 1,
		Timeout:     b.cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrCanceled)
		},
	})
	b.breakers[host] = cb

	return cb
}

func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return rawURL
	}
	return strings.ToLower(u.Hostname())
}
