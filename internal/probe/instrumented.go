package probe

import (
	"context"
	"errors"
	"time"

	"link-validator/internal/lib/metrics"
)

// Instrumented records probe counts and latency under a variant label.
type Instrumented struct {
	variant string
	next    Prober
}

func Instrument(variant string, next Prober) *Instrumented {
	return &Instrumented{variant: variant, next: next}
}

func (i *Instrumented) Probe(ctx context.Context, rawURL string) (*Outcome, error) {
	start := time.Now()
	outcome, err := i.next.Probe(ctx, rawURL)

	result := "ok"
	switch {
	case errors.Is(err, ErrCanceled):
		result = "canceled"
	case errors.Is(err, ErrTimeout):
		result = "timeout"
	case err != nil:
		result = "error"
	}

	metrics.ProbesTotal.WithLabelValues(i.variant, result).Inc()
	metrics.ProbeDuration.WithLabelValues(i.variant).Observe(time.Since(start).Seconds())

	return outcome, err
}
