package probe

import (
	"context"
	"log/slog"

	"link-validator/internal/lib/api/urlvalidator"
	"link-validator/internal/lib/metrics"
)

// Fallback retries an https URL over plain http when the first attempt fails
// with a TLS error. The http answer is accepted only for statuses in
// [200, 400); otherwise the original TLS error is returned.
type Fallback struct {
	log  *slog.Logger
	next Prober
}

func NewFallback(log *slog.Logger, next Prober) *Fallback {
	return &Fallback{
		log:  log.With(slog.String("component", "probe/fallback")),
		next: next,
	}
}

func (f *Fallback) Probe(ctx context.Context, rawURL string) (*Outcome, error) {
	outcome, err := f.next.Probe(ctx, rawURL)
	if err == nil || !urlvalidator.IsHTTPS(rawURL) || !IsTLSFailure(err) || ctx.Err() != nil {
		return outcome, err
	}

	httpURL := urlvalidator.HTTPEquivalent(rawURL)

	log := f.log.With(slog.String("url", rawURL))
	log.Info("https failed with tls error, trying http fallback", slog.String("error", ErrorText(err)))

	fallback, fbErr := f.next.Probe(ctx, httpURL)
	if fbErr != nil {
		log.Info("http fallback failed", slog.String("error", ErrorText(fbErr)))
		metrics.ProtocolFallbacksTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}
	if fallback.Status < 200 || fallback.Status >= 400 {
		log.Info("http fallback returned unusable status", slog.Int("status", fallback.Status))
		metrics.ProtocolFallbacksTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	log.Info("http fallback succeeded", slog.Int("status", fallback.Status))
	metrics.ProtocolFallbacksTotal.WithLabelValues("accepted").Inc()

	fallback.ProtocolUpdated = true
	fallback.UpdatedURL = httpURL
	fallback.OriginalURL = rawURL
	fallback.UpdateReason = FallbackReason

	return fallback, nil
}
