package validation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"link-validator/internal/domain/validation"
	"link-validator/internal/lib/api/urlvalidator"
	"link-validator/internal/lib/metrics"
	"link-validator/internal/probe"
)

// ErrAborted is returned by Validate when the caller's context was canceled
// before a result could be classified. It signals superseded work, not a
// failure to report.
var ErrAborted = errors.New("validation aborted")

// Config is fixed for the lifetime of a Validator.
type Config struct {
	IsUserRegistered bool
	ProxyURL         string
	Timeout          time.Duration
}

// Validator runs single-shot validations for one trust tier.
type Validator struct {
	cfg    Config
	prober probe.Prober
}

func New(cfg Config, prober probe.Prober) *Validator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = probe.DefaultTimeout
	}

	return &Validator{
		cfg:    cfg,
		prober: prober,
	}
}

// NewProber builds the probe chain for cfg: the relay when a proxy URL is
// configured, otherwise a direct HEAD probe with https to http fallback.
func NewProber(log *slog.Logger, cfg Config, client *http.Client) probe.Prober {
	if cfg.ProxyURL != "" {
		return probe.Instrument("proxy", probe.NewProxy(client, cfg.ProxyURL, cfg.Timeout))
	}

	return probe.Instrument("direct", probe.NewFallback(log, probe.NewDirect(client, cfg.Timeout)))
}

func (v *Validator) IsValidFormat(rawURL string) bool {
	return urlvalidator.IsValidFormat(rawURL)
}

// Validate probes rawURL and classifies the outcome. Invalid URLs are
// classified without touching the network. The only error returned is
// ErrAborted; every transport failure is folded into the result.
func (v *Validator) Validate(ctx context.Context, rawURL string) (validation.Result, error) {
	const op = "service.validation.Validator.Validate"

	if !v.IsValidFormat(rawURL) {
		return record(Classify(Observation{FormatValid: false})), nil
	}

	outcome, err := v.prober.Probe(ctx, rawURL)
	if ctx.Err() != nil || errors.Is(err, probe.ErrCanceled) {
		return validation.Result{}, fmt.Errorf("%s: %w", op, errors.Join(ErrAborted, ctx.Err()))
	}

	return record(Classify(Observation{
		FormatValid: true,
		Outcome:     outcome,
		Err:         err,
		Registered:  v.cfg.IsUserRegistered,
	})), nil
}

// Debounced returns a function that validates the latest input after delay
// of quiet, delivering results to onResult. ctx cancels any active probe.
func (v *Validator) Debounced(ctx context.Context, onResult ResultFunc, delay time.Duration, opts ...Option) func(string) {
	d := NewDebouncer(ctx, v, opts...)

	return func(input string) {
		d.Schedule(input, onResult, delay)
	}
}

func record(r validation.Result) validation.Result {
	errorType := string(r.ErrorType)
	if errorType == "" {
		errorType = "none"
	}
	metrics.ValidationsTotal.WithLabelValues(errorType, string(r.BorderColor)).Inc()
	return r
}
