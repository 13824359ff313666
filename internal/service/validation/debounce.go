package validation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"link-validator/internal/domain/validation"
	"link-validator/internal/lib/api/urlvalidator"
	"link-validator/internal/lib/metrics"
)

// DefaultDebounceDelay is used when Schedule is given a non-positive delay.
const DefaultDebounceDelay = 500 * time.Millisecond

// ResultFunc receives a settled result together with the input it is for.
type ResultFunc func(result validation.Result, input string)

// Engine is a single-shot validator the Debouncer drives.
type Engine interface {
	Validate(ctx context.Context, rawURL string) (validation.Result, error)
}

type Option func(*Debouncer)

// WithResetHook registers fn to run on every Schedule before anything else
// is decided, so a UI can clear its pending indicator.
func WithResetHook(fn func()) Option {
	return func(d *Debouncer) {
		d.onReset = fn
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(d *Debouncer) {
		d.log = log
	}
}

// Debouncer validates the most recent of a stream of inputs. At most one
// timer and one probe are alive at a time, and a result is delivered only if
// its input is still the latest one scheduled.
type Debouncer struct {
	engine  Engine
	ctx     context.Context
	log     *slog.Logger
	onReset func()

	mu       sync.Mutex
	timer    *time.Timer
	abort    context.CancelFunc
	abortSeq uint64
	current  string
	seq      uint64
}

// NewDebouncer creates a debouncer whose probes are all derived from ctx;
// canceling ctx aborts whichever probe is active.
func NewDebouncer(ctx context.Context, engine Engine, opts ...Option) *Debouncer {
	d := &Debouncer{
		engine: engine,
		ctx:    ctx,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Schedule supersedes any pending or running validation with input.
// A non-empty input with an invalid format is reported to onResult
// synchronously; an empty input just clears state.
func (d *Debouncer) Schedule(input string, onResult ResultFunc, delay time.Duration) {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	d.mu.Lock()
	d.reset()
	seq := d.seq
	d.mu.Unlock()

	if d.onReset != nil {
		d.onReset()
	}

	if input == "" {
		return
	}

	if !urlvalidator.IsValidFormat(input) {
		metrics.DebouncedTotal.WithLabelValues("immediate").Inc()
		onResult(validation.NewError(validation.KindInvalidURL, msgInvalidFormatShort, validation.Extra{}), input)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	// A concurrent Schedule may have run while the hook did.
	if seq != d.seq {
		return
	}
	d.current = input
	d.timer = time.AfterFunc(delay, func() {
		d.fire(seq, input, onResult)
	})
}

// Cancel drops the pending timer and aborts the active probe. Nothing is
// delivered for inputs scheduled before the call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.reset()
}

// reset must be called with mu held.
func (d *Debouncer) reset() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.abort != nil {
		d.abort()
		d.abort = nil
	}
	d.current = ""
	d.seq++
}

func (d *Debouncer) fire(seq uint64, input string, onResult ResultFunc) {
	d.mu.Lock()
	if seq != d.seq {
		// Superseded after the timer had already fired.
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(d.ctx)
	d.abort = cancel
	d.abortSeq = seq
	d.timer = nil
	d.mu.Unlock()

	defer cancel()

	result, err := d.run(ctx, input)

	d.mu.Lock()
	stale := seq != d.seq || input != d.current
	if d.abortSeq == seq {
		d.abort = nil
	}
	d.mu.Unlock()

	log := d.log.With(slog.String("url", input))

	switch {
	case stale:
		log.Debug("discarding stale validation result")
		metrics.DebouncedTotal.WithLabelValues("stale").Inc()
		return
	case errors.Is(err, ErrAborted):
		log.Debug("validation aborted")
		metrics.DebouncedTotal.WithLabelValues("aborted").Inc()
		return
	}

	metrics.DebouncedTotal.WithLabelValues("delivered").Inc()
	onResult(result, input)
}

// run executes the engine, turning unexpected failures into a NetworkError
// result instead of letting them escape the timer goroutine.
func (d *Debouncer) run(ctx context.Context, input string) (res validation.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("validation panicked", slog.String("url", input), slog.Any("panic", r))
			res, err = unexpectedFailure(fmt.Errorf("%v", r)), nil
		}
	}()

	res, err = d.engine.Validate(ctx, input)
	if err != nil && !errors.Is(err, ErrAborted) {
		d.log.Error("validation failed", slog.String("url", input), slog.String("error", err.Error()))
		return unexpectedFailure(err), nil
	}

	return res, err
}

func unexpectedFailure(err error) validation.Result {
	return validation.NewError(
		validation.KindNetworkError,
		"Unable to validate URL: "+err.Error(),
		validation.Extra{},
	)
}
