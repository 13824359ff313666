package validation_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	domain "link-validator/internal/domain/validation"
	"link-validator/internal/service/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testDelay   = 30 * time.Millisecond
	waitTimeout = 2 * time.Second
	quietPeriod = 150 * time.Millisecond
)

func receive(t *testing.T, ch chan delivery) delivery {
	t.Helper()

	select {
	case d := <-ch:
		return d
	case <-time.After(waitTimeout):
		t.Fatal("no result delivered")
		return delivery{}
	}
}

func requireQuiet(t *testing.T, ch chan delivery) {
	t.Helper()

	select {
	case d := <-ch:
		t.Fatalf("unexpected delivery for %q: %+v", d.input, d.result)
	case <-time.After(quietPeriod):
	}
}

func TestDebouncer_OnlyLatestInputIsProbed(t *testing.T) {
	fp := &fakeProber{outcome: outcome(200, "Content-Type", "text/html")}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp))
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	d.Schedule("https://b.com", onResult, testDelay)

	got := receive(t, results)
	assert.Equal(t, "https://b.com", got.input)
	assert.True(t, got.result.Valid)

	requireQuiet(t, results)
	assert.Equal(t, []string{"https://b.com"}, fp.Calls())
}

func TestDebouncer_NewerCallAbortsInFlightProbe(t *testing.T) {
	fp := &fakeProber{
		outcome: outcome(200),
		hold:    map[string]chan struct{}{"https://a.com": make(chan struct{})},
		started: make(chan string, 4),
	}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp))
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	require.Equal(t, "https://a.com", <-fp.started)

	d.Schedule("https://b.com", onResult, testDelay)

	got := receive(t, results)
	assert.Equal(t, "https://b.com", got.input)

	requireQuiet(t, results)
	assert.Equal(t, []string{"https://a.com"}, fp.Aborted())
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, fp.Calls())
}

func TestDebouncer_ExternalAbort(t *testing.T) {
	fp := &fakeProber{
		outcome: outcome(200),
		hold:    map[string]chan struct{}{"https://a.com": make(chan struct{})},
		started: make(chan string, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := validation.NewDebouncer(ctx, validation.New(validation.Config{}, fp))
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	<-fp.started
	cancel()

	requireQuiet(t, results)
	assert.Equal(t, []string{"https://a.com"}, fp.Aborted())
}

func TestDebouncer_StaleResultIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)

	// The engine ignores cancellation, so only the staleness check can stop
	// the first result from being delivered.
	engine := engineFunc(func(_ context.Context, rawURL string) (domain.Result, error) {
		if rawURL == "https://a.com" {
			started <- struct{}{}
			<-release
		}
		return domain.NewSuccess("ok"), nil
	})

	d := validation.NewDebouncer(context.Background(), engine)
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	<-started
	d.Schedule("https://b.com", onResult, testDelay)
	close(release)

	got := receive(t, results)
	assert.Equal(t, "https://b.com", got.input)
	requireQuiet(t, results)
}

func TestDebouncer_InvalidFormatIsImmediate(t *testing.T) {
	fp := &fakeProber{outcome: outcome(200)}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp))

	var got []delivery
	d.Schedule("not a url", func(r domain.Result, input string) {
		got = append(got, delivery{result: r, input: input})
	}, time.Hour)

	require.Len(t, got, 1, "invalid format must be reported synchronously")
	assert.Equal(t, "not a url", got[0].input)
	assert.True(t, got[0].result.IsError)
	assert.Equal(t, domain.KindInvalidURL, got[0].result.ErrorType)
	assert.Equal(t, "Invalid URL format", got[0].result.Message)
	assert.Empty(t, fp.Calls())
}

func TestDebouncer_InvalidInputCancelsPendingValidation(t *testing.T) {
	fp := &fakeProber{outcome: outcome(200)}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp))
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	d.Schedule("https://a.c om", onResult, testDelay)

	got := receive(t, results)
	assert.Equal(t, domain.KindInvalidURL, got.result.ErrorType)

	requireQuiet(t, results)
	assert.Empty(t, fp.Calls())
}

func TestDebouncer_EmptyInputDeliversNothing(t *testing.T) {
	fp := &fakeProber{outcome: outcome(200)}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp))
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	d.Schedule("", onResult, testDelay)

	requireQuiet(t, results)
	assert.Empty(t, fp.Calls())
}

func TestDebouncer_ResetHookRunsOnEverySchedule(t *testing.T) {
	var resets atomic.Int32
	fp := &fakeProber{outcome: outcome(200)}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp),
		validation.WithResetHook(func() { resets.Add(1) }),
	)
	results, onResult := collector()

	d.Schedule("h", onResult, testDelay)
	d.Schedule("https://a.com", onResult, testDelay)

	assert.Equal(t, "h", receive(t, results).input)
	assert.Equal(t, "https://a.com", receive(t, results).input)

	assert.Equal(t, int32(2), resets.Load())
}

func TestDebouncer_Cancel(t *testing.T) {
	fp := &fakeProber{outcome: outcome(200)}
	d := validation.NewDebouncer(context.Background(), validation.New(validation.Config{}, fp))
	results, onResult := collector()

	d.Schedule("https://a.com", onResult, testDelay)
	d.Cancel()

	requireQuiet(t, results)
	assert.Empty(t, fp.Calls())
}

func TestDebouncer_UnexpectedFailures(t *testing.T) {
	cases := []struct {
		name   string
		engine engineFunc
		want   string
	}{
		{
			name: "Error",
			engine: func(context.Context, string) (domain.Result, error) {
				return domain.Result{}, errors.New("boom")
			},
			want: "Unable to validate URL: boom",
		},
		{
			name: "Panic",
			engine: func(context.Context, string) (domain.Result, error) {
				panic("kaboom")
			},
			want: "Unable to validate URL: kaboom",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validation.NewDebouncer(context.Background(), tc.engine, validation.WithLogger(discardLogger()))
			results, onResult := collector()

			d.Schedule("https://a.com", onResult, testDelay)

			got := receive(t, results)
			assert.True(t, got.result.IsError)
			assert.Equal(t, domain.KindNetworkError, got.result.ErrorType)
			assert.Equal(t, tc.want, got.result.Message)
		})
	}
}

func TestValidator_Debounced(t *testing.T) {
	fp := &fakeProber{outcome: outcome(301, "Location", "https://example.com/new")}
	v := validation.New(validation.Config{}, fp)
	results, onResult := collector()

	schedule := v.Debounced(context.Background(), onResult, testDelay)
	schedule("https://example.com/o")
	schedule("https://example.com/old")

	got := receive(t, results)
	assert.Equal(t, "https://example.com/old", got.input)
	assert.True(t, got.result.IsWarning)
	assert.Equal(t, "https://example.com/new", got.result.Extra.RedirectLocation)
	requireQuiet(t, results)
}
