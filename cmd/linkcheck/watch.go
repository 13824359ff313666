package main

import (
	"bufio"
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	domain "link-validator/internal/domain/validation"
	"link-validator/internal/service/validation"

	"github.com/spf13/cobra"
)

// newWatchCmd feeds every stdin line to a debounced validator, the way a form
// field would as the user types. Only the latest line within the quiet period
// is probed; Ctrl-C aborts any probe in flight.
func newWatchCmd(opts *options) *cobra.Command {
	var delay time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Validate URLs read line by line from stdin with debouncing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := opts.logger(cmd)

			v, err := opts.validator(log)
			if err != nil {
				return err
			}

			p := newPrinter(cmd.OutOrStdout(), opts.jsonOutput)
			delivered := newTracker()

			onResult := func(r domain.Result, input string) {
				if err := p.Print(input, r); err != nil {
					log.Error("failed to print result", slog.String("error", err.Error()))
				}
				delivered.Mark(input)
			}

			d := validation.NewDebouncer(ctx, v, validation.WithLogger(log))
			defer d.Cancel()

			lines := make(chan string)
			go func() {
				defer close(lines)
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					select {
					case lines <- scanner.Text():
					case <-ctx.Done():
						return
					}
				}
				if err := scanner.Err(); err != nil {
					log.Error("failed to read input", slog.String("error", err.Error()))
				}
			}()

			var last string
			for {
				select {
				case <-ctx.Done():
					return nil
				case line, ok := <-lines:
					if !ok {
						return waitFor(ctx, delivered, last)
					}
					last = strings.TrimSpace(line)
					d.Schedule(last, onResult, delay)
				}
			}
		},
	}

	cmd.Flags().DurationVar(&delay, "delay", validation.DefaultDebounceDelay, "quiet period before a line is validated")

	return cmd
}

// tracker remembers the latest delivered input. Marks coalesce into a single
// pending wakeup, so none are lost however few waiters read them.
type tracker struct {
	mu     sync.Mutex
	last   string
	wakeup chan struct{}
}

func newTracker() *tracker {
	return &tracker{wakeup: make(chan struct{}, 1)}
}

func (t *tracker) Mark(input string) {
	t.mu.Lock()
	t.last = input
	t.mu.Unlock()

	select {
	case t.wakeup <- struct{}{}:
	default:
	}
}

func (t *tracker) Last() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last
}

// waitFor blocks until the result for last arrives. Empty input never
// produces a result.
func waitFor(ctx context.Context, delivered *tracker, last string) error {
	if last == "" {
		return nil
	}

	for delivered.Last() != last {
		select {
		case <-ctx.Done():
			return nil
		case <-delivered.wakeup:
		}
	}
	return nil
}
