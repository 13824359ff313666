// Command linkcheck validates URLs from the command line, either once per
// argument or continuously from lines typed on stdin.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"link-validator/internal/lib/logger/slogcute"
	"link-validator/internal/probe"
	"link-validator/internal/service/validation"

	"github.com/spf13/cobra"
)

const defaultUserAgent = "Link-Validator/1.0"

type options struct {
	registered bool
	proxyURL   string
	timeout    time.Duration
	userAgent  string
	jsonOutput bool
	verbose    bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "linkcheck",
		Short:         "linkcheck validates links the way the link validator service does",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVar(&opts.registered, "registered", false, "validate as a registered user")
	flags.StringVar(&opts.proxyURL, "proxy", "", "relay endpoint to probe through, e.g. https://host/relay")
	flags.DurationVar(&opts.timeout, "timeout", probe.DefaultTimeout, "timeout for a single probe")
	flags.StringVar(&opts.userAgent, "user-agent", defaultUserAgent, "User-Agent sent with probes")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print results as JSON lines")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log probe details to stderr")

	rootCmd.AddCommand(newCheckCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))

	return rootCmd
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}

	handlerOpts := slogcute.CuteHandlerOptions{
		SlogOptions: &slog.HandlerOptions{Level: level},
	}

	return slog.New(handlerOpts.NewCuteHandler(cmd.ErrOrStderr()))
}

func (o *options) validator(log *slog.Logger) (*validation.Validator, error) {
	if o.timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %s", o.timeout)
	}

	cfg := validation.Config{
		IsUserRegistered: o.registered,
		ProxyURL:         o.proxyURL,
		Timeout:          o.timeout,
	}

	client := probe.NewHTTPClient(probe.HTTPClientConfig{
		UserAgent:       o.userAgent,
		MaxIdleConns:    10,
		IdleConnTimeout: 30 * time.Second,
	})

	return validation.New(cfg, validation.NewProber(log, cfg, client)), nil
}
