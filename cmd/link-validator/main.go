package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"link-validator/internal/config"
	"link-validator/internal/http-server/handlers/history"
	"link-validator/internal/http-server/handlers/relay"
	"link-validator/internal/http-server/handlers/validate"
	"link-validator/internal/http-server/middleware/auth"
	mwLogger "link-validator/internal/http-server/middleware/logger"
	mwMetrics "link-validator/internal/http-server/middleware/metrics"
	"link-validator/internal/http-server/middleware/ratelimit"
	"link-validator/internal/lib/jwt"
	"link-validator/internal/lib/logger/slogcute"
	"link-validator/internal/probe"
	"link-validator/internal/service/validation"
	"link-validator/internal/storage/instrumented"
	"link-validator/internal/storage/sqlite"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.MustLoad()

	log := SetupLogger(cfg.Env)

	log.Info("starting link validator", slog.String("env", cfg.Env))
	log.Debug("debug messages are enabled")

	sqliteStorage, err := sqlite.New(cfg.StoragePath)
	if err != nil {
		log.Error("failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	storage := instrumented.New(sqliteStorage)
	defer func() {
		if err := storage.Close(); err != nil {
			log.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	tokenValidator, err := setupTokenValidator(cfg.Auth)
	if err != nil {
		log.Error("failed to initialize token validator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client := probe.NewHTTPClient(probe.HTTPClientConfig{
		UserAgent:       cfg.Validator.UserAgent,
		MaxIdleConns:    100,
		IdleConnTimeout: 90 * time.Second,
	})

	validatorCfg := validation.Config{
		ProxyURL: cfg.Validator.ProxyURL,
		Timeout:  cfg.Validator.Timeout,
	}
	validationService := validation.NewService(
		log,
		validatorCfg,
		validation.NewProber(log, validatorCfg, client),
		storage,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(mwMetrics.New())

	router.Handle("/metrics", promhttp.Handler())

	// Both endpoints below issue outbound probes, so they share one limiter.
	rateLimit := ratelimit.New(log, cfg.Relay.RateLimit, cfg.Relay.RateBurst)

	router.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Get("/relay", relay.New(log, setupRelayProber(log, cfg, client)))
	})

	router.Group(func(r chi.Router) {
		r.Use(rateLimit)
		r.Use(auth.Optional(log, tokenValidator))
		r.Post("/validate", validate.New(log, validationService))
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.New(log, tokenValidator))
		r.Get("/history", history.New(log, validationService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout + cfg.Validator.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting HTTP server", slog.String("addr", cfg.HTTPServer.Address))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shut down HTTP server", slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped")
}

// setupRelayProber builds the chain behind GET /relay: a direct probe guarded
// by per-host circuit breakers, with https to http fallback on top.
func setupRelayProber(log *slog.Logger, cfg *config.Config, client *http.Client) probe.Prober {
	var chain probe.Prober = probe.NewDirect(client, cfg.Validator.Timeout)

	if !cfg.Relay.BreakerDisabled {
		chain = probe.NewBreaker(chain, probe.BreakerConfig{
			Failures: cfg.Relay.BreakerFailures,
			Timeout:  cfg.Relay.BreakerTimeout,
		})
	}

	return probe.Instrument("relay", probe.NewFallback(log, chain))
}

// setupTokenValidator returns nil when no public key is configured, in which
// case every caller is a guest and /history is closed.
func setupTokenValidator(cfg config.AuthConfig) (auth.TokenValidator, error) {
	if cfg.PublicKey == "" {
		return nil, nil
	}

	v, err := jwt.New(cfg.PublicKey)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func SetupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = SetupCuteSlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func SetupCuteSlog() *slog.Logger {
	opts := slogcute.CuteHandlerOptions{
		SlogOptions: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewCuteHandler(os.Stdout)

	return slog.New(handler)
}
