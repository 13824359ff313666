package relay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	resp "link-validator/internal/lib/api/response"
	"link-validator/internal/lib/api/urlvalidator"
	"link-validator/internal/probe"

	"github.com/go-chi/chi/v5/middleware"
)

//go:generate go run github.com/vektra/mockery/v3
type Prober interface {
	Probe(ctx context.Context, rawURL string) (*probe.Outcome, error)
}

// New serves GET /relay?url=<target>. It probes the target server-side and
// reports the destination's status and headers in a probe.Envelope, so
// browsers and other callers can inspect cross-origin headers.
func New(log *slog.Logger, prober Prober) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handlers.relay.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		target := r.URL.Query().Get("url")
		if target == "" {
			log.Info("url parameter is missing")
			render(log, w, http.StatusBadRequest, resp.Error("url parameter is required"))
			return
		}

		log = log.With(slog.String("url", target))

		if err := urlvalidator.ValidateURL(target); err != nil {
			log.Info("rejected relay target", slog.String("error", err.Error()))
			if errors.Is(err, urlvalidator.ErrInvalidScheme) {
				render(log, w, http.StatusBadRequest, resp.Error("only http and https URLs are supported"))
				return
			}
			render(log, w, http.StatusBadRequest, resp.Error("invalid URL format"))
			return
		}

		outcome, err := prober.Probe(r.Context(), target)
		if err != nil {
			log.Warn("relay probe failed", slog.String("error", err.Error()))
			render(log, w, http.StatusInternalServerError, probe.FailureEnvelope(err))
			return
		}

		log.Info("relay probe completed",
			slog.Int("status", outcome.Status),
			slog.Bool("protocol_updated", outcome.ProtocolUpdated),
		)

		render(log, w, http.StatusOK, probe.NewEnvelope(outcome))
	}
}

func render(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	if err := resp.RenderJSON(w, status, v); err != nil {
		log.Error("failed to render JSON response", slog.String("error", err.Error()))
	}
}
