package history

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	resp "link-validator/internal/lib/api/response"
	"link-validator/internal/storage"

	"github.com/go-chi/chi/v5/middleware"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

type Response struct {
	resp.Response
	Checks []storage.Check `json:"checks"`
}

//go:generate go run github.com/vektra/mockery/v3
type CheckLister interface {
	History(ctx context.Context, limit int) ([]storage.Check, error)
}

// New serves GET /history?limit=N with the most recent validations first.
func New(log *slog.Logger, lister CheckLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handlers.history.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		limit := DefaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				log.Info("invalid limit", slog.String("limit", raw))
				render(log, w, http.StatusBadRequest, Response{Response: resp.Error("limit must be a positive integer")})
				return
			}
			limit = min(n, MaxLimit)
		}

		checks, err := lister.History(r.Context(), limit)
		if err != nil {
			log.Error("failed to load history", slog.String("error", err.Error()))
			render(log, w, http.StatusInternalServerError, Response{Response: resp.Error("internal error")})
			return
		}

		if checks == nil {
			checks = []storage.Check{}
		}

		render(log, w, http.StatusOK, Response{
			Response: resp.OK(),
			Checks:   checks,
		})
	}
}

func render(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	if err := resp.RenderJSON(w, status, v); err != nil {
		log.Error("failed to render JSON response", slog.String("error", err.Error()))
	}
}
