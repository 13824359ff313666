package validate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	domain "link-validator/internal/domain/validation"
	"link-validator/internal/http-server/middleware/auth"
	resp "link-validator/internal/lib/api/response"
	"link-validator/internal/service/validation"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	URL string `json:"url" validate:"required"`
}

type Response struct {
	resp.Response
	Result *domain.Result `json:"result,omitempty"`
	Color  string         `json:"color,omitempty"`
}

//go:generate go run github.com/vektra/mockery/v3
type URLValidator interface {
	Validate(ctx context.Context, rawURL string, registered bool) (domain.Result, error)
}

// New serves POST /validate. Authenticated callers are validated as
// registered users; everyone else as guests.
func New(log *slog.Logger, urlValidator URLValidator) http.HandlerFunc {
	validate := validator.New()

	return func(w http.ResponseWriter, r *http.Request) {
		const op = "http-server.handlers.validate.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := json.NewDecoder(r.Body).Decode(&req)
		if errors.Is(err, io.EOF) {
			log.Error("request body is empty")
			render(log, w, http.StatusBadRequest, Response{Response: resp.Error("empty request")})
			return
		}
		if err != nil {
			log.Error("failed to decode request body", slog.String("error", err.Error()))
			render(log, w, http.StatusBadRequest, Response{Response: resp.Error("invalid request body")})
			return
		}

		log.Info("request decoded", slog.Any("req", req))

		if err := validate.Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Info("invalid request", slog.String("error", err.Error()))
				render(log, w, http.StatusBadRequest, Response{Response: resp.ValidationError(validateErr)})
				return
			}
			log.Error("failed to validate request", slog.String("error", err.Error()))
			render(log, w, http.StatusBadRequest, Response{Response: resp.Error("invalid request")})
			return
		}

		registered := auth.IsRegistered(r.Context())

		result, err := urlValidator.Validate(r.Context(), req.URL, registered)
		if errors.Is(err, validation.ErrAborted) {
			log.Info("validation aborted by client", slog.String("url", req.URL))
			render(log, w, http.StatusRequestTimeout, Response{Response: resp.Error("validation aborted")})
			return
		}
		if err != nil {
			log.Error("failed to validate url", slog.String("error", err.Error()))
			render(log, w, http.StatusInternalServerError, Response{Response: resp.Error("internal error")})
			return
		}

		log.Info("url validated",
			slog.String("url", req.URL),
			slog.Bool("registered", registered),
			slog.String("error_type", string(result.ErrorType)),
		)

		render(log, w, http.StatusOK, Response{
			Response: resp.OK(),
			Result:   &result,
			Color:    result.BorderColor.Color(),
		})
	}
}

func render(log *slog.Logger, w http.ResponseWriter, status int, v any) {
	if err := resp.RenderJSON(w, status, v); err != nil {
		log.Error("failed to render JSON response", slog.String("error", err.Error()))
	}
}
