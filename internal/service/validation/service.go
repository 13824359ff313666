package validation

import (
	"context"
	"fmt"
	"log/slog"

	"link-validator/internal/domain/validation"
	"link-validator/internal/probe"
	"link-validator/internal/storage"
)

// History persists validation outcomes.
//
//go:generate go run github.com/vektra/mockery/v3
type History interface {
	SaveCheck(ctx context.Context, check storage.Check) (int64, error)
	RecentChecks(ctx context.Context, limit int) ([]storage.Check, error)
}

// Service serves validations for both trust tiers over one probe chain and
// records every classified result.
type Service struct {
	log        *slog.Logger
	guest      *Validator
	registered *Validator
	history    History
}

func NewService(log *slog.Logger, cfg Config, prober probe.Prober, history History) *Service {
	guestCfg, registeredCfg := cfg, cfg
	guestCfg.IsUserRegistered = false
	registeredCfg.IsUserRegistered = true

	return &Service{
		log:        log,
		guest:      New(guestCfg, prober),
		registered: New(registeredCfg, prober),
		history:    history,
	}
}

// ForTier returns the validator for the given trust tier.
func (s *Service) ForTier(registered bool) *Validator {
	if registered {
		return s.registered
	}
	return s.guest
}

func (s *Service) Validate(ctx context.Context, rawURL string, registered bool) (validation.Result, error) {
	const op = "service.validation.Service.Validate"

	result, err := s.ForTier(registered).Validate(ctx, rawURL)
	if err != nil {
		return validation.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	if s.history != nil {
		_, err = s.history.SaveCheck(ctx, storage.Check{
			URL:        rawURL,
			Registered: registered,
			ErrorType:  string(result.ErrorType),
			Severity:   string(result.BorderColor),
			Message:    result.Message,
		})
		if err != nil {
			s.log.Warn("failed to record validation",
				slog.String("op", op),
				slog.String("url", rawURL),
				slog.String("error", err.Error()),
			)
		}
	}

	return result, nil
}

func (s *Service) History(ctx context.Context, limit int) ([]storage.Check, error) {
	const op = "service.validation.Service.History"

	if s.history == nil {
		return nil, nil
	}

	checks, err := s.history.RecentChecks(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return checks, nil
}
