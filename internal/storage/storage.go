package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidLimit = errors.New("limit must be positive")
)

// Check is one stored validation outcome.
type Check struct {
	ID         int64     `json:"id"`
	URL        string    `json:"url"`
	Registered bool      `json:"registered"`
	ErrorType  string    `json:"error_type,omitempty"`
	Severity   string    `json:"severity"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

type Storage interface {
	SaveCheck(ctx context.Context, check Check) (int64, error)
	RecentChecks(ctx context.Context, limit int) ([]Check, error)
	Close() error
}
