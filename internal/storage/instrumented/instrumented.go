package instrumented

import (
	"context"
	"time"

	"link-validator/internal/lib/metrics"
	"link-validator/internal/storage"
)

type Storage struct {
	next storage.Storage
}

func New(next storage.Storage) *Storage {
	return &Storage{next: next}
}

func (s *Storage) SaveCheck(ctx context.Context, check storage.Check) (int64, error) {
	const op = "SaveCheck"
	start := time.Now()
	id, err := s.next.SaveCheck(ctx, check)
	s.recordMetrics(op, err, start)
	return id, err
}
func (s *Storage) RecentChecks(ctx context.Context, limit int) ([]storage.Check, error) {
	const op = "RecentChecks"
	start := time.Now()
	checks, err := s.next.RecentChecks(ctx, limit)
	s.recordMetrics(op, err, start)
	return checks, err
}
func (s *Storage) Close() error {
	return s.next.Close()
}
func (s *Storage) recordMetrics(operation string, err error, start time.Time) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
	metrics.StorageOperationDuration.WithLabelValues(operation).Observe(duration)
}
