package sqlite

import "context"

// Exec runs raw SQL against the storage; tests use it to apply the schema.
func Exec(ctx context.Context, s *Storage, query string) error {
	_, err := s.db.ExecContext(ctx, query)
	return err
}
