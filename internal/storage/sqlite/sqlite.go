package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"link-validator/internal/storage"

	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

// New opens the SQLite database at storagePath. The schema is managed by
// cmd/migrator.
func New(storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// SaveCheck stores a validation outcome and returns its id.
func (s *Storage) SaveCheck(ctx context.Context, check storage.Check) (int64, error) {
	const op = "storage.sqlite.SaveCheck"

	if check.CreatedAt.IsZero() {
		check.CreatedAt = time.Now().UTC()
	}

	stmt, err := s.db.PrepareContext(ctx, `
		INSERT INTO checks(url, registered, error_type, severity, message, created_at)
		VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	res, err := stmt.ExecContext(ctx,
		check.URL,
		check.Registered,
		check.ErrorType,
		check.Severity,
		check.Message,
		check.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: execute statement: %w", op, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to get last insert id: %w", op, err)
	}

	return id, nil
}

// RecentChecks returns up to limit checks, newest first.
func (s *Storage) RecentChecks(ctx context.Context, limit int) ([]storage.Check, error) {
	const op = "storage.sqlite.RecentChecks"

	if limit <= 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrInvalidLimit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, registered, error_type, severity, message, created_at
		FROM checks
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var checks []storage.Check
	for rows.Next() {
		var c storage.Check
		if err = rows.Scan(&c.ID, &c.URL, &c.Registered, &c.ErrorType, &c.Severity, &c.Message, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		checks = append(checks, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return checks, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}
