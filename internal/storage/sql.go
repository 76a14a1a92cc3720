package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	// Drivers selected by connection-string scheme; mysql is imported by dialect.go.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// SQLStore persists agenda items in a relational database.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// Open connects to the database named by databaseURL and verifies the
// connection. The scheme selects the driver: postgres, mysql or sqlite.
func Open(ctx context.Context, databaseURL string) (*SQLStore, error) {
	d, dsn, err := resolveDialect(databaseURL)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", d.name, err)
	}

	// One handler invocation, one short-lived connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", d.name, err)
	}
	return &SQLStore{db: db, dialect: d}, nil
}

// OpenStore is an Opener backed by Open.
func OpenStore(ctx context.Context, databaseURL string) (Store, error) {
	s, err := Open(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Close releases the database handle.
func (s *SQLStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// EnsureSchema creates the agenda table when it does not exist.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable); err != nil {
		return fmt.Errorf("create agenda table: %w", err)
	}
	return nil
}

// SeedIfEmpty inserts items when the agenda table has no rows and returns
// how many were inserted. A non-empty table is left untouched. The check and
// the inserts share one transaction; any failure rolls it back.
func (s *SQLStore) SeedIfEmpty(ctx context.Context, items []AgendaItem) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			log.Printf("rollback agenda seed: %v", err)
		}
	}()

	if s.dialect.lockTable != "" {
		if _, err := tx.ExecContext(ctx, s.dialect.lockTable); err != nil {
			return 0, fmt.Errorf("lock agenda table: %w", err)
		}
	}

	var count int
	if err := tx.QueryRowContext(ctx, s.dialect.countRows).Scan(&count); err != nil {
		return 0, fmt.Errorf("count agenda rows: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx, s.dialect.insertItem, item.Number, item.Title, item.Duration, item.SortOrder); err != nil {
			return 0, fmt.Errorf("insert agenda item %s: %w", item.Number, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(items), nil
}

// ListAgenda returns every agenda item ordered by sort_order, then id.
func (s *SQLStore) ListAgenda(ctx context.Context) ([]AgendaItem, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.listItems)
	if err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}
	defer rows.Close()

	items := []AgendaItem{}
	for rows.Next() {
		var item AgendaItem
		if err := rows.Scan(&item.ID, &item.Number, &item.Title, &item.Duration, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scan agenda item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list agenda: %w", err)
	}
	return items, nil
}
