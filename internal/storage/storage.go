package storage

import (
	"context"
	"fmt"
)

// AgendaItem represents a single section of a presentation's running order
type AgendaItem struct {
	ID        int64  `json:"id"`
	Number    string `json:"number"`
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	SortOrder int    `json:"sort_order"`
}

// Store defines the operations the agenda endpoint needs from a database
type Store interface {
	EnsureSchema(ctx context.Context) error
	SeedIfEmpty(ctx context.Context, items []AgendaItem) (int, error)
	ListAgenda(ctx context.Context) ([]AgendaItem, error)
	Close() error
}

// Opener connects to the database named by a connection string.
type Opener func(ctx context.Context, databaseURL string) (Store, error)

// DefaultAgenda returns the rows inserted into an empty agenda table.
func DefaultAgenda() []AgendaItem {
	return []AgendaItem{
		{Number: "01", Title: "Введение в тему", Duration: "5 мин", SortOrder: 1},
		{Number: "02", Title: "Основная часть", Duration: "15 мин", SortOrder: 2},
		{Number: "03", Title: "Ключевые моменты", Duration: "10 мин", SortOrder: 3},
		{Number: "04", Title: "Выводы и заключение", Duration: "5 мин", SortOrder: 4},
	}
}

// BootstrapResult reports what Bootstrap did. Err is set when either step
// failed; callers that treat bootstrap as best-effort may ignore it.
type BootstrapResult struct {
	Seeded int
	Err    error
}

// Bootstrap creates the agenda table if needed and seeds it when empty.
func Bootstrap(ctx context.Context, s Store) BootstrapResult {
	if err := s.EnsureSchema(ctx); err != nil {
		return BootstrapResult{Err: fmt.Errorf("ensure schema: %w", err)}
	}
	n, err := s.SeedIfEmpty(ctx, DefaultAgenda())
	if err != nil {
		return BootstrapResult{Err: fmt.Errorf("seed agenda: %w", err)}
	}
	return BootstrapResult{Seeded: n}
}
