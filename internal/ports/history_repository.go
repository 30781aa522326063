package ports

import (
	"context"
	"meeting-point-service/internal/domain"
)

// Port: a boundary for storing recently computed meeting points.
type HistoryRepository interface {
	// Store the entry as the newest one, keeping at most limit entries.
	Save(ctx context.Context, entry domain.HistoryEntry, limit int) error
	// Return up to limit entries, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)
	// Return a single entry or domain.ErrNotFound.
	Get(ctx context.Context, id string) (domain.HistoryEntry, error)
	// Remove every entry.
	Clear(ctx context.Context) error
}
