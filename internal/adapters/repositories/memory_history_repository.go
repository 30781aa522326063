package repositories

import (
	"context"
	"fmt"
	"meeting-point-service/internal/domain"
	"sync"
)

// MemoryHistoryRepository keeps history in process memory, newest first.
// Safe for concurrent use.
type MemoryHistoryRepository struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
}

func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{}
}

func (m *MemoryHistoryRepository) Save(_ context.Context, entry domain.HistoryEntry, limit int) error {
	if limit < 1 {
		return fmt.Errorf("save history: limit must be positive, got %d: %w", limit, domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := make([]domain.HistoryEntry, 0, min(len(m.entries)+1, limit))
	next = append(next, entry)
	for _, e := range m.entries {
		if len(next) == limit {
			break
		}
		next = append(next, e)
	}
	m.entries = next
	return nil
}

func (m *MemoryHistoryRepository) ListRecent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := min(max(limit, 0), len(m.entries))
	out := make([]domain.HistoryEntry, n)
	copy(out, m.entries[:n])
	return out, nil
}

func (m *MemoryHistoryRepository) Get(_ context.Context, id string) (domain.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: %w", id, domain.ErrNotFound)
}

func (m *MemoryHistoryRepository) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}
