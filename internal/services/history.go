package services

import (
	"context"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/ports"
	"strings"
)

const (
	// MaxSuggestions caps Suggest results.
	MaxSuggestions = 5
	// MinSuggestQueryLen is the shortest trimmed query that yields suggestions.
	MinSuggestQueryLen = 2
)

// HistoryService reads back the meeting points recorded by the finder.
type HistoryService struct {
	repo  ports.HistoryRepository
	limit int
}

func NewHistoryService(repo ports.HistoryRepository, limit int) *HistoryService {
	if limit < 1 {
		limit = DefaultHistoryLimit
	}
	return &HistoryService{repo: repo, limit: limit}
}

// Recent returns up to limit entries, newest first. A limit outside
// [1, configured limit] means the configured limit.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit < 1 || limit > s.limit {
		limit = s.limit
	}

	entries, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent history: %w", err)
	}
	return entries, nil
}

func (s *HistoryService) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("history entry: %w", err)
	}
	return e, nil
}

func (s *HistoryService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Suggest returns up to MaxSuggestions entries, newest first, whose name
// contains query case-insensitively. Queries shorter than
// MinSuggestQueryLen after trimming match nothing.
func (s *HistoryService) Suggest(ctx context.Context, query string) ([]domain.HistoryEntry, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < MinSuggestQueryLen {
		return []domain.HistoryEntry{}, nil
	}

	entries, err := s.repo.ListRecent(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("suggest history: %w", err)
	}

	out := make([]domain.HistoryEntry, 0, MaxSuggestions)
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
			if len(out) == MaxSuggestions {
				break
			}
		}
	}
	return out, nil
}
