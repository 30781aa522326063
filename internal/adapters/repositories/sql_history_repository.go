package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
)

// SQLHistoryRepository is the Postgres-backed HistoryRepository.
// The schema comes from the goose migrations.
type SQLHistoryRepository struct{ DB *sql.DB }

func NewSQLHistoryRepository(db *sql.DB) *SQLHistoryRepository {
	return &SQLHistoryRepository{DB: db}
}

func (s *SQLHistoryRepository) Save(ctx context.Context, entry domain.HistoryEntry, limit int) (err error) {
	defer obs.Time(ctx, "history.postgres.Save")(&err)

	if s.DB == nil {
		return errors.New("sql history repository: DB is nil")
	}
	if limit < 1 {
		return fmt.Errorf("save history: limit must be positive, got %d: %w", limit, domain.ErrInvalidInput)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save history: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
	INSERT INTO meeting_point_history (id, lat, lng, kind, name, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`, entry.ID, entry.Lat, entry.Lng, string(entry.Kind), entry.Name, entry.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("save history: insert id=%s: %w", entry.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `
	DELETE FROM meeting_point_history
	WHERE seq NOT IN (
		SELECT seq FROM meeting_point_history
		ORDER BY seq DESC
		LIMIT $1
	);
	`, limit); err != nil {
		return fmt.Errorf("save history: trim to %d: %w", limit, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save history: commit tx: %w", err)
	}
	return nil
}

func (s *SQLHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sql history repository: DB is nil")
	}
	if limit < 1 {
		return []domain.HistoryEntry{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, lat, lng, kind, name, created_at
	FROM meeting_point_history
	ORDER BY seq DESC
	LIMIT $1;
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: query meeting_point_history table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, limit)
	for rows.Next() {
		e, err := scanSQLEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("list history: scan row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history: row iteration: %w", err)
	}

	return entries, nil
}

func (s *SQLHistoryRepository) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	if s.DB == nil {
		return domain.HistoryEntry{}, errors.New("sql history repository: DB is nil")
	}

	row := s.DB.QueryRowContext(ctx, `
	SELECT id, lat, lng, kind, name, created_at
	FROM meeting_point_history
	WHERE id = $1;
	`, id)
	e, err := scanSQLEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: %w", id, err)
	}
	return e, nil
}

func (s *SQLHistoryRepository) Clear(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sql history repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM meeting_point_history;`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func scanSQLEntry(row rowScanner) (domain.HistoryEntry, error) {
	var (
		e    domain.HistoryEntry
		kind string
	)
	if err := row.Scan(&e.ID, &e.Lat, &e.Lng, &kind, &e.Name, &e.CreatedAt); err != nil {
		return domain.HistoryEntry{}, err
	}
	e.Kind = domain.Kind(kind)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, nil
}
