package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"time"
)

// SQLite-backed implementation of the HistoryRepository port.
// Entries are ordered by insertion sequence, newest first.
type SqliteHistoryRepository struct{ DB *sql.DB }

func NewSqliteHistoryRepository(db *sql.DB) *SqliteHistoryRepository {
	return &SqliteHistoryRepository{DB: db}
}

// Save inserts the entry and trims the table to the newest limit rows.
func (s *SqliteHistoryRepository) Save(ctx context.Context, entry domain.HistoryEntry, limit int) (err error) {
	defer obs.Time(ctx, "history.sqlite.Save")(&err)

	if s.DB == nil {
		return errors.New("sqlite history repository: DB is nil")
	}
	if limit < 1 {
		return fmt.Errorf("save history: limit must be positive, got %d: %w", limit, domain.ErrInvalidInput)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save history: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insert := `
	INSERT INTO meeting_point_history (
		id,
		lat,
		lng,
		kind,
		name,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	if _, err := tx.ExecContext(ctx, insert,
		entry.ID, entry.Lat, entry.Lng, string(entry.Kind), entry.Name, entry.CreatedAt.UTC().UnixNano(),
	); err != nil {
		return fmt.Errorf("save history: insert id=%s: %w", entry.ID, err)
	}

	trim := `
	DELETE FROM meeting_point_history
	WHERE seq NOT IN (
		SELECT seq FROM meeting_point_history
		ORDER BY seq DESC
		LIMIT ?
	);
	`
	if _, err := tx.ExecContext(ctx, trim, limit); err != nil {
		return fmt.Errorf("save history: trim to %d: %w", limit, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save history: commit tx: %w", err)
	}

	return nil
}

// Return up to limit entries, newest first.
func (s *SqliteHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite history repository: DB is nil")
	}
	if limit < 1 {
		return []domain.HistoryEntry{}, nil
	}

	query := `
	SELECT
		id,
		lat,
		lng,
		kind,
		name,
		created_at
	FROM meeting_point_history
	ORDER BY seq DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: query meeting_point_history table: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0, limit)
	for rows.Next() {
		e, err := scanSqliteEntry(rows)
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

// Return the entry with the given id.
func (s *SqliteHistoryRepository) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	if s.DB == nil {
		return domain.HistoryEntry{}, errors.New("sqlite history repository: DB is nil")
	}

	query := `
	SELECT
		id,
		lat,
		lng,
		kind,
		name,
		created_at
	FROM meeting_point_history
	WHERE id = ?;
	`
	e, err := scanSqliteEntry(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: %w", id, err)
	}

	return e, nil
}

// Remove every entry.
func (s *SqliteHistoryRepository) Clear(ctx context.Context) error {
	if s.DB == nil {
		return errors.New("sqlite history repository: DB is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM meeting_point_history;`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSqliteEntry(row rowScanner) (domain.HistoryEntry, error) {
	var (
		e         domain.HistoryEntry
		kind      string
		createdAt int64
	)
	if err := row.Scan(&e.ID, &e.Lat, &e.Lng, &kind, &e.Name, &createdAt); err != nil {
		return domain.HistoryEntry{}, err
	}
	e.Kind = domain.Kind(kind)
	e.CreatedAt = time.Unix(0, createdAt).UTC()
	return e, nil
}
