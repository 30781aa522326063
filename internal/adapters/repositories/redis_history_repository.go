package repositories

import (
	"context"
	"errors"
	"fmt"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultHistoryKey is the Redis list holding msgpack-encoded entries.
const DefaultHistoryKey = "meeting-points:history"

// RedisHistoryRepository stores history as a capped Redis list, newest at
// the head.
type RedisHistoryRepository struct {
	Client *redis.Client
	Key    string
}

func NewRedisHistoryRepository(client *redis.Client) *RedisHistoryRepository {
	return &RedisHistoryRepository{Client: client, Key: DefaultHistoryKey}
}

type redisEntry struct {
	ID        string  `msgpack:"id"`
	Lat       float64 `msgpack:"lat"`
	Lng       float64 `msgpack:"lng"`
	Kind      string  `msgpack:"kind"`
	Name      string  `msgpack:"name"`
	CreatedAt int64   `msgpack:"created_at"`
}

func (r *RedisHistoryRepository) Save(ctx context.Context, entry domain.HistoryEntry, limit int) (err error) {
	defer obs.Time(ctx, "history.redis.Save")(&err)

	if r.Client == nil {
		return errors.New("redis history repository: client is nil")
	}
	if limit < 1 {
		return fmt.Errorf("save history: limit must be positive, got %d: %w", limit, domain.ErrInvalidInput)
	}

	buf, err := msgpack.Marshal(&redisEntry{
		ID:        entry.ID,
		Lat:       entry.Lat,
		Lng:       entry.Lng,
		Kind:      string(entry.Kind),
		Name:      entry.Name,
		CreatedAt: entry.CreatedAt.UTC().UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("save history: marshal id=%s: %w", entry.ID, err)
	}

	_, err = r.Client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.Key, buf)
		pipe.LTrim(ctx, r.Key, 0, int64(limit-1))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save history: push id=%s: %w", entry.ID, err)
	}
	return nil
}

func (r *RedisHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if r.Client == nil {
		return nil, errors.New("redis history repository: client is nil")
	}
	if limit < 1 {
		return []domain.HistoryEntry{}, nil
	}

	raw, err := r.Client.LRange(ctx, r.Key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list history: lrange %s: %w", r.Key, err)
	}

	entries := make([]domain.HistoryEntry, 0, len(raw))
	for i, s := range raw {
		e, err := decodeRedisEntry(s)
		if err != nil {
			return nil, fmt.Errorf("list history: decode item #%d: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Get scans the list; it never holds more than the configured limit.
func (r *RedisHistoryRepository) Get(ctx context.Context, id string) (domain.HistoryEntry, error) {
	if r.Client == nil {
		return domain.HistoryEntry{}, errors.New("redis history repository: client is nil")
	}

	raw, err := r.Client.LRange(ctx, r.Key, 0, -1).Result()
	if err != nil {
		return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: lrange %s: %w", id, r.Key, err)
	}

	for i, s := range raw {
		e, err := decodeRedisEntry(s)
		if err != nil {
			return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: decode item #%d: %w", id, i, err)
		}
		if e.ID == id {
			return e, nil
		}
	}
	return domain.HistoryEntry{}, fmt.Errorf("get history id=%s: %w", id, domain.ErrNotFound)
}

func (r *RedisHistoryRepository) Clear(ctx context.Context) error {
	if r.Client == nil {
		return errors.New("redis history repository: client is nil")
	}

	if err := r.Client.Del(ctx, r.Key).Err(); err != nil {
		return fmt.Errorf("clear history: del %s: %w", r.Key, err)
	}
	return nil
}

func decodeRedisEntry(s string) (domain.HistoryEntry, error) {
	var re redisEntry
	if err := msgpack.Unmarshal([]byte(s), &re); err != nil {
		return domain.HistoryEntry{}, err
	}
	return domain.HistoryEntry{
		ID:        re.ID,
		Lat:       re.Lat,
		Lng:       re.Lng,
		Kind:      domain.Kind(re.Kind),
		Name:      re.Name,
		CreatedAt: time.Unix(0, re.CreatedAt).UTC(),
	}, nil
}
