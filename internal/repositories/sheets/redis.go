package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sheeterr "github.com/lozrp/sheetd/internal/errors"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed sheet repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	return &redisRepo{
		client: cfg.Client,
	}
}

// key generates the Redis key for a sheet's primary record
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("sheet:%s", id)
}

// portraitKey generates the Redis key for a sheet's portrait asset
func (r *redisRepo) portraitKey(id string) string {
	return fmt.Sprintf("sheet:%s:portrait", id)
}

// indexKey is the set of all saved sheet IDs
func (r *redisRepo) indexKey() string {
	return "sheets:index"
}

// Save upserts the primary record for a sheet
func (r *redisRepo) Save(ctx context.Context, id string, data map[string]string) error {
	if id == "" {
		return sheeterr.InvalidArgument("sheet ID is required")
	}
	if data == nil {
		return sheeterr.InvalidArgument("sheet data cannot be nil")
	}

	record := Record{
		SavedAt: time.Now().UTC(),
		Data:    data,
	}
	jsonData, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	// Store record and index entry atomically
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(id), jsonData, 0)
	pipe.SAdd(ctx, r.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		// Write failures are quota-class: the caller keeps its in-memory
		// state and surfaces a rate-limited notice.
		return sheeterr.WrapWithCode(err, sheeterr.CodeQuotaExceeded, "failed to save sheet").
			WithMeta("sheet_id", id)
	}

	return nil
}

// Load retrieves the primary record for a sheet
func (r *redisRepo) Load(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, sheeterr.InvalidArgument("sheet ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, sheeterr.NotFoundf("sheet with ID '%s' not found", id).
			WithMeta("sheet_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	var record Record
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &record); unmarshalErr != nil {
		return nil, sheeterr.WrapWithCode(unmarshalErr, sheeterr.CodeCorruptedSave, "sheet record is corrupted").
			WithMeta("sheet_id", id)
	}
	if record.Data == nil {
		record.Data = make(map[string]string)
	}

	return &record, nil
}

// SavePortrait stores the portrait asset under its own key
func (r *redisRepo) SavePortrait(ctx context.Context, id, portrait string) error {
	if id == "" {
		return sheeterr.InvalidArgument("sheet ID is required")
	}

	if portrait == "" {
		if err := r.client.Del(ctx, r.portraitKey(id)).Err(); err != nil {
			return sheeterr.WrapWithCode(err, sheeterr.CodeQuotaExceeded, "failed to clear portrait").
				WithMeta("sheet_id", id)
		}
		return nil
	}

	if err := r.client.Set(ctx, r.portraitKey(id), portrait, 0).Err(); err != nil {
		return sheeterr.WrapWithCode(err, sheeterr.CodeQuotaExceeded, "failed to save portrait").
			WithMeta("sheet_id", id)
	}
	return nil
}

// LoadPortrait retrieves the portrait asset; an absent key means no portrait
func (r *redisRepo) LoadPortrait(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", sheeterr.InvalidArgument("sheet ID is required")
	}

	portrait, err := r.client.Get(ctx, r.portraitKey(id)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get portrait: %w", err)
	}
	return portrait, nil
}

// List returns the IDs of every saved sheet
func (r *redisRepo) List(ctx context.Context) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}
	return ids, nil
}

// Delete removes a sheet's primary record, portrait and index entry
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return sheeterr.InvalidArgument("sheet ID is required")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.Del(ctx, r.portraitKey(id))
	pipe.SRem(ctx, r.indexKey(), id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}
