package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type kv interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// StoredResponse is what a replayed request gets back.
type StoredResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type IdempotencyStore struct {
	rdb kv
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: TTLIdempotency}
}

// Get returns nil when nothing was stored under key.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*StoredResponse, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(KeyIdemOrderCreate, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var resp StoredResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode stored response: %w", err)
	}
	return &resp, nil
}

func (s *IdempotencyStore) Save(ctx context.Context, key string, resp StoredResponse) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf(KeyIdemOrderCreate, key), b, s.ttl).Err()
}
