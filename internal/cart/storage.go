package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Storage persists serialized carts under a key per browser profile.
type Storage interface {
	// Load reports ok=false when nothing was ever saved under key.
	Load(ctx context.Context, key string) (lines []Line, ok bool, err error)
	Save(ctx context.Context, key string, lines []Line) error
}

// Key is the storage key of the cart belonging to one browser.
func Key(browserID string) string {
	return "cart:" + browserID
}

// RedisStorage keeps each cart as a JSON string at {prefix}:{key}.
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStorage(client *redis.Client, prefix string, ttl time.Duration) *RedisStorage {
	if prefix == "" {
		prefix = "storefront"
	}
	return &RedisStorage{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStorage) redisKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisStorage) Load(ctx context.Context, key string) ([]Line, bool, error) {
	data, err := r.client.Get(ctx, r.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, false, fmt.Errorf("decode cart: %w", err)
	}
	return lines, true, nil
}

func (r *RedisStorage) Save(ctx context.Context, key string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.client.Set(ctx, r.redisKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// MemoryStorage keeps serialized carts in process. Used when no Redis is configured.
type MemoryStorage struct {
	mu    sync.Mutex
	carts map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(_ context.Context, key string) ([]Line, bool, error) {
	m.mu.Lock()
	data, ok := m.carts[key]
	m.mu.Unlock()
	if !ok {
		return nil, false, nil
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, false, fmt.Errorf("decode cart: %w", err)
	}
	return lines, true, nil
}

func (m *MemoryStorage) Save(_ context.Context, key string, lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	m.mu.Lock()
	m.carts[key] = data
	m.mu.Unlock()
	return nil
}
