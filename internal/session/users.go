package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"

	"timesheet-web/internal/auth"
)

// UserCache keeps the user returned by login/register for the lifetime of
// its token. Only login and register write to it.
type UserCache interface {
	// Get returns nil when nothing is cached for token.
	Get(ctx context.Context, token string) (*auth.User, error)
	Set(ctx context.Context, token string, u auth.User) error
	Delete(ctx context.Context, token string) error
}

// tokenKey avoids using the raw bearer token as a storage key.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RedisUserCache implements UserCache on Redis.
type RedisUserCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisUserCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisUserCache {
	if prefix == "" {
		prefix = "timesheet:auth_user:"
	}
	return &RedisUserCache{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisUserCache) key(token string) string { return r.prefix + tokenKey(token) }

func (r *RedisUserCache) Get(ctx context.Context, token string) (*auth.User, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var u auth.User
	if err := json.Unmarshal([]byte(val), &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &u, nil
}

func (r *RedisUserCache) Set(ctx context.Context, token string, u auth.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := r.client.Set(ctx, r.key(token), b, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

func (r *RedisUserCache) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// DefaultMemoryCacheSize is used when NewMemoryUserCache gets no size.
const DefaultMemoryCacheSize = 10000

// MemoryUserCache is a process-local UserCache holding at most size users.
// The least recently used entry is evicted first and every entry expires
// after ttl.
type MemoryUserCache struct {
	users *expirable.LRU[string, auth.User]
}

// NewMemoryUserCache creates a bounded cache. A ttl of zero disables expiry.
func NewMemoryUserCache(size int, ttl time.Duration) *MemoryUserCache {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	return &MemoryUserCache{users: expirable.NewLRU[string, auth.User](size, nil, ttl)}
}

func (m *MemoryUserCache) Get(_ context.Context, token string) (*auth.User, error) {
	u, ok := m.users.Get(tokenKey(token))
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryUserCache) Set(_ context.Context, token string, u auth.User) error {
	m.users.Add(tokenKey(token), u)
	return nil
}

func (m *MemoryUserCache) Delete(_ context.Context, token string) error {
	m.users.Remove(tokenKey(token))
	return nil
}

// Len reports the number of cached entries.
func (m *MemoryUserCache) Len() int { return m.users.Len() }
