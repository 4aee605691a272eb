// internal/domain/cart/session_store.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionCartKeyPrefix = "cart:session:"
	sessionCartTTL       = 24 * time.Hour
)

// SessionStore persists guest carts keyed by session ID
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (SessionCart, error)
	Save(ctx context.Context, sessionID string, cart SessionCart) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessionStore stores guest carts as JSON blobs in Redis
type RedisSessionStore struct {
	client *redis.Client
}

// NewRedisSessionStore creates a Redis-backed session store
func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Get returns the guest cart for the session, or an empty cart
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (SessionCart, error) {
	data, err := s.client.Get(ctx, sessionCartKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return SessionCart{}, nil
		}
		return nil, fmt.Errorf("failed to get session cart: %w", err)
	}

	var cart SessionCart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}
	return cart, nil
}

// Save writes the guest cart with a sliding expiry
func (s *RedisSessionStore) Save(ctx context.Context, sessionID string, cart SessionCart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}

	if err := s.client.Set(ctx, sessionCartKeyPrefix+sessionID, data, sessionCartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save session cart: %w", err)
	}
	return nil
}

// Delete removes the guest cart
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionCartKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete session cart: %w", err)
	}
	return nil
}
