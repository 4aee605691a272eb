// internal/domain/order/session_store.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lastOrderKeyPrefix = "order:session:"
	lastOrderTTL       = 24 * time.Hour
)

// LastOrderStore remembers the most recent order of a browser session
// so guests can reach their confirmation page
type LastOrderStore interface {
	Get(ctx context.Context, sessionID string) (uint, error)
	Set(ctx context.Context, sessionID string, orderID uint) error
}

// RedisLastOrderStore stores last order IDs in Redis
type RedisLastOrderStore struct {
	client *redis.Client
}

// NewRedisLastOrderStore creates a Redis-backed last order store
func NewRedisLastOrderStore(client *redis.Client) *RedisLastOrderStore {
	return &RedisLastOrderStore{client: client}
}

// Get returns the last order ID for the session, zero when none
func (s *RedisLastOrderStore) Get(ctx context.Context, sessionID string) (uint, error) {
	value, err := s.client.Get(ctx, lastOrderKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get last order: %w", err)
	}

	orderID, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse last order id: %w", err)
	}
	return uint(orderID), nil
}

// Set remembers the last order ID for the session
func (s *RedisLastOrderStore) Set(ctx context.Context, sessionID string, orderID uint) error {
	key := lastOrderKeyPrefix + sessionID
	if err := s.client.Set(ctx, key, strconv.FormatUint(uint64(orderID), 10), lastOrderTTL).Err(); err != nil {
		return fmt.Errorf("failed to save last order: %w", err)
	}
	return nil
}

// MemoryLastOrderStore keeps last order IDs in process memory. It
// backs tests and single-node setups without Redis.
type MemoryLastOrderStore struct {
	mu     sync.RWMutex
	orders map[string]uint
}

// NewMemoryLastOrderStore creates an in-memory last order store
func NewMemoryLastOrderStore() *MemoryLastOrderStore {
	return &MemoryLastOrderStore{orders: make(map[string]uint)}
}

// Get returns the last order ID for the session, zero when none
func (s *MemoryLastOrderStore) Get(_ context.Context, sessionID string) (uint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[sessionID], nil
}

// Set remembers the last order ID for the session
func (s *MemoryLastOrderStore) Set(_ context.Context, sessionID string, orderID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[sessionID] = orderID
	return nil
}
