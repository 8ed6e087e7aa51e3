package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/storefront/internal/models"
	"github.com/redis/go-redis/v9"
)

const guestCartKeyPrefix = "guest_cart:"

type redisGuestCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisGuestCartStore(client *redis.Client, ttl time.Duration) GuestCartStore {
	return &redisGuestCartStore{client: client, ttl: ttl}
}

func guestCartKey(guestID string) string {
	return guestCartKeyPrefix + guestID
}

// Get returns the guest's items. A missing key is not an error: a guest
// session that never stored anything simply has an empty cart.
func (s *redisGuestCartStore) Get(ctx context.Context, guestID string) ([]models.LineItem, error) {

	data, err := s.client.Get(ctx, guestCartKey(guestID)).Bytes()
	if err != nil {

		if err == redis.Nil {
			return []models.LineItem{}, nil
		}

		return nil, fmt.Errorf("failed to get guest cart %s from redis: %w", guestID, err)
	}

	var items []models.LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guest cart %s: %w", guestID, err)
	}

	return items, nil
}

func (s *redisGuestCartStore) Put(ctx context.Context, guestID string, items []models.LineItem) error {

	if items == nil {
		items = []models.LineItem{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal guest cart %s: %w", guestID, err)
	}

	if err := s.client.Set(ctx, guestCartKey(guestID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set guest cart %s in redis: %w", guestID, err)
	}

	return nil
}

func (s *redisGuestCartStore) Delete(ctx context.Context, guestID string) error {

	if err := s.client.Del(ctx, guestCartKey(guestID)).Err(); err != nil {
		return fmt.Errorf("failed to delete guest cart %s from redis: %w", guestID, err)
	}

	return nil
}
