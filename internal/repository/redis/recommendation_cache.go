package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mySmartShop/domain"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache caches served recommendation results per customer.
// Each (customer, n, variant) combination gets its own key; a per-customer
// set tracks the live keys so invalidation can drop all of them at once.
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{
		client: client,
		ttl:    ttl,
	}
}

// key format: "reco:{customer_id}:{n}:{variant}"
func resultKey(customerID string, n int, variant string) string {
	return fmt.Sprintf("reco:%s:%d:%s", customerID, n, variant)
}

func keysetKey(customerID string) string {
	return fmt.Sprintf("reco:keys:%s", customerID)
}

func (c *RecommendationCache) Get(ctx context.Context, customerID string, n int, variant string) (*domain.RecommendationResult, error) {
	val, err := c.client.Get(ctx, resultKey(customerID, n, variant)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var result domain.RecommendationResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
	}

	return &result, nil
}

func (c *RecommendationCache) Set(ctx context.Context, result *domain.RecommendationResult, n int, variant string) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	key := resultKey(result.CustomerID, n, variant)

	if err := c.client.Set(ctx, key, jsonData, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store result in Redis: %w", err)
	}

	keyset := keysetKey(result.CustomerID)
	if err := c.client.SAdd(ctx, keyset, key).Err(); err != nil {
		return fmt.Errorf("failed to track cache key: %w", err)
	}
	// keyset outlives the entries slightly so invalidation still sees them
	if err := c.client.Expire(ctx, keyset, c.ttl+time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set keyset TTL: %w", err)
	}

	return nil
}

// Invalidate drops every cached result for the customer.
func (c *RecommendationCache) Invalidate(ctx context.Context, customerID string) error {
	keyset := keysetKey(customerID)

	keys, err := c.client.SMembers(ctx, keyset).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to list cache keys: %w", err)
	}

	keys = append(keys, keyset)

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cached results: %w", err)
	}

	return nil
}
