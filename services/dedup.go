// services/dedup.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DedupGuard claims a (customer, rule, date) key before an automatic send.
// Claim returns true exactly once per key; a second orchestrator run on the
// same day sees false and skips the customer. This is an opt-in hardening on
// top of the observed behavior, which has no dedup at all.
type DedupGuard interface {
	Claim(ctx context.Context, customerID uuid.UUID, rule RuleType, date string) bool
}

type RedisDedup struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDedup(client *redis.Client) *RedisDedup {
	return &RedisDedup{client: client, ttl: 48 * time.Hour}
}

func (d *RedisDedup) Claim(ctx context.Context, customerID uuid.UUID, rule RuleType, date string) bool {
	key := fmt.Sprintf("dedup:%s:%s:%s", rule, customerID, date)
	ok, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		// Redis unavailable: fall back to the observed no-dedup behavior
		// rather than blocking the run.
		return true
	}
	return ok
}
