package cache

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"sharayeh/internal/domain/entitlement"
	"sharayeh/internal/shared/logger"
)

// EntitlementCache holds recently resolved entitlement snapshots. The
// database stays authoritative; the cache only absorbs repeated reads.
type EntitlementCache interface {
	Get(ctx context.Context, userID string) (*entitlement.Snapshot, error)
	Set(ctx context.Context, snapshot *entitlement.Snapshot) error
	Invalidate(ctx context.Context, userID string) error
}

const (
	entitlementKeyPrefix = "entitlement:snapshot:"
	baseSnapshotTTL      = 5 * time.Minute
	snapshotTTLJitter    = 2 * time.Minute // TTL range: 5-7 min (anti-stampede)

	fieldCredits     = "credits"
	fieldUsedCredits = "used_credits"
	fieldPlanID      = "plan_id"
	fieldTier        = "tier"
)

// RedisEntitlementCache implements EntitlementCache using a Redis Hash per user
type RedisEntitlementCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisEntitlementCache creates a new Redis-based entitlement cache
func NewRedisEntitlementCache(client *redis.Client, logger logger.Interface) *RedisEntitlementCache {
	return &RedisEntitlementCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisEntitlementCache) key(userID string) string {
	return entitlementKeyPrefix + userID
}

// Get retrieves a cached snapshot, or nil on cache miss.
func (c *RedisEntitlementCache) Get(ctx context.Context, userID string) (*entitlement.Snapshot, error) {
	result, err := c.client.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get entitlement from cache: %w", err)
	}

	if len(result) == 0 {
		return nil, nil // Cache miss
	}

	snapshot := &entitlement.Snapshot{UserID: userID}

	if creditsStr, ok := result[fieldCredits]; ok {
		snapshot.Credits, _ = strconv.Atoi(creditsStr)
	}
	if usedStr, ok := result[fieldUsedCredits]; ok {
		snapshot.UsedCredits, _ = strconv.Atoi(usedStr)
	}
	if planID, ok := result[fieldPlanID]; ok {
		snapshot.PlanID = planID
	}
	if tier, ok := result[fieldTier]; ok {
		snapshot.Tier = tier
	}

	// A hash without a plan id is a torn write; treat it as a miss.
	if snapshot.PlanID == "" {
		return nil, nil
	}

	return snapshot, nil
}

// Set stores a snapshot with a jittered TTL.
func (c *RedisEntitlementCache) Set(ctx context.Context, snapshot *entitlement.Snapshot) error {
	key := c.key(snapshot.UserID)

	fields := map[string]interface{}{
		fieldCredits:     snapshot.Credits,
		fieldUsedCredits: snapshot.UsedCredits,
		fieldPlanID:      snapshot.PlanID,
		fieldTier:        snapshot.Tier,
	}

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, snapshotTTLWithJitter())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set entitlement in cache: %w", err)
	}

	c.logger.Debugw("entitlement snapshot cached",
		"user_id", snapshot.UserID,
		"plan_id", snapshot.PlanID,
	)

	return nil
}

// Invalidate removes the snapshot after any write that changes the balance.
func (c *RedisEntitlementCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate entitlement cache: %w", err)
	}

	c.logger.Debugw("entitlement cache invalidated", "user_id", userID)

	return nil
}

// snapshotTTLWithJitter returns a randomized TTL to prevent cache stampede.
func snapshotTTLWithJitter() time.Duration {
	jitter := time.Duration(rand.Int63n(int64(snapshotTTLJitter)))
	return baseSnapshotTTL + jitter
}
