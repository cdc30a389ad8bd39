// Package redis provides a Redis-backed link registry. Records are
// stored as JSON under link:<code>; click counts live in a separate
// counter key so increments are a single INCR.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

const (
	recordKeyPrefix  = "link:"
	counterKeySuffix = ":clicks"
)

// Registry implements registry.LinkRegistry on Redis
type Registry struct {
	client *redis.Client
	log    *zap.Logger
}

// NewRegistry creates a Redis-backed registry and verifies the connection
func NewRegistry(ctx context.Context, client *redis.Client, log *zap.Logger) (*Registry, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Redis registry connection established")

	return &Registry{client: client, log: log}, nil
}

func recordKey(shortCode string) string {
	return recordKeyPrefix + shortCode
}

func counterKey(shortCode string) string {
	return recordKeyPrefix + shortCode + counterKeySuffix
}

// Create stores a new link record. SETNX guarantees a short code is
// never reassigned once issued.
func (r *Registry) Create(ctx context.Context, record *domain.LinkRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal link record: %w", err)
	}

	ok, err := r.client.SetNX(ctx, recordKey(record.ShortCode), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store link record: %w", err)
	}
	if !ok {
		return domain.ErrCodeExists
	}

	r.log.Debug("Link stored",
		zap.String("short_code", record.ShortCode),
		zap.String("campaign_id", record.CampaignID))

	return nil
}

// FindByCode looks up a link record by short code
func (r *Registry) FindByCode(ctx context.Context, shortCode string) (*domain.LinkRecord, error) {
	data, err := r.client.Get(ctx, recordKey(shortCode)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to read link record: %w", err)
	}

	var record domain.LinkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link record: %w", err)
	}

	count, err := r.client.Get(ctx, counterKey(shortCode)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read click count: %w", err)
	}
	record.ClickCount = count

	return &record, nil
}

// IncrementClickCount increments the click counter with a single INCR,
// which is linearizable per key on Redis
func (r *Registry) IncrementClickCount(ctx context.Context, shortCode string) error {
	exists, err := r.client.Exists(ctx, recordKey(shortCode)).Result()
	if err != nil {
		return fmt.Errorf("failed to check link record: %w", err)
	}
	if exists == 0 {
		return domain.ErrLinkNotFound
	}

	if err := r.client.Incr(ctx, counterKey(shortCode)).Err(); err != nil {
		return fmt.Errorf("failed to increment click count: %w", err)
	}

	return nil
}

// Close closes the underlying Redis client
func (r *Registry) Close() error {
	return r.client.Close()
}
