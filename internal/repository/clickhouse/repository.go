package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/repository"
)

// defaultQueryLimit bounds unfiltered analytics reads
const defaultQueryLimit = 10000

// Repository implements ClickRepository for ClickHouse
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema initializes the ClickHouse schema. The click log is a plain
// MergeTree: events are append-only and consumed at-least-once, so a
// redelivered message can produce a duplicate row. That is a known
// weakness of the ingest path, not something the schema papers over.
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS clicks (
		short_code String,
		campaign_id String,
		creator_id String,
		original_url String,
		target_url String,
		timestamp DateTime64(3),
		user_agent String,
		ip String,
		country LowCardinality(String),
		country_name LowCardinality(String),
		city String,
		region String,
		routing_rule LowCardinality(String),
		platform LowCardinality(String),
		processed_at DateTime64(3) DEFAULT now64(3),
		version UInt64
	) ENGINE = MergeTree()
	ORDER BY (campaign_id, short_code, timestamp)
	PARTITION BY toYYYYMM(timestamp)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create clicks table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// InsertBatch inserts a batch of click events into ClickHouse
func (r *Repository) InsertBatch(ctx context.Context, events []*domain.ClickEvent) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}

	batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO clicks")
	if err != nil {
		return 0, fmt.Errorf("failed to prepare batch: %w", err)
	}

	insertedCount := 0
	for _, event := range events {
		if event.Version == 0 {
			event.Version = uint64(time.Now().UnixNano())
		}
		if event.ProcessedAt.IsZero() {
			event.ProcessedAt = time.Now()
		}

		err := batch.Append(
			event.ShortCode,
			event.CampaignID,
			event.CreatorID,
			event.OriginalURL,
			event.TargetURL,
			event.Timestamp,
			event.UserAgent,
			event.IP,
			event.Country,
			event.CountryName,
			event.City,
			event.Region,
			event.RoutingRule,
			event.Platform,
			event.ProcessedAt,
			event.Version,
		)

		if err != nil {
			return 0, fmt.Errorf("failed to append click event to batch: %w", err)
		}
		insertedCount++
	}

	if err := batch.Send(); err != nil {
		return 0, fmt.Errorf("failed to send batch: %w", err)
	}

	return insertedCount, nil
}

// QueryEvents retrieves click events matching the filter, most recent first
func (r *Repository) QueryEvents(ctx context.Context, filter repository.EventFilter) ([]*domain.ClickEvent, error) {
	whereClause := ""
	var args []interface{}

	switch {
	case filter.CampaignID != "":
		whereClause = "WHERE campaign_id = ?"
		args = append(args, filter.CampaignID)
	case filter.ShortCode != "":
		whereClause = "WHERE short_code = ?"
		args = append(args, filter.ShortCode)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultQueryLimit
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT
			short_code, campaign_id, creator_id, original_url, target_url,
			timestamp, user_agent, ip, country, country_name, city, region,
			routing_rule, platform, processed_at, version
		FROM clicks
		%s
		ORDER BY timestamp DESC
		LIMIT ?
	`, whereClause)

	rows, err := r.client.Conn().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query click events: %w", err)
	}
	defer func(rows driver.Rows) {
		if err := rows.Close(); err != nil {
			r.log.Error("Failed to close click event rows", zap.Error(err))
		}
	}(rows)

	var events []*domain.ClickEvent
	for rows.Next() {
		var event domain.ClickEvent
		if err := rows.Scan(
			&event.ShortCode,
			&event.CampaignID,
			&event.CreatorID,
			&event.OriginalURL,
			&event.TargetURL,
			&event.Timestamp,
			&event.UserAgent,
			&event.IP,
			&event.Country,
			&event.CountryName,
			&event.City,
			&event.Region,
			&event.RoutingRule,
			&event.Platform,
			&event.ProcessedAt,
			&event.Version,
		); err != nil {
			return nil, fmt.Errorf("failed to scan click event row: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating click event rows: %w", err)
	}

	return events, nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}
