package repository

import (
	"context"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// EventFilter narrows a click event query. Zero value means all events.
// CampaignID takes precedence when both fields are set.
type EventFilter struct {
	CampaignID string
	ShortCode  string
	Limit      int
}

// ClickRepository defines the interface for click event storage operations
type ClickRepository interface {
	// InsertBatch appends a batch of click events to the log
	InsertBatch(ctx context.Context, events []*domain.ClickEvent) (int, error)

	// QueryEvents returns click events matching the filter, most recent first
	QueryEvents(ctx context.Context, filter EventFilter) ([]*domain.ClickEvent, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
