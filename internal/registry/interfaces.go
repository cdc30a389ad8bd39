package registry

import (
	"context"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// LinkRegistry defines the interface for short link storage operations
type LinkRegistry interface {
	// Create stores a new link record. Returns domain.ErrCodeExists if
	// the short code is already taken.
	Create(ctx context.Context, record *domain.LinkRecord) error

	// FindByCode looks up a link record by its short code. Returns
	// domain.ErrLinkNotFound if no record exists.
	FindByCode(ctx context.Context, shortCode string) (*domain.LinkRecord, error)

	// IncrementClickCount atomically increments the click counter for a
	// short code. Concurrent increments for the same code must all be
	// observed.
	IncrementClickCount(ctx context.Context, shortCode string) error

	// Close releases registry resources
	Close() error
}
