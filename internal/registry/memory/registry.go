// Package memory provides an in-process link registry guarded by
// per-record atomic counters.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// entry wraps a stored record with its own click counter so increments
// for one code never contend with increments for another
type entry struct {
	record     domain.LinkRecord
	clickCount atomic.Int64
}

// Registry implements registry.LinkRegistry with an in-process map.
// The map lock is held only for lookups and inserts; click counting is
// an atomic add on the entry.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*entry
	log     *zap.Logger
}

// NewRegistry creates an empty in-memory registry
func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		log:     log,
	}
}

// Create stores a new link record
func (r *Registry) Create(_ context.Context, record *domain.LinkRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[record.ShortCode]; exists {
		return domain.ErrCodeExists
	}

	e := &entry{record: *record}
	e.clickCount.Store(record.ClickCount)
	r.entries[record.ShortCode] = e

	r.log.Debug("Link stored",
		zap.String("short_code", record.ShortCode),
		zap.String("campaign_id", record.CampaignID))

	return nil
}

// FindByCode looks up a link record by short code
func (r *Registry) FindByCode(_ context.Context, shortCode string) (*domain.LinkRecord, error) {
	r.mu.RLock()
	e, ok := r.entries[shortCode]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrLinkNotFound
	}

	record := e.record
	record.ClickCount = e.clickCount.Load()
	return &record, nil
}

// IncrementClickCount atomically increments the click counter
func (r *Registry) IncrementClickCount(_ context.Context, shortCode string) error {
	r.mu.RLock()
	e, ok := r.entries[shortCode]
	r.mu.RUnlock()

	if !ok {
		return domain.ErrLinkNotFound
	}

	e.clickCount.Add(1)
	return nil
}

// Close is a no-op for the in-memory registry
func (r *Registry) Close() error {
	return nil
}
