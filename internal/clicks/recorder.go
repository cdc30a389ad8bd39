// Package clicks records resolved redirects: one counter increment in
// the link registry plus one event published to the click queue.
package clicks

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/queue"
	"github.com/Charles-Okoeguale/smart-link/internal/registry"
)

// Recorder persists the outcome of a resolution
type Recorder struct {
	registry  registry.LinkRegistry
	publisher queue.ClickPublisher
	log       *zap.Logger
}

// NewRecorder creates a new click recorder
func NewRecorder(reg registry.LinkRegistry, publisher queue.ClickPublisher, log *zap.Logger) *Recorder {
	return &Recorder{
		registry:  reg,
		publisher: publisher,
		log:       log,
	}
}

// Record increments the link's click counter and appends the event to
// the click log. The two writes are one logical outcome but are not
// atomic across a crash; the ingest path is at-least-once, so a retry
// after a partial failure can double-deliver the event. Both writes are
// attempted even when one fails.
func (r *Recorder) Record(ctx context.Context, event *domain.ClickEvent) error {
	var incrErr, publishErr error

	if incrErr = r.registry.IncrementClickCount(ctx, event.ShortCode); incrErr != nil {
		r.log.Error("Failed to increment click count",
			zap.String("short_code", event.ShortCode),
			zap.Error(incrErr))
		incrErr = fmt.Errorf("failed to increment click count: %w", incrErr)
	}

	if publishErr = r.publisher.PublishClick(ctx, event); publishErr != nil {
		r.log.Error("Failed to publish click event",
			zap.String("short_code", event.ShortCode),
			zap.String("campaign_id", event.CampaignID),
			zap.Error(publishErr))
		publishErr = fmt.Errorf("failed to publish click event: %w", publishErr)
	}

	return errors.Join(incrErr, publishErr)
}
