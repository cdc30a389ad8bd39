package consumer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// JSONClickParser implements MessageParser for JSON-formatted click messages
type JSONClickParser struct{}

// NewJSONClickParser creates a new JSON click parser
func NewJSONClickParser() *JSONClickParser {
	return &JSONClickParser{}
}

// Parse parses a JSON message body into a ClickEvent. A message without
// a short code or a parseable timestamp is malformed; redelivering it
// would never succeed, so the caller drops it.
func (p *JSONClickParser) Parse(body []byte) (*domain.ClickEvent, error) {
	var event domain.ClickEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal click event: %w", err)
	}

	if event.ShortCode == "" {
		return nil, fmt.Errorf("click event has no short code")
	}
	if event.Timestamp.IsZero() {
		return nil, fmt.Errorf("click event has no timestamp")
	}

	event.ProcessedAt = time.Now()
	event.Version = uint64(time.Now().UnixNano())

	return &event, nil
}
