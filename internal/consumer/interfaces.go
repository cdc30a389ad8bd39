package consumer

import (
	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// MessageParser defines the interface for parsing raw message bytes into click events
type MessageParser interface {
	Parse(body []byte) (*domain.ClickEvent, error)
}
