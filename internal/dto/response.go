package dto

import (
	"github.com/Charles-Okoeguale/smart-link/internal/analytics"
	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ShortenResponse represents a successful link creation response
type ShortenResponse struct {
	Success   bool               `json:"success"`
	ShortURL  string             `json:"shortUrl"`
	ShortCode string             `json:"shortCode"`
	Data      *domain.LinkRecord `json:"data"`
}

// RoutingInfo describes how a redirect target was chosen
type RoutingInfo struct {
	Original    string `json:"original"`
	Final       string `json:"final"`
	AppliedRule string `json:"appliedRule"`
	UserCountry string `json:"userCountry"`
	Platform    string `json:"platform"`
	RoutingKey  string `json:"routingKey"`
}

// RedirectResponse represents a successful redirect resolution.
// AnalyticsError is set when the click could not be recorded; the
// redirect itself still succeeded.
type RedirectResponse struct {
	Success        bool        `json:"success"`
	TargetURL      string      `json:"targetUrl"`
	Routing        RoutingInfo `json:"routing"`
	AnalyticsError string      `json:"analyticsError,omitempty"`
}

// AnalyticsResponse represents an analytics query response. On a
// storage read failure Success is false, Error is set, and the event
// list and summary are empty rather than the request failing outright.
type AnalyticsResponse struct {
	Success   bool                 `json:"success"`
	Analytics []*domain.ClickEvent `json:"analytics"`
	Summary   *analytics.Summary   `json:"summary"`
	Error     string               `json:"error,omitempty"`
}
