package dto

import "github.com/Charles-Okoeguale/smart-link/internal/domain"

// ShortenRequest represents a link creation request
type ShortenRequest struct {
	OriginalURL     string            `json:"originalUrl" binding:"required"`
	CampaignID      string            `json:"campaignId" binding:"required"`
	CreatorID       string            `json:"creatorId" binding:"required"`
	RoutingRules    map[string]string `json:"routingRules"`
	PlatformRouting bool              `json:"platformRouting"`
}

// RedirectRequest represents a redirect resolution request. The caller
// supplies geolocation attributes from its own lookup; absent fields
// are tolerated.
type RedirectRequest struct {
	ShortCode    string              `json:"shortCode" binding:"required"`
	UserLocation domain.UserLocation `json:"userLocation"`
	UserAgent    string              `json:"userAgent"`
	Timestamp    string              `json:"timestamp"`
}

// AnalyticsRequest represents an analytics query. Both filters empty
// means all events; campaignId wins when both are set.
type AnalyticsRequest struct {
	CampaignID string `form:"campaignId"`
	ShortCode  string `form:"shortCode"`
}
