package domain

import "time"

// ClickEvent represents one resolved redirect, stored in ClickHouse.
// Fields copied from the link record are denormalized so aggregation
// never needs a registry lookup. Events are append-only.
type ClickEvent struct {
	ShortCode   string    `json:"shortCode" ch:"short_code"`
	CampaignID  string    `json:"campaignId" ch:"campaign_id"`
	CreatorID   string    `json:"creatorId" ch:"creator_id"`
	OriginalURL string    `json:"originalUrl" ch:"original_url"`
	TargetURL   string    `json:"targetUrl" ch:"target_url"`
	Timestamp   time.Time `json:"timestamp" ch:"timestamp"`
	UserAgent   string    `json:"userAgent" ch:"user_agent"`
	IP          string    `json:"ip" ch:"ip"`
	Country     string    `json:"country" ch:"country"`
	CountryName string    `json:"countryName" ch:"country_name"`
	City        string    `json:"city" ch:"city"`
	Region      string    `json:"region" ch:"region"`
	RoutingRule string    `json:"routingRule" ch:"routing_rule"`
	Platform    string    `json:"platform" ch:"platform"`
	ProcessedAt time.Time `json:"-" ch:"processed_at"`
	Version     uint64    `json:"-" ch:"version"`
}

// UserLocation holds geolocation attributes supplied by the caller.
// The resolver treats these as untrusted input; absent fields are
// filled with placeholder values rather than rejected.
type UserLocation struct {
	IP          string `json:"ip"`
	Country     string `json:"country"`
	CountryName string `json:"countryName"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

// Normalize fills absent location fields with the same placeholders the
// geolocation collaborator uses, so downstream aggregation never sees
// empty buckets from a partial lookup.
func (l UserLocation) Normalize() UserLocation {
	if l.IP == "" {
		l.IP = "unknown"
	}
	if l.Country == "" {
		l.Country = "unknown"
	}
	if l.CountryName == "" {
		l.CountryName = "Unknown"
	}
	if l.City == "" {
		l.City = "unknown"
	}
	if l.Region == "" {
		l.Region = "unknown"
	}
	return l
}
