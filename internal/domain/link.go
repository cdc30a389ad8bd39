package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrLinkNotFound is returned when no link exists for a short code
	ErrLinkNotFound = errors.New("short URL not found")

	// ErrCodeExists is returned when a short code is already taken
	ErrCodeExists = errors.New("short code already exists")

	// ErrInvalidTargetURL is returned when a stored target URL cannot be parsed
	ErrInvalidTargetURL = errors.New("target URL is not a valid absolute URL")

	// ErrUnknownRoutingKey is returned when a routing rule uses a key
	// outside the recognized set
	ErrUnknownRoutingKey = errors.New("unknown routing rule key")
)

// Routing keys recognized in a link's routing table
const (
	RoutingKeyIOS     = "IOS"
	RoutingKeyAndroid = "ANDROID"
	RoutingKeyWeb     = "WEB"
	RoutingKeyDefault = "DEFAULT"
)

// LinkRecord represents a smart link stored in the registry
type LinkRecord struct {
	ShortCode       string            `json:"shortCode"`
	OriginalURL     string            `json:"originalUrl"`
	CampaignID      string            `json:"campaignId"`
	CreatorID       string            `json:"creatorId"`
	RoutingRules    map[string]string `json:"routingRules"`
	PlatformRouting bool              `json:"platformRouting"`
	CreatedAt       time.Time         `json:"createdAt"`
	ClickCount      int64             `json:"clickCount"`
}

// NormalizeRoutingRules uppercases routing-table keys and validates them
// against the recognized set. Keys are normalized once here so the
// resolver never has to case-fold at lookup time.
func NormalizeRoutingRules(rules map[string]string) (map[string]string, error) {
	if len(rules) == 0 {
		return map[string]string{}, nil
	}

	valid := map[string]bool{
		RoutingKeyIOS:     true,
		RoutingKeyAndroid: true,
		RoutingKeyWeb:     true,
		RoutingKeyDefault: true,
	}

	normalized := make(map[string]string, len(rules))
	for key, target := range rules {
		upper := strings.ToUpper(strings.TrimSpace(key))
		if !valid[upper] {
			return nil, fmt.Errorf("%w: %q (supported: IOS, ANDROID, WEB, DEFAULT)", ErrUnknownRoutingKey, key)
		}
		normalized[upper] = target
	}

	return normalized, nil
}
