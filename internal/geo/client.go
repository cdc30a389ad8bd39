// Package geo resolves a client IP to a location via the ipapi.co
// lookup service. Its output is advisory: any failure degrades to
// placeholder fields and never blocks a redirect.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Charles-Okoeguale/smart-link/internal/config"
	"github.com/Charles-Okoeguale/smart-link/internal/domain"
)

// Locator resolves an IP address to a user location
type Locator interface {
	Lookup(ctx context.Context, ip string) domain.UserLocation
}

// Client is an ipapi.co-backed Locator
type Client struct {
	httpClient *http.Client
	endpoint   string
	log        *zap.Logger
}

// NewClient creates a geolocation client
func NewClient(cfg config.Geo, log *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSec) * time.Second,
		},
		endpoint: cfg.Endpoint,
		log:      log,
	}
}

type lookupResponse struct {
	IP          string `json:"ip"`
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	City        string `json:"city"`
	Region      string `json:"region"`
}

// Lookup resolves an IP to a location. It is total: lookup failures and
// partial responses return a location with placeholder fields.
func (c *Client) Lookup(ctx context.Context, ip string) domain.UserLocation {
	fallback := domain.UserLocation{IP: ip}.Normalize()

	url := fmt.Sprintf("%s/%s/json/", c.endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.log.Warn("Failed to build geolocation request", zap.String("ip", ip), zap.Error(err))
		return fallback
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("Geolocation lookup failed", zap.String("ip", ip), zap.Error(err))
		return fallback
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Warn("Failed to close geolocation response body", zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Geolocation lookup returned non-OK status",
			zap.String("ip", ip),
			zap.Int("status", resp.StatusCode))
		return fallback
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Warn("Failed to decode geolocation response", zap.String("ip", ip), zap.Error(err))
		return fallback
	}

	location := domain.UserLocation{
		IP:          body.IP,
		Country:     body.CountryCode,
		CountryName: body.CountryName,
		City:        body.City,
		Region:      body.Region,
	}
	if location.IP == "" {
		location.IP = ip
	}

	return location.Normalize()
}
