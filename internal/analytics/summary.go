// Package analytics aggregates click events into summary statistics.
package analytics

import "github.com/Charles-Okoeguale/smart-link/internal/domain"

// Summary holds aggregate statistics over a set of click events.
// It is derived on demand and never persisted.
type Summary struct {
	TotalClicks              int                       `json:"totalClicks"`
	UniqueCountries          int                       `json:"uniqueCountries"`
	ClicksByCountry          map[string]int            `json:"clicksByCountry"`
	ClicksByDate             map[string]int            `json:"clicksByDate"`
	ClicksByPlatform         map[string]int            `json:"clicksByPlatform"`
	PlatformCountryBreakdown map[string]map[string]int `json:"platformCountryBreakdown"`
}

// Summarize computes summary statistics in a single pass. Filtering by
// campaign or short code is the caller's job; the aggregation itself is
// filter-agnostic, order-independent, and additive across disjoint sets.
func Summarize(events []*domain.ClickEvent) *Summary {
	summary := &Summary{
		TotalClicks:              len(events),
		ClicksByCountry:          make(map[string]int),
		ClicksByDate:             make(map[string]int),
		ClicksByPlatform:         make(map[string]int),
		PlatformCountryBreakdown: make(map[string]map[string]int),
	}

	countries := make(map[string]struct{})

	for _, event := range events {
		countries[event.Country] = struct{}{}

		// Country buckets prefer the display name when the
		// geolocation lookup provided one.
		countryKey := event.CountryName
		if countryKey == "" {
			countryKey = event.Country
		}
		summary.ClicksByCountry[countryKey]++

		summary.ClicksByDate[event.Timestamp.Format("2006-01-02")]++

		platformKey := event.Platform
		if platformKey == "" {
			platformKey = "unknown"
		}
		summary.ClicksByPlatform[platformKey]++

		breakdownCountry := event.Country
		if breakdownCountry == "" {
			breakdownCountry = "unknown"
		}
		if summary.PlatformCountryBreakdown[platformKey] == nil {
			summary.PlatformCountryBreakdown[platformKey] = make(map[string]int)
		}
		summary.PlatformCountryBreakdown[platformKey][breakdownCountry]++
	}

	summary.UniqueCountries = len(countries)

	return summary
}
