// Package routing computes the final target URL for a resolved link.
package routing

import (
	"fmt"
	"net/url"

	"github.com/Charles-Okoeguale/smart-link/internal/domain"
	"github.com/Charles-Okoeguale/smart-link/internal/platform"
)

// Applied-rule labels recorded with every click event
const (
	RuleDefault        = "default"
	RulePlatformRouted = "platform_routed"
	RuleDefaultRouted  = "default_routed"
)

// Resolution describes how a target URL was chosen
type Resolution struct {
	TargetURL   string
	AppliedRule string
	RoutingKey  string
}

// Resolve picks the target URL for a link and platform. Precedence:
// exact platform key, then the DEFAULT wildcard, then the link's
// original URL. Links with platform routing disabled (or an empty
// routing table) always resolve to the original URL.
func Resolve(record *domain.LinkRecord, p platform.Platform) Resolution {
	if !record.PlatformRouting || len(record.RoutingRules) == 0 {
		return Resolution{
			TargetURL:   record.OriginalURL,
			AppliedRule: RuleDefault,
		}
	}

	key := p.RoutingKey()
	if target, ok := record.RoutingRules[key]; ok {
		return Resolution{
			TargetURL:   target,
			AppliedRule: RulePlatformRouted,
			RoutingKey:  key,
		}
	}

	if target, ok := record.RoutingRules[domain.RoutingKeyDefault]; ok {
		return Resolution{
			TargetURL:   target,
			AppliedRule: RuleDefaultRouted,
			RoutingKey:  domain.RoutingKeyDefault,
		}
	}

	return Resolution{
		TargetURL:   record.OriginalURL,
		AppliedRule: RuleDefault,
	}
}

// TrackingParams are the attribution parameters appended to every
// resolved target URL
type TrackingParams struct {
	CampaignID string
	CreatorID  string
	ClickID    string
	Platform   platform.Platform
	Country    string
}

// AppendTracking merges tracking parameters into the target's query
// string. Existing unrelated parameters are preserved; tracking keys
// overwrite any stale values of the same name. Returns
// domain.ErrInvalidTargetURL when the target is not an absolute URL.
func AppendTracking(target string, params TrackingParams) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidTargetURL, target)
	}

	query := parsed.Query()
	query.Set("utm_campaign", params.CampaignID)
	query.Set("utm_source", "shortlink")
	query.Set("utm_medium", "link")
	query.Set("creator_id", params.CreatorID)
	query.Set("click_id", params.ClickID)
	query.Set("platform", string(params.Platform))
	query.Set("country", params.Country)
	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}
