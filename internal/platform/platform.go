// Package platform classifies a user-agent string into the platform
// categories used by the routing table.
package platform

import "strings"

// Platform is a device platform category
type Platform string

const (
	IOS     Platform = "ios"
	Android Platform = "android"
	Web     Platform = "web"
)

// RoutingKey returns the uppercase form used to index a routing table
func (p Platform) RoutingKey() string {
	return strings.ToUpper(string(p))
}

// Detect classifies a user-agent string. It is total: any input,
// including the empty string, yields a platform. The iOS check runs
// before the Android check; that precedence is part of the contract.
func Detect(userAgent string) Platform {
	ua := strings.ToLower(userAgent)

	if strings.Contains(ua, "iphone") ||
		strings.Contains(ua, "ipad") ||
		strings.Contains(ua, "ipod") ||
		(strings.Contains(ua, "macintosh") && strings.Contains(ua, "mobile")) {
		return IOS
	}

	if strings.Contains(ua, "android") {
		return Android
	}

	return Web
}
