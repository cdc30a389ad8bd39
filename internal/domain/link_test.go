package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRoutingRules(t *testing.T) {
	tests := []struct {
		name     string
		rules    map[string]string
		expected map[string]string
		wantErr  bool
	}{
		{
			name:     "nil rules",
			rules:    nil,
			expected: map[string]string{},
		},
		{
			name:     "lowercase keys uppercased",
			rules:    map[string]string{"ios": "https://apps.apple.com/x", "android": "https://play.google.com/x"},
			expected: map[string]string{"IOS": "https://apps.apple.com/x", "ANDROID": "https://play.google.com/x"},
		},
		{
			name:     "mixed case and whitespace",
			rules:    map[string]string{" Default ": "https://example.com"},
			expected: map[string]string{"DEFAULT": "https://example.com"},
		},
		{
			name:     "already normalized",
			rules:    map[string]string{"WEB": "https://example.com/web"},
			expected: map[string]string{"WEB": "https://example.com/web"},
		},
		{
			name:    "unknown key rejected",
			rules:   map[string]string{"windows": "https://example.com/win"},
			wantErr: true,
		},
		{
			name:    "one bad key fails the whole table",
			rules:   map[string]string{"ios": "https://apps.apple.com/x", "desktop": "https://example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, err := NormalizeRoutingRules(tt.rules)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownRoutingKey))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, normalized)
		})
	}
}

func TestUserLocation_Normalize(t *testing.T) {
	empty := UserLocation{}.Normalize()
	assert.Equal(t, "unknown", empty.IP)
	assert.Equal(t, "unknown", empty.Country)
	assert.Equal(t, "Unknown", empty.CountryName)
	assert.Equal(t, "unknown", empty.City)
	assert.Equal(t, "unknown", empty.Region)

	partial := UserLocation{IP: "203.0.113.7", Country: "US"}.Normalize()
	assert.Equal(t, "203.0.113.7", partial.IP)
	assert.Equal(t, "US", partial.Country)
	assert.Equal(t, "Unknown", partial.CountryName)

	full := UserLocation{
		IP:          "203.0.113.7",
		Country:     "US",
		CountryName: "United States",
		City:        "Seattle",
		Region:      "WA",
	}
	assert.Equal(t, full, full.Normalize())
}
