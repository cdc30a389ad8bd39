package shortcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Generate(t *testing.T) {
	gen, err := NewGenerator()
	assert.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := gen.Generate()
		assert.Len(t, code, Length)
		assert.True(t, Valid(code), "generated code should validate: %q", code)
		seen[code] = true
	}

	// 100 random 8-char codes colliding would mean a broken generator
	assert.Len(t, seen, 100)
}

func TestValid(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		valid bool
	}{
		{name: "alphanumeric", code: "abc12345", valid: true},
		{name: "with underscore and dash", code: "a_b-c123", valid: true},
		{name: "empty", code: "", valid: false},
		{name: "too long", code: "aaaaaaaaaaaaaaaaaaaaa", valid: false},
		{name: "path traversal", code: "../../etc", valid: false},
		{name: "whitespace", code: "abc 123", valid: false},
		{name: "unicode", code: "abcé123", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, Valid(tt.code))
		})
	}
}
