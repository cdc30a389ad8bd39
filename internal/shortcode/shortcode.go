// Package shortcode generates and validates short link codes.
package shortcode

import (
	"fmt"

	"github.com/jaevor/go-nanoid"
)

// Length is the number of characters in a generated short code
const Length = 8

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz-"

// Generator produces random short codes
type Generator struct {
	generate func() string
}

// NewGenerator creates a short code generator using the nanoid alphabet
func NewGenerator() (*Generator, error) {
	gen, err := nanoid.CustomASCII(alphabet, Length)
	if err != nil {
		return nil, fmt.Errorf("failed to create nanoid generator: %w", err)
	}
	return &Generator{generate: gen}, nil
}

// Generate returns a new random short code
func (g *Generator) Generate() string {
	return g.generate()
}

// Valid reports whether a code could have been produced by Generate.
// Used as a cheap guard on lookup paths before hitting the registry.
func Valid(code string) bool {
	if code == "" || len(code) > 20 {
		return false
	}
	for _, c := range code {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}
