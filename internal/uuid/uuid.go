// Package uuid issues the identifiers new sheets are created under. The
// Generator interface exists so handler tests can pin IDs instead of
// matching random ones.
package uuid

import (
	"github.com/google/uuid"
)

// Generator produces sheet identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator issues random version-4 UUIDs
type GoogleUUIDGenerator struct{}

// New returns a fresh sheet ID
func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

// NewGoogleUUIDGenerator creates the production ID generator
func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}
