package helpers

import (
	"testing"
	"time"

	"github.com/cmmcleod/coriolis-sub002/internal/adapters/reference"
	"github.com/cmmcleod/coriolis-sub002/internal/adapters/schema"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/catalog"
	"github.com/cmmcleod/coriolis-sub002/internal/domain/shared"
)

// FixedTime is the instant returned by NewFixedClock
var FixedTime = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// NewTestCatalog loads the embedded reference catalog
func NewTestCatalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := reference.Load()
	if err != nil {
		t.Fatalf("failed to load reference catalog: %v", err)
	}
	return cat
}

// NewTestValidator compiles the ship-loadout schema
func NewTestValidator(t testing.TB) *schema.Validator {
	t.Helper()
	v, err := schema.NewValidator()
	if err != nil {
		t.Fatalf("failed to compile schema: %v", err)
	}
	return v
}

// NewFixedClock returns a mock clock pinned to FixedTime
func NewFixedClock() *shared.MockClock {
	return shared.NewMockClock(FixedTime)
}
