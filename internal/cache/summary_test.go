package cache

import (
	"context"
	"testing"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

func TestBuildSummaryKey(t *testing.T) {
	empty := domain.NewFilterState()
	if got := buildSummaryKey(empty); got != summaryKeyPrefix+":default" {
		t.Errorf("key for empty state = %q, want default", got)
	}

	a := domain.NewFilterState()
	a.Warehouse = "LProduct"
	b := domain.NewFilterState()
	b.Warehouse = "LProduct"
	if buildSummaryKey(a) != buildSummaryKey(b) {
		t.Error("equal states should hash to the same key")
	}

	b.Taste = "카카오"
	if buildSummaryKey(a) == buildSummaryKey(b) {
		t.Error("different states should hash to different keys")
	}

	// Search terms participate in the key case-insensitively.
	c := domain.NewFilterState()
	c.Search = "ChocoPie"
	d := domain.NewFilterState()
	d.Search = "chocopie"
	if buildSummaryKey(c) != buildSummaryKey(d) {
		t.Error("search casing should not change the key")
	}
}

func TestNoopSummaryCache(t *testing.T) {
	c := NewNoopSummaryCache()
	ctx := context.Background()
	state := domain.NewFilterState()

	if err := c.SetSummary(ctx, state, &domain.Summary{TotalStock: 10}); err != nil {
		t.Fatalf("SetSummary() error = %v", err)
	}
	_, ok, err := c.GetSummary(ctx, state)
	if err != nil {
		t.Fatalf("GetSummary() error = %v", err)
	}
	if ok {
		t.Error("noop cache should never report a hit")
	}
	if err := c.InvalidateAll(ctx); err != nil {
		t.Fatalf("InvalidateAll() error = %v", err)
	}
}
