package pipeline

import (
	"math"
	"reflect"
	"testing"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

func newTestAggregator() *Aggregator {
	return NewAggregator(domain.BandSchemeCoarse, 1)
}

func TestAggregateMergesLotsAndDropsThinGroups(t *testing.T) {
	rows := []domain.RawStockRow{
		{ProductCode: "A1", Quantity: 5, ShelfLifePercent: 85, BatchCode: "20112024"},
		{ProductCode: "A1", Quantity: 3, ShelfLifePercent: 82, BatchCode: "15062024"},
		{ProductCode: "B2", Quantity: 0.5, ShelfLifePercent: 90},
	}

	got := newTestAggregator().Aggregate(rows, NewReferenceIndex(nil))
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}

	row := got[0]
	if row.ProductCode != "A1" {
		t.Errorf("product code = %q, want A1", row.ProductCode)
	}
	if row.TotalQuantity != 8 {
		t.Errorf("total quantity = %v, want 8", row.TotalQuantity)
	}
	if row.FreshnessBand != "80% 이상" {
		t.Errorf("band = %q, want 80%% 이상", row.FreshnessBand)
	}
	if math.Abs(row.FreshnessPercent-83.5) > 1e-9 {
		t.Errorf("freshness percent = %v, want 83.5", row.FreshnessPercent)
	}
	if row.DisplayDate != "2024-11-20 외 1건" {
		t.Errorf("display date = %q, want 2024-11-20 외 1건", row.DisplayDate)
	}
}

func TestAggregateSplitsByBand(t *testing.T) {
	rows := []domain.RawStockRow{
		{ProductCode: "A1", Quantity: 10, ShelfLifePercent: 85},
		{ProductCode: "A1", Quantity: 20, ShelfLifePercent: 55},
	}

	got := newTestAggregator().Aggregate(rows, NewReferenceIndex(nil))
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0].FreshnessBand != "80% 이상" || got[1].FreshnessBand != "40~60%" {
		t.Errorf("bands = %q, %q", got[0].FreshnessBand, got[1].FreshnessBand)
	}
}

func TestAggregateSkipsRowsWithoutCode(t *testing.T) {
	rows := []domain.RawStockRow{
		{ProductCode: "", Quantity: 50, ShelfLifePercent: 85},
		{ProductCode: "  ", Quantity: 50, ShelfLifePercent: 85},
		{ProductCode: "C3", Quantity: 4, ShelfLifePercent: 85},
	}

	got := newTestAggregator().Aggregate(rows, NewReferenceIndex(nil))
	if len(got) != 1 || got[0].ProductCode != "C3" {
		t.Fatalf("got %+v, want single C3 row", got)
	}
	if got[0].TotalQuantity != 4 {
		t.Errorf("total quantity = %v, want 4", got[0].TotalQuantity)
	}
}

func TestAggregateQuantityConservation(t *testing.T) {
	rows := []domain.RawStockRow{
		{ProductCode: "A1", Quantity: 5, ShelfLifePercent: 85},
		{ProductCode: "A1", Quantity: 3, ShelfLifePercent: 82},
		{ProductCode: "B2", Quantity: 7.25, ShelfLifePercent: 45},
		{ProductCode: "B2", Quantity: 2, ShelfLifePercent: 91},
		{ProductCode: "D4", Quantity: 0.75, ShelfLifePercent: 10},
	}

	agg := newTestAggregator()
	got := agg.Aggregate(rows, NewReferenceIndex(nil))

	// Sum of surviving groups must equal the raw sum restricted to
	// surviving (code, band) combinations.
	surviving := make(map[string]bool)
	var aggTotal float64
	for _, r := range got {
		surviving[r.ProductCode+"\x00"+r.FreshnessBand] = true
		aggTotal += r.TotalQuantity
	}

	var rawTotal float64
	for _, r := range rows {
		if surviving[r.ProductCode+"\x00"+domain.BandSchemeCoarse.Classify(r.ShelfLifePercent)] {
			rawTotal += r.Quantity
		}
	}

	if math.Abs(aggTotal-rawTotal) > 1e-9 {
		t.Errorf("aggregated total %v != raw total %v", aggTotal, rawTotal)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	rows := []domain.RawStockRow{
		{ProductCode: "A1", Quantity: 5, ShelfLifePercent: 85, BatchCode: "20112024"},
		{ProductCode: "B2", Quantity: 9, ShelfLifePercent: 45, BatchCode: "01012023"},
		{ProductCode: "A1", Quantity: 3, ShelfLifePercent: 61},
	}

	agg := newTestAggregator()
	first := agg.Aggregate(rows, NewReferenceIndex(nil))
	second := agg.Aggregate(rows, NewReferenceIndex(nil))
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated aggregation differs:\n%+v\n%+v", first, second)
	}
}

func TestAggregateFirstSeenAttributes(t *testing.T) {
	refs := NewReferenceIndex([]domain.ReferenceRecord{
		{ProductCode: "A1", Name: "초코파이 12봉", Taste: "카카오"},
	})
	rows := []domain.RawStockRow{
		{ProductCode: "A1", Quantity: 5, ShelfLifePercent: 85, Warehouse: "LProduct"},
		{ProductCode: "A1", Quantity: 3, ShelfLifePercent: 84, Warehouse: "Other"},
	}

	got := newTestAggregator().Aggregate(rows, refs)
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Warehouse != "LProduct" {
		t.Errorf("warehouse = %q, want first-seen LProduct", got[0].Warehouse)
	}
	if got[0].Name != "초코파이 12봉" || got[0].Taste != "카카오" {
		t.Errorf("attributes not taken from reference: %+v", got[0])
	}
}
