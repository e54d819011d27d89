package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/pipeline"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/session"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/source"
)

type fakeSnapshots struct {
	snap *source.Snapshot
	err  error
}

func (f *fakeSnapshots) Latest(ctx context.Context) (*source.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snap, nil
}

type fakeRefs struct {
	records []domain.ReferenceRecord
	err     error
}

func (f *fakeRefs) Load(ctx context.Context) ([]domain.ReferenceRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func testSnapshot() *source.Snapshot {
	return &source.Snapshot{
		Name: "재고raw데이터_20241120.csv",
		Date: time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC),
		Rows: []domain.RawStockRow{
			{ProductCode: "2141", ShortName: "초코파이 말차", Warehouse: "LProduct", BatchCode: "20112024", Quantity: 120, ShelfLifePercent: 85},
			{ProductCode: "2142", ShortName: "초코파이 카카오", Warehouse: "LProduct", BatchCode: "15102024", Quantity: 40, ShelfLifePercent: 72},
		},
	}
}

func newTestService(snaps source.SnapshotSource, refs source.ReferenceSource) *StockService {
	sess := session.New(1, 100)
	agg := pipeline.NewAggregator(domain.BandSchemeCoarse, 1)
	return NewStockService(sess, snaps, refs, agg, nil)
}

func TestReload(t *testing.T) {
	refs := &fakeRefs{records: []domain.ReferenceRecord{
		{ProductCode: "2141", Name: "초코파이 말차 48봉", Category: "신제품", Taste: "말차", Package: "48봉"},
	}}
	svc := newTestService(&fakeSnapshots{snap: testSnapshot()}, refs)

	result, err := svc.Reload(context.Background())
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if result.RawRows != 2 || result.GroupedRows != 2 {
		t.Errorf("result = %+v, want 2 raw and 2 grouped", result)
	}
	if result.SnapshotName != "재고raw데이터_20241120.csv" {
		t.Errorf("SnapshotName = %q", result.SnapshotName)
	}

	page := svc.Page()
	if page.Total != 2 {
		t.Fatalf("Total = %d, want 2", page.Total)
	}
	var enriched domain.AggregatedRow
	for _, row := range page.Items {
		if row.ProductCode == "2141" {
			enriched = row
		}
	}
	if enriched.Taste != "말차" || enriched.Package != "48봉" {
		t.Errorf("enrichment not applied: %+v", enriched)
	}
}

func TestReloadReferenceFailureDegrades(t *testing.T) {
	svc := newTestService(
		&fakeSnapshots{snap: testSnapshot()},
		&fakeRefs{err: errors.New("file missing")},
	)

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload() error = %v, want graceful degradation", err)
	}

	page := svc.Page()
	if len(page.Items) == 0 {
		t.Fatal("no rows loaded")
	}
	// Default enrichment still applies without a reference table.
	if page.Items[0].SalesDest != domain.DefaultSalesDest {
		t.Errorf("SalesDest = %q, want default", page.Items[0].SalesDest)
	}
}

func TestReloadSnapshotFailureKeepsData(t *testing.T) {
	snaps := &fakeSnapshots{snap: testSnapshot()}
	svc := newTestService(snaps, &fakeRefs{})

	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("initial Reload() error = %v", err)
	}

	snaps.err = errors.New("drive unreachable")
	if _, err := svc.Reload(context.Background()); err == nil {
		t.Fatal("Reload() should surface the source error")
	}

	if page := svc.Page(); page.Total != 2 {
		t.Errorf("Total = %d after failed reload, want prior dataset intact", page.Total)
	}
}

func TestSummaryThroughService(t *testing.T) {
	svc := newTestService(&fakeSnapshots{snap: testSnapshot()}, &fakeRefs{})
	if _, err := svc.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	got := svc.Summary(context.Background())
	if got.TotalStock != 160 {
		t.Errorf("TotalStock = %v, want 160", got.TotalStock)
	}
	if got.SKUCount != 2 {
		t.Errorf("SKUCount = %d, want 2", got.SKUCount)
	}
}
