package pipeline

import (
	"strings"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

// Aggregator groups enriched raw rows by (product code, freshness band)
// and sums quantities into display-ready summary rows.
type Aggregator struct {
	scheme domain.BandScheme
	// minQuantity is the group-level threshold: results with a total at
	// or below it are dropped.
	minQuantity float64
}

func NewAggregator(scheme domain.BandScheme, minQuantity float64) *Aggregator {
	return &Aggregator{scheme: scheme, minQuantity: minQuantity}
}

type group struct {
	row          domain.AggregatedRow
	percentSum   float64
	percentCount int
}

// Aggregate builds one AggregatedRow per (product code, freshness band)
// group, in first-occurrence order. Rows without a product code are
// skipped. The first-seen row of a group supplies its enrichment
// attributes; attributes are stable per product code, so first-seen is
// equivalent to any-seen. The representative freshness percent is the
// measured average over contributing lots.
func (a *Aggregator) Aggregate(rows []domain.RawStockRow, refs ReferenceIndex) []domain.AggregatedRow {
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, raw := range rows {
		code := strings.TrimSpace(raw.ProductCode)
		if code == "" {
			continue
		}

		bandLabel := a.scheme.Classify(raw.ShelfLifePercent)
		key := code + "\x00" + bandLabel

		g, ok := groups[key]
		if !ok {
			attrs := Enrich(raw, refs)
			g = &group{row: domain.AggregatedRow{
				ProductCode:   code,
				Name:          attrs.Name,
				CPNCP:         attrs.CPNCP,
				SalesDest:     attrs.SalesDest,
				Category:      attrs.Category,
				Region:        attrs.Region,
				Taste:         attrs.Taste,
				Package:       attrs.Package,
				Notes:         attrs.Notes,
				Warehouse:     raw.Warehouse,
				Location:      raw.Location,
				FreshnessBand: bandLabel,
			}}
			groups[key] = g
			order = append(order, key)
		}

		g.row.TotalQuantity += raw.Quantity
		if batch := strings.TrimSpace(raw.BatchCode); batch != "" {
			g.row.BatchCodes = append(g.row.BatchCodes, batch)
		}
		g.percentSum += raw.ShelfLifePercent
		g.percentCount++
	}

	out := make([]domain.AggregatedRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if g.row.TotalQuantity <= a.minQuantity {
			continue
		}
		if g.percentCount > 0 {
			g.row.FreshnessPercent = g.percentSum / float64(g.percentCount)
		}
		g.row.DisplayDate = DisplayDate(g.row.BatchCodes)
		out = append(out, g.row)
	}
	return out
}
