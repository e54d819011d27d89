package session

import (
	"math"
	"sort"
	"strings"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sortable table columns.
const (
	ColCode        = "code"
	ColName        = "name"
	ColCategory    = "category"
	ColRegion      = "region"
	ColTaste       = "taste"
	ColPackage     = "package"
	ColWarehouse   = "warehouse"
	ColStatus      = "status"
	ColDisplayDate = "display_date"
	ColQuantity    = "quantity"
	ColFreshness   = "freshness"
	ColBand        = "band"
)

// matches is the full filter predicate: every dimension is FilterAll or
// equal, and the search text (when present) is a case-insensitive
// substring of the display name or the product code.
func matches(row *domain.AggregatedRow, state *domain.FilterState) bool {
	for _, dim := range domain.Dimensions {
		chosen := state.Value(dim)
		if chosen != domain.FilterAll && row.Attribute(dim) != chosen {
			return false
		}
	}
	if search := strings.ToLower(strings.TrimSpace(state.Search)); search != "" {
		if !strings.Contains(strings.ToLower(row.Name), search) &&
			!strings.Contains(strings.ToLower(row.ProductCode), search) {
			return false
		}
	}
	return true
}

// priorityIndex ranks v by its position in a fixed reference list;
// values missing from the list sort after all listed values.
func priorityIndex(list []string, v string) int {
	for i, s := range list {
		if s == v {
			return i
		}
	}
	return math.MaxInt
}

// defaultSort applies the fixed multi-key ordering: region priority,
// then taste, then package. Stable, so unranked values keep their
// relative input order.
func defaultSort(rows []domain.AggregatedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if ra, rb := priorityIndex(domain.RegionPriority, a.Region), priorityIndex(domain.RegionPriority, b.Region); ra != rb {
			return ra < rb
		}
		if ta, tb := priorityIndex(domain.TastePriority, a.Taste), priorityIndex(domain.TastePriority, b.Taste); ta != tb {
			return ta < tb
		}
		return priorityIndex(domain.PackagePriority, a.Package) < priorityIndex(domain.PackagePriority, b.Package)
	})
}

// columnSort applies an explicit single-column sort. Numeric columns
// compare numerically, everything else by Korean collation.
func columnSort(rows []domain.AggregatedRow, column string, desc bool) {
	coll := collate.New(language.Korean)
	sort.SliceStable(rows, func(i, j int) bool {
		cmp := compareRows(&rows[i], &rows[j], column, coll)
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func compareRows(a, b *domain.AggregatedRow, column string, coll *collate.Collator) int {
	switch column {
	case ColQuantity:
		return cmpFloat(a.TotalQuantity, b.TotalQuantity)
	case ColFreshness:
		return cmpFloat(a.FreshnessPercent, b.FreshnessPercent)
	}
	return coll.CompareString(stringKey(a, column), stringKey(b, column))
}

func stringKey(r *domain.AggregatedRow, column string) string {
	switch column {
	case ColCode:
		return r.ProductCode
	case ColName:
		return r.Name
	case ColCategory:
		return r.Category
	case ColRegion:
		return r.Region
	case ColTaste:
		return r.Taste
	case ColPackage:
		return r.Package
	case ColWarehouse:
		return r.Warehouse
	case ColStatus:
		return r.Location
	case ColDisplayDate:
		return r.DisplayDate
	case ColBand:
		return r.FreshnessBand
	}
	return ""
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// sortTreemap orders treemap tiles largest first; ties keep insertion
// order.
func sortTreemap(nodes []domain.TreemapNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Quantity > nodes[j].Quantity
	})
}

// paginate clamps page into [1, ceil(n/size)] and returns the page slice
// with the clamped page number and total page count.
func paginate(rows []domain.AggregatedRow, page, size int) ([]domain.AggregatedRow, int, int) {
	if size <= 0 {
		size = 1
	}
	totalPages := (len(rows) + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * size
	if start >= len(rows) {
		return nil, page, totalPages
	}
	end := start + size
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end], page, totalPages
}
