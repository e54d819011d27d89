// Package session owns the dashboard's working data set: the aggregated
// rows of the latest successful reload, the filter state, the cascading
// dropdown options and the view cursor. The collection is swapped
// wholesale on reload; a failed reload leaves the previous data intact.
package session

import (
	"sync"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

type Session struct {
	mu sync.RWMutex

	rows    []domain.AggregatedRow
	state   domain.FilterState
	options Options

	sortColumn string
	sortDesc   bool
	page       int
	pageSize   int

	minQuantity float64
}

func New(minQuantity float64, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Session{
		state:       domain.NewFilterState(),
		options:     make(Options),
		page:        1,
		pageSize:    pageSize,
		minQuantity: minQuantity,
	}
}

// Replace atomically swaps in a freshly aggregated collection, then
// recomputes the dropdown options and resets the page cursor. Callers
// must only invoke it after a fully successful ingestion.
func (s *Session) Replace(rows []domain.AggregatedRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = rows
	s.options = recomputeOptions(s.rows, &s.state, s.minQuantity)
	s.page = 1
}

// Rows returns the current aggregated collection. The slice is shared
// and must be treated as read-only.
func (s *Session) Rows() []domain.AggregatedRow {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows
}

// SetFilters applies a new filter state and recomputes the cascade;
// values that fall outside their recomputed option sets are reset to
// FilterAll. Returns the effective state.
func (s *Session) SetFilters(f domain.FilterState) domain.FilterState {
	f.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = f
	s.options = recomputeOptions(s.rows, &s.state, s.minQuantity)
	s.page = 1
	return s.state
}

// Filters returns the effective filter state.
func (s *Session) Filters() domain.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Options returns the per-filter option sets of the current cascade.
func (s *Session) Options() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Options, len(s.options))
	for dim, values := range s.options {
		out[dim] = append([]string(nil), values...)
	}
	return out
}

// SortBy selects an explicit sort column. Re-selecting the active column
// toggles the direction; a new column starts ascending; the empty column
// restores the default ordering.
func (s *Session) SortBy(column string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if column == "" {
		s.sortColumn = ""
		s.sortDesc = false
		return
	}
	if column == s.sortColumn {
		s.sortDesc = !s.sortDesc
		return
	}
	s.sortColumn = column
	s.sortDesc = false
}

// SetSort pins an explicit sort column and direction, bypassing the
// toggle. The empty column restores the default ordering.
func (s *Session) SetSort(column string, desc bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if column == "" {
		s.sortColumn = ""
		s.sortDesc = false
		return
	}
	s.sortColumn = column
	s.sortDesc = desc
}

// SetPage moves the view cursor. Out-of-range pages are clamped at read
// time.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.page = page
}

// SetPageSize changes the page size and resets to the first page.
func (s *Session) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size <= 0 {
		return
	}
	s.pageSize = size
	s.page = 1
}

// Page projects the current filtered, sorted page of rows.
func (s *Session) Page() domain.StockPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := s.filteredLocked()
	if s.sortColumn == "" {
		defaultSort(filtered)
	} else {
		columnSort(filtered, s.sortColumn, s.sortDesc)
	}

	items, page, totalPages := paginate(filtered, s.page, s.pageSize)
	return domain.StockPage{
		Items:      items,
		Total:      len(filtered),
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
	}
}

// Summary rolls the filtered rows up into the dashboard header figures.
func (s *Session) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum domain.Summary
	codes := make(map[string]struct{})
	var shelfSum float64
	var count int

	for i := range s.rows {
		row := &s.rows[i]
		if !matches(row, &s.state) {
			continue
		}
		sum.TotalStock += row.TotalQuantity
		codes[row.ProductCode] = struct{}{}
		shelfSum += row.FreshnessPercent
		count++
		if row.FreshnessPercent < domain.WarningShelfLife {
			sum.WarningStock += row.TotalQuantity
		}
	}

	sum.SKUCount = len(codes)
	if count > 0 {
		sum.AvgShelfLife = shelfSum / float64(count)
	}
	return sum
}

// Treemap rolls the filtered rows up by category, largest first.
func (s *Session) Treemap() []domain.TreemapNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]float64)
	order := make([]string, 0)
	for i := range s.rows {
		row := &s.rows[i]
		if !matches(row, &s.state) {
			continue
		}
		if _, ok := totals[row.Category]; !ok {
			order = append(order, row.Category)
		}
		totals[row.Category] += row.TotalQuantity
	}

	nodes := make([]domain.TreemapNode, 0, len(order))
	for _, label := range order {
		nodes = append(nodes, domain.TreemapNode{Label: label, Quantity: totals[label]})
	}
	sortTreemap(nodes)
	return nodes
}

func (s *Session) filteredLocked() []domain.AggregatedRow {
	filtered := make([]domain.AggregatedRow, 0, len(s.rows))
	for i := range s.rows {
		if matches(&s.rows[i], &s.state) {
			filtered = append(filtered, s.rows[i])
		}
	}
	return filtered
}
