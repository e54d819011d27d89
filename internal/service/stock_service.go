package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/cache"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/pipeline"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/session"
	"github.com/papagugunim/LRKF-stock-dashboard/internal/source"
)

// ReloadResult describes one completed snapshot load.
type ReloadResult struct {
	SnapshotName string    `json:"snapshot_name"`
	SnapshotDate time.Time `json:"snapshot_date"`
	RawRows      int       `json:"raw_rows"`
	GroupedRows  int       `json:"grouped_rows"`
}

// StockService owns the live aggregated dataset and answers every
// dashboard query against it. Queries keep serving the previous
// dataset while a reload is in flight.
type StockService struct {
	session   *session.Session
	snapshots source.SnapshotSource
	refs      source.ReferenceSource
	agg       *pipeline.Aggregator
	cache     cache.SummaryCache

	reloadGroup singleflight.Group
}

func NewStockService(
	sess *session.Session,
	snapshots source.SnapshotSource,
	refs source.ReferenceSource,
	agg *pipeline.Aggregator,
	cacheImpl cache.SummaryCache,
) *StockService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	return &StockService{
		session:   sess,
		snapshots: snapshots,
		refs:      refs,
		agg:       agg,
		cache:     cacheImpl,
	}
}

// Reload fetches the latest snapshot, runs the pipeline and swaps the
// session dataset. Concurrent calls share a single load.
func (s *StockService) Reload(ctx context.Context) (*ReloadResult, error) {
	v, err, shared := s.reloadGroup.Do("reload", func() (interface{}, error) {
		return s.reload(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Msg("Reload shared with a concurrent caller")
	}
	return v.(*ReloadResult), nil
}

func (s *StockService) reload(ctx context.Context) (*ReloadResult, error) {
	started := time.Now()

	// A broken reference file degrades enrichment to defaults only.
	records, err := s.refs.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("Reference data unavailable, falling back to defaults")
		records = nil
	}
	refs := pipeline.NewReferenceIndex(records)

	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		return nil, err
	}

	grouped := s.agg.Aggregate(snap.Rows, refs)
	s.session.Replace(grouped)

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate summary cache")
	}

	log.Info().
		Str("snapshot", snap.Name).
		Int("raw_rows", len(snap.Rows)).
		Int("grouped_rows", len(grouped)).
		Dur("took", time.Since(started)).
		Msg("Stock snapshot loaded")

	return &ReloadResult{
		SnapshotName: snap.Name,
		SnapshotDate: snap.Date,
		RawRows:      len(snap.Rows),
		GroupedRows:  len(grouped),
	}, nil
}

// ApplyFilters normalizes and applies a filter state, returning the
// effective state after cascade resets.
func (s *StockService) ApplyFilters(state domain.FilterState) domain.FilterState {
	return s.session.SetFilters(state)
}

func (s *StockService) Filters() domain.FilterState {
	return s.session.Filters()
}

func (s *StockService) Options() session.Options {
	return s.session.Options()
}

func (s *StockService) SortBy(column string) {
	s.session.SortBy(column)
}

func (s *StockService) SetSort(column string, desc bool) {
	s.session.SetSort(column, desc)
}

func (s *StockService) SetPage(page int) {
	s.session.SetPage(page)
}

func (s *StockService) SetPageSize(size int) {
	s.session.SetPageSize(size)
}

func (s *StockService) Page() domain.StockPage {
	return s.session.Page()
}

func (s *StockService) Treemap() []domain.TreemapNode {
	return s.session.Treemap()
}

// Summary computes the filtered rollup, memoized per filter state.
func (s *StockService) Summary(ctx context.Context) domain.Summary {
	state := s.session.Filters()

	if cached, ok, err := s.cache.GetSummary(ctx, state); err == nil && ok {
		return *cached
	} else if err != nil {
		log.Warn().Err(err).Msg("Summary cache get failed")
	}

	summary := s.session.Summary()
	if err := s.cache.SetSummary(ctx, state, &summary); err != nil {
		log.Warn().Err(err).Msg("Summary cache set failed")
	}
	return summary
}
