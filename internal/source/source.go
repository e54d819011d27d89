// Package source holds the boundary to the external data providers: the
// periodic warehouse stock export and the product reference table.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

// Snapshot is one complete raw stock export.
type Snapshot struct {
	Name string
	Date time.Time
	Rows []domain.RawStockRow
}

// SnapshotSource locates and decodes the most recent stock export.
type SnapshotSource interface {
	Latest(ctx context.Context) (*Snapshot, error)
}

// ReferenceSource loads the product reference table. Absence of the
// whole source is a recoverable condition for callers, not a fatal one.
type ReferenceSource interface {
	Load(ctx context.Context) ([]domain.ReferenceRecord, error)
}

// ErrNoSnapshot is returned when the source holds no dated export file.
var ErrNoSnapshot = errors.New("no stock snapshot found")
