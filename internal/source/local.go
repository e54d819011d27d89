package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// LocalSource reads snapshots from a directory of dated CSV exports.
type LocalSource struct {
	dir string
}

func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{dir: dir}
}

// Latest decodes the most recently dated export in the directory.
func (s *LocalSource) Latest(ctx context.Context) (*Snapshot, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot dir %s: %w", s.dir, err)
	}

	var (
		latestName string
		latestDate time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, ok := SnapshotDate(entry.Name())
		if !ok {
			continue
		}
		if latestName == "" || date.After(latestDate) {
			latestName = entry.Name()
			latestDate = date
		}
	}

	if latestName == "" {
		return nil, fmt.Errorf("%w in %s", ErrNoSnapshot, s.dir)
	}

	f, err := os.Open(filepath.Join(s.dir, latestName))
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", latestName, err)
	}
	defer f.Close()

	rows, err := DecodeSnapshotCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", latestName, err)
	}

	return &Snapshot{Name: latestName, Date: latestDate, Rows: rows}, nil
}
