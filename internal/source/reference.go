package source

import (
	"context"
	"fmt"
	"os"

	"github.com/papagugunim/LRKF-stock-dashboard/internal/domain"
)

// FileReferenceSource loads product reference data from a local CSV file.
type FileReferenceSource struct {
	path string
}

func NewFileReferenceSource(path string) *FileReferenceSource {
	return &FileReferenceSource{path: path}
}

func (f *FileReferenceSource) Load(ctx context.Context) ([]domain.ReferenceRecord, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference file %s: %w", f.path, err)
	}
	defer file.Close()

	records, err := DecodeReferenceCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode reference file %s: %w", f.path, err)
	}
	return records, nil
}
