package source

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveSource reads snapshots from a Google Drive folder where the
// warehouse drops its dated exports.
type DriveSource struct {
	srv      *drive.Service
	folderID string
}

func NewDriveSource(ctx context.Context, credentialsJSON, folderID string) (*DriveSource, error) {
	config, err := google.JWTConfigFromJSON([]byte(credentialsJSON), drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse drive credentials: %w", err)
	}

	srv, err := drive.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to build drive client: %w", err)
	}

	return &DriveSource{srv: srv, folderID: folderID}, nil
}

// Latest lists the folder, picks the most recently dated export by file
// name and downloads it.
func (s *DriveSource) Latest(ctx context.Context) (*Snapshot, error) {
	result, err := s.srv.Files.List().
		Q(fmt.Sprintf("'%s' in parents and trashed=false", s.folderID)).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list drive folder: %w", err)
	}

	var (
		latestID   string
		latestName string
		latestDate time.Time
	)
	for _, f := range result.Files {
		date, ok := SnapshotDate(f.Name)
		if !ok {
			continue
		}
		if latestID == "" || date.After(latestDate) {
			latestID = f.Id
			latestName = f.Name
			latestDate = date
		}
	}

	if latestID == "" {
		return nil, fmt.Errorf("%w in drive folder %s", ErrNoSnapshot, s.folderID)
	}

	resp, err := s.srv.Files.Get(latestID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("unable to download %s: %w", latestName, err)
	}
	defer resp.Body.Close()

	rows, err := DecodeSnapshotCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", latestName, err)
	}

	return &Snapshot{Name: latestName, Date: latestDate, Rows: rows}, nil
}
