package source

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config holds the connection info for an S3-compatible bucket that
// mirrors the warehouse export folder.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// S3Source reads snapshots from S3-compatible object storage.
type S3Source struct {
	client *minio.Client
	bucket string
	prefix string
}

func NewS3Source(cfg S3Config) (*S3Source, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build s3 client: %w", err)
	}

	return &S3Source{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

// Latest scans the prefix, picks the most recently dated export by
// object name and downloads it.
func (s *S3Source) Latest(ctx context.Context) (*Snapshot, error) {
	var (
		latestKey  string
		latestName string
		latestDate time.Time
	)

	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    s.prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("s3 list failed: %w", obj.Err)
		}
		name := path.Base(obj.Key)
		date, ok := SnapshotDate(name)
		if !ok {
			continue
		}
		if latestKey == "" || date.After(latestDate) {
			latestKey = obj.Key
			latestName = name
			latestDate = date
		}
	}

	if latestKey == "" {
		return nil, fmt.Errorf("%w under s3://%s/%s", ErrNoSnapshot, s.bucket, s.prefix)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, latestKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s failed: %w", latestKey, err)
	}
	defer obj.Close()

	rows, err := DecodeSnapshotCSV(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", latestName, err)
	}

	return &Snapshot{Name: latestName, Date: latestDate, Rows: rows}, nil
}
