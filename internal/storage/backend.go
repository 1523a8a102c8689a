package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mini-instagram/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

var ErrObjectNotFound = errors.New("storage: object not found")

// Backend is a flat namespace of named blobs.
type Backend interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]string, error)
	URL(name string) string
}

// NewBackend picks the driver named by cfg.StorageDriver. db is only used by gridfs.
func NewBackend(ctx context.Context, cfg config.Config, db *mongo.Database) (Backend, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocalBackend(cfg.LocalStoragePath, cfg.PublicMediaPrefix)
	case "gridfs":
		if db == nil {
			return nil, errors.New("storage: gridfs driver needs a database")
		}
		return NewGridFSBackend(db, "media", cfg.PublicMediaPrefix), nil
	case "s3":
		return NewS3Backend(cfg.S3Region, cfg.S3Bucket)
	case "gcs":
		return NewGCSBackend(ctx, cfg.GCSBucketName, cfg.GCSCredentialsFile)
	}
	return nil, fmt.Errorf("storage: unknown driver %q", cfg.StorageDriver)
}

func publicURL(prefix, name string) string {
	if prefix == "" {
		prefix = "/uploads"
	}
	return prefix + "/" + name
}
