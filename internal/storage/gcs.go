package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type GCSBackend struct {
	client     *storage.Client
	bucketName string
}

func NewGCSBackend(ctx context.Context, bucketName, credentialsFile string) (*GCSBackend, error) {
	if bucketName == "" {
		return nil, errors.New("storage: GCS_BUCKET_NAME is required for the gcs driver")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSBackend{
		client:     client,
		bucketName: bucketName,
	}, nil
}

func (b *GCSBackend) Put(ctx context.Context, name string, data []byte, contentType string) error {
	w := b.client.Bucket(b.bucketName).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (b *GCSBackend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	r, err := b.client.Bucket(b.bucketName).Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (b *GCSBackend) Remove(ctx context.Context, name string) error {
	err := b.client.Bucket(b.bucketName).Object(name).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrObjectNotFound
	}
	return err
}

func (b *GCSBackend) List(ctx context.Context, prefix string) ([]string, error) {
	it := b.client.Bucket(b.bucketName).Objects(ctx, &storage.Query{Prefix: prefix})
	var names []string
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		names = append(names, attrs.Name)
	}
	return names, nil
}

func (b *GCSBackend) URL(name string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", b.bucketName, name)
}
