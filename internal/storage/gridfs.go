package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"regexp"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// GridFSBackend keeps media inside MongoDB; files are served through /uploads.
type GridFSBackend struct {
	bucket    *mongo.GridFSBucket
	urlPrefix string
}

type gridFile struct {
	ID       bson.ObjectID `bson:"_id"`
	Filename string        `bson:"filename"`
}

func NewGridFSBackend(db *mongo.Database, bucketName, urlPrefix string) *GridFSBackend {
	return &GridFSBackend{
		bucket:    db.GridFSBucket(options.GridFSBucket().SetName(bucketName)),
		urlPrefix: urlPrefix,
	}
}

func (b *GridFSBackend) Put(ctx context.Context, name string, data []byte, contentType string) error {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "contentType", Value: contentType}})
	_, err := b.bucket.UploadFromStream(ctx, name, bytes.NewReader(data), opts)
	return err
}

func (b *GridFSBackend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	stream, err := b.bucket.OpenDownloadStreamByName(ctx, name)
	if errors.Is(err, mongo.ErrFileNotFound) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func (b *GridFSBackend) Remove(ctx context.Context, name string) error {
	files, err := b.find(ctx, bson.M{"filename": name})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return ErrObjectNotFound
	}
	for _, f := range files {
		if err := b.bucket.Delete(ctx, f.ID); err != nil && !errors.Is(err, mongo.ErrFileNotFound) {
			return err
		}
	}
	return nil
}

func (b *GridFSBackend) List(ctx context.Context, prefix string) ([]string, error) {
	filter := bson.M{}
	if prefix != "" {
		filter["filename"] = bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}
	}
	files, err := b.find(ctx, filter)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Filename)
	}
	return names, nil
}

func (b *GridFSBackend) URL(name string) string {
	return publicURL(b.urlPrefix, name)
}

func (b *GridFSBackend) find(ctx context.Context, filter bson.M) ([]gridFile, error) {
	cur, err := b.bucket.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var files []gridFile
	if err := cur.All(ctx, &files); err != nil {
		return nil, err
	}
	return files, nil
}
