package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type S3Backend struct {
	s3     *s3.S3
	bucket string
}

func NewS3Backend(region, bucket string) (*S3Backend, error) {
	if bucket == "" {
		return nil, errors.New("storage: S3_BUCKET is required for the s3 driver")
	}
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, err
	}

	return &S3Backend{
		s3:     s3.New(sess),
		bucket: bucket,
	}, nil
}

func (b *S3Backend) Put(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := b.s3.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(name),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	return err
}

func (b *S3Backend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	out, err := b.s3.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if isNoSuchKey(err) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// Remove checks existence first; DeleteObject succeeds on missing keys.
func (b *S3Backend) Remove(ctx context.Context, name string) error {
	_, err := b.s3.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	if isNoSuchKey(err) {
		return ErrObjectNotFound
	}
	if err != nil {
		return err
	}
	_, err = b.s3.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(name),
	})
	return err
}

func (b *S3Backend) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	err := b.s3.ListObjectsV2PagesWithContext(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(b.bucket),
		Prefix: aws.String(prefix),
	}, func(page *s3.ListObjectsV2Output, _ bool) bool {
		for _, obj := range page.Contents {
			names = append(names, aws.StringValue(obj.Key))
		}
		return true
	})
	return names, err
}

func (b *S3Backend) URL(name string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", b.bucket, name)
}

func isNoSuchKey(err error) bool {
	var aerr awserr.Error
	if !errors.As(err, &aerr) {
		return false
	}
	return aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound"
}
