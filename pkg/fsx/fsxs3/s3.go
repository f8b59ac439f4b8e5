package fsxs3

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/seaforth/crewdesk/pkg/fsx"
)

// S3FileSystem implements fsx.FileSystem on an S3 bucket.
type S3FileSystem struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3FileSystem creates an S3-backed filesystem rooted at prefix.
func NewS3FileSystem(client *s3.Client, bucket, prefix string) *S3FileSystem {
	return &S3FileSystem{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (f *S3FileSystem) key(filePath string) string {
	if f.prefix == "" {
		return filePath
	}
	return fsx.JoinPath(f.prefix, filePath)
}

// WriteFile uploads data to the bucket.
func (f *S3FileSystem) WriteFile(ctx context.Context, filePath string, data []byte) error {
	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", filePath, err)
	}
	return nil
}

// ReadFile downloads an object from the bucket.
func (f *S3FileSystem) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", filePath, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", filePath, err)
	}
	return data, nil
}

// Delete removes an object from the bucket.
func (f *S3FileSystem) Delete(ctx context.Context, filePath string) error {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(f.key(filePath)),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", filePath, err)
	}
	return nil
}

// Join builds a slash-separated storage path.
func (f *S3FileSystem) Join(parts ...string) string {
	return fsx.JoinPath(parts...)
}
