// Package upload ships grade results to an S3 results bucket.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	resultPrefix    = "results/"
	presignDuration = time.Hour
)

// Uploader writes grade result lines to an S3 bucket and hands back
// presigned read links.
type Uploader struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// New builds an Uploader against the given bucket using the ambient AWS
// credential chain (env, shared config, instance role).
func New(ctx context.Context, bucket string) (*Uploader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("results bucket is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &Uploader{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
	}, nil
}

// Put stores a single serialized grade result under results/<name>.json
// and returns a presigned GET link valid for one hour.
func (u *Uploader) Put(ctx context.Context, name string, line []byte) (string, error) {
	if name == "" {
		return "", fmt.Errorf("result name is required")
	}

	key := resultPrefix + name + ".json"

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(line),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s to %s: %w", key, u.bucket, err)
	}

	slog.Debug("uploaded result", "bucket", u.bucket, "key", key)

	req, err := u.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignDuration))
	if err != nil {
		return "", fmt.Errorf("error presigning %s: %w", key, err)
	}

	return req.URL, nil
}
