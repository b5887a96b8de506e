// Package blob stores and fetches résumé files in S3-compatible object
// storage.
package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const defaultAttempts = 3

// retryBackoff is the base wait between attempts; attempt i waits (i+1) times it.
var retryBackoff = 500 * time.Millisecond

// Options configures the object store client
type Options struct {
	Bucket    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// Store reads and writes objects in one bucket
type Store struct {
	client *s3.Client
	bucket string
}

// New builds a Store. Static credentials are used when both keys are set,
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	region := opts.Region
	if region == "" {
		region = "auto"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("error creating aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Store{client: client, bucket: opts.Bucket}, nil
}

// Bucket returns the bucket name
func (s *Store) Bucket() string {
	return s.bucket
}

// Download fetches an object, retrying transient failures.
func (s *Store) Download(ctx context.Context, key string) ([]byte, error) {
	return retry(ctx, defaultAttempts, func() ([]byte, error) {
		return s.download(ctx, key)
	})
}

func (s *Store) download(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, out.Body); err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// Upload writes data under key, retrying transient failures.
func (s *Store) Upload(ctx context.Context, key, contentType string, data []byte) error {
	_, err := retry(ctx, defaultAttempts, func() (struct{}, error) {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("put object %s: %w", key, err)
		}
		return struct{}{}, nil
	})
	return err
}

// ObjectKey returns the key an uploaded résumé is stored under.
func ObjectKey(id uuid.UUID, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "resume"
	}
	return fmt.Sprintf("resumes/%s/%s", id, base)
}

// retry runs fn up to attempts times with a linearly growing wait.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(i+1) * retryBackoff):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
