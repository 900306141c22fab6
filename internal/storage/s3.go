package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweetworks/sweetshop-api/internal/config"
)

const (
	keyPrefix      = "sweets/"
	uploadAttempts = 3
	retryBaseDelay = 200 * time.Millisecond
)

// S3Relay stores product images in an S3 (or S3-compatible) bucket.
type S3Relay struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
	logger   zerolog.Logger
}

func NewS3Relay(cfg *config.Config, logger zerolog.Logger) *S3Relay {
	client := s3.New(s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
		BaseEndpoint: baseEndpoint(cfg.S3Endpoint),
		UsePathStyle: cfg.S3Endpoint != "",
	})

	return &S3Relay{
		client:   client,
		bucket:   cfg.S3Bucket,
		region:   cfg.S3Region,
		endpoint: cfg.S3Endpoint,
		logger:   logger.With().Str("component", "image_relay").Logger(),
	}
}

func baseEndpoint(endpoint string) *string {
	if endpoint == "" {
		return nil
	}
	return aws.String(endpoint)
}

// Upload re-encodes the image and puts it under a fresh key. Transient
// put failures are retried with exponential backoff; the last error is
// returned once attempts run out.
func (r *S3Relay) Upload(ctx context.Context, src io.Reader) (string, error) {
	data, err := processImage(src)
	if err != nil {
		return "", fmt.Errorf("process image: %w", err)
	}

	key := keyPrefix + uuid.NewString() + ".webp"

	var lastErr error
	for attempt := 0; attempt < uploadAttempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		_, lastErr = r.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(r.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("image/webp"),
		})
		if lastErr == nil {
			r.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("image uploaded")
			return r.publicURL(key), nil
		}

		r.logger.Warn().Err(lastErr).Str("key", key).Int("attempt", attempt+1).Msg("image upload failed")
	}

	return "", fmt.Errorf("upload image: %w", lastErr)
}

// Delete removes the object behind a previously issued URL. Callers
// treat failures as best-effort.
func (r *S3Relay) Delete(ctx context.Context, imageURL string) error {
	key, err := keyFromURL(imageURL)
	if err != nil {
		return err
	}

	_, err = r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}

	r.logger.Debug().Str("key", key).Msg("image deleted")
	return nil
}

func (r *S3Relay) publicURL(key string) string {
	if r.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(r.endpoint, "/"), r.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", r.bucket, r.region, key)
}

// keyFromURL derives the object key from the public URL by taking the
// final path segment under the well-known prefix.
func keyFromURL(imageURL string) (string, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("parse image url: %w", err)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "", fmt.Errorf("image url %q has no object name", imageURL)
	}
	return keyPrefix + name, nil
}
