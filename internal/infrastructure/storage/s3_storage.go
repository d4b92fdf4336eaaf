// Package storage provides object storage implementations for archived
// stream playback.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	infraconfig "github.com/faithconnect/backend/internal/infrastructure/config"
)

// S3PlaybackStorage serves archived stream recordings from S3-compatible
// storage (AWS S3, MinIO, etc.) via presigned GET URLs, so recordings are
// never proxied through the API.
type S3PlaybackStorage struct {
	client        *s3.Client
	presignClient *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
	logger        *zap.Logger
}

// S3PlaybackStorageOption is a functional option for configuring S3PlaybackStorage
type S3PlaybackStorageOption func(*S3PlaybackStorage)

// WithLogger sets a custom logger for S3PlaybackStorage
func WithLogger(logger *zap.Logger) S3PlaybackStorageOption {
	return func(s *S3PlaybackStorage) {
		s.logger = logger
	}
}

// WithPresignExpiry sets a custom presign expiry duration
func WithPresignExpiry(d time.Duration) S3PlaybackStorageOption {
	return func(s *S3PlaybackStorage) {
		s.presignExpiry = d
	}
}

// NewS3PlaybackStorage creates playback storage from configuration.
// It supports any S3-compatible backend.
func NewS3PlaybackStorage(cfg *infraconfig.StorageConfig, opts ...S3PlaybackStorageOption) (*S3PlaybackStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKeyID == "" {
		return nil, errors.New("storage access key is required")
	}
	if cfg.SecretAccessKey == "" {
		return nil, errors.New("storage secret key is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			if _, err := url.Parse(endpoint); err == nil {
				o.BaseEndpoint = aws.String(endpoint)
				// S3-compatible stores generally require path-style addressing
				o.UsePathStyle = true
			}
		}
	})

	ps := &S3PlaybackStorage{
		client:        client,
		presignClient: s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		presignExpiry: cfg.PresignExpiry,
		logger:        zap.NewNop(),
	}

	for _, opt := range opts {
		opt(ps)
	}

	if ps.presignExpiry == 0 {
		ps.presignExpiry = time.Hour
	}

	return ps, nil
}

// GeneratePlaybackURL generates a presigned GET URL for an archived
// recording. The URL is valid for the configured presign expiry unless
// a positive expiresIn overrides it.
func (s *S3PlaybackStorage) GeneratePlaybackURL(
	ctx context.Context,
	playbackPath string,
	expiresIn time.Duration,
) (string, time.Time, error) {
	if playbackPath == "" {
		return "", time.Time{}, errors.New("playback path is required")
	}

	if expiresIn <= 0 {
		expiresIn = s.presignExpiry
	}

	presignReq, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(playbackPath),
	}, s3.WithPresignExpires(expiresIn))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate playback URL: %w", err)
	}

	expiresAt := time.Now().Add(expiresIn)
	return presignReq.URL, expiresAt, nil
}

// ObjectExists checks whether a recording exists in storage.
func (s *S3PlaybackStorage) ObjectExists(ctx context.Context, playbackPath string) (bool, error) {
	if playbackPath == "" {
		return false, errors.New("playback path is required")
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(playbackPath),
	})
	if err != nil {
		var notFound *types.NotFound
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
			return false, nil
		}
		// Some S3-compatible services surface this as a bare API error code
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "NoSuchKey") {
			return false, nil
		}
		return false, fmt.Errorf("failed to check recording existence: %w", err)
	}

	return true, nil
}

// EnsureBucket creates the bucket if it doesn't exist. Call during startup.
func (s *S3PlaybackStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("Creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// GetBucket returns the bucket name
func (s *S3PlaybackStorage) GetBucket() string {
	return s.bucket
}
