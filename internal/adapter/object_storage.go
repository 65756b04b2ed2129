package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/MKhiriev/go-onboard/internal/config"
	"github.com/MKhiriev/go-onboard/internal/logger"
	"github.com/MKhiriev/go-onboard/internal/utils"
	"github.com/MKhiriev/go-onboard/models"
)

var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) s3API {
		return s3.NewFromConfig(cfg, optFns...)
	}

	retryMaxBackoff = 2 * time.Second
)

// s3API is the part of *s3.Client used by [S3ObjectStorage].
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// nonRetryableS3Codes are API error codes that another attempt cannot fix.
var nonRetryableS3Codes = map[string]struct{}{
	"AccessDenied":          {},
	"InvalidAccessKeyId":    {},
	"SignatureDoesNotMatch": {},
	"NoSuchBucket":          {},
	"InvalidBucketName":     {},
	"InvalidArgument":       {},
	"EntityTooLarge":        {},
}

// S3ObjectStorage implements [ObjectStorage] on top of an S3-compatible
// bucket (AWS S3, MinIO).
type S3ObjectStorage struct {
	client        s3API
	bucket        string
	publicBaseURL string

	now       func() time.Time
	keySuffix func() string

	logger *logger.Logger
}

// NewS3ObjectStorage builds the S3 client from cfg: static credentials,
// optional base endpoint and path-style addressing. The SDK retryer makes at
// most cfg.MaxRetries+1 attempts, each bounded by cfg.CallTimeout.
func NewS3ObjectStorage(ctx context.Context, cfg config.ObjectStore, log *logger.Logger) (*S3ObjectStorage, error) {
	if cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, fmt.Errorf("%w: bucket and public base url are required", ErrObjectStorageConfig)
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3ObjectStorage").Msg("error loading aws config")
		return nil, fmt.Errorf("%w: %w", ErrObjectStorageConfig, err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
		o.Retryer = newRetryer(cfg.MaxRetries)
		if cfg.CallTimeout > 0 {
			o.HTTPClient = awshttp.NewBuildableClient().WithTimeout(cfg.CallTimeout)
		}
	})

	return newS3ObjectStorage(client, cfg, log), nil
}

func newRetryer(maxRetries int) aws.Retryer {
	return retry.NewStandard(func(so *retry.StandardOptions) {
		so.MaxAttempts = max(maxRetries, 0) + 1
		so.Backoff = retry.NewExponentialJitterBackoff(retryMaxBackoff)
		so.Retryables = append([]retry.IsErrorRetryable{retry.IsErrorRetryableFunc(nonRetryable)}, so.Retryables...)
	})
}

func newS3ObjectStorage(client s3API, cfg config.ObjectStore, log *logger.Logger) *S3ObjectStorage {
	uuids := utils.NewUUIDGenerator()

	return &S3ObjectStorage{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		now:           time.Now,
		keySuffix:     uuids.Short,
		logger:        log,
	}
}

// Upload implements [ObjectStorage].
func (s *S3ObjectStorage) Upload(ctx context.Context, artifact models.Artifact, folder string) (models.UploadedArtifact, error) {
	log := logger.FromContext(ctx)

	if artifact.IsEmpty() || strings.Trim(folder, "/") == "" {
		return models.UploadedArtifact{}, ErrInvalidArtifact
	}

	key := buildObjectKey(folder, artifact.OriginalFilename, s.now(), s.keySuffix())

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(artifact.Buffer),
		ContentLength: aws.Int64(int64(len(artifact.Buffer))),
	}
	if artifact.ContentType != "" {
		input.ContentType = aws.String(artifact.ContentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("func", "S3ObjectStorage.Upload").Str("key", key).Msg("upload failed")
		return models.UploadedArtifact{}, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	log.Debug().Str("func", "S3ObjectStorage.Upload").Str("key", key).Msg("object uploaded")

	return models.UploadedArtifact{
		URL:    s.publicURL(key),
		Key:    key,
		Folder: strings.Trim(folder, "/"),
	}, nil
}

// Delete implements [ObjectStorage].
func (s *S3ObjectStorage) Delete(ctx context.Context, objectURL string) error {
	log := logger.FromContext(ctx)

	key, err := s.KeyFromURL(objectURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil && !isNotFound(err) {
		log.Err(err).Str("func", "S3ObjectStorage.Delete").Str("key", key).Msg("delete failed")
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	log.Debug().Str("func", "S3ObjectStorage.Delete").Str("key", key).Msg("object deleted")
	return nil
}

// KeyFromURL returns the object key addressed by objectURL, which must be
// <public base url>/<key>.
func (s *S3ObjectStorage) KeyFromURL(objectURL string) (string, error) {
	if objectURL == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidObjectURL)
	}

	parsed, err := url.Parse(objectURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectURL, objectURL)
	}

	prefix := s.publicBaseURL + "/"
	if !strings.HasPrefix(objectURL, prefix) {
		return "", fmt.Errorf("%w: %q is outside bucket %q", ErrInvalidObjectURL, objectURL, s.bucket)
	}

	rawKey := strings.TrimPrefix(objectURL, prefix)
	if i := strings.IndexAny(rawKey, "?#"); i >= 0 {
		rawKey = rawKey[:i]
	}

	key, err := url.PathUnescape(rawKey)
	if err != nil || key == "" || strings.HasSuffix(key, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidObjectURL, objectURL)
	}

	return key, nil
}

func (s *S3ObjectStorage) publicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}

	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}

	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}

// nonRetryable stops the SDK retryer on codes another attempt cannot fix and
// on caller cancellation; everything else is left to the standard checks.
func nonRetryable(err error) aws.Ternary {
	if errors.Is(err, context.Canceled) {
		return aws.FalseTernary
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if _, ok := nonRetryableS3Codes[apiErr.ErrorCode()]; ok {
			return aws.FalseTernary
		}
	}

	return aws.UnknownTernary
}
