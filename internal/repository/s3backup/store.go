// Package s3backup copies encoded snapshots to an S3-compatible bucket.
package s3backup

import (
	"bytes"
	"context"
	"fmt"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairy/internal/domain/models"
)

const (
	backupPrefix = "backups"
	latestDir    = "latest"
	contentType  = "application/json"
)

// Config holds the bucket coordinates. Credentials come from the default AWS
// chain.
type Config struct {
	Region    string
	Bucket    string
	Endpoint  string
	PathStyle bool
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store writes dated and latest copies of a snapshot.
type Store struct {
	client objectPutter
	bucket string
	logger *zap.Logger
	now    func() time.Time
}

// New creates a backup store from Config.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.PathStyle {
			o.UsePathStyle = true
		}
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newStore(client, cfg.Bucket, logger, time.Now), nil
}

func newStore(client objectPutter, bucket string, logger *zap.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{client: client, bucket: bucket, logger: logger, now: now}
}

// Backup uploads raw under backups/<date>/<key>.json and refreshes
// backups/latest/<key>.json. It returns the dated object key.
func (s *Store) Backup(ctx context.Context, key string, raw []byte) (string, error) {
	dated := fmt.Sprintf("%s/%s/%s.json", backupPrefix, models.FormatDate(s.now()), key)
	latest := fmt.Sprintf("%s/%s/%s.json", backupPrefix, latestDir, key)

	for _, objectKey := range []string{dated, latest} {
		_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(objectKey),
			Body:        bytes.NewReader(raw),
			ContentType: aws.String(contentType),
		})
		if err != nil {
			return "", fmt.Errorf("put object %s: %w", objectKey, err)
		}
	}

	s.logger.Info("snapshot backed up", zap.String("bucket", s.bucket), zap.String("object", dated), zap.Int("bytes", len(raw)))
	return dated, nil
}
