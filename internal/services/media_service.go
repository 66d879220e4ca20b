package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/yukikurage/ocean-hazard-api/internal/config"
)

const uploadURLExpiry = 15 * time.Minute

var (
	ErrStorageNotConfigured = errors.New("media storage is not configured")
	ErrInvalidMediaKind     = errors.New("kind must be image or audio")
	ErrInvalidContentType   = errors.New("content type does not match media kind")
)

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaAudio MediaKind = "audio"
)

// UploadURL is a presigned PUT target plus the URL the object will be
// readable at once uploaded.
type UploadURL struct {
	UploadURL string `json:"uploadUrl"`
	PublicURL string `json:"publicUrl"`
	Key       string `json:"key"`
	ExpiresIn int    `json:"expiresIn"`
}

// MediaService presigns uploads of report photos and voice notes.
type MediaService struct {
	presigner *s3.PresignClient
	cfg       config.StorageConfig
}

// NewMediaService builds the S3 client. It returns a service that rejects
// every request when no bucket is configured.
func NewMediaService(ctx context.Context, cfg config.StorageConfig) (*MediaService, error) {
	if cfg.Bucket == "" {
		return &MediaService{cfg: cfg}, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &MediaService{
		presigner: s3.NewPresignClient(client),
		cfg:       cfg,
	}, nil
}

// Enabled reports whether uploads can be presigned.
func (s *MediaService) Enabled() bool {
	return s.presigner != nil
}

// PresignUpload returns a short-lived URL the client can PUT the file to.
func (s *MediaService) PresignUpload(ctx context.Context, kind MediaKind, contentType, filename string) (*UploadURL, error) {
	if !s.Enabled() {
		return nil, ErrStorageNotConfigured
	}
	if kind != MediaImage && kind != MediaAudio {
		return nil, ErrInvalidMediaKind
	}
	if !strings.HasPrefix(strings.ToLower(contentType), string(kind)+"/") {
		return nil, ErrInvalidContentType
	}

	key := fmt.Sprintf("%ss/%s%s", kind, uuid.New().String(), strings.ToLower(path.Ext(filename)))

	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = uploadURLExpiry
	})
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadURL{
		UploadURL: req.URL,
		PublicURL: s.publicURL(key),
		Key:       key,
		ExpiresIn: int(uploadURLExpiry.Seconds()),
	}, nil
}

func (s *MediaService) publicURL(key string) string {
	if s.cfg.PublicBaseURL != "" {
		return strings.TrimRight(s.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
