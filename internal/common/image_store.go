package common

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"kras-kickers/volunteers/internal/config"
	"kras-kickers/volunteers/internal/logging"
)

var allowedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

// ImageStore saves an opportunity image and returns the reference to store on it.
type ImageStore interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// SanitizeImageName strips directories, replaces spaces and lowercases the
// name. It returns false for names without an allowed image extension.
func SanitizeImageName(name string) (string, bool) {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "", false
	}
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	ext := filepath.Ext(name)
	if _, ok := allowedImageExtensions[ext]; !ok {
		return "", false
	}
	if strings.TrimSuffix(name, ext) == "" {
		return "", false
	}
	return name, true
}

// ImageContentType returns the content type for a sanitized image name.
func ImageContentType(name string) string {
	return allowedImageExtensions[filepath.Ext(name)]
}

// LocalImageStore writes images under a directory; the reference is the file name.
type LocalImageStore struct {
	dir string
}

func NewLocalImageStore(dir string) *LocalImageStore {
	return &LocalImageStore{dir: dir}
}

func (s *LocalImageStore) Put(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image dir: %w", err)
	}

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return name, nil
}

// S3ImageStore uploads to an S3-compatible bucket (AWS, Spaces, MinIO).
type S3ImageStore struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func NewS3ImageStore(ctx context.Context, cfg config.ImageConfig) (*S3ImageStore, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3ImageStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (s *S3ImageStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	key := "opportunities/" + name
	// the signer needs a seekable body
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}
	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return key, nil
}

// NewImageStore picks the bucket store when a bucket is configured.
func NewImageStore(ctx context.Context, cfg config.ImageConfig) (ImageStore, error) {
	if cfg.Bucket == "" {
		logging.Info("Using local image store", "dir", cfg.Dir)
		return NewLocalImageStore(cfg.Dir), nil
	}
	logging.Info("Using S3 image store", "bucket", cfg.Bucket, "region", cfg.Region)
	return NewS3ImageStore(ctx, cfg)
}
