// Package upload pushes issue photos to an S3-compatible image host and
// returns the public URL stored on the issue record.
package upload

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path/filepath"

	"github.com/caarlos0/env/v9"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config locates the image host. All fields come from the environment.
type Config struct {
	Endpoint  string `env:"CITYRESOLVED_IMAGE_ENDPOINT"`
	AccessKey string `env:"CITYRESOLVED_IMAGE_ACCESS_KEY"`
	SecretKey string `env:"CITYRESOLVED_IMAGE_SECRET_KEY"`
	Bucket    string `env:"CITYRESOLVED_IMAGE_BUCKET" envDefault:"cityresolved-photos"`
	BaseURL   string `env:"CITYRESOLVED_IMAGE_BASE_URL"`
	UseSSL    bool   `env:"CITYRESOLVED_IMAGE_USE_SSL" envDefault:"true"`
}

// ConfigFromEnv reads the image host configuration from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse image host environment: %w", err)
	}
	if cfg.Endpoint == "" {
		return cfg, fmt.Errorf("image host not configured; set CITYRESOLVED_IMAGE_ENDPOINT")
	}
	return cfg, nil
}

// Uploader stores photos on the configured image host.
type Uploader struct {
	client *minio.Client
	cfg    Config
}

// New connects to the image host.
func New(cfg Config) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to image host: %w", err)
	}
	return &Uploader{client: client, cfg: cfg}, nil
}

// Upload stores the file under a random object name and returns its
// public URL.
func (u *Uploader) Upload(ctx context.Context, path string) (string, error) {
	ext := filepath.Ext(path)
	objectName := uuid.NewString() + ext

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if _, err := u.client.FPutObject(ctx, u.cfg.Bucket, objectName, path, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", fmt.Errorf("failed to upload photo: %w", err)
	}

	return u.publicURL(objectName)
}

func (u *Uploader) publicURL(objectName string) (string, error) {
	base := u.cfg.BaseURL
	if base == "" {
		scheme := "http"
		if u.cfg.UseSSL {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s/%s", scheme, u.cfg.Endpoint, u.cfg.Bucket)
	}
	joined, err := url.JoinPath(base, objectName)
	if err != nil {
		return "", fmt.Errorf("failed to build photo URL: %w", err)
	}
	return joined, nil
}
