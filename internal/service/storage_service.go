package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"smartexam_backend/internal/config"
	"smartexam_backend/internal/util"
	"smartexam_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ExportProvider stores exported files and tells where they can be fetched.
type ExportProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, filename string) error
	GetURL(filename string) string
}

// LocalExportProvider writes exports below a local directory served under
// /exports.
type LocalExportProvider struct {
	Config *config.ExportConfig
}

func (p *LocalExportProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *LocalExportProvider) Delete(ctx context.Context, filename string) error {
	return os.Remove(filepath.Join(p.Config.LocalPath, filepath.FromSlash(filename)))
}

func (p *LocalExportProvider) GetURL(filename string) string {
	return "/exports/" + filename
}

type MinioExportProvider struct {
	Config *config.ExportConfig
	Client *minio.Client
}

func NewMinioExportProvider(cfg *config.ExportConfig) (*MinioExportProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioExportProvider{Config: cfg, Client: client}, nil
}

func (p *MinioExportProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioExportProvider) Delete(ctx context.Context, filename string) error {
	return p.Client.RemoveObject(ctx, p.Config.MinioBucket, filename, minio.RemoveObjectOptions{})
}

func (p *MinioExportProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

type OSSExportProvider struct {
	Config *config.ExportConfig
	Client *oss.Client
}

func NewOSSExportProvider(cfg *config.ExportConfig) (*OSSExportProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &OSSExportProvider{Config: cfg, Client: client}, nil
}

func (p *OSSExportProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(filename, reader, oss.ContentType(contentType)); err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *OSSExportProvider) Delete(ctx context.Context, filename string) error {
	bucket, err := p.Client.Bucket(p.Config.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(filename)
}

func (p *OSSExportProvider) GetURL(filename string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.Config.OSSBucket, p.Config.OSSEndpoint, filename)
}

// ExportStorage picks the provider named by export.type. A remote provider
// that cannot be configured falls back to local storage.
type ExportStorage struct {
	Provider ExportProvider
}

func NewExportStorage(cfg *config.ExportConfig) *ExportStorage {
	var provider ExportProvider
	switch cfg.Type {
	case util.StorageMinio:
		p, err := NewMinioExportProvider(cfg)
		if err != nil {
			logger.Log.Warn("MinIO export storage unavailable, using local storage", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := NewOSSExportProvider(cfg)
		if err != nil {
			logger.Log.Warn("OSS export storage unavailable, using local storage", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalExportProvider{Config: cfg}
	}
	return &ExportStorage{Provider: provider}
}

func (s *ExportStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, filename, reader, size, contentType)
}

func (s *ExportStorage) Delete(ctx context.Context, filename string) error {
	return s.Provider.Delete(ctx, filename)
}
