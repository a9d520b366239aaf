package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/util"
	"learnhub_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider abstracts where uploaded media ends up.
type StorageProvider interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	UploadFile(ctx context.Context, objectName string, localPath string, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	URL(objectName string) string
}

type StorageService struct {
	Provider StorageProvider
}

// NewStorageService picks the provider from config, falling back to local
// disk when the remote backend cannot be reached.
func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	switch cfg.Storage.Type {
	case util.StorageMinio:
		p, err := newMinioProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("MinIO unavailable, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	case util.StorageOSS:
		p, err := newOSSProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("OSS unavailable, falling back to local storage", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &localProvider{root: cfg.Storage.LocalPath}
	}
	return &StorageService{Provider: provider}
}

func (s *StorageService) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Upload(ctx, objectName, reader, size, contentType)
}

func (s *StorageService) UploadFile(ctx context.Context, objectName, localPath, contentType string) (string, error) {
	return s.Provider.UploadFile(ctx, objectName, localPath, contentType)
}

func (s *StorageService) Delete(ctx context.Context, objectName string) error {
	return s.Provider.Delete(ctx, objectName)
}

func (s *StorageService) URL(objectName string) string {
	return s.Provider.URL(objectName)
}

type localProvider struct {
	root string
}

func (p *localProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.root, objectName)
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
	return p.URL(objectName), nil
}

func (p *localProvider) UploadFile(ctx context.Context, objectName, localPath, contentType string) (string, error) {
	dst := filepath.Join(p.root, objectName)
	if localPath == dst {
		return p.URL(objectName), nil
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	return p.Upload(ctx, objectName, src, -1, contentType)
}

func (p *localProvider) Delete(ctx context.Context, objectName string) error {
	return os.Remove(filepath.Join(p.root, objectName))
}

func (p *localProvider) URL(objectName string) string {
	return "/uploads/" + objectName
}

type minioProvider struct {
	cfg    *config.StorageConfig
	client *minio.Client
}

func newMinioProvider(cfg *config.StorageConfig) (*minioProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &minioProvider{cfg: cfg, client: client}, nil
}

func (p *minioProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.client.PutObject(ctx, p.cfg.MinioBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *minioProvider) UploadFile(ctx context.Context, objectName, localPath, contentType string) (string, error) {
	_, err := p.client.FPutObject(ctx, p.cfg.MinioBucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *minioProvider) Delete(ctx context.Context, objectName string) error {
	return p.client.RemoveObject(ctx, p.cfg.MinioBucket, objectName, minio.RemoveObjectOptions{})
}

func (p *minioProvider) URL(objectName string) string {
	return "/" + p.cfg.MinioBucket + "/" + objectName
}

type ossProvider struct {
	cfg    *config.StorageConfig
	client *oss.Client
}

func newOSSProvider(cfg *config.StorageConfig) (*ossProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	return &ossProvider{cfg: cfg, client: client}, nil
}

func (p *ossProvider) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	bucket, err := p.client.Bucket(p.cfg.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObject(objectName, reader); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *ossProvider) UploadFile(ctx context.Context, objectName, localPath, contentType string) (string, error) {
	bucket, err := p.client.Bucket(p.cfg.OSSBucket)
	if err != nil {
		return "", err
	}
	if err := bucket.PutObjectFromFile(objectName, localPath); err != nil {
		return "", err
	}
	return p.URL(objectName), nil
}

func (p *ossProvider) Delete(ctx context.Context, objectName string) error {
	bucket, err := p.client.Bucket(p.cfg.OSSBucket)
	if err != nil {
		return err
	}
	return bucket.DeleteObject(objectName)
}

func (p *ossProvider) URL(objectName string) string {
	return fmt.Sprintf("https://%s.%s/%s", p.cfg.OSSBucket, p.cfg.OSSEndpoint, objectName)
}
