package service

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"quizdom_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage 报表文件的落盘抽象，返回值为可供排障使用的存储位置。
type Storage interface {
	Save(ctx context.Context, name string, content []byte, contentType string) (string, error)
}

// NewStorage 按配置选择本地目录或 MinIO。
func NewStorage(cfg config.StorageConfig) (Storage, error) {
	if cfg.Type == "minio" {
		return NewMinioStorage(cfg)
	}
	return NewLocalStorage(cfg.LocalPath)
}

type LocalStorage struct {
	base string
}

func NewLocalStorage(base string) (*LocalStorage, error) {
	if base == "" {
		base = "exports"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{base: base}, nil
}

func (s *LocalStorage) Save(_ context.Context, name string, content []byte, _ string) (string, error) {
	path := filepath.Join(s.base, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(cfg config.StorageConfig) (*MinioStorage, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds: credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
	})
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}

	return &MinioStorage{client: client, bucket: cfg.MinioBucket}, nil
}

func (s *MinioStorage) Save(ctx context.Context, name string, content []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", s.bucket, name), nil
}
