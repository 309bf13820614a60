package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage - хранилище загруженных файлов (аватары, фото оборудования)
type Storage interface {
	// Save сохраняет файл по относительному пути (например avatars/<uuid>.jpg)
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Delete удаляет файл; отсутствие файла не ошибка
	Delete(ctx context.Context, path string) error

	Exists(ctx context.Context, path string) (bool, error)

	// URL - публичный путь, который сохраняется в profilePic
	URL(path string) string
}

// Config - настройки хранилища
type Config struct {
	Type      string // local, s3, cloudflare_r2
	BasePath  string // для local
	BaseURL   string // публичный префикс URL
	Bucket    string // для S3/R2
	Region    string // для S3
	AccessKey string
	SecretKey string
	Endpoint  string // для R2 или совместимого S3
}

// NewStorage создает хранилище по типу из конфигурации
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local", "":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}
