package services

import (
	"context"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"gym_backend/internal/imageprocessor"
	"gym_backend/internal/logger"
	"gym_backend/internal/storage"
	"gym_backend/pkg/apperrors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const avatarDir = "avatars"

// UploadConfig - ограничения на загружаемые файлы
type UploadConfig struct {
	MaxFileSize  int64
	AllowedTypes []string
}

type UploadService interface {
	// SaveAvatar проверяет, уменьшает и сохраняет фото; возвращает путь для profilePic
	SaveAvatar(ctx context.Context, file *multipart.FileHeader) (string, error)
	// DeleteAvatar удаляет ранее сохраненный аватар по его URL
	DeleteAvatar(ctx context.Context, url string) error
}

type uploadService struct {
	storage   storage.Storage
	processor *imageprocessor.Processor
	config    UploadConfig
}

func NewUploadService(storage storage.Storage, processor *imageprocessor.Processor, config UploadConfig) UploadService {
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 5 * 1024 * 1024
	}
	if len(config.AllowedTypes) == 0 {
		config.AllowedTypes = []string{"image/jpeg", "image/png"}
	}
	return &uploadService{
		storage:   storage,
		processor: processor,
		config:    config,
	}
}

func (s *uploadService) SaveAvatar(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.config.MaxFileSize {
		return "", apperrors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	defer src.Close()

	// Content-Type из формы не доверяем, смотрим на содержимое
	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	if !s.allowed(mtype.String()) {
		return "", apperrors.ErrInvalidFileType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", apperrors.InternalError(err)
	}

	img, err := s.processor.Avatar(src)
	if err != nil {
		return "", apperrors.ErrInvalidFileType.WithError(err)
	}

	path := avatarDir + "/" + uuid.New().String() + img.Extension
	if err := s.storage.Save(ctx, path, img.Data, img.ContentType); err != nil {
		logger.CtxError(ctx, "Failed to store avatar", "path", path, "error", err)
		return "", apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Avatar stored", "path", path, "original", file.Filename, "size", file.Size)
	return s.storage.URL(path), nil
}

func (s *uploadService) DeleteAvatar(ctx context.Context, url string) error {
	idx := strings.Index(url, avatarDir+"/")
	if idx < 0 {
		return nil
	}
	path := url[idx:]
	if filepath.Base(path) == avatarDir {
		return nil
	}
	return s.storage.Delete(ctx, path)
}

func (s *uploadService) allowed(mimeType string) bool {
	for _, t := range s.config.AllowedTypes {
		if strings.EqualFold(mimeType, t) {
			return true
		}
	}
	return false
}
