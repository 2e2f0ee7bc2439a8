package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/h2non/filetype"

	"github.com/skillswap/backend/internal/pkg/apperror"
)

const avatarsDir = "avatars"

// Форматы, которые умеет декодировать imaging.
var allowedAvatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
}

// AvatarStorage хранит аватары на диске, уменьшенные до size×size.
type AvatarStorage struct {
	rootPath       string
	maxUploadBytes int64
	size           int
}

// NewAvatarStorage создаёт файловое хранилище аватаров.
func NewAvatarStorage(rootPath string, maxUploadMB int64, size int) (*AvatarStorage, error) {
	if err := os.MkdirAll(filepath.Join(rootPath, avatarsDir), 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	if size <= 0 {
		size = 300
	}
	return &AvatarStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
		size:           size,
	}, nil
}

// SaveAvatar проверяет содержимое по сигнатуре, вписывает изображение в квадрат
// и сохраняет его как JPEG. Возвращает путь относительно корня хранилища.
func (s *AvatarStorage) SaveAvatar(ctx context.Context, userID uuid.UUID, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("storage: ошибка чтения файла: %w", err)
	}
	if len(data) == 0 {
		return "", apperror.New(apperror.ErrCodeValidation, "файл не может быть пустым")
	}
	if int64(len(data)) > s.maxUploadBytes {
		return "", apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("размер файла превышает лимит %d байт", s.maxUploadBytes))
	}

	kind, err := filetype.Match(data)
	if err != nil || !allowedAvatarTypes[kind.MIME.Value] {
		return "", apperror.New(apperror.ErrCodeValidation, "неподдерживаемый формат изображения")
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodeValidation, "не удалось прочитать изображение")
	}
	thumb := imaging.Fit(img, s.size, s.size, imaging.Lanczos)

	userDir := filepath.Join(s.rootPath, avatarsDir, userID.String())
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: не удалось создать каталог пользователя: %w", err)
	}

	fileName := fmt.Sprintf("%d.jpg", time.Now().UnixNano())
	targetPath := filepath.Join(userDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	if err := imaging.Encode(f, thumb, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		f.Close()
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка записи файла: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	return filepath.ToSlash(filepath.Join(avatarsDir, userID.String(), fileName)), nil
}

// Delete удаляет файл из хранилища.
func (s *AvatarStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if relativePath == "" {
		return nil
	}

	target := filepath.Join(s.rootPath, filepath.Clean("/"+relativePath))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// Root каталог, который раздаётся как статика.
func (s *AvatarStorage) Root() string {
	return s.rootPath
}
