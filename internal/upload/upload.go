// Package upload сохраняет картинки из форм в фиксированную директорию.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Storage struct {
	dir string
}

func NewStorage(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории загрузок: %w", err)
	}
	return &Storage{dir: dir}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

// Save пишет файл на диск и возвращает имя для записи в БД.
// Ключ хранения = uuid + очищенное имя клиента, коллизии исключены.
func (s *Storage) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(header.Filename)
	stored := uuid.NewString() + "_" + name

	dst, err := os.Create(filepath.Join(s.dir, stored))
	if err != nil {
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("ошибка записи файла: %w", err)
	}

	return stored, nil
}

// Remove убирает сохраненный файл, если вставка в БД не удалась
func (s *Storage) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	return os.Remove(filepath.Join(s.dir, filepath.Base(stored)))
}

// SanitizeFilename оставляет от клиентского имени только безопасную часть:
// без путей, без спецсимволов
func SanitizeFilename(filename string) string {
	// клиент может прислать путь в любом стиле
	filename = filepath.Base(strings.ReplaceAll(filename, "\\", "/"))

	var b strings.Builder
	for _, r := range filename {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	name := strings.Trim(b.String(), "._")
	if name == "" {
		return "file"
	}

	return name
}
