// Package uploads хранение загруженных пользователями файлов (аватаров) на локальном диске.
package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	DefaultURLPrefix = "/uploads"
	// DefaultMaxSize предельный размер аватара.
	DefaultMaxSize int64 = 2 << 20
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file is too large")
)

var allowedAvatarTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"} //nolint:gochecknoglobals

type Storage struct {
	dir       string
	urlPrefix string
	maxSize   int64
	now       func() time.Time
}

// New создает хранилище в директории dir, создавая ее при необходимости.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Storage{
		dir:       dir,
		urlPrefix: DefaultURLPrefix,
		maxSize:   DefaultMaxSize,
		now:       time.Now,
	}, nil
}

func (s *Storage) Dir() string {
	return s.dir
}

func (s *Storage) URLPrefix() string {
	return s.urlPrefix
}

// SaveAvatar проверяет тип содержимого по сигнатуре и сохраняет файл. Возвращает публичный URL файла.
// Для не картинок возвращает ErrUnsupportedType, для файлов больше лимита ErrTooLarge.
//
//nolint:nonamedreturns
func (s *Storage) SaveAvatar(fh *multipart.FileHeader) (url string, err error) {
	if fh.Size > s.maxSize {
		return "", ErrTooLarge
	}

	src, openErr := fh.Open()
	if openErr != nil {
		return "", fmt.Errorf("open upload: %w", openErr)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	mtype, detectErr := mimetype.DetectReader(src)
	if detectErr != nil {
		return "", fmt.Errorf("detect upload type: %w", detectErr)
	}
	if !mimetype.EqualsAny(mtype.String(), allowedAvatarTypes...) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mtype.String())
	}
	if _, seekErr := src.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("rewind upload: %w", seekErr)
	}

	name := fmt.Sprintf("%d-avatar-%s%s", s.now().UnixMilli(), uuid.NewString(), mtype.Extension())
	if writeErr := s.write(name, src); writeErr != nil {
		return "", writeErr
	}
	return path.Join(s.urlPrefix, name), nil
}

// Remove удаляет файл по его публичному URL. URL вне хранилища игнорируются.
func (s *Storage) Remove(url string) error {
	name, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || name == "" || strings.ContainsAny(name, `/\`) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// write пишет во временный файл и переименовывает его, чтобы не оставлять недописанные файлы.
func (s *Storage) write(name string, src io.Reader) error {
	tmp, createErr := os.CreateTemp(s.dir, ".upload-*")
	if createErr != nil {
		return fmt.Errorf("create upload: %w", createErr)
	}
	tmpName := tmp.Name()

	_, copyErr := io.Copy(tmp, io.LimitReader(src, s.maxSize+1))
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write upload: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}
