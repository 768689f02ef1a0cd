package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// FileStore хранит ключи одним json файлом. Отсутствующий файл - пустое хранилище.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil { //nolint:mnd
		return nil, fmt.Errorf("session store: %s", err.Error())
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("load session: %s", err.Error())
	}

	values := make(map[string]string)
	if jsonErr := json.Unmarshal(raw, &values); jsonErr != nil {
		return nil, fmt.Errorf("load session: %s", jsonErr.Error())
	}
	return values, nil
}

// Save пишет ключи во временный файл и переименовывает его, так что файл на диске всегда целый.
func (f *FileStore) Save(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("save session: %s", err.Error())
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("save session: %s", err.Error())
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("save session: %s", err.Error())
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save session: %s", err.Error())
	}
	if err = os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("save session: %s", err.Error())
	}
	return nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %s", err.Error())
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

// MemoryStore хранилище в памяти процесса.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	closed bool
}

func NewMemoryStore(initial map[string]string) *MemoryStore {
	return &MemoryStore{values: maps.Clone(initial)}
}

func (m *MemoryStore) Load(_ context.Context) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	values := maps.Clone(m.values)
	if values == nil {
		values = map[string]string{}
	}
	return values, nil
}

func (m *MemoryStore) Save(_ context.Context, values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = maps.Clone(values)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = nil
	return nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed закрыто ли хранилище через Close.
func (m *MemoryStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
