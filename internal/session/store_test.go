package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	ctx := t.Context()

	t.Run("missing file is empty", func(t *testing.T) {
		values, loadErr := store.Load(ctx)
		require.NoError(t, loadErr)
		assert.Empty(t, values)
	})

	t.Run("save replaces whole key set", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, map[string]string{KeyRole: "USER", KeyToken: "a"}))
		require.NoError(t, store.Save(ctx, map[string]string{KeyRole: "ADMIN"}))

		values, loadErr := store.Load(ctx)
		require.NoError(t, loadErr)
		assert.Equal(t, map[string]string{KeyRole: "ADMIN"}, values)

		// временные файлы не остаются.
		entries, readErr := os.ReadDir(filepath.Dir(path))
		require.NoError(t, readErr)
		assert.Len(t, entries, 1)
	})

	t.Run("clear removes file", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		_, statErr := os.Stat(path)
		require.ErrorIs(t, statErr, os.ErrNotExist)

		// повторная очистка не ошибка.
		require.NoError(t, store.Clear(ctx))
	})

	t.Run("corrupted file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
		_, loadErr := store.Load(ctx)
		require.Error(t, loadErr)
	})

	require.NoError(t, store.Close())
}

func TestMemoryStoreCopies(t *testing.T) {
	initial := map[string]string{KeyRole: "USER"}
	store := NewMemoryStore(initial)
	initial[KeyRole] = "ADMIN"

	values, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "USER", values[KeyRole])

	values[KeyRole] = "ADMIN"
	again, err := store.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "USER", again[KeyRole])
}
