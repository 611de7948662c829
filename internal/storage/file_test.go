package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBackend_Contract(t *testing.T) {
	exerciseBackend(t, NewFileBackend(filepath.Join(t.TempDir(), "data")))
}

func TestFileBackend_WritesNamedJSONFiles(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)
	ctx := context.Background()

	_, err := b.Ensure(ctx, "transactions", []byte("[]"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "transactions.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, filepath.Join(dir, "transactions.json"), b.Path("transactions"))
}

func TestFileBackend_NamesIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("[]"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user_pin.txt"), []byte("1234"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tasks.json.123.tmp"), []byte("["), 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o700))

	names, err := NewFileBackend(dir).Names(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks"}, names)
}

func TestFileBackend_NamesOnMissingDir(t *testing.T) {
	names, err := NewFileBackend(filepath.Join(t.TempDir(), "absent")).Names(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestFileBackend_UnavailableDirectory(t *testing.T) {
	// a regular file where the directory should be
	blocker := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	b := NewFileBackend(blocker)
	_, err := b.Ensure(context.Background(), "notes", []byte("[]"))
	require.ErrorIs(t, err, common.ErrorStorageUnavailable)

	err = b.Save(context.Background(), "notes", []byte("[]"))
	require.ErrorIs(t, err, common.ErrorStorageUnavailable)
}

func TestFileBackend_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewFileBackend(t.TempDir())
	_, err := b.Load(ctx, "notes")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, b.Save(ctx, "notes", nil), context.Canceled)
}
