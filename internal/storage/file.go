package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/filex"
)

const documentExt = ".json"

// FileBackend keeps each document in <dir>/<name>.json.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) Dir() string { return b.dir }

// Path returns the file backing the named document.
func (b *FileBackend) Path(name string) string {
	return filepath.Join(b.dir, name+documentExt)
}

func (b *FileBackend) Ensure(ctx context.Context, name string, initial []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := filex.EnsureDir(b.dir); err != nil {
		return false, fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}

	path := b.Path(name)
	ok, err := filex.Exists(path)
	if err != nil {
		return false, fmt.Errorf("%w: stat %s: %w", common.ErrorStorageUnavailable, path, err)
	}
	if ok {
		return false, nil
	}

	if err := filex.WriteFileAtomic(path, initial, 0o600); err != nil {
		return false, fmt.Errorf("%w: init %s: %w", common.ErrorStorageUnavailable, path, err)
	}
	return true, nil
}

func (b *FileBackend) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := b.Path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrorDocumentMissing, path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrorStorageUnavailable, path, err)
	}
	return data, nil
}

func (b *FileBackend) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := b.Path(name)
	if err := filex.WriteFileAtomic(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrorStorageUnavailable, path, err)
	}
	return nil
}

func (b *FileBackend) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: list %s: %w", common.ErrorStorageUnavailable, b.dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || filepath.Ext(n) != documentExt {
			continue
		}
		names = append(names, strings.TrimSuffix(n, documentExt))
	}
	sort.Strings(names)
	return names, nil
}
