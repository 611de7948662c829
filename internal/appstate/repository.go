// Package appstate keeps the small per-device flags that live outside the
// record collections: onboarding completion, lock screen method and PIN,
// and the focus timer state. Each flag is one whole file in the data
// directory.
package appstate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/pocketkeeper/internal/common"
	"github.com/dmitrijs2005/pocketkeeper/internal/filex"
)

// Flag file names.
const (
	KeyOnboarding = "onboarding_completed.txt"
	KeyAuthMethod = "auth_method.txt"
	KeyPIN        = "user_pin.txt"
	KeyTimer      = "timer_state.json"
)

// Repository is a key/value store of whole values. Get returns nil, nil
// for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// FileRepository stores each key as a file named after it.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, filepath.Base(key))
}

func (r *FileRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %w", common.ErrorStorageUnavailable, key, err)
	}
	return data, nil
}

func (r *FileRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := filex.EnsureDir(r.dir); err != nil {
		return fmt.Errorf("%w: %w", common.ErrorStorageUnavailable, err)
	}
	if err := filex.WriteFileAtomic(r.path(key), value, 0o600); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrorStorageUnavailable, key, err)
	}
	return nil
}

func (r *FileRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(r.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: failed to delete %s: %w", common.ErrorStorageUnavailable, key, err)
	}
	return nil
}
