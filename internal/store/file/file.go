// Package file stores each collection as <dir>/<collection>.json.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/utafrali/LocalBizGo/internal/store"
)

const fileMode = 0o644

// Backend implements store.Backend on a local directory. Writes go to a
// temporary file that is renamed over the target, so a crash never leaves a
// truncated collection behind. It does not coordinate between processes.
type Backend struct {
	dir string
}

// New returns a backend rooted at dir, creating the directory if needed.
func New(dir string) (*Backend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Backend{dir: dir}, nil
}

// Path returns the file that holds collection.
func (b *Backend) Path(collection string) string {
	return filepath.Join(b.dir, collection+".json")
}

func (b *Backend) Load(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(b.Path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (b *Backend) Save(_ context.Context, collection string, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, "."+collection+"-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, fileMode); err != nil {
		return err
	}
	return os.Rename(tmpName, b.Path(collection))
}

// Ping verifies the data directory is still there.
func (b *Backend) Ping(_ context.Context) error {
	info, err := os.Stat(b.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", b.dir)
	}
	return nil
}

func (b *Backend) Close() error { return nil }
