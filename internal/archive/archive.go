package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archiver сохраняет готовые отчёты по ключу
type Archiver interface {
	Put(ctx context.Context, key string, body []byte) error
}

// FS архив в локальном каталоге
type FS struct {
	dir string
}

func NewFS(dir string) *FS {
	return &FS{dir: dir}
}

func (f *FS) Put(_ context.Context, key string, body []byte) error {
	path := filepath.Join(f.dir, filepath.FromSlash(key))
	rel, err := filepath.Rel(f.dir, path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("archive key %q escapes %s", key, f.dir)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
