// Package cachedir keeps ingested sources and their processed text in a
// per-kind directory tree under the data home:
//
//	cache/source/{trans,pdf,epub,txt}
//	cache/proc/{trans,pdf,epub,txt}
package cachedir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/encephalon/internal/core/domain"
	"github.com/custodia-labs/encephalon/internal/core/ports/driven"
)

// Ensure Workspace implements the interface.
var _ driven.Workspace = (*Workspace)(nil)

const (
	sourceDir    = "source"
	processedDir = "proc"
)

// Workspace is the cache tree rooted at a directory.
type Workspace struct {
	root string
}

// New creates the cache tree under root, usually <data_home>/cache.
func New(root string) (*Workspace, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve cache root: %w", err)
	}
	for _, tree := range []string{sourceDir, processedDir} {
		for _, kind := range domain.AllKinds() {
			dir := filepath.Join(root, tree, kind.CacheDir())
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
			}
		}
	}
	return &Workspace{root: root}, nil
}

// Root returns the cache root.
func (w *Workspace) Root() string {
	return w.root
}

// PreserveSource copies the file at path into source/<kind>, keeping its
// base name and modification time.
func (w *Workspace) PreserveSource(kind domain.DocumentKind, path string) (string, error) {
	dst := w.path(sourceDir, kind, filepath.Base(path))

	srcAbs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if srcAbs == dst {
		return dst, nil
	}

	if err := copyFile(srcAbs, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// WriteSourceNote writes body to source/<kind>/<name>.
func (w *Workspace) WriteSourceNote(kind domain.DocumentKind, name, body string) (string, error) {
	return w.write(w.path(sourceDir, kind, name), body)
}

// WriteProcessed writes body to proc/<kind>/<name>.
func (w *Workspace) WriteProcessed(kind domain.DocumentKind, name, body string) (string, error) {
	return w.write(w.path(processedDir, kind, name), body)
}

func (w *Workspace) path(tree string, kind domain.DocumentKind, name string) string {
	return filepath.Join(w.root, tree, kind.CacheDir(), filepath.Base(name))
}

func (w *Workspace) write(path, body string) (string, error) {
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %w", src, domain.ErrInvalidInput)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
