// Package assets writes dish images into the front end's asset directory.
package assets

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/normalize"
)

// Source is anything that can be opened for its image bytes.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Writer copies images into one directory.
type Writer struct {
	dir    string
	dryRun bool
}

// Option configures a Writer.
type Option func(*Writer)

// WithDryRun makes the writer report what it would do without touching the
// filesystem.
func WithDryRun(enabled bool) Option {
	return func(w *Writer) {
		w.dryRun = enabled
	}
}

// New creates a writer for dir.
func New(dir string, opts ...Option) *Writer {
	w := &Writer{dir: dir}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the target directory.
func (w *Writer) Dir() string {
	return w.dir
}

// FileName returns the safe file name for a dish image.
func FileName(dish, ext string) string {
	return normalize.SafeFilename(dish, ext)
}

// Ref returns the catalog reference of an asset file.
func Ref(file string) string {
	return path.Join(constants.AssetsRef, file)
}

// Clear removes the regular files directly inside the directory and returns
// how many there were. Subdirectories are left alone. A missing directory
// is not an error.
func (w *Writer) Clear() (int, error) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, errors.WrapIO("read", w.dir, err)
	}

	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		removed++
		if w.dryRun {
			continue
		}
		p := filepath.Join(w.dir, e.Name())
		if err := os.Remove(p); err != nil {
			return removed - 1, errors.WrapIO("delete", p, err)
		}
	}

	logging.Debug().
		Str("dir", w.dir).
		Int("removed", removed).
		Bool("dry_run", w.dryRun).
		Msg("Cleared asset directory")
	return removed, nil
}

// Write copies src to file inside the directory, replacing an existing
// file of that name. It returns the catalog reference of the file.
func (w *Writer) Write(file string, src Source) (string, error) {
	ref := Ref(file)
	if w.dryRun {
		return ref, nil
	}

	if err := os.MkdirAll(w.dir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", w.dir, err)
	}

	rc, err := src.Open()
	if err != nil {
		return "", errors.WrapResource("open", "image", file, err)
	}
	defer func() { _ = rc.Close() }()

	target := filepath.Join(w.dir, file)
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return "", errors.WrapIO("create", target, err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return "", errors.WrapIO("write", target, err)
	}
	if err := out.Close(); err != nil {
		return "", errors.WrapIO("close", target, err)
	}
	return ref, nil
}
