package catalogs

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
)

// Load reads a catalog snapshot from path. A missing file yields a
// MissingSourceError for the "catalog" source.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewMissingSourceError("catalog", path, err)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	cat, err := read(path, f)
	if err != nil {
		return nil, err
	}

	logging.Debug().
		Str("path", path).
		Int("dishes", cat.Len()).
		Msg("Loaded catalog")
	return cat, nil
}

// Read decodes a catalog snapshot from r.
func Read(r io.Reader) (*Catalog, error) {
	return read("", r)
}

func read(name string, r io.Reader) (*Catalog, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.WrapParse("json", name, err)
	}
	return FromSnapshot(s)
}

// Marshal encodes the snapshot of the catalog as indented JSON with
// non-ASCII text kept literal.
func (c *Catalog) Marshal(order Ordering) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Write(&buf, order); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the snapshot of the catalog to w.
func (c *Catalog) Write(w io.Writer, order Ordering) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Snapshot(order)); err != nil {
		return errors.WrapResource("encode", "catalog", "", err)
	}
	return nil
}

// Save writes the snapshot to path atomically: a temporary file in the same
// directory is renamed over the target once fully written.
func (c *Catalog) Save(path string, order Ordering) error {
	data, err := c.Marshal(order)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return errors.WrapIO("rename", path, err)
	}

	logging.Debug().
		Str("path", path).
		Int("dishes", c.Len()).
		Str("order", order.String()).
		Msg("Saved catalog")
	return nil
}
