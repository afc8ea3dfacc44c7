package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/normalize"
)

// utf8Flag is general purpose bit 11: the entry name is UTF-8.
const utf8Flag = 0x800

// Archive is an opened ZIP archive with its name corrections.
type Archive struct {
	path    string
	decoder *Decoder
	names   Names
	reader  *zip.Reader
}

// Image is a dish image entry of an archive.
type Image struct {
	// Path is the corrected path inside the archive.
	Path string
	// Name is the corrected base name, extension included.
	Name string
	// Stem is Name without its image extension, trimmed.
	Stem string
	// Ext is the lowercase extension including the dot.
	Ext string

	file *zip.File
}

// Open reads the archive at path into memory and scans its central
// directory. A path that does not exist yields a MissingSourceError.
func Open(path string, opts ...Option) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewMissingSourceError("archive", path, err)
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return Read(path, data, opts...)
}

// Read parses an archive already held in memory. name is used in errors.
func Read(name string, data []byte, opts ...Option) (*Archive, error) {
	d, err := NewDecoder(opts...)
	if err != nil {
		return nil, err
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.WrapParse("zip", name, err)
	}

	return &Archive{
		path:    name,
		decoder: d,
		names:   d.Scan(data),
		reader:  zr,
	}, nil
}

// Path returns the file the archive was read from.
func (a *Archive) Path() string {
	return a.path
}

// Names returns the legacy to regional name map.
func (a *Archive) Names() Names {
	return a.names
}

// Corrections lists the names the archive needed fixing.
func (a *Archive) Corrections() []Correction {
	return a.names.Corrections()
}

// Images lists image entries in archive order.
func (a *Archive) Images() []Image {
	var images []Image
	for _, f := range a.reader.File {
		name := a.entryName(f)
		if f.FileInfo().IsDir() || strings.HasSuffix(name, "/") {
			continue
		}
		base := path.Base(name)
		if !normalize.IsImage(base) {
			continue
		}
		images = append(images, Image{
			Path: name,
			Name: base,
			Stem: normalize.Stem(base),
			Ext:  strings.ToLower(path.Ext(base)),
			file: f,
		})
	}
	return images
}

// Member opens the first entry whose corrected base name equals name.
func (a *Archive) Member(name string) (io.ReadCloser, error) {
	for _, f := range a.reader.File {
		if path.Base(a.entryName(f)) == name {
			return f.Open()
		}
	}
	return nil, errors.NewMissingSourceError("markup", a.path+"!"+name, nil)
}

// entryName returns the corrected name of f. Names without the UTF-8 flag
// are decoded with the legacy code page first, as an unpacker would.
func (a *Archive) entryName(f *zip.File) string {
	name := f.Name
	if f.Flags&utf8Flag == 0 && !(utf8.ValidString(name) && !isASCII(name)) {
		name = a.decoder.Legacy([]byte(name))
	}
	return a.names.Resolve(name)
}

// Open returns a reader over the image bytes.
func (img Image) Open() (io.ReadCloser, error) {
	if img.file == nil {
		return nil, errors.NewNotFoundError("image", img.Path)
	}
	return img.file.Open()
}

// Format detects the image format from its content. It returns jpg, jpeg
// or png, keeping the extension's spelling when content and extension agree.
func (img Image) Format() string {
	ext := strings.TrimPrefix(img.Ext, ".")

	rc, err := img.Open()
	if err != nil {
		return ext
	}
	defer func() { _ = rc.Close() }()

	mt, err := mimetype.DetectReader(rc)
	if err != nil {
		return ext
	}
	switch {
	case mt.Is("image/png"):
		return "png"
	case mt.Is("image/jpeg"):
		if ext == "jpeg" {
			return ext
		}
		return "jpg"
	default:
		return ext
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
