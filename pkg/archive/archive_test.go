package archive_test

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/pkg/archive"
	"github.com/agentstation/menumap/pkg/errors"
)

// "блины" in windows-1251.
var blinyCP1251 = []byte{0xe1, 0xeb, 0xe8, 0xed, 0xfb}

// "блины" in cp866.
var blinyCP866 = []byte{0xa1, 0xab, 0xa8, 0xad, 0xeb}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

var jpegHeader = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

type entry struct {
	name []byte
	body []byte
}

// buildZip writes entries without the UTF-8 flag so raw name bytes survive.
func buildZip(t *testing.T, entries ...entry) []byte {
	t.Helper()
	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:    string(e.name),
			Method:  zip.Store,
			NonUTF8: true,
		})
		require.NoError(t, err)
		_, err = w.Write(e.body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func name(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}

func TestScanWindows1251(t *testing.T) {
	data := buildZip(t, entry{name: name(blinyCP1251, []byte(".jpg")), body: jpegHeader})

	names := archive.Scan(data)
	require.Equal(t, 1, names.Len())

	legacy := names.Corrections()[0].Legacy
	assert.Equal(t, "ßδΦφ√.jpg", legacy)
	assert.Equal(t, "блины.jpg", names.Resolve(legacy))
}

func TestScanCP866(t *testing.T) {
	data := buildZip(t, entry{name: name(blinyCP866, []byte(".png")), body: pngHeader})

	d, err := archive.NewDecoder(archive.WithRegionalEncoding("cp866"))
	require.NoError(t, err)

	names := d.Scan(data)
	require.Equal(t, 1, names.Len())
	c := names.Corrections()[0]
	assert.Equal(t, "блины.png", c.Regional)
	assert.Equal(t, c.Regional, names.Resolve(c.Legacy))
}

func TestScanSkipsASCIIAndDirectories(t *testing.T) {
	data := buildZip(t,
		entry{name: []byte("photo.jpg"), body: jpegHeader},
		entry{name: name(blinyCP1251, []byte("/"))},
	)

	names := archive.Scan(data)
	assert.Zero(t, names.Len())
	assert.Equal(t, "photo.jpg", names.Resolve("photo.jpg"))
}

func TestScanMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "signature only", data: []byte("PK\x01\x02")},
		{name: "short record", data: append([]byte("PK\x01\x02"), make([]byte, 20)...)},
		{name: "name longer than buffer", data: func() []byte {
			rec := append([]byte("PK\x01\x02"), make([]byte, 42)...)
			rec[28] = 0xff
			return append(rec, blinyCP1251...)
		}()},
		{name: "zero length name", data: append([]byte("PK\x01\x02"), make([]byte, 60)...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, archive.Scan(tt.data).Len())
		})
	}
}

func TestScanContinuesAfterMalformedRecord(t *testing.T) {
	// a truncated record followed by a valid one
	bad := append([]byte("PK\x01\x02"), make([]byte, 10)...)
	good := append([]byte("PK\x01\x02"), make([]byte, 42)...)
	good[28] = byte(len(blinyCP1251))
	good = append(good, blinyCP1251...)

	names := archive.Scan(append(bad, good...))
	require.Equal(t, 1, names.Len())
	assert.Equal(t, "блины", names.Corrections()[0].Regional)
}

func TestZeroNamesResolve(t *testing.T) {
	var names archive.Names
	assert.Equal(t, "x", names.Resolve("x"))
	assert.Empty(t, names.Corrections())
}

func TestEncoding(t *testing.T) {
	for _, n := range []string{"cp437", "CP866", "ibm866", "windows-1251", "koi8-r", "ISO-8859-5"} {
		enc, err := archive.Encoding(n)
		require.NoError(t, err, n)
		assert.NotNil(t, enc, n)
	}

	_, err := archive.Encoding("klingon")
	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestOpenMissing(t *testing.T) {
	_, err := archive.Open(filepath.Join(t.TempDir(), "absent.zip"))
	require.Error(t, err)
	assert.True(t, errors.IsMissingSource(err))
}

func TestImages(t *testing.T) {
	data := buildZip(t,
		entry{name: name([]byte("photos/"), blinyCP1251, []byte(".JPG")), body: jpegHeader},
		entry{name: []byte("photos/Salad Stefan.jpeg"), body: pngHeader},
		entry{name: []byte("SapiensKitchen.html"), body: []byte("<html></html>")},
		entry{name: []byte("photos/"), body: nil},
	)
	path := filepath.Join(t.TempDir(), "menu.zip")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	a, err := archive.Open(path)
	require.NoError(t, err)

	images := a.Images()
	require.Len(t, images, 2)

	assert.Equal(t, "photos/блины.JPG", images[0].Path)
	assert.Equal(t, "блины.JPG", images[0].Name)
	assert.Equal(t, "блины", images[0].Stem)
	assert.Equal(t, ".jpg", images[0].Ext)
	assert.Equal(t, "jpg", images[0].Format())

	assert.Equal(t, "Salad Stefan", images[1].Stem)
	// content wins over the extension
	assert.Equal(t, "png", images[1].Format())

	rc, err := images[0].Open()
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, jpegHeader, body)

	assert.Len(t, a.Corrections(), 1)
}

func TestMember(t *testing.T) {
	data := buildZip(t, entry{name: []byte("docs/SapiensKitchen.html"), body: []byte("<h4>x</h4>")})
	a, err := archive.Read("mem.zip", data)
	require.NoError(t, err)

	rc, err := a.Member("SapiensKitchen.html")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "<h4>x</h4>", string(body))

	_, err = a.Member("absent.html")
	assert.True(t, errors.IsMissingSource(err))
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := archive.Read("bad.zip", []byte("not a zip"))
	var parseErr *errors.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
