package menumap

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/sources"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

var (
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
)

// writeArchive writes a ZIP whose member names are stored in windows-1251
// without the UTF-8 flag.
func writeArchive(t *testing.T, dir string, members map[string][]byte, order []string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	enc := charmap.Windows1251.NewEncoder()
	for _, name := range order {
		raw, err := enc.String(name)
		require.NoError(t, err)
		w, err := zw.CreateHeader(&zip.FileHeader{Name: raw, NonUTF8: true, Method: zip.Store})
		require.NoError(t, err)
		_, err = w.Write(members[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	path := filepath.Join(dir, "photos.zip")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

type fixture struct {
	dir        string
	archive    string
	transcript string
	catalog    string
	assets     string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()

	order := []string{
		"sapiens photo/",
		"sapiens photo/Stefan salad.jpg",
		"sapiens photo/Борщ от шефа с говяжьим ребром.jpg",
		"sapiens photo/Том ям с креветками и шиитаке.png",
		"sapiens photo/ab.jpg",
		"sapiens photo/readme.txt",
	}
	members := map[string][]byte{
		"sapiens photo/":                                   nil,
		"sapiens photo/Stefan salad.jpg":                   jpegData,
		"sapiens photo/Борщ от шефа с говяжьим ребром.jpg": jpegData,
		"sapiens photo/Том ям с креветками и шиитаке.png":  pngData,
		"sapiens photo/ab.jpg":                             jpegData,
		"sapiens photo/readme.txt":                         []byte("notes"),
	}

	transcript := filepath.Join(dir, "menu.txt")
	require.NoError(t, os.WriteFile(transcript, []byte(strings.Join([]string{
		"Том ям с креветками и шиитаке",
		"Описание: острый суп",
	}, "\n")), 0o644))

	assetsDir := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(assetsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "stale.jpg"), jpegData, 0o644))

	return fixture{
		dir:        dir,
		archive:    writeArchive(t, dir, members, order),
		transcript: transcript,
		catalog:    filepath.Join(dir, "menu.json"),
		assets:     assetsDir,
	}
}

func (f fixture) client(t *testing.T, opts ...Option) Client {
	t.Helper()
	base := []Option{
		WithArchive(f.archive),
		WithTranscript(f.transcript),
		WithCatalogPath(f.catalog),
		WithAssetsDir(f.assets),
	}
	c, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return c
}

func TestRebuild(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)

	var added []string
	c.OnDishAdded(func(d catalogs.Dish) { added = append(added, d.Name) })

	result, err := c.Rebuild(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Added)
	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, 3, result.Images)
	assert.Equal(t, 1, result.AssetsCleared)
	assert.Positive(t, result.Corrections)
	assert.Len(t, added, 3)

	cat, err := catalogs.Load(f.catalog)
	require.NoError(t, err)

	dishes := cat.List()
	require.Len(t, dishes, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{dishes[0].ID, dishes[1].ID, dishes[2].ID})
	assert.Equal(t, "Stefan salad", dishes[0].Name)
	assert.Equal(t, "Борщ от шефа с говяжьим ребром", dishes[1].Name)
	assert.Equal(t, "Салаты", dishes[0].Category)
	assert.Equal(t, "Мясные блюда", dishes[1].Category)

	require.NotNil(t, dishes[0].Price)
	assert.Equal(t, 1100, *dishes[0].Price)

	tomYam := dishes[2]
	assert.Equal(t, "png", tomYam.ImageFormat)
	assert.Equal(t, "images/Том_ям_с_креветками_и_шиитаке.png", tomYam.Image)
	require.NotNil(t, tomYam.Description)
	assert.Equal(t, "острый суп", *tomYam.Description)
	require.NotNil(t, tomYam.Price)
	assert.Equal(t, 1390, *tomYam.Price)

	snap := cat.Snapshot(catalogs.OrderInsertion)
	var names []string
	for _, c := range snap.Menu.Categories {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Мясные блюда", "Рыба и морепродукты", "Салаты"}, names)

	entries, err := os.ReadDir(f.assets)
	require.NoError(t, err)
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"Stefan_salad.jpg",
		"Борщ_от_шефа_с_говяжьим_ребром.jpg",
		"Том_ям_с_креветками_и_шиитаке.png",
	}, files)
}

func TestImportIsIdempotent(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)

	_, err := c.Rebuild(context.Background())
	require.NoError(t, err)
	before, err := os.ReadFile(f.catalog)
	require.NoError(t, err)

	result, err := f.client(t).Import(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.Added)
	assert.Equal(t, 3, result.Skipped)
	assert.Zero(t, result.Images)
	assert.False(t, result.HasChanges())

	after, err := os.ReadFile(f.catalog)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestImportContinuesIDs(t *testing.T) {
	f := newFixture(t)
	existing := catalogs.TestCatalog(t, catalogs.TestDish(t, 10, "Stefan salad", "Салаты"))
	require.NoError(t, existing.Save(f.catalog, catalogs.OrderInsertion))

	result, err := f.client(t).Import(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Added)
	assert.Equal(t, 1, result.Skipped)

	cat, err := catalogs.Load(f.catalog)
	require.NoError(t, err)
	var ids []int
	for _, d := range cat.Dishes() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []int{10, 11, 12}, ids)
	assert.Equal(t, "Салаты", cat.Categories()[0])

	_, err = os.Stat(filepath.Join(f.assets, "stale.jpg"))
	assert.NoError(t, err, "import must not clear assets")
}

func TestEnrich(t *testing.T) {
	f := newFixture(t)
	d := catalogs.TestDish(t, 1, "Том ям с креветками и шиитаке", "Супы")
	require.NoError(t, catalogs.TestCatalog(t, d).Save(f.catalog, catalogs.OrderInsertion))

	result, err := f.client(t).Enrich(context.Background(), pkgsync.WithSources(sources.TranscriptID))
	require.NoError(t, err)
	require.Len(t, result.SourceResults, 1)
	assert.Equal(t, sources.TranscriptID, result.SourceResults[0].SourceID)
	assert.Equal(t, 1, result.SourceResults[0].Filled["description"])

	cat, err := catalogs.Load(f.catalog)
	require.NoError(t, err)
	got := cat.Dishes()[0]
	require.NotNil(t, got.Description)
	assert.Equal(t, "острый суп", *got.Description)
	assert.Nil(t, got.Price, "prices were not requested")
	assert.Equal(t, "Супы", got.Category)
}

func TestEnrichRequiresCatalog(t *testing.T) {
	f := newFixture(t)
	_, err := f.client(t).Enrich(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsMissingSource(err))
}

func TestMissingSourceAbortsBeforeWriting(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		run  []pkgsync.Option
	}{
		{
			name: "missing transcript file",
			opts: []Option{WithTranscript("does-not-exist.txt")},
		},
		{
			name: "missing archive",
			opts: []Option{WithArchive("does-not-exist.zip")},
		},
		{
			name: "requested markup not configured",
			run:  []pkgsync.Option{pkgsync.WithSources(sources.MarkupID)},
		},
		{
			name: "missing markup archive",
			opts: []Option{WithMarkup("does-not-exist.zip")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.client(t, tt.opts...).Rebuild(context.Background(), tt.run...)
			require.Error(t, err)
			assert.True(t, errors.IsMissingSource(err), "got %v", err)

			_, err = os.Stat(f.catalog)
			assert.True(t, os.IsNotExist(err), "catalog written")
			_, err = os.Stat(filepath.Join(f.assets, "stale.jpg"))
			assert.NoError(t, err, "assets cleared")
		})
	}
}

func TestRebuildDryRun(t *testing.T) {
	f := newFixture(t)
	result, err := f.client(t).Rebuild(context.Background(), pkgsync.WithDryRun(true))
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 3, result.Added)
	assert.Equal(t, 3, result.Images)

	_, err = os.Stat(f.catalog)
	assert.True(t, os.IsNotExist(err))
	entries, err := os.ReadDir(f.assets)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMarkupFromArchiveMember(t *testing.T) {
	f := newFixture(t)
	page := `<html><body>
<h4 id="h.1"><span>Stefan salad</span></h4>
<p><span>Описание: Тёплый салат с языком</span></p>
</body></html>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("SapiensKitchen.html")
	require.NoError(t, err)
	_, err = w.Write([]byte(page))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	markupPath := filepath.Join(f.dir, "kitchen.zip")
	require.NoError(t, os.WriteFile(markupPath, buf.Bytes(), 0o644))

	_, err = f.client(t, WithMarkup(markupPath)).Rebuild(context.Background())
	require.NoError(t, err)

	cat, err := catalogs.Load(f.catalog)
	require.NoError(t, err)
	d, ok := cat.FindByKey("stefan salad")
	require.True(t, ok)
	require.NotNil(t, d.Description)
	assert.Equal(t, "Тёплый салат с языком", *d.Description)
}

func TestNames(t *testing.T) {
	f := newFixture(t)
	corrections, err := f.client(t).Names("")
	require.NoError(t, err)

	var regional []string
	for _, c := range corrections {
		regional = append(regional, c.Regional)
		assert.NotEqual(t, c.Legacy, c.Regional)
	}
	assert.Contains(t, regional, "sapiens photo/Борщ от шефа с говяжьим ребром.jpg")
	assert.NotContains(t, regional, "sapiens photo/Stefan salad.jpg")
}

func TestCatalogCopyOnRead(t *testing.T) {
	f := newFixture(t)
	c := f.client(t)
	_, err := c.Rebuild(context.Background())
	require.NoError(t, err)

	cat, err := c.Catalog()
	require.NoError(t, err)
	cat.Dishes()[0].Category = "Другое"

	again, err := c.Catalog()
	require.NoError(t, err)
	assert.Equal(t, "Салаты", again.Dishes()[0].Category)
}

func TestParseSources(t *testing.T) {
	ids, err := ParseSources("html", "txt", "prices")
	require.NoError(t, err)
	assert.Equal(t, []sources.ID{sources.MarkupID, sources.TranscriptID, sources.PricesID}, ids)

	_, err = ParseSources("pdf")
	assert.True(t, errors.IsValidationError(err))
}

func TestOptionValidation(t *testing.T) {
	_, err := New(WithEncodings("cp437", "klingon"))
	assert.Error(t, err)

	_, err = New(WithMatching(15, -1, 3))
	assert.Error(t, err)

	_, err = New(WithCatalogPath(""))
	assert.Error(t, err)
}
