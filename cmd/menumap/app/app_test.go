package app

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap"
	"github.com/agentstation/menumap/internal/cmd/table"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
)

var jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")

// writeFixture writes a photo archive and a config file pointing at it and
// returns the config path and the catalog path.
func writeFixture(t *testing.T) (configPath, catalogPath string) {
	t.Helper()
	logging.DisableLoggingForTest(t)
	dir := t.TempDir()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{
		"sapiens photo/Салат Цезарь с курицей.jpg",
		"sapiens photo/Борщ от шефа с говяжьим ребром.jpg",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(jpegData)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	archivePath := filepath.Join(dir, "photos.zip")
	require.NoError(t, os.WriteFile(archivePath, buf.Bytes(), 0o644))

	catalogPath = filepath.Join(dir, "menu.json")
	configPath = filepath.Join(dir, "menumap.yaml")
	config := fmt.Sprintf(`sources:
  archive: %q
output:
  catalog: %q
  assets: %q
log_output: discard
`, archivePath, catalogPath, filepath.Join(dir, "assets"))
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0o644))
	return configPath, catalogPath
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := zerolog.Nop()
	app, err := New("1.0.0", "abc123", "2024-01-01", "test", WithLogger(&logger))
	require.NoError(t, err)
	return app
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := app.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	assert.Equal(t, "1.0.0", app.Version())
	assert.Equal(t, "abc123", app.Commit())
	assert.Equal(t, "2024-01-01", app.Date())
	assert.Equal(t, "test", app.BuiltBy())
	assert.NotNil(t, app.Logger())
	require.NotNil(t, app.Config())
	assert.NotEmpty(t, app.Config().Catalog)
}

func TestApp_Menumap_Singleton(t *testing.T) {
	app := newTestApp(t)

	c1, err := app.Menumap()
	require.NoError(t, err)
	c2, err := app.Menumap()
	require.NoError(t, err)
	assert.Same(t, c1, c2)

	custom, err := app.Menumap(menumap.WithCatalogPath("other.json"))
	require.NoError(t, err)
	assert.NotSame(t, c1, custom)
}

func TestApp_Menumap_ThreadSafe(t *testing.T) {
	app := newTestApp(t)

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]menumap.Client, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			c, err := app.Menumap()
			assert.NoError(t, err)
			results[idx] = c
		}(i)
	}
	wg.Wait()

	for _, c := range results[1:] {
		assert.Same(t, results[0], c)
	}
}

func TestApp_MenumapInvalidConfig(t *testing.T) {
	app := newTestApp(t)
	app.config.LegacyEncoding = "no-such-codepage"

	_, err := app.Menumap()
	require.Error(t, err)
}

func TestExecute_RebuildThenStats(t *testing.T) {
	configPath, catalogPath := writeFixture(t)
	app := newTestApp(t)

	_, err := run(t, app, "--config", configPath, "-o", "json", "-q", "rebuild")
	require.NoError(t, err)

	cat, err := catalogs.Load(catalogPath)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())

	app = newTestApp(t)
	out, err := run(t, app, "--config", configPath, "-o", "json", "stats")
	require.NoError(t, err)

	var stats []table.CategoryStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	total := 0
	for _, s := range stats {
		total += s.Dishes
	}
	assert.Equal(t, 2, total)
}

func TestExecute_RebuildDryRun(t *testing.T) {
	configPath, catalogPath := writeFixture(t)
	app := newTestApp(t)

	_, err := run(t, app, "--config", configPath, "-o", "json", "rebuild", "--dry-run")
	require.NoError(t, err)
	assert.NoFileExists(t, catalogPath)
}

func TestExecute_EnrichErrors(t *testing.T) {
	configPath, _ := writeFixture(t)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, err error)
	}{
		{
			name: "unknown source",
			args: []string{"enrich", "pdf"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsValidationError(err))
			},
		},
		{
			name: "missing catalog",
			args: []string{"enrich"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsMissingSource(err))
			},
		},
		{
			name: "unconfigured source requested",
			args: []string{"enrich", "transcript"},
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsMissingSource(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			_, err := run(t, app, append([]string{"--config", configPath, "-o", "json"}, tt.args...)...)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestExecute_InvalidFormat(t *testing.T) {
	configPath, _ := writeFixture(t)
	app := newTestApp(t)

	_, err := run(t, app, "--config", configPath, "-o", "xml", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestExecute_Version(t *testing.T) {
	configPath, _ := writeFixture(t)
	app := newTestApp(t)

	out, err := run(t, app, "--config", configPath, "version")
	require.NoError(t, err)
	assert.Equal(t, "menumap 1.0.0\n", out)

	app = newTestApp(t)
	out, err = run(t, app, "--config", configPath, "-v", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "commit:     abc123")
}
