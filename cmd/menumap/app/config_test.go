package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/pkg/constants"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultArchive, config.Archive)
	assert.Equal(t, constants.DefaultMarkupMember, config.MarkupMember)
	assert.Equal(t, constants.DefaultCatalog, config.Catalog)
	assert.Equal(t, constants.DefaultAssetsDir, config.Assets)
	assert.Equal(t, "cp437", config.LegacyEncoding)
	assert.Equal(t, "windows-1251", config.RegionalEncoding)
	assert.Equal(t, 15, config.PrefixLength)
	assert.Equal(t, 2, config.CatalogMinOverlap)
	assert.Equal(t, 3, config.CategoryMinOverlap)
	assert.Empty(t, config.Markup)
	assert.Empty(t, config.Transcript)
	assert.Empty(t, config.Prices)
	assert.Empty(t, config.LogLevel)
	assert.Equal(t, "auto", config.LogFormat)
	assert.Equal(t, "stderr", config.LogOutput)
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MENUMAP_OUTPUT_CATALOG", "public/menu.json")
	t.Setenv("MENUMAP_SOURCES_TRANSCRIPT", "menu.txt")
	t.Setenv("MENUMAP_MATCH_PREFIX_LENGTH", "10")
	t.Setenv("MENUMAP_LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "public/menu.json", config.Catalog)
	assert.Equal(t, "menu.txt", config.Transcript)
	assert.Equal(t, 10, config.PrefixLength)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MENUMAP_SOURCES_MARKUP=site.zip\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("MENUMAP_SOURCES_MARKUP") })

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "site.zip", config.Markup)
}

func TestLoadConfig_File(t *testing.T) {
	chdir(t, t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`sources:
  archive: photos.zip
  markup_member: index.html
archive:
  regional_encoding: koi8-r
match:
  category_min_overlap: 4
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, path, config.ConfigFile)
	assert.Equal(t, "photos.zip", config.Archive)
	assert.Equal(t, "index.html", config.MarkupMember)
	assert.Equal(t, "koi8-r", config.RegionalEncoding)
	assert.Equal(t, 4, config.CategoryMinOverlap)
	assert.Equal(t, 2, config.CatalogMinOverlap)
}

func TestLoadConfig_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".menumap.yaml"), []byte("output:\n  assets: public/img\n"), 0o644))

	config, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "public/img", config.Assets)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		verbose   bool
		quiet     bool
		format    string
		logLevel  string
		wantLevel string
		wantFmt   string
	}{
		{name: "keeps configured level", start: "warn", wantLevel: "warn", wantFmt: "table"},
		{name: "flag level wins", start: "warn", logLevel: "trace", wantLevel: "trace", wantFmt: "table"},
		{name: "verbose clears configured level", start: "warn", verbose: true, wantLevel: "", wantFmt: "table"},
		{name: "quiet clears configured level", start: "debug", quiet: true, wantLevel: "", wantFmt: "table"},
		{name: "format overrides", format: "yaml", wantFmt: "yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{LogLevel: tt.start, Format: "table"}
			c.UpdateFromFlags(tt.verbose, tt.quiet, false, tt.format, tt.logLevel)
			assert.Equal(t, tt.wantLevel, c.LogLevel)
			assert.Equal(t, tt.wantFmt, c.Format)
			assert.Equal(t, tt.verbose, c.Verbose)
			assert.Equal(t, tt.quiet, c.Quiet)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the rest of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	if !filepath.IsAbs(dir) {
		dir, err = os.Getwd()
		require.NoError(t, err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("chdir %s: %v", oldwd, err)
		}
	})
}
