package pipeline

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menumap/internal/cmd/cmdutil"
	"github.com/agentstation/menumap/internal/cmd/output"
	"github.com/agentstation/menumap/pkg/sources"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

func testResult() *pkgsync.Result {
	return &pkgsync.Result{
		Mode:       pkgsync.ModeRebuild,
		Added:      2,
		TotalItems: 2,
		Categories: []pkgsync.CategoryResult{
			{Name: "Салаты", Count: 1},
			{Name: "Супы", Count: 1},
		},
		SourceResults: []*pkgsync.SourceResult{{
			SourceID: sources.TranscriptID,
			Partials: 3,
			Matched:  1,
			ByTier:   map[string]int{"exact": 1},
			Filled:   map[string]int{"description": 1},
			Unused:   []string{"Компот"},
		}},
		Corrections: 2,
		OutputPath:  "menu.json",
	}
}

func TestPrintJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, Print(&out, &errOut, output.FormatJSON, false, testResult()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "rebuild", decoded["mode"])
	assert.EqualValues(t, 2, decoded["total_items"])
	assert.Contains(t, out.String(), "Салаты")
	assert.Empty(t, errOut.String())
}

func TestPrintTable(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, Print(&out, &errOut, output.FormatTable, false, testResult()))

	assert.Contains(t, out.String(), "Салаты")
	assert.Contains(t, out.String(), "transcript")
	assert.Contains(t, out.String(), "exact=1")
	assert.Contains(t, errOut.String(), "1 records matched no dish")
	assert.Contains(t, errOut.String(), "2 archive names re-decoded")
	assert.Contains(t, errOut.String(), "Saved menu.json")
}

func TestPrintQuietDryRun(t *testing.T) {
	result := testResult()
	result.DryRun = true

	var out, errOut bytes.Buffer
	require.NoError(t, Print(&out, &errOut, output.FormatTable, true, result))
	assert.NotEmpty(t, out.String())
	assert.Empty(t, errOut.String())

	errOut.Reset()
	require.NoError(t, Print(&out, &errOut, output.FormatTable, false, result))
	assert.Contains(t, errOut.String(), "Dry run, nothing written")
	assert.NotContains(t, errOut.String(), "Saved")
}

func TestBuildOptions(t *testing.T) {
	flags := &cmdutil.RunFlags{DryRun: true, Output: "out/menu.json", Timeout: time.Minute}
	opts := BuildOptions(flags, []sources.ID{sources.MarkupID})

	applied := pkgsync.Defaults().Apply(opts...)
	assert.True(t, applied.DryRun)
	assert.Equal(t, "out/menu.json", applied.OutputPath)
	assert.Equal(t, time.Minute, applied.Timeout)
	assert.True(t, applied.Explicit(sources.MarkupID))
	assert.False(t, applied.Wants(sources.PricesID))

	assert.Empty(t, BuildOptions(&cmdutil.RunFlags{}, nil))
}
