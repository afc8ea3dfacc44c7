package menumap

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentstation/menumap/internal/sources/markup"
	"github.com/agentstation/menumap/internal/sources/pricelist"
	"github.com/agentstation/menumap/internal/sources/transcript"
	"github.com/agentstation/menumap/pkg/archive"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/sources"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// extractor returns the extractor for a source kind.
func extractor(id sources.ID) sources.Extractor {
	switch id {
	case sources.MarkupID:
		return markup.New()
	case sources.TranscriptID:
		return transcript.New()
	default:
		return pricelist.New()
	}
}

// sourcePath returns the configured location of a source.
func (c *client) sourcePath(id sources.ID) string {
	switch id {
	case sources.MarkupID:
		return c.config.markupPath
	case sources.TranscriptID:
		return c.config.transcriptPath
	default:
		return c.config.pricesPath
	}
}

// loadSets extracts every wanted source. Unconfigured sources are skipped
// unless requested by name; configured sources that do not exist abort the
// run before anything is written.
func (c *client) loadSets(ctx context.Context, options *pkgsync.Options) ([]*sources.Set, error) {
	var sets []*sources.Set
	for _, id := range sources.IDs() {
		if !options.Wants(id) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sctx := logging.WithSource(ctx, id.String())
		logger := logging.FromContext(sctx)

		rc, err := c.openSource(id, options.Explicit(id))
		if err != nil {
			return nil, err
		}
		if rc == nil {
			logger.Debug().Msg("Source not configured, skipping")
			continue
		}

		set, err := extractor(id).Extract(sctx, rc)
		_ = rc.Close()
		if err != nil {
			return nil, errors.WrapResource("extract", "source", id.String(), err)
		}
		logger.Info().Int("records", set.Len()).Msg("Extracted source")
		sets = append(sets, set)
	}
	return sets, nil
}

// openSource opens the document of a source. It returns nil without an
// error when the source is not configured and was not requested.
func (c *client) openSource(id sources.ID, required bool) (io.ReadCloser, error) {
	path := c.sourcePath(id)
	if path == "" {
		if id == sources.PricesID {
			return io.NopCloser(pricelist.Embedded()), nil
		}
		if required {
			return nil, errors.NewMissingSourceError(id.String(), "", nil)
		}
		return nil, nil
	}

	if id == sources.MarkupID && strings.EqualFold(filepath.Ext(path), ".zip") {
		arch, err := archive.Open(path, c.config.archiveOptions()...)
		if err != nil {
			if errors.IsMissingSource(err) {
				return nil, errors.NewMissingSourceError(id.String(), path, err)
			}
			return nil, err
		}
		return arch.Member(c.config.markupMember)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewMissingSourceError(id.String(), path, err)
		}
		return nil, errors.WrapIO("open", path, err)
	}
	return f, nil
}
