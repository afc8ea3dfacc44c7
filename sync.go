package menumap

import (
	"context"
	"path"
	"unicode/utf8"

	"github.com/agentstation/menumap/internal/assets"
	"github.com/agentstation/menumap/pkg/archive"
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/reconciler"
	"github.com/agentstation/menumap/pkg/sources"
	pkgsync "github.com/agentstation/menumap/pkg/sync"
)

// Runner runs the catalog pipelines.
type Runner interface {
	// Rebuild discards the catalog and the image assets, recreates dishes
	// from the archive with ids from 1 and enriches them from every
	// configured source. Categories are sorted by name.
	Rebuild(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Import adds dishes for images not yet in the catalog, continuing ids
	// after the largest existing one, then enriches. Category order is kept.
	Import(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)

	// Enrich applies sources to the existing catalog without reading the
	// archive.
	Enrich(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error)
}

// Rebuild implements Runner.
func (c *client) Rebuild(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	return c.run(ctx, pkgsync.ModeRebuild, opts...)
}

// Import implements Runner.
func (c *client) Import(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	return c.run(ctx, pkgsync.ModeImport, opts...)
}

// Enrich implements Runner.
func (c *client) Enrich(ctx context.Context, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	return c.run(ctx, pkgsync.ModeEnrich, opts...)
}

// stub is a dish candidate together with the image it came from.
type stub struct {
	dish  catalogs.Dish
	image archive.Image
	file  string
}

// run executes one pipeline. Every input is read and the whole catalog is
// computed before the asset directory or the catalog file is touched.
func (c *client) run(ctx context.Context, mode pkgsync.Mode, opts ...pkgsync.Option) (*pkgsync.Result, error) {
	// Step 0: Set context
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithStage(ctx, mode.String())
	logger := logging.FromContext(ctx)

	// Step 1: Parse and validate options
	options := pkgsync.Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}
	outputPath := options.OutputPath
	if outputPath == "" {
		outputPath = c.config.catalogPath
	}

	// Step 2: Setup context with timeout
	var cancel context.CancelFunc
	if options.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
	} else {
		cancel = func() {}
	}
	defer cancel()

	// Step 3: Load the baseline catalog
	var (
		existing *catalogs.Catalog
		err      error
	)
	switch mode {
	case pkgsync.ModeImport:
		existing, err = c.loadExisting(outputPath, true)
	case pkgsync.ModeEnrich:
		existing, err = c.loadExisting(outputPath, false)
	}
	if err != nil {
		return nil, err
	}

	// Step 4: Read the archive into stubs
	var (
		stubs       []stub
		corrections int
	)
	if mode != pkgsync.ModeEnrich {
		arch, err := archive.Open(c.config.archivePath, c.config.archiveOptions()...)
		if err != nil {
			return nil, err
		}
		corrections = len(arch.Corrections())
		stubs = stubsFrom(ctx, arch)
		logger.Info().
			Str("archive", arch.Path()).
			Int("images", len(stubs)).
			Int("corrections", corrections).
			Msg("Read archive")
	}

	// Step 5: Extract sources
	sets, err := c.loadSets(ctx, options)
	if err != nil {
		return nil, err
	}

	// Step 6: Reconcile
	rec, err := reconciler.New(c.config.reconcilerOptions()...)
	if err != nil {
		return nil, err
	}
	dishes := make([]catalogs.Dish, len(stubs))
	for i, s := range stubs {
		dishes[i] = s.dish
	}
	reconciled, err := rec.Reconcile(ctx, existing, dishes, sets...)
	if err != nil {
		return nil, err
	}
	cat := reconciled.Catalog

	order := catalogs.OrderInsertion
	if mode == pkgsync.ModeRebuild {
		order = catalogs.OrderAlphabetical
	}
	result := pkgsync.ReconcileToResult(mode, reconciled, cat.Snapshot(order), options.DryRun, outputPath)
	result.Corrections = corrections

	// Step 7: Write assets
	writer := assets.New(c.config.assetsDir, assets.WithDryRun(options.DryRun))
	if mode == pkgsync.ModeRebuild {
		if result.AssetsCleared, err = writer.Clear(); err != nil {
			return nil, err
		}
	}
	if mode != pkgsync.ModeEnrich {
		if result.Images, err = writeImages(cat, reconciled.Added, stubs, writer); err != nil {
			return nil, err
		}
	}

	// Step 8: Save the catalog
	if options.DryRun {
		logger.Info().Bool("dry_run", true).Msg("Dry run completed - no changes applied")
		return result, nil
	}
	if err := cat.Save(outputPath, order); err != nil {
		return nil, err
	}
	c.commit(existing, cat)

	logger.Info().
		Str("path", outputPath).
		Int("dishes", cat.Len()).
		Int("added", result.Added).
		Msg("Catalog saved")
	return result, nil
}

// stubsFrom turns archive images into dish stubs. Stems shorter than the
// minimum dish name length are dropped.
func stubsFrom(ctx context.Context, arch *archive.Archive) []stub {
	logger := logging.FromContext(ctx)
	var out []stub
	for _, img := range arch.Images() {
		name := img.Stem
		if utf8.RuneCountInString(name) < constants.MinDishNameLength {
			logger.Debug().Str("entry", img.Path).Msg("Skipping image with short name")
			continue
		}
		file := assets.FileName(name, img.Ext)
		out = append(out, stub{
			dish: catalogs.Dish{
				Name:        name,
				Image:       assets.Ref(file),
				ImageFormat: img.Format(),
			},
			image: img,
			file:  file,
		})
	}
	return out
}

// writeImages copies the images of newly added dishes into the asset
// directory and returns how many it wrote.
func writeImages(cat *catalogs.Catalog, added []int, stubs []stub, writer *assets.Writer) (int, error) {
	byFile := make(map[string]archive.Image, len(stubs))
	for _, s := range stubs {
		if _, ok := byFile[s.file]; !ok {
			byFile[s.file] = s.image
		}
	}

	written := 0
	for _, id := range added {
		d, err := cat.Get(id)
		if err != nil {
			return written, err
		}
		file := path.Base(d.Image)
		img, ok := byFile[file]
		if !ok {
			return written, errors.NewNotFoundError("image", file)
		}
		if _, err := writer.Write(file, img); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// ParseSources converts source names such as "markup" or "txt" into ids.
func ParseSources(names ...string) ([]sources.ID, error) {
	ids := make([]sources.ID, 0, len(names))
	for _, n := range names {
		id, ok := sources.ParseID(n)
		if !ok {
			return nil, errors.NewValidationError("source", n, "unknown source")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
