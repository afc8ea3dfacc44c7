package menumap

import (
	"github.com/agentstation/menumap/pkg/archive"
	"github.com/agentstation/menumap/pkg/classifier"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/reconciler"
)

// Option is a function that configures a Client.
type Option func(*config) error

// config holds source locations, output locations and matching thresholds.
type config struct {
	archivePath    string
	markupPath     string
	markupMember   string
	transcriptPath string
	pricesPath     string

	catalogPath string
	assetsDir   string

	legacyEncoding   string
	regionalEncoding string

	prefixLength    int
	catalogOverlap  int
	categoryOverlap int

	classifier *classifier.Classifier
}

func defaultConfig() *config {
	return &config{
		archivePath:      constants.DefaultArchive,
		markupMember:     constants.DefaultMarkupMember,
		catalogPath:      constants.DefaultCatalog,
		assetsDir:        constants.DefaultAssetsDir,
		legacyEncoding:   constants.DefaultLegacyEncoding,
		regionalEncoding: constants.DefaultRegionalEncoding,
		prefixLength:     constants.DefaultPrefixLength,
		catalogOverlap:   constants.CatalogMinOverlap,
		categoryOverlap:  constants.CategoryMinOverlap,
	}
}

func (c *config) archiveOptions() []archive.Option {
	return []archive.Option{
		archive.WithLegacyEncoding(c.legacyEncoding),
		archive.WithRegionalEncoding(c.regionalEncoding),
	}
}

func (c *config) reconcilerOptions() []reconciler.Option {
	opts := []reconciler.Option{
		reconciler.WithPrefixLength(c.prefixLength),
		reconciler.WithCatalogPass(c.catalogOverlap),
		reconciler.WithCategoryPass(c.categoryOverlap),
	}
	if c.classifier != nil {
		opts = append(opts, reconciler.WithClassifier(c.classifier))
	}
	return opts
}

// WithArchive configures the image archive.
func WithArchive(path string) Option {
	return func(c *config) error {
		c.archivePath = path
		return nil
	}
}

// WithMarkup configures the exported menu page. A path ending in .zip is
// read as an archive holding the page as a member.
func WithMarkup(path string) Option {
	return func(c *config) error {
		c.markupPath = path
		return nil
	}
}

// WithMarkupMember configures the member name of the page inside a markup
// archive.
func WithMarkupMember(name string) Option {
	return func(c *config) error {
		if name == "" {
			return errors.NewValidationError("markup_member", name, "cannot be empty")
		}
		c.markupMember = name
		return nil
	}
}

// WithTranscript configures the plain-text menu transcript.
func WithTranscript(path string) Option {
	return func(c *config) error {
		c.transcriptPath = path
		return nil
	}
}

// WithPrices configures a price table file. Without one the built-in table
// is used.
func WithPrices(path string) Option {
	return func(c *config) error {
		c.pricesPath = path
		return nil
	}
}

// WithCatalogPath configures where the catalog is loaded from and saved to.
func WithCatalogPath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("catalog", path, "cannot be empty")
		}
		c.catalogPath = path
		return nil
	}
}

// WithAssetsDir configures the directory that receives dish images.
func WithAssetsDir(dir string) Option {
	return func(c *config) error {
		if dir == "" {
			return errors.NewValidationError("assets", dir, "cannot be empty")
		}
		c.assetsDir = dir
		return nil
	}
}

// WithEncodings configures the code pages used to repair archive names.
func WithEncodings(legacy, regional string) Option {
	return func(c *config) error {
		for _, name := range []string{legacy, regional} {
			if _, err := archive.Encoding(name); err != nil {
				return err
			}
		}
		c.legacyEncoding = legacy
		c.regionalEncoding = regional
		return nil
	}
}

// WithMatching configures the matching thresholds.
func WithMatching(prefixLength, catalogOverlap, categoryOverlap int) Option {
	return func(c *config) error {
		if prefixLength < 0 || catalogOverlap < 0 || categoryOverlap < 0 {
			return &errors.ValidationError{
				Field:   "match",
				Value:   []int{prefixLength, catalogOverlap, categoryOverlap},
				Message: "thresholds cannot be negative",
			}
		}
		c.prefixLength = prefixLength
		c.catalogOverlap = catalogOverlap
		c.categoryOverlap = categoryOverlap
		return nil
	}
}

// WithClassifier configures the category classifier for new dishes.
func WithClassifier(cl *classifier.Classifier) Option {
	return func(c *config) error {
		c.classifier = cl
		return nil
	}
}
