package reconciler

import (
	"github.com/agentstation/menumap/internal/matcher"
	"github.com/agentstation/menumap/pkg/classifier"
	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// options configures a reconciler.
type options struct {
	catalogPass  matcher.Policy
	categoryPass matcher.Policy
	skipCategory bool
	classifier   *classifier.Classifier
}

func defaultOptions() *options {
	return &options{
		catalogPass: matcher.Policy{
			PrefixLength: constants.DefaultPrefixLength,
			MinOverlap:   constants.CatalogMinOverlap,
		},
		categoryPass: matcher.Policy{
			MinOverlap: constants.CategoryMinOverlap,
		},
		classifier: classifier.Default(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCatalogPass sets the minimum word overlap of the catalog-wide pass.
// Zero disables its token tier.
func WithCatalogPass(minOverlap int) Option {
	return func(o *options) error {
		if minOverlap < 0 {
			return errors.NewValidationError("catalog_min_overlap", minOverlap, "cannot be negative")
		}
		o.catalogPass.MinOverlap = minOverlap
		return nil
	}
}

// WithCategoryPass sets the minimum word overlap of the per-category pass.
// Zero disables the pass.
func WithCategoryPass(minOverlap int) Option {
	return func(o *options) error {
		if minOverlap < 0 {
			return errors.NewValidationError("category_min_overlap", minOverlap, "cannot be negative")
		}
		o.categoryPass.MinOverlap = minOverlap
		o.skipCategory = minOverlap == 0
		return nil
	}
}

// WithPrefixLength sets how many leading runes the prefix tier compares.
// Zero disables the tier.
func WithPrefixLength(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return errors.NewValidationError("prefix_length", n, "cannot be negative")
		}
		o.catalogPass.PrefixLength = n
		return nil
	}
}

// WithClassifier sets the classifier used for new dishes without a category.
func WithClassifier(c *classifier.Classifier) Option {
	return func(o *options) error {
		if c == nil {
			return &errors.ValidationError{
				Field:   "classifier",
				Message: "cannot be nil",
			}
		}
		o.classifier = c
		return nil
	}
}
