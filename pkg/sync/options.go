// Package sync provides options and results for synchronizing the dish
// catalog with its source documents.
package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/sources"
)

// Mode is the kind of catalog run.
type Mode string

// Run modes.
const (
	// ModeRebuild discards the catalog and assets and rebuilds both from the
	// archive.
	ModeRebuild Mode = "rebuild"
	// ModeImport adds dishes for new archive images to the existing catalog.
	ModeImport Mode = "import"
	// ModeEnrich fills empty fields of the existing catalog from sources.
	ModeEnrich Mode = "enrich"
)

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// Options controls one catalog run.
type Options struct {
	DryRun     bool          // Compute and report without writing anything
	Timeout    time.Duration // Timeout for the whole run
	Sources    []sources.ID  // Which sources to apply (empty means all configured)
	OutputPath string        // Where to save the catalog (empty means configured location)
}

// Apply applies the given options to the run options.
func (s *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Defaults returns the default run options.
func Defaults() *Options {
	return &Options{
		DryRun:     false,
		Timeout:    0,
		Sources:    nil,
		OutputPath: "",
	}
}

// Option is a function that configures run Options.
type Option func(*Options)

// Validate checks if the run options are valid.
func (s *Options) Validate() error {
	if s.Timeout < 0 {
		return &errors.ValidationError{
			Field:   "Timeout",
			Value:   s.Timeout,
			Message: "timeout must be non-negative",
		}
	}

	for _, id := range s.Sources {
		if !id.IsValid() {
			return &errors.ValidationError{
				Field:   "Sources",
				Value:   id,
				Message: fmt.Sprintf("unknown source '%s'", id),
			}
		}
	}

	if s.OutputPath != "" {
		dir := filepath.Dir(s.OutputPath)
		if dir != "." && dir != "/" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				return &errors.ValidationError{
					Field:   "OutputPath",
					Value:   s.OutputPath,
					Message: fmt.Sprintf("output directory '%s' does not exist", dir),
				}
			}
		}
	}

	return nil
}

// Wants reports whether the run applies source id.
func (s *Options) Wants(id sources.ID) bool {
	if len(s.Sources) == 0 {
		return true
	}
	for _, want := range s.Sources {
		if want == id {
			return true
		}
	}
	return false
}

// Explicit reports whether source id was requested by name.
func (s *Options) Explicit(id sources.ID) bool {
	return len(s.Sources) > 0 && s.Wants(id)
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTimeout configures the run timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(opts *Options) {
		opts.Timeout = timeout
	}
}

// WithSources configures which sources to apply.
func WithSources(ids ...sources.ID) Option {
	return func(opts *Options) {
		opts.Sources = ids
	}
}

// WithOutputPath configures the output path for saving.
func WithOutputPath(path string) Option {
	return func(opts *Options) {
		opts.OutputPath = path
	}
}
