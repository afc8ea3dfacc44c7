// Package classifier assigns dishes to menu categories by keyword.
package classifier

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/normalize"
)

//go:embed rules.yaml
var defaultRules []byte

// Rule maps a category to the keywords that select it.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Table is an ordered rule list with a fallback category.
type Table struct {
	Fallback   string `yaml:"fallback" json:"fallback"`
	Categories []Rule `yaml:"categories" json:"categories"`
}

// Classifier assigns categories from an ordered rule table.
type Classifier struct {
	fallback string
	rules    []compiledRule
}

type compiledRule struct {
	name     string
	keywords []string
}

// Option configures a Classifier.
type Option func(*Table) error

// WithRules replaces the rule table.
func WithRules(rules []Rule) Option {
	return func(t *Table) error {
		t.Categories = rules
		return nil
	}
}

// WithFallback sets the category for dishes no rule matches.
func WithFallback(name string) Option {
	return func(t *Table) error {
		if strings.TrimSpace(name) == "" {
			return errors.NewValidationError("fallback", name, "fallback category is empty")
		}
		t.Fallback = name
		return nil
	}
}

// WithYAML loads the rule table from a YAML document.
func WithYAML(data []byte) Option {
	return func(t *Table) error {
		table, err := ParseRules(data)
		if err != nil {
			return err
		}
		*t = *table
		return nil
	}
}

// ParseRules decodes a YAML rule table.
func ParseRules(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, errors.WrapParse("yaml", "rules", err)
	}
	return &t, nil
}

// New creates a Classifier over the built-in table, modified by opts.
func New(opts ...Option) (*Classifier, error) {
	table, err := ParseRules(defaultRules)
	if err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(table); err != nil {
			return nil, err
		}
	}
	if table.Fallback == "" {
		table.Fallback = constants.FallbackCategory
	}

	c := &Classifier{fallback: table.Fallback}
	for _, r := range table.Categories {
		if strings.TrimSpace(r.Name) == "" {
			return nil, errors.NewValidationError("name", r.Name, "category without a name")
		}
		cr := compiledRule{name: r.Name}
		for _, kw := range r.Keywords {
			if k := normalize.Key(kw); k != "" {
				cr.keywords = append(cr.keywords, k)
			}
		}
		c.rules = append(c.rules, cr)
	}
	return c, nil
}

var (
	defaultOnce       sync.Once
	defaultClassifier *Classifier
)

// Default returns the shared classifier over the built-in table.
func Default() *Classifier {
	defaultOnce.Do(func() {
		c, err := New()
		if err != nil {
			panic("classifier: built-in rules: " + err.Error())
		}
		defaultClassifier = c
	})
	return defaultClassifier
}

// Classify returns the first category whose keyword occurs in the
// normalized name, or the fallback category.
func (c *Classifier) Classify(name string) string {
	key := normalize.Key(name)
	if key == "" {
		return c.fallback
	}
	for _, r := range c.rules {
		for _, kw := range r.keywords {
			if strings.Contains(key, kw) {
				return r.name
			}
		}
	}
	return c.fallback
}

// Categories lists category names in rule order, fallback last.
func (c *Classifier) Categories() []string {
	out := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		out = append(out, r.name)
	}
	return append(out, c.fallback)
}

// Classify uses the default classifier.
func Classify(name string) string {
	return Default().Classify(name)
}
