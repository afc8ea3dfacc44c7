package sources

import (
	"strings"

	"github.com/agentstation/menumap/pkg/normalize"
)

// Partial is what one source knows about one dish. Unset fields are nil.
type Partial struct {
	Name        string  `json:"name" yaml:"name"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Composition *string `json:"composition,omitempty" yaml:"composition,omitempty"`
	Allergens   *string `json:"allergens,omitempty" yaml:"allergens,omitempty"`
	Price       *int    `json:"price,omitempty" yaml:"price,omitempty"`
}

// Key returns the normalized name.
func (p Partial) Key() string {
	return normalize.Key(p.Name)
}

// Empty reports whether the partial carries no field at all.
func (p Partial) Empty() bool {
	return p.Description == nil && p.Composition == nil && p.Allergens == nil && p.Price == nil
}

// Text returns a pointer to the trimmed text, or nil when it is blank.
func Text(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Price returns a pointer to a positive price, or nil.
func Price(v int) *int {
	if v <= 0 {
		return nil
	}
	return &v
}
