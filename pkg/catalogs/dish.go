package catalogs

import (
	"github.com/agentstation/menumap/pkg/normalize"
)

// Dish is one menu item. Optional fields are nil until a source fills them
// and serialize as JSON null.
type Dish struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	Image       string  `json:"image" yaml:"image"`
	ImageFormat string  `json:"image_format,omitempty" yaml:"image_format,omitempty"`
	Description *string `json:"description" yaml:"description"`
	Composition *string `json:"composition" yaml:"composition"`
	Allergens   *string `json:"allergens" yaml:"allergens"`
	Price       *int    `json:"price" yaml:"price"`
}

// Key returns the normalized name used for identity and matching.
func (d Dish) Key() string {
	return normalize.Key(d.Name)
}

// Copy returns a deep copy of the dish.
func (d Dish) Copy() Dish {
	out := d
	out.Description = copyString(d.Description)
	out.Composition = copyString(d.Composition)
	out.Allergens = copyString(d.Allergens)
	if d.Price != nil {
		p := *d.Price
		out.Price = &p
	}
	return out
}

// Filled reports which optional fields carry a value.
func (d Dish) Filled() (description, composition, allergens, price bool) {
	return hasText(d.Description), hasText(d.Composition), hasText(d.Allergens), d.Price != nil && *d.Price > 0
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func hasText(s *string) bool {
	return s != nil && *s != ""
}
