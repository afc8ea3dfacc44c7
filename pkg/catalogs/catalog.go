// Package catalogs holds the dish catalog: an ordered set of dishes with
// unique ids, its grouped snapshot form and its JSON persistence.
//
// A catalog is built either from scratch (a full rebuild) or from a snapshot
// written by an earlier run, then mutated in place by the reconciler, which
// only ever adds dishes and fills empty fields.
//
// Example usage:
//
//	cat, err := catalogs.Load("menu.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range cat.Dishes() {
//	    fmt.Printf("%d %s (%s)\n", d.ID, d.Name, d.Category)
//	}
//	if err := cat.Save("menu.json", catalogs.OrderInsertion); err != nil {
//	    log.Fatal(err)
//	}
package catalogs

import (
	"fmt"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/normalize"
)

// Catalog is an ordered collection of dishes. It is not safe for concurrent
// use.
type Catalog struct {
	dishes     []*Dish
	byID       map[int]*Dish
	byKey      map[string]*Dish
	categories []string // order remembered from a loaded snapshot
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		byID:  make(map[int]*Dish),
		byKey: make(map[string]*Dish),
	}
}

// Clone returns a deep copy of the catalog. A nil catalog clones to an empty
// one.
func (c *Catalog) Clone() *Catalog {
	out := New()
	if c == nil {
		return out
	}
	out.categories = append(out.categories, c.categories...)
	for _, d := range c.dishes {
		cp := d.Copy()
		out.insert(&cp)
	}
	return out
}

// Add appends a dish. The id must be positive and unused.
func (c *Catalog) Add(d Dish) error {
	if d.ID <= 0 {
		return errors.NewValidationError("id", d.ID, "must be positive")
	}
	if _, ok := c.byID[d.ID]; ok {
		return &errors.ValidationError{
			Field:   "id",
			Value:   d.ID,
			Message: fmt.Sprintf("duplicate id %d (%s)", d.ID, d.Name),
		}
	}
	cp := d.Copy()
	c.insert(&cp)
	return nil
}

func (c *Catalog) insert(d *Dish) {
	c.dishes = append(c.dishes, d)
	c.byID[d.ID] = d
	key := normalize.Key(d.Name)
	if _, ok := c.byKey[key]; !ok && key != "" {
		c.byKey[key] = d
	}
}

// NextID returns the id the next new dish receives: one more than the
// largest id in the catalog, starting at 1.
func (c *Catalog) NextID() int {
	maxID := 0
	for _, d := range c.dishes {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	return maxID + 1
}

// Get returns the dish with the given id.
func (c *Catalog) Get(id int) (*Dish, error) {
	d, ok := c.byID[id]
	if !ok {
		return nil, errors.NewNotFoundError("dish", fmt.Sprint(id))
	}
	return d, nil
}

// FindByKey returns the first dish whose normalized name equals the
// normalized form of name.
func (c *Catalog) FindByKey(name string) (*Dish, bool) {
	d, ok := c.byKey[normalize.Key(name)]
	return d, ok
}

// Has reports whether a dish with the same normalized name exists.
func (c *Catalog) Has(name string) bool {
	_, ok := c.FindByKey(name)
	return ok
}

// Dishes returns the live dishes in catalog order. Callers may fill optional
// fields but must not change ID or Name.
func (c *Catalog) Dishes() []*Dish {
	out := make([]*Dish, len(c.dishes))
	copy(out, c.dishes)
	return out
}

// List returns copies of the dishes in catalog order.
func (c *Catalog) List() []Dish {
	out := make([]Dish, 0, len(c.dishes))
	for _, d := range c.dishes {
		out = append(out, d.Copy())
	}
	return out
}

// Len returns the number of dishes.
func (c *Catalog) Len() int {
	return len(c.dishes)
}

// Categories returns the category names in insertion order: the order of a
// loaded snapshot first, then categories in order of first appearance.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool, len(c.categories))
	present := make(map[string]bool)
	for _, d := range c.dishes {
		present[categoryOf(d)] = true
	}

	var out []string
	for _, name := range c.categories {
		if present[name] && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, d := range c.dishes {
		name := categoryOf(d)
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}

// InCategory returns the live dishes of one category in catalog order.
func (c *Catalog) InCategory(name string) []*Dish {
	var out []*Dish
	for _, d := range c.dishes {
		if categoryOf(d) == name {
			out = append(out, d)
		}
	}
	return out
}
