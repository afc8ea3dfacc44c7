package catalogs

import (
	"sort"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
)

// Ordering selects how categories are ordered in a snapshot.
type Ordering int

const (
	// OrderInsertion keeps the order of a loaded snapshot and appends new
	// categories in order of first appearance.
	OrderInsertion Ordering = iota
	// OrderAlphabetical sorts category names.
	OrderAlphabetical
)

// String returns the name of the ordering.
func (o Ordering) String() string {
	switch o {
	case OrderAlphabetical:
		return "alphabetical"
	default:
		return "insertion"
	}
}

// Category is one grouped bucket of a snapshot.
type Category struct {
	Name  string `json:"name" yaml:"name"`
	Items []Dish `json:"items" yaml:"items"`
	Count int    `json:"count" yaml:"count"`
}

// Menu holds the grouped view of a snapshot.
type Menu struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// Statistics summarizes a snapshot.
type Statistics struct {
	TotalItems      int `json:"total_items" yaml:"total_items"`
	CategoriesCount int `json:"categories_count" yaml:"categories_count"`
}

// Snapshot is the serialized form of a catalog.
type Snapshot struct {
	Menu       Menu       `json:"menu" yaml:"menu"`
	AllItems   []Dish     `json:"all_items" yaml:"all_items"`
	Statistics Statistics `json:"statistics" yaml:"statistics"`
}

// Snapshot groups the catalog by category. Items keep catalog order within
// each category and every dish lands in exactly one bucket.
func (c *Catalog) Snapshot(order Ordering) Snapshot {
	names := c.Categories()
	if order == OrderAlphabetical {
		sort.Strings(names)
	}

	buckets := make(map[string][]Dish, len(names))
	all := make([]Dish, 0, len(c.dishes))
	for _, d := range c.dishes {
		item := d.Copy()
		item.Category = categoryOf(d)
		all = append(all, item)
		buckets[item.Category] = append(buckets[item.Category], item)
	}

	cats := make([]Category, 0, len(names))
	for _, name := range names {
		items := buckets[name]
		cats = append(cats, Category{Name: name, Items: items, Count: len(items)})
	}

	return Snapshot{
		Menu:     Menu{Categories: cats},
		AllItems: all,
		Statistics: Statistics{
			TotalItems:      len(all),
			CategoriesCount: len(cats),
		},
	}
}

// FromSnapshot rebuilds a catalog from its serialized form. Dishes come from
// all_items, or from the category buckets when all_items is empty. Dishes
// without an id receive fresh ones after the largest existing id. Duplicate
// ids are a validation error.
func FromSnapshot(s Snapshot) (*Catalog, error) {
	items := s.AllItems
	if len(items) == 0 {
		for _, cat := range s.Menu.Categories {
			for _, d := range cat.Items {
				if d.Category == "" {
					d.Category = cat.Name
				}
				items = append(items, d)
			}
		}
	}

	maxID := 0
	seen := make(map[int]string, len(items))
	for _, d := range items {
		if d.ID <= 0 {
			continue
		}
		if prev, ok := seen[d.ID]; ok {
			return nil, &errors.ValidationError{
				Field:   "id",
				Value:   d.ID,
				Message: "duplicate id shared by " + prev + " and " + d.Name,
			}
		}
		seen[d.ID] = d.Name
		if d.ID > maxID {
			maxID = d.ID
		}
	}

	cat := New()
	for _, c := range s.Menu.Categories {
		cat.categories = append(cat.categories, c.Name)
	}
	for _, d := range items {
		if d.ID <= 0 {
			maxID++
			d.ID = maxID
		}
		cp := d.Copy()
		cat.insert(&cp)
	}
	return cat, nil
}

func categoryOf(d *Dish) string {
	if d.Category == "" {
		return constants.FallbackCategory
	}
	return d.Category
}
