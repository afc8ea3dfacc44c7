package catalogs

import (
	"testing"
)

// TestDish creates a dish with sensible defaults.
// The t.Helper() call ensures stack traces point to the test, not this function.
func TestDish(t testing.TB, id int, name, category string) Dish {
	t.Helper()
	return Dish{
		ID:          id,
		Name:        name,
		Category:    category,
		Image:       "images/" + name + ".jpg",
		ImageFormat: "jpg",
	}
}

// TestCatalog creates a catalog holding the given dishes, failing the test
// on duplicate ids.
func TestCatalog(t testing.TB, dishes ...Dish) *Catalog {
	t.Helper()
	cat := New()
	for _, d := range dishes {
		if err := cat.Add(d); err != nil {
			t.Fatalf("TestCatalog: %v", err)
		}
	}
	return cat
}
