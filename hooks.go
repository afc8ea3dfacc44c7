package menumap

import (
	"reflect"
	"sync"

	"github.com/agentstation/menumap/pkg/catalogs"
)

// Hook function types for dish events
type (
	// DishAddedHook is called when a dish is added to the catalog
	DishAddedHook func(dish catalogs.Dish)

	// DishUpdatedHook is called when a source fills fields of a dish
	DishUpdatedHook func(old, new catalogs.Dish)
)

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu            sync.RWMutex
	onDishAdded   []DishAddedHook
	onDishUpdated []DishUpdatedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnDishAdded registers a callback for when dishes are added
func (h *hooks) OnDishAdded(fn DishAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDishAdded = append(h.onDishAdded, fn)
}

// OnDishUpdated registers a callback for when dishes are updated
func (h *hooks) OnDishUpdated(fn DishUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDishUpdated = append(h.onDishUpdated, fn)
}

// triggerCatalogUpdate compares old and new catalogs and triggers appropriate hooks
func (h *hooks) triggerCatalogUpdate(oldCatalog, newCatalog *catalogs.Catalog) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onDishAdded) == 0 && len(h.onDishUpdated) == 0 {
		return
	}

	oldDishes := make(map[int]catalogs.Dish)
	if oldCatalog != nil {
		for _, d := range oldCatalog.List() {
			oldDishes[d.ID] = d
		}
	}

	for _, d := range newCatalog.List() {
		old, exists := oldDishes[d.ID]
		if !exists {
			for _, hook := range h.onDishAdded {
				hook(d)
			}
			continue
		}
		if !reflect.DeepEqual(old, d) {
			for _, hook := range h.onDishUpdated {
				hook(old, d)
			}
		}
	}
}
