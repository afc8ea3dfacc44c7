package reconciler

import (
	"github.com/agentstation/menumap/pkg/catalogs"
	"github.com/agentstation/menumap/pkg/sources"
)

// Field names reported in fill counts.
const (
	FieldDescription = "description"
	FieldComposition = "composition"
	FieldAllergens   = "allergens"
	FieldPrice       = "price"
)

// Fields lists the fillable dish fields.
func Fields() []string {
	return []string{FieldDescription, FieldComposition, FieldAllergens, FieldPrice}
}

// fill copies every field of p into d that d does not have yet. It returns
// the names of the fields it set. id, name and category are never touched.
func fill(d *catalogs.Dish, p sources.Partial) []string {
	var filled []string
	if fillText(&d.Description, p.Description) {
		filled = append(filled, FieldDescription)
	}
	if fillText(&d.Composition, p.Composition) {
		filled = append(filled, FieldComposition)
	}
	if fillText(&d.Allergens, p.Allergens) {
		filled = append(filled, FieldAllergens)
	}
	if p.Price != nil && *p.Price > 0 && (d.Price == nil || *d.Price <= 0) {
		v := *p.Price
		d.Price = &v
		filled = append(filled, FieldPrice)
	}
	return filled
}

func fillText(dst **string, src *string) bool {
	if src == nil || *src == "" {
		return false
	}
	if *dst != nil && **dst != "" {
		return false
	}
	v := *src
	*dst = &v
	return true
}
