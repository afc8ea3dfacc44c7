// Package sources defines the partial dish records produced by source
// extractors and the ordered sets that carry them to the reconciler.
//
// Every extractor reads one document (markup, transcript, price list) and
// reports what it could recover for each dish name it saw. Partials never
// create dishes on their own; the reconciler only uses them to fill empty
// fields of dishes that already exist.
//
// Example usage:
//
//	set, err := markup.New().Extract(ctx, f)
//	if err != nil {
//	    return err
//	}
//	for _, p := range set.List() {
//	    fmt.Println(p.Name, p.Description != nil)
//	}
package sources

import (
	"context"
	"io"
	"slices"
)

// ID identifies the kind of document a partial set came from.
type ID string

// String returns the string representation of a source id.
func (id ID) String() string {
	return string(id)
}

// Source kinds.
const (
	MarkupID     ID = "markup"
	TranscriptID ID = "transcript"
	PricesID     ID = "prices"
)

// IDs returns every source kind in the order enrichment applies them.
func IDs() []ID {
	return []ID{MarkupID, TranscriptID, PricesID}
}

// IsValid returns true if the ID is one of the defined constants.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// ParseID converts a user-supplied name into an ID.
func ParseID(s string) (ID, bool) {
	id := ID(s)
	switch s {
	case "html":
		id = MarkupID
	case "txt", "text":
		id = TranscriptID
	case "price", "pricelist":
		id = PricesID
	}
	return id, id.IsValid()
}

// Extractor turns one source document into a partial set. Extractors ignore
// lines and blocks they do not recognize; an error means the document could
// not be read at all.
type Extractor interface {
	// ID returns the source kind the extractor produces.
	ID() ID

	// Extract reads the document from r.
	Extract(ctx context.Context, r io.Reader) (*Set, error)
}
