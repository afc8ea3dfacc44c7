// Package markup extracts dish descriptions from the exported HTML menu.
//
// Dish titles are h4 headings with an id; the paragraphs between one title
// and the next describe that dish. Paragraphs switch between description,
// composition and allergen sections by their leading keyword.
package markup

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/sources"
)

// Extractor reads the markup source.
type Extractor struct {
	lookahead int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLookahead bounds the block of the last title, in characters.
func WithLookahead(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.lookahead = n
		}
	}
}

// New creates a markup extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{lookahead: constants.MarkupLookahead}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the source kind.
func (e *Extractor) ID() sources.ID {
	return sources.MarkupID
}

// Extract reads an HTML document and returns a partial per dish title.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*sources.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", "markup", err)
	}

	set, titles := e.parse(string(data))
	logging.FromContext(ctx).Debug().
		Int("titles", titles).
		Int("dishes", set.Len()).
		Msg("Parsed markup")
	return set, nil
}

// parse returns the partial set and the number of title candidates seen.
func (e *Extractor) parse(doc string) (*sources.Set, int) {
	doc = html.UnescapeString(doc)
	titles, paragraphs := scan(doc)
	set := sources.NewSet(sources.MarkupID)

	for i, t := range titles {
		if !validTitle(t.text) {
			continue
		}
		limit := advance(doc, t.end, e.lookahead)
		if i+1 < len(titles) {
			limit = titles[i+1].start
		}

		var b block
		for _, p := range paragraphs {
			if p.start < t.end {
				continue
			}
			if p.start >= limit {
				break
			}
			b.feed(p.text)
		}

		if partial, ok := b.partial(t.text); ok {
			set.Put(partial)
		}
	}

	return set, len(titles)
}

// advance returns the byte offset n characters past from in doc.
func advance(doc string, from, n int) int {
	i := from
	for ; n > 0 && i < len(doc); n-- {
		_, size := utf8.DecodeRuneInString(doc[i:])
		i += size
	}
	return i
}

// validTitle rejects link and anchor headings caught by the title pattern.
func validTitle(text string) bool {
	if utf8.RuneCountInString(text) < constants.MinTitleLength {
		return false
	}
	return !strings.HasPrefix(text, "http") && !strings.Contains(text, "#")
}
