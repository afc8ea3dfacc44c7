package markup

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/agentstation/menumap/pkg/normalize"
)

// title is a dish heading: an h4 with an id attribute wrapping a span.
type title struct {
	text  string
	start int // offset of the opening tag
	end   int // offset just past the closing tag
}

// paragraph is a p element wrapping a span.
type paragraph struct {
	text  string
	start int
}

// element collects the text of an open h4 or p.
type element struct {
	tag     atom.Atom
	start   int
	hasSpan bool
	text    strings.Builder
}

// scan tokenizes doc and returns titles and paragraphs with their byte
// offsets in doc.
func scan(doc string) ([]title, []paragraph) {
	var (
		titles     []title
		paragraphs []paragraph
		open       *element
		offset     int
	)

	z := html.NewTokenizer(strings.NewReader(doc))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := offset
		offset += len(z.Raw())
		tok := z.Token()

		switch tt {
		case html.StartTagToken:
			switch {
			case tok.DataAtom == atom.H4 && hasAttr(tok, "id"):
				open = &element{tag: atom.H4, start: start}
			case tok.DataAtom == atom.P && (open == nil || open.tag != atom.H4):
				open = &element{tag: atom.P, start: start}
			case tok.DataAtom == atom.Span && open != nil:
				open.hasSpan = true
			}
		case html.TextToken:
			if open != nil {
				open.text.WriteString(tok.Data)
			}
		case html.EndTagToken:
			if open == nil || tok.DataAtom != open.tag {
				continue
			}
			if open.hasSpan {
				text := normalize.Collapse(open.text.String())
				if open.tag == atom.H4 {
					titles = append(titles, title{text: text, start: open.start, end: offset})
				} else {
					paragraphs = append(paragraphs, paragraph{text: text, start: open.start})
				}
			}
			open = nil
		}
	}

	return titles, paragraphs
}

func hasAttr(tok html.Token, key string) bool {
	for _, a := range tok.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
