package markup

import (
	"strings"
	"unicode/utf8"

	"github.com/agentstation/menumap/pkg/constants"
	"github.com/agentstation/menumap/pkg/sources"
)

// section is the field paragraphs are currently appended to.
type section int

const (
	sectionNone section = iota
	sectionDescription
	sectionComposition
	sectionAllergens
)

// switches are the leading keywords that open a section, checked in order.
var switches = []struct {
	prefix string
	to     section
}{
	{"описание", sectionDescription},
	{"состав", sectionComposition},
	{"аллерген", sectionAllergens},
}

// excluded marks service notes that never reach the catalog.
var excluded = []string{"тайминг", "подача:", "приборы:"}

// longExcluded guards the long-paragraph fallback.
var longExcluded = []string{"тайминг", "подача", "приборы"}

var compositionHints = []string{"*", "начинка", "тесто"}

// block accumulates the fields of one title.
type block struct {
	current     section
	description []string
	composition []string
	allergens   []string
}

func (b *block) feed(text string) {
	if utf8.RuneCountInString(text) < constants.MinTitleLength {
		return
	}
	lower := strings.ToLower(text)
	if containsAny(lower, excluded) {
		return
	}

	for _, sw := range switches {
		if strings.HasPrefix(lower, sw.prefix) {
			b.current = sw.to
			if _, rest, ok := strings.Cut(text, ":"); ok {
				b.append(sw.to, strings.TrimSpace(rest))
			}
			return
		}
	}

	switch {
	case b.current == sectionDescription:
		b.append(sectionDescription, text)
	case b.current == sectionComposition || containsAny(lower, compositionHints):
		b.append(sectionComposition, text)
	case b.current == sectionAllergens || strings.Contains(lower, "аллерген"):
		b.append(sectionAllergens, text)
	case utf8.RuneCountInString(text) > constants.LongParagraph && !containsAny(lower, longExcluded):
		if len(b.description) == 0 {
			b.append(sectionDescription, text)
		}
	}
}

func (b *block) append(to section, text string) {
	if text == "" {
		return
	}
	switch to {
	case sectionDescription:
		b.description = append(b.description, text)
	case sectionComposition:
		b.composition = append(b.composition, text)
	case sectionAllergens:
		b.allergens = append(b.allergens, text)
	}
}

// partial builds the record for name. ok is false when no field was found.
func (b *block) partial(name string) (sources.Partial, bool) {
	p := sources.Partial{
		Name:        name,
		Description: sources.CleanText(sources.Text(strings.Join(b.description, " "))),
		Composition: sources.Text(strings.Join(b.composition, "\n")),
		Allergens:   sources.CleanText(sources.Text(strings.Join(b.allergens, " "))),
	}
	return p, !p.Empty()
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
