// Package transcript extracts dish descriptions from the plain-text menu
// transcript.
//
// The transcript lists categories, each followed by dishes. A dish line is
// followed by labelled sections (Описание, Состав, Аллергены) and service
// notes. The parser is a line-oriented state machine; multi-line sections
// end on the stop rules of their state.
package transcript

import (
	"bufio"
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/sources"
)

const (
	// minContinuation is the shortest line appended to a description.
	minContinuation = 20

	// maxAllergenLine is the longest unbulleted line kept in allergens.
	maxAllergenLine = 100
)

// Extractor reads the transcript source.
type Extractor struct{}

// New creates a transcript extractor.
func New() *Extractor {
	return &Extractor{}
}

// ID returns the source kind.
func (e *Extractor) ID() sources.ID {
	return sources.TranscriptID
}

// Extract reads a UTF-8 transcript and returns a partial per dish line.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*sources.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapIO("read", "transcript", err)
	}

	p := newParser(lines)
	p.run()

	logging.FromContext(ctx).Debug().
		Int("lines", len(lines)).
		Int("categories", p.categories).
		Int("dishes", p.set.Len()).
		Msg("Parsed transcript")
	return p.set, nil
}

// draft is the dish being read.
type draft struct {
	name        string
	description string
	composition string
	allergens   string
}

func (d *draft) partial() sources.Partial {
	return sources.Partial{
		Name:        d.name,
		Description: sources.CleanText(sources.Text(d.description)),
		Composition: sources.Text(d.composition),
		Allergens:   sources.CleanText(sources.Text(d.allergens)),
	}
}

type parser struct {
	lines      []string
	pos        int
	state      state
	dish       *draft
	categories int
	set        *sources.Set
}

func newParser(lines []string) *parser {
	return &parser{
		lines: lines,
		state: stateNoCategory,
		set:   sources.NewSet(sources.TranscriptID),
	}
}

func (p *parser) run() {
	for p.pos < len(p.lines) {
		p.step(p.lines[p.pos])
	}
	p.flush()
}

// step consumes the line at pos and any lookahead lines its section owns.
func (p *parser) step(line string) {
	p.pos++

	switch {
	case line == "":
		return
	case isCategory(line):
		p.flush()
		p.categories++
		p.state = stateInCategory
		return
	case isDish(line):
		p.flush()
		p.dish = &draft{name: line}
		p.state = stateNoCategory
		if p.categories > 0 {
			p.state = stateInCategory
		}
		return
	case p.dish == nil:
		return
	}

	switch {
	case strings.HasPrefix(line, headerDescription):
		p.readDescription(line)
	case strings.HasPrefix(line, headerComposition):
		p.readComposition()
	case isAllergenHeader(line):
		p.readAllergens(line)
	case hasAnyPrefix(line, serviceHeaders):
		if p.state == stateDescription {
			p.state = stateInCategory
		}
	case p.state == stateDescription && !strings.HasPrefix(line, bullet):
		p.continueDescription(line)
	}
}

// readDescription takes inline text or, for a bare header, the next line.
func (p *parser) readDescription(line string) {
	p.state = stateDescription
	if text := afterColon(line); text != "" {
		p.dish.description = text
		return
	}
	if p.dish.description != "" || p.pos >= len(p.lines) {
		return
	}
	next := p.lines[p.pos]
	if next != "" && !strings.HasPrefix(next, bullet) && !strings.HasPrefix(next, headerComposition) {
		p.dish.description = next
		p.pos++
	}
}

func (p *parser) readComposition() {
	p.state = stateComposition
	var parts []string
	for p.pos < len(p.lines) {
		next := p.lines[p.pos]
		if stops(stateComposition, next) {
			break
		}
		parts = append(parts, next)
		p.pos++
	}
	if len(parts) > 0 {
		p.dish.composition = strings.Join(parts, "\n")
	}
}

func (p *parser) readAllergens(line string) {
	p.state = stateAllergens
	if text := afterColon(line); text != "" {
		p.dish.allergens = text
	}

	var parts []string
	for p.pos < len(p.lines) {
		next := p.lines[p.pos]
		if stops(stateAllergens, next) {
			break
		}
		switch {
		case strings.HasPrefix(next, bullet) || strings.Contains(strings.ToLower(next), "аллерген"):
			parts = append(parts, strings.TrimSpace(strings.ReplaceAll(next, bullet, "")))
		case utf8.RuneCountInString(next) < maxAllergenLine:
			parts = append(parts, next)
		}
		p.pos++
	}
	if len(parts) > 0 && p.dish.allergens == "" {
		p.dish.allergens = strings.Join(parts, " ")
	}
}

func (p *parser) continueDescription(line string) {
	switch {
	case p.dish.description == "":
		p.dish.description = line
	case strings.HasPrefix(line, headerComposition), strings.HasPrefix(line, headerAllergens):
	case utf8.RuneCountInString(line) > minContinuation:
		p.dish.description += " " + line
	}
}

// flush stores the dish being read. A repeated dish replaces the earlier one.
func (p *parser) flush() {
	if p.dish != nil {
		p.set.Put(p.dish.partial())
	}
	p.dish = nil
}
