// Package pricelist extracts dish prices from the price table.
//
// Each line reads "<name> [/ <weight>] ..... <price>[ / <price2>]"; the
// dotted leader is optional. The built-in table is used unless a file is
// supplied.
package pricelist

import (
	"bufio"
	"context"
	_ "embed"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/agentstation/menumap/pkg/errors"
	"github.com/agentstation/menumap/pkg/logging"
	"github.com/agentstation/menumap/pkg/sources"
)

//go:embed prices.txt
var embedded string

var (
	dotted     = regexp.MustCompile(`^(.+?)\s*(?:/.*?)?\s*\.\.\.\s*(\d+)`)
	plain      = regexp.MustCompile(`^(.+?)\s*(?:/.*?)?\s+(\d+)\s*(?:/\s*\d+)?$`)
	weightTail = regexp.MustCompile(`\s*/\s*\d+.*$`)
	leaderTail = regexp.MustCompile(`\s*\.\.\.\s*$`)
)

// Embedded returns a reader over the built-in price table.
func Embedded() io.Reader {
	return strings.NewReader(embedded)
}

// Extractor reads a price table.
type Extractor struct{}

// New creates a price list extractor.
func New() *Extractor {
	return &Extractor{}
}

// ID returns the source kind.
func (e *Extractor) ID() sources.ID {
	return sources.PricesID
}

// Extract parses one entry per line. The first price seen for a name wins.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*sources.Set, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := sources.NewSet(sources.PricesID)
	skipped := 0

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		p, ok := ParseLine(line)
		if !ok {
			skipped++
			continue
		}
		set.PutFirst(p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.WrapIO("read", "prices", err)
	}

	logging.FromContext(ctx).Debug().
		Int("prices", set.Len()).
		Int("skipped", skipped).
		Msg("Parsed price list")
	return set, nil
}

// ParseLine reads one price table line. ok is false when the line carries
// no name and price.
func ParseLine(line string) (sources.Partial, bool) {
	m := dotted.FindStringSubmatch(line)
	if m == nil {
		m = plain.FindStringSubmatch(line)
	}
	if m == nil {
		return sources.Partial{}, false
	}

	name := strings.TrimSpace(m[1])
	name = weightTail.ReplaceAllString(name, "")
	name = leaderTail.ReplaceAllString(name, "")
	if name == "" {
		return sources.Partial{}, false
	}

	price, err := strconv.Atoi(m[2])
	if err != nil {
		return sources.Partial{}, false
	}

	return sources.Partial{Name: name, Price: sources.Price(price)}, true
}
