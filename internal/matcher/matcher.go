// Package matcher ranks candidate dish names against a query name.
//
// Names are compared as normalized keys in three tiers: exact key
// equality, a shared leading prefix, and word overlap. Ranking is a pure
// function of its inputs, so the same catalog and sources always produce
// the same matches.
package matcher

import (
	"sort"
	"strings"

	"github.com/agentstation/menumap/pkg/normalize"
)

// Tier is the strength of a match. Higher tiers win.
type Tier int

const (
	// None means the candidate did not match.
	None Tier = iota
	// Token means the keys share at least MinOverlap words.
	Token
	// Prefix means one key starts with the leading runes of the other.
	Prefix
	// Exact means the keys are equal.
	Exact
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	case Token:
		return "token"
	default:
		return "none"
	}
}

// Tiers lists the matching tiers from strongest to weakest.
func Tiers() []Tier {
	return []Tier{Exact, Prefix, Token}
}

// Policy sets the thresholds of a matching pass.
type Policy struct {
	// PrefixLength is the number of leading runes compared in the prefix
	// tier. Zero disables the tier.
	PrefixLength int `json:"prefix_length" yaml:"prefix_length"`

	// MinOverlap is the minimum number of shared words for a token match.
	// Zero disables the tier.
	MinOverlap int `json:"min_overlap" yaml:"min_overlap"`
}

// Candidate is a ranked match.
type Candidate struct {
	// Index is the position of the candidate in the indexed key list.
	Index int
	// Key is the candidate's normalized key.
	Key string
	// Tier is the strongest tier the candidate reached.
	Tier Tier
	// Score is the word overlap for token matches, zero otherwise.
	Score int
}

// Index holds candidate keys with their word sets.
type Index struct {
	keys   []string
	tokens []map[string]struct{}
	exact  map[string]int
}

// NewIndex indexes normalized candidate keys. Empty keys never match.
func NewIndex(keys []string) *Index {
	ix := &Index{
		keys:   keys,
		tokens: make([]map[string]struct{}, len(keys)),
		exact:  make(map[string]int, len(keys)),
	}
	for i, k := range keys {
		ix.tokens[i] = normalize.Tokens(k)
		if _, seen := ix.exact[k]; !seen && k != "" {
			ix.exact[k] = i
		}
	}
	return ix
}

// Len returns the number of indexed keys.
func (ix *Index) Len() int {
	return len(ix.keys)
}

// Rank returns every candidate that matches key under policy, strongest
// first. Ties keep index order.
func (ix *Index) Rank(key string, policy Policy) []Candidate {
	if key == "" {
		return nil
	}

	var (
		out       []Candidate
		keyTokens = normalize.Tokens(key)
		keyPrefix = leading(key, policy.PrefixLength)
	)

	for i, cand := range ix.keys {
		if cand == "" {
			continue
		}
		c := Candidate{Index: i, Key: cand}
		switch {
		case cand == key:
			c.Tier = Exact
		case policy.PrefixLength > 0 &&
			(strings.HasPrefix(cand, keyPrefix) || strings.HasPrefix(key, leading(cand, policy.PrefixLength))):
			c.Tier = Prefix
		case policy.MinOverlap > 0:
			if n := normalize.Overlap(keyTokens, ix.tokens[i]); n >= policy.MinOverlap {
				c.Tier = Token
				c.Score = n
			}
		}
		if c.Tier != None {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Tier != out[b].Tier {
			return out[a].Tier > out[b].Tier
		}
		return out[a].Score > out[b].Score
	})
	return out
}

// Best returns the strongest candidate for key.
func (ix *Index) Best(key string, policy Policy) (Candidate, bool) {
	if i, ok := ix.exact[key]; ok && key != "" {
		return Candidate{Index: i, Key: key, Tier: Exact}, true
	}
	ranked := ix.Rank(key, policy)
	if len(ranked) == 0 {
		return Candidate{}, false
	}
	return ranked[0], true
}

// Rank indexes keys and ranks them against key.
func Rank(key string, keys []string, policy Policy) []Candidate {
	return NewIndex(keys).Rank(key, policy)
}

// leading returns the first n runes of s, or s when it is shorter.
func leading(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
