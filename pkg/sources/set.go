package sources

import "github.com/agentstation/menumap/pkg/normalize"

// Set is an insertion-ordered collection of partials keyed by normalized
// name. It is not safe for concurrent use.
type Set struct {
	id    ID
	keys  []string
	items map[string]Partial
}

// NewSet creates an empty set for the given source kind.
func NewSet(id ID) *Set {
	return &Set{id: id, items: make(map[string]Partial)}
}

// ID returns the source kind of the set.
func (s *Set) ID() ID {
	return s.id
}

// Put stores p, replacing an earlier partial with the same key. The key
// keeps its original position. Partials with an empty key are dropped.
func (s *Set) Put(p Partial) bool {
	key := p.Key()
	if key == "" {
		return false
	}
	if _, ok := s.items[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.items[key] = p
	return true
}

// PutFirst stores p only if its key is not present yet.
func (s *Set) PutFirst(p Partial) bool {
	key := p.Key()
	if key == "" {
		return false
	}
	if _, ok := s.items[key]; ok {
		return false
	}
	s.keys = append(s.keys, key)
	s.items[key] = p
	return true
}

// Get looks a partial up by any spelling of its name.
func (s *Set) Get(name string) (Partial, bool) {
	p, ok := s.items[normalize.Key(name)]
	return p, ok
}

// Len returns the number of partials.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns the normalized names in insertion order.
func (s *Set) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// List returns the partials in insertion order.
func (s *Set) List() []Partial {
	out := make([]Partial, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, s.items[k])
	}
	return out
}
