package matching

import "iter"

// Connection pairs one source item with one destination item.
type Connection struct {
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
}

// ConnectionSet is the ordered set of connections for one question.
// A source appears at most once. With destination uniqueness enforced a
// destination also appears at most once.
type ConnectionSet struct {
	unique bool
	order  []string
	dest   map[string]string
}

// NewConnectionSet returns an empty set. enforceUnique turns on the
// one-destination-per-source-pair rule.
func NewConnectionSet(enforceUnique bool) *ConnectionSet {
	return &ConnectionSet{
		unique: enforceUnique,
		dest:   make(map[string]string),
	}
}

// Upsert connects source to destination. An existing connection for source
// is retargeted in place. When destinations are unique, a different source
// holding destination loses its connection first (last writer wins).
// It reports whether the set changed.
func (s *ConnectionSet) Upsert(source, destination string) bool {
	if cur, ok := s.dest[source]; ok && cur == destination {
		return false
	}
	if s.unique {
		for _, other := range s.order {
			if other != source && s.dest[other] == destination {
				s.remove(other)
				break
			}
		}
	}
	if _, ok := s.dest[source]; !ok {
		s.order = append(s.order, source)
	}
	s.dest[source] = destination
	return true
}

func (s *ConnectionSet) remove(source string) {
	delete(s.dest, source)
	for i, id := range s.order {
		if id == source {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Clear removes every connection.
func (s *ConnectionSet) Clear() {
	s.order = s.order[:0]
	clear(s.dest)
}

// Lookup returns the destination connected to source.
func (s *ConnectionSet) Lookup(source string) (string, bool) {
	d, ok := s.dest[source]
	return d, ok
}

// Len returns the number of connections.
func (s *ConnectionSet) Len() int { return len(s.order) }

// All yields the connections in insertion order. The sequence can be
// ranged over any number of times and always reflects the current set.
func (s *ConnectionSet) All() iter.Seq[Connection] {
	return func(yield func(Connection) bool) {
		for _, src := range s.order {
			if !yield(Connection{SourceID: src, DestinationID: s.dest[src]}) {
				return
			}
		}
	}
}

// List collects All into a slice.
func (s *ConnectionSet) List() []Connection {
	out := make([]Connection, 0, len(s.order))
	for c := range s.All() {
		out = append(out, c)
	}
	return out
}

// EnforcesUniqueDestinations reports the configured uniqueness rule.
func (s *ConnectionSet) EnforcesUniqueDestinations() bool { return s.unique }
