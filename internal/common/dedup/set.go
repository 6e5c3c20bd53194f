// Package dedup implements URL-based duplicate detection for harvested
// articles. The set of known ids is passed explicitly through the pipeline
// rather than held as ambient state, so callers stay testable in isolation.
package dedup

// Set holds the ids of every article already persisted. Ids are sha1 digests
// of canonical URLs, so set membership is equivalent to URL membership.
// Set is not safe for concurrent use; the pipeline is sequential.
type Set struct {
	ids map[string]struct{}
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// FromIDs builds a Set from a list of known ids, typically the ids scanned
// out of an existing raw store.
func FromIDs(ids []string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Contains reports whether id has been seen before. The caller keeps the
// candidate when this returns false and drops it otherwise.
func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records a kept id. Adding an existing id is a no-op.
func (s *Set) Add(id string) {
	s.ids[id] = struct{}{}
}

// Len returns the number of known ids.
func (s *Set) Len() int {
	return len(s.ids)
}
