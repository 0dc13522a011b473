package utils

// IDSet is an insertion-ordered set of identifiers. It is owned by a single
// goroutine and does no locking.
type IDSet struct {
	seen  map[string]struct{}
	order []string
}

// NewIDSet creates an empty IDSet.
func NewIDSet() *IDSet {
	return &IDSet{seen: make(map[string]struct{})}
}

// Add returns true if the identifier was newly added, false if already present.
func (s *IDSet) Add(id string) bool {
	if _, exists := s.seen[id]; exists {
		return false
	}
	s.seen[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Contains returns true if the identifier has already been added.
func (s *IDSet) Contains(id string) bool {
	_, exists := s.seen[id]
	return exists
}

// Size returns the number of unique identifiers tracked.
func (s *IDSet) Size() int {
	return len(s.order)
}

// Items returns the identifiers in first-seen order.
func (s *IDSet) Items() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
