package registry

// Snapshot is an immutable view of the registry taken at one point in time.
//
// Runs take one snapshot after the registry is populated and pass it to the
// extractor and rewriter explicitly; a later change to the store is only seen
// through a new snapshot.
type Snapshot struct {
	known    map[string]struct{}
	mappings map[string]string
}

// NewSnapshot indexes the given classes.
func NewSnapshot(classes []Class) *Snapshot {
	s := &Snapshot{
		known:    make(map[string]struct{}, len(classes)),
		mappings: make(map[string]string),
	}
	for _, c := range classes {
		s.known[c.Name] = struct{}{}
		if c.Replacement != nil {
			s.mappings[c.Name] = *c.Replacement
		}
	}
	return s
}

// IsKnownClass reports whether name is a registered class.
func (s *Snapshot) IsKnownClass(name string) bool {
	_, ok := s.known[name]
	return ok
}

// LookupMapping returns the replacement for name, if it has one.
func (s *Snapshot) LookupMapping(name string) (string, bool) {
	repl, ok := s.mappings[name]
	return repl, ok
}

// AllMappings returns a copy of every name → replacement pair.
func (s *Snapshot) AllMappings() map[string]string {
	out := make(map[string]string, len(s.mappings))
	for k, v := range s.mappings {
		out[k] = v
	}
	return out
}

// Len returns the number of known classes.
func (s *Snapshot) Len() int {
	return len(s.known)
}
