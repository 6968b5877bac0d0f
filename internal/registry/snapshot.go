package registry

import "github.com/vk/incanto/internal/grammar"

// Snapshot is an immutable view of the registry taken at session start.
// Sessions resolve phrases and extensions exclusively through their
// snapshot, so concurrent registration for future sessions never perturbs a
// parse in flight.
type Snapshot struct {
	generators map[string]grammar.GenerateFunc
	extensions map[string][]string
}

// Snapshot copies the current catalog and extension table.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gens := make(map[string]grammar.GenerateFunc, len(r.generators))
	for id, gen := range r.generators {
		gens[id] = gen
	}
	exts := make(map[string][]string, len(r.extensions))
	for target, list := range r.extensions {
		dup := make([]string, len(list))
		copy(dup, list)
		exts[target] = dup
	}
	return &Snapshot{generators: gens, extensions: exts}
}

// Generator returns the tree generator registered under identity.
func (s *Snapshot) Generator(identity string) (grammar.GenerateFunc, bool) {
	gen, ok := s.generators[identity]
	return gen, ok
}

// Resolve returns the identities directly extending target, in registration
// order. The result is never transitive. The returned slice must not be
// mutated.
func (s *Snapshot) Resolve(target string) []string {
	return s.extensions[target]
}
