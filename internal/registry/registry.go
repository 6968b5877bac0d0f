package registry

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/incanto/internal/grammar"
)

// Module is the interface add-on packages implement to install their
// phrases and extensions into a registry during application startup.
type Module interface {
	Register(r *Registry) error
}

// Registry holds the phrase catalog and the extension table. It is safe for
// concurrent use; writers are expected to run only between parse sessions,
// and sessions isolate themselves via Snapshot.
type Registry struct {
	mu          sync.RWMutex
	generators  map[string]grammar.GenerateFunc
	phraseOrder []string
	extensions  map[string][]string // target identity -> extending identities, in registration order
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		generators: make(map[string]grammar.GenerateFunc),
		extensions: make(map[string][]string),
	}
}

// RegisterPhrase installs a phrase generator under identity. Registering the
// same identity twice is a configuration error, surfaced here rather than
// deferred into parsing.
func (r *Registry) RegisterPhrase(identity string, gen grammar.GenerateFunc) error {
	if identity == "" {
		return fmt.Errorf("registry: phrase identity must not be empty")
	}
	if gen == nil {
		return fmt.Errorf("registry: phrase %q has nil generator", identity)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.generators[identity]; exists {
		return fmt.Errorf("registry: phrase %q already registered", identity)
	}
	slog.Debug("Registering phrase.", "identity", identity)
	r.generators[identity] = gen
	r.phraseOrder = append(r.phraseOrder, identity)
	return nil
}

// RegisterExtension records that phrase `extending` is offered wherever
// phrase `target` occurs. Self-extension is a configuration error.
// Registration is idempotent and order-irrelevant across distinct pairs;
// repeating an identical pair is a no-op.
func (r *Registry) RegisterExtension(target, extending string) error {
	if target == "" || extending == "" {
		return fmt.Errorf("registry: extension endpoints must not be empty (target %q, extending %q)", target, extending)
	}
	if target == extending {
		return fmt.Errorf("registry: phrase %q cannot extend itself", target)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.extensions[target] {
		if existing == extending {
			return nil
		}
	}
	slog.Debug("Registering extension.", "target", target, "extending", extending)
	r.extensions[target] = append(r.extensions[target], extending)
	return nil
}

// Phrases returns all registered identities in registration order.
func (r *Registry) Phrases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.phraseOrder))
	copy(out, r.phraseOrder)
	return out
}
