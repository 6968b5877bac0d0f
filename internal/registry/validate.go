package registry

import (
	"fmt"
	"sort"
	"strings"
)

// Validate performs a parity check between the extension table and the
// phrase catalog: every extension endpoint must name a registered phrase.
// All problems are collected into one error so a misconfigured add-on set
// is reported in full rather than one failure at a time.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var errs []string
	targets := make([]string, 0, len(r.extensions))
	for target := range r.extensions {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	for _, target := range targets {
		if _, ok := r.generators[target]; !ok {
			errs = append(errs, fmt.Sprintf("extension target %q is not a registered phrase", target))
		}
		for _, extending := range r.extensions[target] {
			if _, ok := r.generators[extending]; !ok {
				errs = append(errs, fmt.Sprintf("extension %q of target %q is not a registered phrase", extending, target))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
