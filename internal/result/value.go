package result

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Value is the recursive result type: either a primitive cty.Value or an
// ordered mapping of keys to nested Values. The zero Value is "none" — the
// contribution of a literal with no configured value.
type Value struct {
	prim    cty.Value
	hasPrim bool
	mapping *Mapping
}

// Primitive wraps a cty.Value as a leaf result value.
func Primitive(v cty.Value) Value {
	return Value{prim: v, hasPrim: true}
}

// FromMapping wraps an ordered mapping as a result value.
func FromMapping(m *Mapping) Value {
	return Value{mapping: m}
}

// IsNone reports whether the value carries no contribution at all.
func (v Value) IsNone() bool {
	return !v.hasPrim && v.mapping == nil
}

// IsMapping reports whether the value is an ordered mapping.
func (v Value) IsMapping() bool {
	return v.mapping != nil
}

// Prim returns the primitive leaf value, or cty.NilVal when the value is a
// mapping or none.
func (v Value) Prim() cty.Value {
	if !v.hasPrim {
		return cty.NilVal
	}
	return v.prim
}

// Mapping returns the ordered mapping, or nil for primitives.
func (v Value) Mapping() *Mapping {
	return v.mapping
}

// Cty converts the value into a plain cty.Value for interchange with
// executors and HCL-side tooling. Mappings become object values; key order
// is not preserved by cty objects, so callers that care about declaration
// order must use Mapping directly. A "none" value converts to a null.
func (v Value) Cty() cty.Value {
	if v.mapping != nil {
		if v.mapping.Len() == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, v.mapping.Len())
		for _, k := range v.mapping.Keys() {
			nested, _ := v.mapping.Get(k)
			attrs[k] = nested.Cty()
		}
		return cty.ObjectVal(attrs)
	}
	if !v.hasPrim {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	return v.prim
}

// Equal compares two values structurally, including mapping key order.
func (v Value) Equal(o Value) bool {
	if v.IsMapping() != o.IsMapping() {
		return false
	}
	if v.IsMapping() {
		return v.mapping.Equal(o.mapping)
	}
	if v.hasPrim != o.hasPrim {
		return false
	}
	if !v.hasPrim {
		return true
	}
	return v.prim.RawEquals(o.prim)
}

// String renders the value in a compact human-readable form, primarily for
// logs and test failure messages.
func (v Value) String() string {
	if v.IsNone() {
		return "<none>"
	}
	if v.mapping != nil {
		var b strings.Builder
		b.WriteString("{")
		for i, k := range v.mapping.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			nested, _ := v.mapping.Get(k)
			fmt.Fprintf(&b, "%s: %s", k, nested.String())
		}
		b.WriteString("}")
		return b.String()
	}
	return v.prim.GoString()
}

// Mapping is an insertion-ordered map from result keys to Values. Setting an
// existing key overwrites its value in place, keeping the original position.
type Mapping struct {
	keys    []string
	entries map[string]Value
}

// NewMapping creates an empty ordered mapping.
func NewMapping() *Mapping {
	return &Mapping{entries: make(map[string]Value)}
}

// Set stores a value under key, appending the key on first use.
func (m *Mapping) Set(key string, v Value) {
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = v
}

// Merge folds another mapping into this one in the other's key order.
func (m *Mapping) Merge(o *Mapping) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		m.Set(k, o.entries[k])
	}
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Keys returns the mapping's keys in declaration order. The returned slice
// must not be mutated.
func (m *Mapping) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Equal compares two mappings including key order.
func (m *Mapping) Equal(o *Mapping) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.keys) != len(o.keys) {
		return false
	}
	for i, k := range m.keys {
		if o.keys[i] != k {
			return false
		}
		if !m.entries[k].Equal(o.entries[k]) {
			return false
		}
	}
	return true
}
