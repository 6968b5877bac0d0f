package dynctx

import (
	"time"

	"github.com/zclconf/go-cty/cty"
)

// Context is a read-only snapshot of external dynamic data for one parse
// session. It is safe for concurrent use.
type Context struct {
	clipboard string
	now       time.Time
	lookups   map[string]cty.Value
}

// Clipboard returns the clipboard text captured at session start.
func (c *Context) Clipboard() string {
	return c.clipboard
}

// Now returns the timestamp captured at session start. Dynamic nodes that
// need "the current time" must use this, not time.Now, so that identical
// context snapshots yield identical derivations.
func (c *Context) Now() time.Time {
	return c.now
}

// Lookup returns a named dynamic value contributed by a provider, such as a
// prior asynchronous network result.
func (c *Context) Lookup(key string) (cty.Value, bool) {
	v, ok := c.lookups[key]
	return v, ok
}

// LookupKeys returns the names of all available lookup values.
func (c *Context) LookupKeys() []string {
	keys := make([]string, 0, len(c.lookups))
	for k := range c.lookups {
		keys = append(keys, k)
	}
	return keys
}

// Builder accumulates dynamic data before a session starts. It is not safe
// for concurrent use; providers run sequentially during session setup.
type Builder struct {
	clipboard string
	now       time.Time
	lookups   map[string]cty.Value
}

// NewBuilder creates a Builder with the current wall-clock time as the
// default session timestamp.
func NewBuilder() *Builder {
	return &Builder{
		now:     time.Now(),
		lookups: make(map[string]cty.Value),
	}
}

// SetClipboard records the clipboard text for the session.
func (b *Builder) SetClipboard(text string) *Builder {
	b.clipboard = text
	return b
}

// SetNow overrides the session timestamp. Primarily used by tests to pin
// time-derived values.
func (b *Builder) SetNow(t time.Time) *Builder {
	b.now = t
	return b
}

// PutLookup stores a named dynamic value. A later Put for the same key
// overwrites the earlier one.
func (b *Builder) PutLookup(key string, v cty.Value) *Builder {
	b.lookups[key] = v
	return b
}

// Build produces the immutable Context snapshot. The builder's lookup map is
// copied, so the builder may be reused or discarded afterwards.
func (b *Builder) Build() *Context {
	lookups := make(map[string]cty.Value, len(b.lookups))
	for k, v := range b.lookups {
		lookups[k] = v
	}
	return &Context{
		clipboard: b.clipboard,
		now:       b.now,
		lookups:   lookups,
	}
}
