// Package datetime provides the session-timestamp dynamic-data provider.
package datetime

import (
	"context"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/incanto/internal/dynctx"
)

// Provider implements provider.Provider. It pins the session timestamp and
// contributes date lookups derived from it, so every dynamic node in one
// session sees the same instant.
type Provider struct {
	now func() time.Time
}

// New creates the datetime provider using wall-clock time.
func New() *Provider {
	return &Provider{now: time.Now}
}

// NewAt creates a datetime provider pinned to a fixed instant. Used by
// tests to make time-derived derivations reproducible.
func NewAt(t time.Time) *Provider {
	return &Provider{now: func() time.Time { return t }}
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return "datetime"
}

// Provide pins the session timestamp and derived date lookups.
func (p *Provider) Provide(_ context.Context, b *dynctx.Builder) error {
	now := p.now()
	b.SetNow(now)
	b.PutLookup("today", cty.StringVal(now.Format("2006-01-02")))
	b.PutLookup("time", cty.StringVal(now.Format("15:04")))
	return nil
}
