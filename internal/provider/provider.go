// Package provider defines the contract for dynamic-data provider modules.
// Providers run once at session setup and contribute external data —
// clipboard text, timestamps, network lookup results — to the read-only
// evaluation context. They own their caching and timeout policy; the core
// imposes none.
package provider

import (
	"context"

	"github.com/vk/incanto/internal/dynctx"
)

// Provider contributes dynamic data to a session's evaluation context.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Provide writes the provider's data into the context builder. An error
	// skips this provider's contribution without failing session setup.
	Provide(ctx context.Context, b *dynctx.Builder) error
}

// BuildContext runs every provider in order against a fresh builder and
// returns the resulting snapshot. Provider failures are reported through
// errs in matching positions (nil on success); the snapshot always builds.
func BuildContext(ctx context.Context, providers []Provider) (*dynctx.Context, []error) {
	b := dynctx.NewBuilder()
	errs := make([]error, len(providers))
	for i, p := range providers {
		errs[i] = p.Provide(ctx, b)
	}
	return b.Build(), errs
}
