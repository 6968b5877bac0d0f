// Package clipboard provides the clipboard dynamic-data provider. Desktop
// clipboard integration is owned by the embedding application; this
// provider reads the INCANTO_CLIPBOARD environment variable, which the CLI
// and tests use as the clipboard transport.
package clipboard

import (
	"context"
	"os"

	"github.com/vk/incanto/internal/dynctx"
)

const envVar = "INCANTO_CLIPBOARD"

// Provider implements provider.Provider.
type Provider struct{}

// New creates the clipboard provider.
func New() *Provider {
	return &Provider{}
}

// Name implements provider.Provider.
func (p *Provider) Name() string {
	return "clipboard"
}

// Provide captures the clipboard text into the session context.
func (p *Provider) Provide(_ context.Context, b *dynctx.Builder) error {
	b.SetClipboard(os.Getenv(envVar))
	return nil
}
