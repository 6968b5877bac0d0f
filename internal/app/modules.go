package app

import (
	"github.com/vk/incanto/internal/provider"
	"github.com/vk/incanto/modules/clipboard"
	"github.com/vk/incanto/modules/datetime"
)

// coreProviders is the definitive list of dynamic-data providers compiled
// into the incanto binary. The webquery provider is added per-run when a
// lookup URL is configured.
func coreProviders() []provider.Provider {
	return []provider.Provider{
		clipboard.New(),
		datetime.New(),
	}
}
