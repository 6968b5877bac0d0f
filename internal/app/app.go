package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/grammar"
	"github.com/vk/incanto/internal/hclgram"
	"github.com/vk/incanto/internal/provider"
	"github.com/vk/incanto/internal/registry"
	"github.com/vk/incanto/modules/webquery"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *registry.Registry
	root      grammar.Node
	providers []provider.Provider
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with an isolated logger and registry, the
// grammar manifests loaded and validated. Fatal configuration problems
// panic; entrypoints recover and present them as startup errors.
func NewApp(outW io.Writer, cfg *Config, providers ...provider.Provider) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	gramCfg, err := hclgram.LoadDir(ctx, cfg.GrammarPath)
	if err != nil {
		panic(fmt.Errorf("failed to load grammar manifests: %w", err))
	}

	reg := registry.New()
	if err := hclgram.Install(gramCfg, reg); err != nil {
		panic(fmt.Errorf("failed to install grammar: %w", err))
	}
	logger.Debug("Grammar installed.", "phrases", len(reg.Phrases()))

	if err := reg.Validate(); err != nil {
		// A mismatch between extensions and the phrase catalog is a
		// configuration error; fail loudly before any session exists.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	root, err := hclgram.BuildRoot(gramCfg)
	if err != nil {
		panic(fmt.Errorf("failed to assemble command root: %w", err))
	}

	if len(providers) == 0 {
		providers = coreProviders()
	}
	if cfg.LookupURL != "" {
		providers = append(providers, webquery.New(cfg.LookupKey, cfg.LookupURL))
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		root:      root,
		providers: providers,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Root returns the assembled command root node. This is primarily for testing.
func (a *App) Root() grammar.Node {
	return a.root
}
