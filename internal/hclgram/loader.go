package hclgram

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/incanto/internal/ctxlog"
	"github.com/vk/incanto/internal/fsutil"
	"github.com/vk/incanto/internal/grammar"
	"github.com/vk/incanto/internal/registry"
)

// DecodeFile parses and decodes a single HCL grammar manifest.
func DecodeFile(ctx context.Context, filePath string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Decoding grammar manifest.", "path", filePath)
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse grammar manifest %s: %s", filePath, diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode grammar manifest %s: %s", filePath, diags.Error())
	}

	logger.Debug("Successfully decoded grammar manifest.", "path", filePath,
		"phrases_found", len(config.Phrases), "extensions_found", len(config.Extensions))
	return &config, nil
}

// LoadDir finds, parses, and merges all *.hcl grammar manifests under a
// directory into a single Config. Files merge in sorted path order so
// registration order is deterministic.
func LoadDir(ctx context.Context, dirPath string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	files, err := fsutil.FindFilesByExtension(dirPath, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve grammar path %q: %w", dirPath, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl grammar manifests found.", "path", dirPath)
		return &Config{}, nil
	}

	merged := &Config{}
	for _, file := range files {
		cfg, err := DecodeFile(ctx, file)
		if err != nil {
			return nil, err
		}
		merged.Phrases = append(merged.Phrases, cfg.Phrases...)
		merged.Extensions = append(merged.Extensions, cfg.Extensions...)
	}
	logger.Info("Grammar manifests loaded.", "files", len(files),
		"phrases", len(merged.Phrases), "extensions", len(merged.Extensions))
	return merged, nil
}

// Install builds every declared phrase tree and registers it, along with
// all declared extensions, into the registry. Manifest problems surface
// here as configuration errors, before any session exists.
func Install(cfg *Config, reg *registry.Registry) error {
	for _, pb := range cfg.Phrases {
		if pb.Root == nil {
			return fmt.Errorf("phrase %q: missing root block", pb.Identity)
		}
		tree, err := buildNode(pb.Root, fmt.Sprintf("phrase %q", pb.Identity))
		if err != nil {
			return err
		}
		if err := reg.RegisterPhrase(pb.Identity, grammar.Static(tree)); err != nil {
			return err
		}
	}
	for _, eb := range cfg.Extensions {
		if err := reg.RegisterExtension(eb.Target, eb.Extends); err != nil {
			return err
		}
	}
	return nil
}

// BuildRoot assembles the session root: an alternation over every phrase
// marked command = true, in declaration order.
func BuildRoot(cfg *Config) (grammar.Node, error) {
	var alts []grammar.Node
	for _, pb := range cfg.Phrases {
		if pb.Command {
			alts = append(alts, grammar.NewPhraseRef(pb.Identity))
		}
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("no phrases marked as commands; nothing to parse")
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return grammar.NewChoice(alts...), nil
}
