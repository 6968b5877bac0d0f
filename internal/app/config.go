package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GrammarPath string // directory of *.hcl phrase manifests
	Input       string // input to parse in one-shot mode
	Interactive bool   // read input increments from stdin instead

	LookupKey string // optional webquery lookup: name the result is stored under
	LookupURL string // optional webquery lookup: JSON document URL

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GrammarPath == "" {
		return nil, errors.New("GrammarPath is a required configuration field and cannot be empty")
	}
	if (cfg.LookupKey == "") != (cfg.LookupURL == "") {
		return nil, errors.New("LookupKey and LookupURL must be set together")
	}
	return &cfg, nil
}
