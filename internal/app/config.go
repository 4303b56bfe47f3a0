package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPath string // graph container file or directory of .hcl files
	OutPath   string // empty means the rewritten graph goes to the app's output writer

	LogFormat    string
	LogLevel     string
	SkipConvFold bool // stop after the activation-idiom pass
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.GraphPath == "" {
		return nil, errors.New("GraphPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
