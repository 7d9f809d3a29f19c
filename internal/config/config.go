// Package config loads and validates the .ctxforge.yaml workspace
// configuration. All values have working defaults; a missing config file is
// never an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the workspace-relative config file name.
const FileName = ".ctxforge.yaml"

// Config is the root configuration structure.
type Config struct {
	Context ContextConfig `yaml:"context" json:"context"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// ContextConfig carries the budget parameters for context assembly.
type ContextConfig struct {
	MaxContextFiles      int      `yaml:"max_context_files" json:"max_context_files"`             // Source file count cap per collection pass
	MaxPromptLength      int      `yaml:"max_prompt_length" json:"max_prompt_length"`             // Hard character cap on the final prompt
	MaxFileContentLength int      `yaml:"max_file_content_length" json:"max_file_content_length"` // Per-file character cap after summarization
	IncludeExtensions    []string `yaml:"include_extensions" json:"include_extensions"`           // Extension allow-list for collection
	ExcludeDirs          []string `yaml:"exclude_dirs" json:"exclude_dirs"`                       // Directory names skipped during enumeration
}

// LoggingConfig mirrors the logging block consumed by internal/logging.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode" json:"debug_mode"`
	Categories map[string]bool `yaml:"categories" json:"categories"`
	Level      string          `yaml:"level" json:"level"`
}

// Default returns a config with all defaults applied.
func Default() *Config {
	return &Config{
		Context: ContextConfig{
			MaxContextFiles:      50,
			MaxPromptLength:      50000,
			MaxFileContentLength: 3000,
			IncludeExtensions: []string{
				".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs",
				".java", ".go", ".py", ".rs",
				".json", ".yaml", ".yml", ".md",
			},
			ExcludeDirs: []string{
				"node_modules", "vendor", "dist", "build", "out", "target",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the workspace config file, applying defaults for absent values.
// A missing file yields Default() with no error.
func Load(workspace string) (*Config, error) {
	cfg := Default()
	if workspace == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filepath.Join(workspace, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// applyDefaults fills zero-valued fields after a partial YAML load.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Context.MaxContextFiles == 0 {
		c.Context.MaxContextFiles = def.Context.MaxContextFiles
	}
	if c.Context.MaxPromptLength == 0 {
		c.Context.MaxPromptLength = def.Context.MaxPromptLength
	}
	if c.Context.MaxFileContentLength == 0 {
		c.Context.MaxFileContentLength = def.Context.MaxFileContentLength
	}
	if len(c.Context.IncludeExtensions) == 0 {
		c.Context.IncludeExtensions = def.Context.IncludeExtensions
	}
	if len(c.Context.ExcludeDirs) == 0 {
		c.Context.ExcludeDirs = def.Context.ExcludeDirs
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks that the budget parameters are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Context.MaxContextFiles < 1 {
		return fmt.Errorf("max_context_files must be >= 1")
	}
	if c.Context.MaxPromptLength < 1000 {
		return fmt.Errorf("max_prompt_length must be >= 1000")
	}
	if c.Context.MaxFileContentLength < 100 {
		return fmt.Errorf("max_file_content_length must be >= 100")
	}
	return nil
}
