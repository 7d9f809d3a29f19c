package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Context.MaxContextFiles != 50 {
		t.Errorf("MaxContextFiles = %d, want 50", cfg.Context.MaxContextFiles)
	}
	if cfg.Context.MaxPromptLength != 50000 {
		t.Errorf("MaxPromptLength = %d, want 50000", cfg.Context.MaxPromptLength)
	}
	if cfg.Context.MaxFileContentLength != 3000 {
		t.Errorf("MaxFileContentLength = %d, want 3000", cfg.Context.MaxFileContentLength)
	}
	if len(cfg.Context.IncludeExtensions) == 0 {
		t.Error("default extension allow-list should not be empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("missing config file must not be an error: %v", err)
	}
	if cfg.Context.MaxPromptLength != 50000 {
		t.Errorf("expected defaults, got MaxPromptLength=%d", cfg.Context.MaxPromptLength)
	}
}

func TestLoad_EmptyWorkspace(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Context.MaxContextFiles != 50 {
		t.Errorf("expected defaults for empty workspace, got %d", cfg.Context.MaxContextFiles)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	workspace := t.TempDir()
	content := "context:\n  max_prompt_length: 20000\n"
	if err := os.WriteFile(filepath.Join(workspace, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(workspace)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Context.MaxPromptLength != 20000 {
		t.Errorf("MaxPromptLength = %d, want the configured 20000", cfg.Context.MaxPromptLength)
	}
	if cfg.Context.MaxContextFiles != 50 {
		t.Errorf("unset MaxContextFiles should stay at the default, got %d", cfg.Context.MaxContextFiles)
	}
	if len(cfg.Context.ExcludeDirs) == 0 {
		t.Error("unset exclude list should stay at the default")
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	workspace := t.TempDir()
	content := "context:\n  max_prompt_length: 10\n"
	if err := os.WriteFile(filepath.Join(workspace, FileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(workspace)
	if err == nil {
		t.Fatal("out-of-range budget should fail validation")
	}
	if cfg.Context.MaxPromptLength != 50000 {
		t.Errorf("failed load should fall back to defaults, got %d", cfg.Context.MaxPromptLength)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	workspace := t.TempDir()
	if err := os.WriteFile(filepath.Join(workspace, FileName), []byte("context: ["), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(workspace)
	if err == nil {
		t.Fatal("malformed YAML should be an error")
	}
	if cfg == nil || cfg.Context.MaxContextFiles != 50 {
		t.Error("failed load should still return usable defaults")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"zero files", func(c *Config) { c.Context.MaxContextFiles = 0 }, false},
		{"tiny prompt", func(c *Config) { c.Context.MaxPromptLength = 999 }, false},
		{"tiny file cap", func(c *Config) { c.Context.MaxFileContentLength = 99 }, false},
		{"minimums", func(c *Config) {
			c.Context.MaxContextFiles = 1
			c.Context.MaxPromptLength = 1000
			c.Context.MaxFileContentLength = 100
		}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Error("expected validation failure")
			}
		})
	}
}
