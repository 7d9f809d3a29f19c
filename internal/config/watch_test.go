package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatch_FiresOnConfigChange(t *testing.T) {
	workspace := t.TempDir()
	path := filepath.Join(workspace, FileName)
	if err := os.WriteFile(path, []byte("context:\n  max_prompt_length: 20000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	changed := make(chan *Config, 1)
	w, err := Watch(workspace, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("context:\n  max_prompt_length: 30000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changed:
		if cfg.Context.MaxPromptLength != 30000 {
			t.Errorf("reloaded MaxPromptLength = %d, want 30000", cfg.Context.MaxPromptLength)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("config change never observed")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	workspace := t.TempDir()

	changed := make(chan *Config, 1)
	w, err := Watch(workspace, func(cfg *Config) {
		select {
		case changed <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(workspace, "other.txt"), []byte("noise"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Error("unrelated file write should not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatch_CloseStopsLoop(t *testing.T) {
	w, err := Watch(t.TempDir(), func(*Config) {})
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}
