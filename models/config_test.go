package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.RenderTimeout != 60*time.Second {
		t.Errorf("RenderTimeout = %v, want 60s", cfg.RenderTimeout)
	}
	if cfg.FetchTimeout != 30*time.Second || cfg.SubmitTimeout != 30*time.Second {
		t.Errorf("timeouts = %v/%v, want 30s/30s", cfg.FetchTimeout, cfg.SubmitTimeout)
	}
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "listen_addr: \":9999\"\nexpected_secret: \"s3cret\"\ndb_path: \"tasks.db\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if cfg.ExpectedSecret != "s3cret" {
		t.Errorf("ExpectedSecret = %q, want s3cret", cfg.ExpectedSecret)
	}
	if cfg.DBPath != "tasks.db" {
		t.Errorf("DBPath = %q, want tasks.db", cfg.DBPath)
	}
}

func TestLoadConfig_SecretEnvFallback(t *testing.T) {
	t.Setenv("QUIZ_SECRET", "from-env")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.ExpectedSecret != "from-env" {
		t.Errorf("ExpectedSecret = %q, want env fallback", cfg.ExpectedSecret)
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\t:not yaml ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() error = nil, want parse failure")
	}
}
