package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
storage:
  database_path: ./data/catalog.db
media:
  target_seconds: 300
transcribe:
  endpoint: https://engine.example.com/v1/transcribe
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port=%d", cfg.Server.Port)
	}
	if cfg.Media.TargetSeconds != 300 {
		t.Errorf("target_seconds=%v", cfg.Media.TargetSeconds)
	}
	want := filepath.Join(dir, "data/catalog.db")
	if cfg.Storage.DatabasePath != want {
		t.Errorf("database_path=%s, want %s", cfg.Storage.DatabasePath, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Port != 8080 {
		t.Errorf("default port=%d", cfg.Server.Port)
	}
	if cfg.Media.TargetSeconds != 600 {
		t.Errorf("default target_seconds=%v", cfg.Media.TargetSeconds)
	}
	if cfg.Search.DefaultTopK != 5 {
		t.Errorf("default top_k=%d", cfg.Search.DefaultTopK)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("default dimensions=%d", cfg.Embedding.Dimensions)
	}
	if cfg.Storage.BlobBackend != "disk" {
		t.Errorf("default blob backend=%s", cfg.Storage.BlobBackend)
	}
}
