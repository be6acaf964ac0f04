package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"unicode/utf8"
)

func TestQueryArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after query are moved first",
			args:     []string{"gradient descent", "-top-k", "10"},
			expected: []string{"-top-k", "10", "gradient descent"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-top-k", "10", "gradient descent"},
			expected: []string{"-top-k", "10", "gradient descent"},
		},
		{
			name:     "query only returns unchanged",
			args:     []string{"gradient descent"},
			expected: []string{"gradient descent"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: nil,
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"one", "two", "-collections", "demo"},
			expected: []string{"-collections", "demo", "one", "two"},
		},
		{
			name:     "boolean flag with equals",
			args:     []string{"query", "--keyword=true"},
			expected: []string{"--keyword=true", "query"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := queryArgsReorder(tt.args)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("queryArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSplitCollections(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"single", "demo", []string{"demo"}},
		{"multiple", "a,b,c", []string{"a", "b", "c"}},
		{"spaces trimmed", " a , b ", []string{"a", "b"}},
		{"empty parts dropped", "a,,b,", []string{"a", "b"}},
		{"empty string", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitCollections(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitCollections(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("a long piece of text", 6); got != "a long..." {
		t.Errorf("truncate long = %q", got)
	}
	if got := truncate("anything", 0); got != "anything" {
		t.Errorf("truncate zero = %q", got)
	}
	// The cut must land on a rune boundary, not mid-codepoint.
	if got := truncate("日本語のテキスト", 4); got != "日..." {
		t.Errorf("truncate multibyte = %q", got)
	}
	if !utf8.ValidString(truncate("école über naïve", 7)) {
		t.Error("truncate produced invalid UTF-8")
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: "localhost"
  port: 8080
storage:
  database_path: "test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(origWd) }()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	// On macOS, cwd can be /private/var/... while configPath from t.TempDir()
	// is /var/...; compare canonical paths.
	resolvedCanon, _ := filepath.EvalSymlinks(resolved)
	configPathCanon, _ := filepath.EvalSymlinks(configPath)
	if resolvedCanon != configPathCanon {
		t.Errorf("resolved path = %s, want %s", resolvedCanon, configPathCanon)
	}
	if !cfg.Debug {
		t.Error("debug should be true from cwd config.yaml")
	}
}

func TestLoadConfig_usesExplicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
storage:
  database_path: "test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %s, want %s", resolved, configPath)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
}
