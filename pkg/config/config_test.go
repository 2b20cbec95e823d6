package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Meili.Host != DefaultMeiliHost || cfg.Meili.Index != DefaultMeiliIndex {
		t.Errorf("meili defaults = %+v", cfg.Meili)
	}
	if cfg.Search.ResultsPerPage != 10 || cfg.Search.CacheSize != 50 || cfg.Search.HistorySize != 20 {
		t.Errorf("search defaults = %+v", cfg.Search)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
port = 8080

[provider]
api_key = "file-key"

[meili]
host = "http://meili.internal:7700"
index = "docs"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.Provider.APIKey != "file-key" {
		t.Errorf("provider key = %q", cfg.Provider.APIKey)
	}
	if cfg.Meili.Host != "http://meili.internal:7700" || cfg.Meili.Index != "docs" {
		t.Errorf("meili = %+v", cfg.Meili)
	}
	// Unset fields still get defaults.
	if cfg.Host != DefaultHost {
		t.Errorf("host = %q, want %q", cfg.Host, DefaultHost)
	}
	if cfg.Search.ResultsPerPage != 10 {
		t.Errorf("results_per_page = %d, want 10", cfg.Search.ResultsPerPage)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("PORT", "4000")
	t.Setenv("SERPER_API_KEY", "env-key")
	t.Setenv("MEILI_HOST", "http://env:7700")
	t.Setenv("MEILI_MASTER_KEY", "env-master")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 4000 {
		t.Errorf("port = %d, want 4000", cfg.Port)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Errorf("provider key = %q", cfg.Provider.APIKey)
	}
	if cfg.Meili.Host != "http://env:7700" || cfg.Meili.APIKey != "env-master" {
		t.Errorf("meili = %+v", cfg.Meili)
	}
	if got := cfg.Addr(); got != "localhost:4000" {
		t.Errorf("addr = %q", got)
	}
}

func TestProviderKeyEnvPrecedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("D1KS_PROVIDER_API_KEY", "primary")
	t.Setenv("SERPER_API_KEY", "fallback")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.APIKey != "primary" {
		t.Errorf("provider key = %q, want primary", cfg.Provider.APIKey)
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Port = 9999
	cfg.Provider.APIKey = "roundtrip"

	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := cfg.SaveConfig(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Port != 9999 || loaded.Provider.APIKey != "roundtrip" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestSaveTemplateConfig(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	cfg, err := GetDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := cfg.SaveTemplateConfig(path); err != nil {
		t.Fatalf("save template: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), cfg.DataDir) {
		t.Errorf("template does not mention data dir %q", cfg.DataDir)
	}
	if strings.Contains(string(data), "/home/user/.local/share/d1ks") {
		t.Error("template placeholder not replaced")
	}
}
