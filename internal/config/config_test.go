package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	if got, want := ConfigPath(), "/custom/config/opextract/config.yaml"; got != want {
		t.Errorf("Expected config path %s, got %s", want, got)
	}
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OperationsDir != DefaultOperationsDir || cfg.Output != DefaultOutput {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFromStandardLocation(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path := filepath.Join(configHome, APP_NAME, "config.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("output: catalog.json\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output != "catalog.json" {
		t.Errorf("Output = %q, want catalog.json", cfg.Output)
	}
	if cfg.OperationsDir != DefaultOperationsDir {
		t.Errorf("OperationsDir = %q, want default", cfg.OperationsDir)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "operations_dir: /srv/chef/src/core/operations\neval_timeout: 250ms\nextensions: []\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if cfg.OperationsDir != "/srv/chef/src/core/operations" {
		t.Errorf("OperationsDir = %q", cfg.OperationsDir)
	}
	if cfg.EvalTimeout != 250*time.Millisecond {
		t.Errorf("EvalTimeout = %v, want 250ms", cfg.EvalTimeout)
	}
	if cfg.Output != DefaultOutput {
		t.Errorf("Output = %q, want default", cfg.Output)
	}
	if !slices.Equal(cfg.Extensions, []string{".mjs", ".js"}) {
		t.Errorf("Extensions = %v, want defaults", cfg.Extensions)
	}
}

func TestConfigSaveLoad(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.Output = "/tmp/ops.json"
	original.MaxFileSize = 1024
	original.Version = ""

	if err := original.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %s", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %s", err)
	}

	if loaded.Output != original.Output || loaded.MaxFileSize != 1024 {
		t.Errorf("Round trip mismatch: %+v", loaded)
	}
	if loaded.Version != ConfigVersion {
		t.Errorf("Version = %q, want %q", loaded.Version, ConfigVersion)
	}
	if loaded.EvalTimeout != original.EvalTimeout {
		t.Errorf("EvalTimeout = %v, want %v", loaded.EvalTimeout, original.EvalTimeout)
	}

	info, err := os.Stat(configPath)
	if err != nil {
		t.Fatalf("Failed to stat config file: %s", err)
	}
	if info.Mode()&0077 != 0 {
		t.Errorf("Config file should not be readable by group/others, got mode %o", info.Mode())
	}
}

func TestResolve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Resolve("/work/CyberChef")

	if cfg.OperationsDir != "/work/CyberChef/src/core/operations" {
		t.Errorf("OperationsDir = %q", cfg.OperationsDir)
	}
	if cfg.Output != "/work/CyberChef/operations.json" {
		t.Errorf("Output = %q", cfg.Output)
	}
}

func TestRepositoryDefaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	cfg := DefaultConfig()
	if cfg.Repository.URL != "https://github.com/gchq/CyberChef.git" {
		t.Errorf("Repository.URL = %q", cfg.Repository.URL)
	}

	path, err := cfg.Repository.CheckoutPath()
	if err != nil {
		t.Fatalf("CheckoutPath failed: %v", err)
	}
	if path != "/data/opextract/CyberChef" {
		t.Errorf("CheckoutPath = %q", path)
	}
}

func TestRepositoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "repository:\n  url: git@github.com:me/CyberChef.git\n  branch: develop\n  path: chef\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	cfg.Resolve("/work")

	if cfg.Repository.URL != "git@github.com:me/CyberChef.git" || cfg.Repository.Branch != "develop" {
		t.Errorf("Repository = %+v", cfg.Repository)
	}
	if cfg.Repository.Path != "/work/chef" {
		t.Errorf("Repository.Path = %q, want /work/chef", cfg.Repository.Path)
	}
}

// Error handling tests
func TestConfigErrorHandling(t *testing.T) {
	t.Run("load non-existent file", func(t *testing.T) {
		_, err := LoadFrom("/non/existent/file.yaml")
		if err == nil {
			t.Error("Should error when loading non-existent file")
		}
	})

	t.Run("load invalid YAML", func(t *testing.T) {
		invalidFile := filepath.Join(t.TempDir(), "invalid.yaml")
		os.WriteFile(invalidFile, []byte("invalid: yaml: content: ["), 0644)

		_, err := LoadFrom(invalidFile)
		if err == nil {
			t.Error("Should error when loading invalid YAML")
		}
	})
}
