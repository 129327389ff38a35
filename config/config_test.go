package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Search.Candidates != 20 {
		t.Errorf("expected Candidates=20, got %d", cfg.Search.Candidates)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Search.TopK)
	}
	if cfg.Search.FilenameBoost != 0.7 {
		t.Errorf("expected FilenameBoost=0.7, got %f", cfg.Search.FilenameBoost)
	}
	if cfg.Search.ScoreThreshold != 1.2 {
		t.Errorf("expected ScoreThreshold=1.2, got %f", cfg.Search.ScoreThreshold)
	}
	if cfg.Vault.Extension != ".md" {
		t.Errorf("expected Extension=.md, got %s", cfg.Vault.Extension)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Errorf("expected no error for non-existent file, got %v", err)
	}
	if cfg == nil {
		t.Error("expected default config, got nil")
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	t.Setenv(EnvVault, "")
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "notewell.yaml")

	content := `
vault:
  path: /data/vault
  ignore_folders: [".git"]
search:
  top_k: 3
  filename_boost: 0.5
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Vault.Path != "/data/vault" {
		t.Errorf("expected vault path /data/vault, got %s", cfg.Vault.Path)
	}
	if len(cfg.Vault.IgnoreFolders) != 1 || cfg.Vault.IgnoreFolders[0] != ".git" {
		t.Errorf("unexpected ignore folders: %v", cfg.Vault.IgnoreFolders)
	}
	if cfg.Search.TopK != 3 {
		t.Errorf("expected TopK=3, got %d", cfg.Search.TopK)
	}
	if cfg.Search.FilenameBoost != 0.5 {
		t.Errorf("expected FilenameBoost=0.5, got %f", cfg.Search.FilenameBoost)
	}
	// Untouched sections keep their defaults.
	if cfg.Search.ScoreThreshold != 1.2 {
		t.Errorf("expected default ScoreThreshold=1.2, got %f", cfg.Search.ScoreThreshold)
	}
}

func TestLoadFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "notewell.yaml")

	content := `
server:
  addr: ":9000"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromDir(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}
}

func TestEnvOverridesVaultPath(t *testing.T) {
	t.Setenv(EnvVault, "/env/vault")

	cfg, err := Load("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Vault.Path != "/env/vault" {
		t.Errorf("expected env vault path, got %s", cfg.Vault.Path)
	}
}

func TestSaveAndReload(t *testing.T) {
	t.Setenv(EnvVault, "")
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "notewell.yaml")

	cfg := DefaultConfig()
	cfg.Vault.Path = "/my/vault"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Vault.Path != "/my/vault" {
		t.Errorf("expected /my/vault, got %s", loaded.Vault.Path)
	}
}

func TestStorePath(t *testing.T) {
	cfg := DefaultConfig()

	got := cfg.StorePath("/home/user/vault")
	expected := filepath.Join("/home/user/vault", ".notewell", "index.db")
	if got != expected {
		t.Errorf("expected %s, got %s", expected, got)
	}

	cfg.Store.Path = "/elsewhere/index.db"
	if cfg.StorePath("/home/user/vault") != "/elsewhere/index.db" {
		t.Errorf("explicit store path should win")
	}
}
