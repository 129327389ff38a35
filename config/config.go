package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvVault overrides the configured vault path when set.
const EnvVault = "NOTEWELL_VAULT"

// Config holds all configuration for notewell.
type Config struct {
	Vault     VaultConfig     `yaml:"vault"`
	Store     StoreConfig     `yaml:"store"`
	Search    SearchConfig    `yaml:"search"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Server    ServerConfig    `yaml:"server"`
}

// VaultConfig describes the note tree to index.
type VaultConfig struct {
	Path          string   `yaml:"path"`
	IgnoreFolders []string `yaml:"ignore_folders"` // exact directory names, pruned before descent
	ExcludeGlobs  []string `yaml:"exclude_globs"`  // doublestar patterns relative to the vault root
	Extension     string   `yaml:"extension"`
}

// StoreConfig locates the vector store.
type StoreConfig struct {
	Path       string `yaml:"path"`       // empty means .notewell/index.db under the vault
	Collection string `yaml:"collection"` // bucket name; bump to rebuild from scratch
}

// SearchConfig holds the re-ranking policy as named values so it stays
// testable in isolation from retrieval.
type SearchConfig struct {
	Candidates     int     `yaml:"candidates"`      // nearest-neighbor oversample per query
	TopK           int     `yaml:"top_k"`           // maximum results returned
	FilenameBoost  float64 `yaml:"filename_boost"`  // subtracted when a query word hits the filename
	ScoreThreshold float64 `yaml:"score_threshold"` // results at or above this are discarded
	MinWordLength  int     `yaml:"min_word_length"` // query words must be longer than this to boost
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "mock"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"`
	BatchSize int    `yaml:"batch_size"`
}

// ServerConfig holds the HTTP listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Vault: VaultConfig{
			IgnoreFolders: []string{".obsidian", ".git", ".stfolder", "templates"},
			Extension:     ".md",
		},
		Store: StoreConfig{
			Collection: "notes_v1",
		},
		Search: SearchConfig{
			Candidates:     20,
			TopK:           5,
			FilenameBoost:  0.7,
			ScoreThreshold: 1.2,
			MinWordLength:  2,
		},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "nomic-embed-text",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 768,
			BatchSize: 100,
		},
		Server: ServerConfig{
			Addr: ":8400",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults
// when the file does not exist. The NOTEWELL_VAULT environment variable
// overrides the vault path either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for notewell.yaml,
// then .notewell/config.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "notewell.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".notewell", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	cfg := DefaultConfig()
	cfg.applyEnv()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvVault); v != "" {
		c.Vault.Path = v
	}
}

// StorePath returns the vector store location: the configured path if set,
// otherwise .notewell/index.db under the vault.
func (c *Config) StorePath(vault string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(vault, ".notewell", "index.db")
}

// ConfigPath returns the config file location inside the vault.
func ConfigPath(vault string) string {
	return filepath.Join(vault, "notewell.yaml")
}

// EnsureDataDir ensures the .notewell directory exists under the vault.
func EnsureDataDir(vault string) error {
	return os.MkdirAll(filepath.Join(vault, ".notewell"), 0755)
}
