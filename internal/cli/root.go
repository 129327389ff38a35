package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"notewell/config"
)

var (
	cfgFile  string
	vaultArg string
	cfg      *config.Config
	vault    string
)

var rootCmd = &cobra.Command{
	Use:   "notewell",
	Short: "notewell - semantic search over a folder of notes",
	Long: `notewell indexes a tree of Markdown notes into a local vector store
and answers free-text queries with a small, confident set of matching files.

Example usage:
  notewell init ~/vault              # Remember the vault location
  notewell index                     # Index the vault
  notewell search -q "meeting budget"
  notewell serve                     # HTTP endpoint on GET /search?q=...
  notewell watch                     # Keep the index in sync with edits`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error

		dir := vaultArg
		if dir == "" {
			dir, err = os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
		}

		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			cfg, err = config.LoadFromDir(dir)
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// The flag wins over the config file; the config file over cwd.
		if vaultArg != "" {
			cfg.Vault.Path = vaultArg
		}
		if cfg.Vault.Path == "" {
			cfg.Vault.Path = dir
		}
		vault, err = filepath.Abs(cfg.Vault.Path)
		if err != nil {
			return fmt.Errorf("invalid vault path: %w", err)
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./notewell.yaml)")
	rootCmd.PersistentFlags().StringVarP(&vaultArg, "vault", "v", "", "vault directory (default from config or current directory)")
}
