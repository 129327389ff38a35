package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"notewell/config"
)

var initCmd = &cobra.Command{
	Use:   "init [vault-path]",
	Short: "Write a config file pointing at the vault",
	Long: `Record the vault location in notewell.yaml inside the vault, so
later commands can run from anywhere.

Example:
  notewell init ~/vault`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("invalid vault path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("vault does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault is not a directory: %s", path)
	}

	c := config.DefaultConfig()
	c.Vault.Path = path

	configPath := config.ConfigPath(path)
	if err := c.Save(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Initialized vault %s\nConfig written to %s\n", path, configPath)
	return nil
}
