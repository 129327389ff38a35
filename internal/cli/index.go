package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"notewell/internal/adapter/chunker"
	"notewell/internal/adapter/fs"
	"notewell/internal/usecase"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the vault into the vector store",
	Long: `Walk the vault, turn every note into context-annotated chunks and
upsert them into the vector store. Re-indexing an unchanged note rewrites
the same records, so running this repeatedly is safe.

Examples:
  notewell index
  notewell index --vault ~/vault`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(vault)
	if err != nil {
		return fmt.Errorf("vault does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("vault is not a directory: %s", vault)
	}

	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	walker := fs.NewWalker(cfg.Vault.IgnoreFolders, cfg.Vault.ExcludeGlobs, cfg.Vault.Extension)
	indexUC := usecase.NewIndexUseCase(collection, walker, chunker.NewFixedChunker(chunker.DefaultChunkSize), cfg.Vault.Extension)

	fmt.Printf("Indexing %s...\n", vault)

	var bar *progressbar.ProgressBar
	report, err := indexUC.Run(vault, func(processed, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan]Indexing[reset]"),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
		}
		bar.Set(processed)
	})
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nIndexing complete:\n")
	fmt.Printf("  Files indexed:  %d\n", report.FilesIndexed)
	fmt.Printf("  Files skipped:  %d (empty)\n", report.FilesSkipped)
	fmt.Printf("  Chunks written: %d\n", report.ChunksCreated)
	fmt.Printf("  Store records:  %d\n", report.StoreRecords)

	if len(report.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range report.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nIndex stored at: %s\n", cfg.StorePath(vault))
	return nil
}
