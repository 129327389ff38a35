package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"notewell/internal/adapter/chunker"
	"notewell/internal/adapter/fs"
	"notewell/internal/usecase"
	"notewell/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index in sync with vault edits",
	Long: `Run a full index pass, then watch the vault and re-index notes as
they are created or edited. Notes deleted while watching have their
records removed from the store.

Example:
  notewell watch`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	walker := fs.NewWalker(cfg.Vault.IgnoreFolders, cfg.Vault.ExcludeGlobs, cfg.Vault.Extension)
	indexUC := usecase.NewIndexUseCase(collection, walker, chunker.NewFixedChunker(chunker.DefaultChunkSize), cfg.Vault.Extension)

	fmt.Printf("Indexing %s...\n", vault)
	report, err := indexUC.Run(vault, nil)
	if err != nil {
		return fmt.Errorf("initial indexing failed: %w", err)
	}
	fmt.Printf("Indexed %d files (%d records in store)\n", report.FilesIndexed, report.StoreRecords)
	for _, e := range report.Errors {
		fmt.Printf("  warning: %s\n", e)
	}

	w, err := watcher.New(vault, cfg.Vault.IgnoreFolders, cfg.Vault.Extension)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()
	go w.Run()

	fmt.Printf("Watching %s for changes...\n", vault)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped watching.")
			return nil
		case batch := <-w.Changes():
			for _, c := range batch {
				if c.Removed {
					removed, err := indexUC.RemoveFile(c.Path)
					if err != nil {
						fmt.Printf("failed to remove %s: %v\n", c.Path, err)
						continue
					}
					fmt.Printf("removed %s (%d records)\n", c.Path, removed)
					continue
				}

				chunks, err := indexUC.IndexFile(vault, c.Path)
				if err != nil {
					fmt.Printf("failed to index %s: %v\n", c.Path, err)
					continue
				}
				if chunks > 0 {
					fmt.Printf("indexed %s (%d chunks)\n", c.Path, chunks)
				}
			}
		}
	}
}
