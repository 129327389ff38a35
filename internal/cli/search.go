package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"notewell/internal/usecase"
)

var (
	searchQuery string
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the indexed vault",
	Long: `Search the vault for files matching a free-text query. At most five
results come back, each the best-scoring chunk of one file, and only
results below the confidence threshold are shown.

Examples:
  notewell search -q "meeting budget"
  notewell search -q "travel plans" --json`,
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	collection, closeStore, err := openCollection(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	searchUC := usecase.NewSearchUseCase(collection, vault, cfg.Search)
	resp, err := searchUC.Search(searchQuery)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		output, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if resp.Count == 0 {
		fmt.Printf("No confident results found for '%s'\n", searchQuery)
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", resp.Count, resp.Query)
	for i, r := range resp.Results {
		fmt.Printf("--- [%d] %s (score: %.3f, modified: %s) ---\n", i+1, r.Path, r.Score, r.LastModified)
		for _, s := range r.Snippets {
			fmt.Println(s)
		}
		fmt.Println()
	}
	return nil
}
