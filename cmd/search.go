package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kamusis/regdoc/internal/registry"
	"github.com/spf13/cobra"
)

var flagSearchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search index entries by keyword",
	Long: `Match every query word (case-insensitive) against entry names,
descriptions and categories in index.json. All words must match.

Example:
  regdoc search debounce
  regdoc search url param`,
	Args: cobra.MinimumNArgs(0),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVar(&flagSearchLimit, "limit", 10, "Maximum number of results (0 = all)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	idx, err := registry.Load(cfg.IndexPath)
	if err != nil {
		return err
	}

	query := strings.Join(args, " ")
	printSearchResults(query, registry.Search(idx, query, flagSearchLimit))
	return nil
}

func printSearchResults(query string, results []registry.SearchResult) {
	fmt.Fprintf(stdout, "\nregdoc search %q\n\n", query)
	fmt.Fprintf(stdout, "Results (%d found):\n", len(results))
	if len(results) == 0 {
		return
	}

	// Results arrive sorted by category, so groups are contiguous.
	var (
		w    *tabwriter.Writer
		last registry.Category
		n    int
	)
	for _, r := range results {
		if w == nil || r.Category != last {
			if w != nil {
				_ = w.Flush()
			}
			last, n = r.Category, 0
			fmt.Fprintf(stdout, "\n%s:\n", r.Category)
			w = tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
		}
		n++
		fmt.Fprintf(w, "  %d.\t%s\t%s\n", n, r.Entry.Name, strings.TrimSpace(r.Entry.Description))
	}
	_ = w.Flush()
}
