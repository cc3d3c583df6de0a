package cmd

import (
	"github.com/kamusis/regdoc/internal/pipeline"
	"github.com/spf13/cobra"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Render the documentation site from index.json",
	Long: `Read index.json, re-parse the doc comment of every entry's source file and
write docs/<category>/<name>.md, docs/<category>/index.md and docs/sidebar.json.

Entries whose source file is missing or has no doc comment are skipped.
If index.json does not exist nothing is written and the exit status is 2.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStages(cmd, "regdoc docs", pipeline.StageDocs)
	},
}

func init() {
	addRunFlags(docsCmd)
	rootCmd.AddCommand(docsCmd)
}
