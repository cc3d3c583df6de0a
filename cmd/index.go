package cmd

import (
	"github.com/kamusis/regdoc/internal/pipeline"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Scan hooks/ and utils/ and write index.json",
	Long: `Scan every .ts/.tsx file directly inside the hooks and utils source
directories and rewrite the registry index. The previous index is replaced
wholesale; entries whose source file disappeared are dropped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStages(cmd, "regdoc index", pipeline.StageIndex)
	},
}

func init() {
	addRunFlags(indexCmd)
	rootCmd.AddCommand(indexCmd)
}
