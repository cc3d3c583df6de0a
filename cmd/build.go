package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/pipeline"
	"github.com/kamusis/regdoc/internal/registry"
	"github.com/kamusis/regdoc/internal/render"
	"github.com/spf13/cobra"
)

var (
	flagNoLock      bool
	flagLockTimeout time.Duration
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate index.json, then the documentation site",
	Long: `Run the indexer and then the doc renderer in one locked pass.
Equivalent to 'regdoc index && regdoc docs'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runStages(cmd, "regdoc build", pipeline.StageAll)
	},
}

func init() {
	addRunFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}

// addRunFlags registers the locking flags shared by every pipeline command.
func addRunFlags(c *cobra.Command) {
	c.Flags().BoolVar(&flagNoLock, "no-lock", false, "Do not take the project run lock")
	c.Flags().DurationVar(&flagLockTimeout, "lock-timeout", pipeline.DefaultLockTimeout, "How long to wait for a concurrent run to finish")
}

func runOptions(stages pipeline.Stage) pipeline.Options {
	return pipeline.Options{
		Stages:      stages,
		LockTimeout: flagLockTimeout,
		NoLock:      flagNoLock,
		Logger:      logger,
	}
}

// runStages loads the config, runs the selected stages and prints a summary.
func runStages(cmd *cobra.Command, title string, stages pipeline.Stage) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := pipeline.Run(cmd.Context(), cfg, runOptions(stages))
	if err != nil {
		return err
	}
	printSection(title)
	printResult(cfg, res)
	return nil
}

func printResult(cfg *config.Config, res *pipeline.Result) {
	if res.Index != nil {
		printIndexSummary(cfg, res.Index)
	}
	if res.Docs != nil {
		printDocsSummary(cfg, res.Docs)
	}
}

func printIndexSummary(cfg *config.Config, idx *registry.Index) {
	printOK("", fmt.Sprintf("index written: %s (%d hooks, %d utils)",
		relPath(cfg, cfg.IndexPath), idx.Hooks.Len(), idx.Utils.Len()))
}

func printDocsSummary(cfg *config.Config, res *render.Result) {
	for _, c := range registry.Categories {
		printOK(string(c), fmt.Sprintf("%d page(s) rendered", len(res.Rendered[c])))
	}
	for _, s := range res.Skipped {
		printSkip(string(s.Category)+"/"+s.Entry, s.Reason)
	}
	printOK("", fmt.Sprintf("sidebar written: %s",
		relPath(cfg, filepath.Join(cfg.DocsRoot, render.SidebarFile))))
}

// relPath shortens p for display when it lives under the source root.
func relPath(cfg *config.Config, p string) string {
	rel, err := filepath.Rel(cfg.SourceRoot, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
