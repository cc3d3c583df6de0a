package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/kamusis/regdoc/internal/pipeline"
	"github.com/spf13/cobra"
)

var flagDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build once, then rebuild whenever a source file changes",
	Long: `Run a full build, then watch the hooks and utils directories and rebuild
after each burst of changes. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	addRunFlags(watchCmd)
	watchCmd.Flags().DurationVar(&flagDebounce, "debounce", pipeline.DefaultDebounce, "Quiet period before a rebuild starts")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	printSection("regdoc watch")
	res, err := pipeline.Run(ctx, cfg, runOptions(pipeline.StageAll))
	if err != nil {
		return err
	}
	printResult(cfg, res)

	return pipeline.Watch(ctx, cfg, pipeline.WatchOptions{
		Run:      runOptions(pipeline.StageAll),
		Debounce: flagDebounce,
		OnReady: func(dirs []string) {
			for _, d := range dirs {
				printInfo("", fmt.Sprintf("watching %s", relPath(cfg, d)))
			}
			printInfo("", "press Ctrl+C to stop")
		},
		OnRun: func(res *pipeline.Result, err error) {
			printSection("rebuild " + time.Now().Format(time.TimeOnly))
			switch {
			case errors.Is(err, context.Canceled):
			case err != nil:
				printErr("", err.Error())
			default:
				printResult(cfg, res)
			}
		},
	})
}
