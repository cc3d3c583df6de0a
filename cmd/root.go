package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/logfields"
	"github.com/kamusis/regdoc/internal/registry"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	exitOK           = 0
	exitFailure      = 1
	exitMissingIndex = 2
)

var (
	flagRoot      string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
)

// logger is set up by the root command before any subcommand runs.
var logger = logfields.Discard()

var rootCmd = &cobra.Command{
	Use:           "regdoc",
	Short:         "regdoc builds the component registry index and its documentation site",
	SilenceUsage:  true, // don't print usage on operational errors
	SilenceErrors: true, // Execute prints errors itself
	Long: `regdoc scans the hooks/ and utils/ source directories of a component
library, writes the index.json registry manifest, and renders one markdown
page per entry plus category overviews and a sidebar manifest under docs/.`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), flagLogLevel, flagLogFormat)
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagRoot, "root", "", "Project root (default: $REGDOC_ROOT, then the working directory)")
	pf.StringVar(&flagConfig, "config", "", "Config file (default: <root>/"+config.FileName+")")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
}

// newLogger builds the process logger from the --log-level and --log-format flags.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: expected debug, info, warn or error", level)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q: expected text or json", format)
	}
}

// loadConfig resolves the project root and loads its configuration.
func loadConfig() (*config.Config, error) {
	root, err := config.ResolveRoot(flagRoot)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(root, flagConfig)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	logger.Debug("Configuration loaded", logfields.Path(cfg.SourceRoot))
	return cfg, nil
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, registry.ErrIndexNotFound):
		return exitMissingIndex
	default:
		return exitFailure
	}
}

// errorMessage adds a next-step hint to errors the user can act on.
func errorMessage(err error) string {
	if errors.Is(err, registry.ErrIndexNotFound) {
		return err.Error() + "\nRun 'regdoc index' first."
	}
	return err.Error()
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErr("", errorMessage(err))
		os.Exit(exitCode(err))
	}
}
