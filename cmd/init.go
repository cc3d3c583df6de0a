package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default regdoc.yaml and .env template into the project root",
	Long: `Create regdoc.yaml with the built-in defaults and a .env file holding an
empty REGDOC_ROOT entry. Existing files are left untouched.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	root, err := config.ResolveRoot(flagRoot)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", root, err)
	}
	printSection("regdoc init")

	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.Path(root)
	}
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(cfgPath, config.DefaultConfig()); err != nil {
			return err
		}
		printOK("", fmt.Sprintf("config written: %s", cfgPath))
	} else if err != nil {
		return fmt.Errorf("cannot stat %s: %w", cfgPath, err)
	} else {
		printSkip("", fmt.Sprintf("config already exists: %s", cfgPath))
	}

	wrote, err := config.EnsureDotEnvTemplate(root)
	if err != nil {
		return err
	}
	if wrote {
		printOK("", fmt.Sprintf(".env template written: %s", config.DotEnvPath(root)))
	} else {
		printSkip("", fmt.Sprintf(".env already exists: %s", config.DotEnvPath(root)))
	}

	fmt.Fprintln(stdout)
	printInfo("", "next: run 'regdoc build'")
	return nil
}
