package cmd

import (
	"fmt"
	"strings"

	"github.com/kamusis/regdoc/internal/registry"
	"github.com/kamusis/regdoc/internal/render"
	"github.com/spf13/cobra"
)

var flagInspectMarkdown bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <hooks|utils>/<name>",
	Short: "Show index metadata and the parsed doc comment of one entry",
	Long: `Display a formatted summary of one index entry: its metadata from
index.json, the doc comment parsed from its source file, and whether the doc
renderer would produce a page for it.

Example:
  regdoc inspect hooks/useDebounce
  regdoc inspect utils/isBrowser --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagInspectMarkdown, "markdown", false, "Print the page the doc renderer would write")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	c, name, ok := registry.ParseRef(args[0])
	if !ok {
		return fmt.Errorf("invalid entry reference %q: expected hooks/<name> or utils/<name>", args[0])
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	idx, err := registry.Load(cfg.IndexPath)
	if err != nil {
		return err
	}
	e, ok := idx.Lookup(c, name)
	if !ok {
		return fmt.Errorf("%s not found in %s", args[0], relPath(cfg, cfg.IndexPath))
	}

	data, src, reason, readErr := render.Inspect(cfg, c, e)
	if flagInspectMarkdown {
		if reason != "" {
			return fmt.Errorf("%s would not be rendered: %s", args[0], reason)
		}
		fmt.Fprint(stdout, render.Markdown(cfg.InstallCommand, render.NewDoc(c.Kind(), e, data)))
		return nil
	}

	printSection(args[0])
	fmt.Fprintln(stdout)
	printField("Name", e.Name)
	printField("Description", e.Description)
	printField("Category", e.Category)
	printField("Version", e.Version)
	for _, f := range e.Files {
		printField("File", fmt.Sprintf("%s (%s)", f.Path, f.Type))
	}
	printList("Dependencies", e.Dependencies)
	printList("Internal deps", e.InternalDependencies)
	for _, ref := range e.InternalDependencies {
		rc, rn, ok := registry.ParseRef(ref)
		if !ok {
			printWarn(ref, "not a hooks/ or utils/ reference")
			continue
		}
		if _, found := idx.Lookup(rc, rn); !found {
			printMiss(ref, "not in index")
		}
	}

	printBullet("Doc comment")
	switch {
	case reason == render.ReasonUnreadable:
		printErr("", fmt.Sprintf("%s: %v", reason, readErr))
		return nil
	case reason != "":
		printSkip("", fmt.Sprintf("not rendered: %s", reason))
		return nil
	}
	printOK("", fmt.Sprintf("parsed from %s", relPath(cfg, src)))
	if data.Description != "" {
		fmt.Fprintf(stdout, "\n%s\n", indent(data.Description))
	}
	if len(data.Params) > 0 {
		fmt.Fprintln(stdout, "\n  Params:")
		for _, p := range data.Params {
			line := "    " + p.Name
			if p.Type != "" {
				line += " {" + p.Type + "}"
			}
			if p.Optional {
				line += " (optional)"
			}
			if p.Description != "" {
				line += " " + p.Description
			}
			fmt.Fprintln(stdout, line)
		}
	}
	if data.Returns != nil {
		fmt.Fprintf(stdout, "\n  Returns: {%s} %s\n", data.Returns.Type, data.Returns.Description)
	}
	if data.Description != "" && data.Description != e.Description {
		printInfo("", "comment description differs from the index description; the page uses the comment")
	}
	return nil
}

func printField(label, value string) {
	if value == "" {
		value = "(none)"
	}
	fmt.Fprintf(stdout, "  %-14s %s\n", label+":", value)
}

func printList(label string, items []string) {
	if len(items) == 0 {
		printField(label, "")
		return
	}
	printField(label, strings.Join(items, ", "))
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
