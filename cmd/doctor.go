package cmd

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"sort"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/registry"
	"github.com/kamusis/regdoc/internal/render"
	"github.com/kamusis/regdoc/internal/scan"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the project for problems before building",
	Long: `Check the configuration, the source directories and index.json.

Reports entries the indexer lists but the doc renderer will skip, internal
dependencies that name no entry, duplicated dependency references and an
index that no longer matches the source directories.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("regdoc doctor")
	fmt.Fprintln(stdout)

	// ── Check 1: configuration ────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Configuration ]")
	cfg, err := loadConfig()
	if err != nil {
		failD("%v", err)
		return summarize(false)
	}
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.Path(cfg.SourceRoot)
	}
	if _, err := os.Stat(cfgPath); err == nil {
		printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
	} else {
		printSkip("", fmt.Sprintf("%s not found, using defaults", config.FileName))
	}
	printInfo("", fmt.Sprintf("project root: %s", cfg.SourceRoot))
	fmt.Fprintln(stdout)

	// ── Check 2: source directories ──────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Source directories ]")
	for _, dir := range []string{cfg.HooksPath(), cfg.UtilsPath()} {
		info, err := os.Stat(dir)
		switch {
		case errors.Is(err, os.ErrNotExist):
			printMiss(relPath(cfg, dir), "missing; the category will be empty")
		case err != nil:
			failD("[%s] %v", relPath(cfg, dir), err)
		case !info.IsDir():
			failD("[%s] not a directory", relPath(cfg, dir))
		default:
			printOK(relPath(cfg, dir), "present")
		}
	}
	fresh, scanErr := scan.Build(cmd.Context(), cfg, logger)
	if scanErr != nil {
		failD("cannot scan sources: %v", scanErr)
	}
	fmt.Fprintln(stdout)

	// ── Check 3: index ────────────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Index ]")
	idx, err := registry.Load(cfg.IndexPath)
	if err != nil {
		if errors.Is(err, registry.ErrIndexNotFound) {
			failD("%s not found; run 'regdoc index' first", relPath(cfg, cfg.IndexPath))
		} else {
			failD("%v", err)
		}
		return summarize(false)
	}
	printOK("", fmt.Sprintf("%s: %d hooks, %d utils",
		relPath(cfg, cfg.IndexPath), idx.Hooks.Len(), idx.Utils.Len()))
	for _, c := range registry.Categories {
		aliases := idx.Entries(c).Aliases()
		for _, key := range slices.Sorted(maps.Keys(aliases)) {
			printWarn(string(c)+"/"+key, fmt.Sprintf("key does not match entry name %q; the name is used", aliases[key]))
		}
	}
	if fresh != nil {
		if stale := staleEntries(idx, fresh); len(stale) > 0 {
			for _, s := range stale {
				printWarn("", s)
			}
			printWarn("", "index is out of date; run 'regdoc index'")
		} else {
			printOK("", "index matches the source directories")
		}
	}
	fmt.Fprintln(stdout)

	// ── Check 4: internal dependencies ────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Internal dependencies ]")
	dangling := registry.Dangling(idx)
	for _, d := range dangling {
		printWarn(string(d.Category)+"/"+d.Entry, fmt.Sprintf("%s does not name an index entry", d.Ref))
	}
	dups := registry.Duplicates(idx)
	keys := make([]string, 0, len(dups))
	for k := range dups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printInfo(k, fmt.Sprintf("listed more than once: %v", dups[k]))
	}
	if len(dangling) == 0 && len(dups) == 0 {
		printOK("", "all references resolve")
	}
	fmt.Fprintln(stdout)

	// ── Check 5: renderability ────────────────────────────────────────────────
	fmt.Fprintln(stdout, "[ Documentation ]")
	skipped := 0
	for _, c := range registry.Categories {
		for name, e := range idx.Entries(c).All() {
			ref := string(c) + "/" + name
			data, _, reason, readErr := render.Inspect(cfg, c, e)
			switch {
			case reason == render.ReasonUnreadable:
				failD("[%s] %s: %v", ref, reason, readErr)
				skipped++
				continue
			case reason != "":
				printWarn(ref, fmt.Sprintf("indexed but will not be rendered: %s", reason))
				skipped++
				continue
			}
			doc := render.NewDoc(c.Kind(), e, data)
			if !render.ParamTableOK(doc, render.Markdown(cfg.InstallCommand, doc)) {
				printWarn(ref, "parameters table does not parse back as written")
			}
		}
	}
	if skipped == 0 {
		printOK("", fmt.Sprintf("all %d entries will be rendered", idx.Len()))
	}
	fmt.Fprintln(stdout)

	return summarize(allOK)
}

// staleEntries describes differences between the stored index and a fresh scan.
func staleEntries(stored, fresh *registry.Index) []string {
	var out []string
	for _, c := range registry.Categories {
		have := stored.Entries(c).Names()
		want := fresh.Entries(c).Names()
		for _, n := range want {
			if !slices.Contains(have, n) {
				out = append(out, fmt.Sprintf("%s/%s exists in sources but not in the index", c, n))
			}
		}
		for _, n := range have {
			if !slices.Contains(want, n) {
				out = append(out, fmt.Sprintf("%s/%s is in the index but has no source file", c, n))
			}
		}
	}
	return out
}

func summarize(allOK bool) error {
	fmt.Fprintln(stdout, "===================")
	if allOK {
		fmt.Fprintln(stdout, "✓  All checks passed.")
		return nil
	}
	fmt.Fprintln(stderr, "✗  One or more checks failed. See details above.")
	return fmt.Errorf("doctor found issues")
}
