package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kamusis/regdoc/internal/registry"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which documentation pages are older than their sources",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// pageState classifies one index entry by comparing modification times.
type pageState int

const (
	pageCurrent pageState = iota
	pageStale
	pageMissing
	pageNoSource
)

func classifyPage(source, page string) (pageState, error) {
	src, err := os.Stat(source)
	if errors.Is(err, os.ErrNotExist) {
		return pageNoSource, nil
	}
	if err != nil {
		return 0, err
	}
	pg, err := os.Stat(page)
	if errors.Is(err, os.ErrNotExist) {
		return pageMissing, nil
	}
	if err != nil {
		return 0, err
	}
	if src.ModTime().After(pg.ModTime()) {
		return pageStale, nil
	}
	return pageCurrent, nil
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	idx, err := registry.Load(cfg.IndexPath)
	if err != nil {
		return err
	}
	indexInfo, err := os.Stat(cfg.IndexPath)
	if err != nil {
		return fmt.Errorf("cannot stat index: %w", err)
	}

	printSection("Documentation Status")

	var current, stale, missing, noSource, broken []string
	var newest time.Time
	for _, c := range registry.Categories {
		for name, e := range idx.Entries(c).All() {
			ref := string(c) + "/" + name
			f, ok := e.PrimaryFile(c.Kind())
			if !ok {
				noSource = append(noSource, ref)
				continue
			}
			source := filepath.Join(cfg.SourceRoot, filepath.FromSlash(f.Path))
			if info, err := os.Stat(source); err == nil && info.ModTime().After(newest) {
				newest = info.ModTime()
			}
			page := filepath.Join(cfg.DocsRoot, string(c), name+".md")
			state, err := classifyPage(source, page)
			if err != nil {
				broken = append(broken, fmt.Sprintf("%s: %v", ref, err))
				continue
			}
			switch state {
			case pageCurrent:
				current = append(current, ref)
			case pageStale:
				stale = append(stale, ref)
			case pageMissing:
				missing = append(missing, ref)
			case pageNoSource:
				noSource = append(noSource, ref)
			}
		}
	}

	if len(current) > 0 {
		printBullet("Up to date:")
		for _, s := range current {
			printOK("", s)
		}
	}
	if len(stale) > 0 {
		printBullet("Source changed after the page was written:")
		for _, s := range stale {
			printWarn(s, "stale")
		}
	}
	if len(missing) > 0 {
		printBullet("No page (not rendered yet, or no doc comment):")
		for _, s := range missing {
			printMiss("", s)
		}
	}
	if len(noSource) > 0 {
		printBullet("Source file missing:")
		for _, s := range noSource {
			printSkip("", s)
		}
	}
	if len(broken) > 0 {
		printBullet("Errors:")
		for _, s := range broken {
			printErr("", s)
		}
	}

	fmt.Fprintf(stdout, "\n  %d up to date / %d stale / %d no page / %d no source / %d error  (total: %d entries)\n",
		len(current), len(stale), len(missing), len(noSource), len(broken), idx.Len())
	if newest.After(indexInfo.ModTime()) {
		printWarn("", "a source file changed after index.json was written; run 'regdoc build'")
	}
	return nil
}
