// Package scan implements the indexer: it walks the hooks and utils source
// directories, extracts per-file metadata and writes the index document.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/logfields"
	"github.com/kamusis/regdoc/internal/registry"
)

// Options controls how a single source directory is turned into entries.
type Options struct {
	Dir        string // absolute directory to read
	RelDir     string // directory as recorded in file paths, relative to the source root
	Kind       registry.Kind
	Extensions []string
	Dedupe     bool
	Version    string
	Category   string
	Logger     *slog.Logger
}

// fallbackDescription is used when a file has no leading block comment.
func fallbackDescription(kind registry.Kind, name string) string {
	if kind == registry.KindHook {
		return "Hook " + name
	}
	return "Utility " + name
}

// ScanDir returns one entry per qualifying file in opts.Dir, in directory
// listing order. A missing directory yields no entries; an unreadable file is
// logged and skipped.
func ScanDir(ctx context.Context, opts Options) ([]registry.Entry, error) {
	logger := logfields.OrDiscard(opts.Logger)

	files, err := os.ReadDir(opts.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("Source directory missing, treating as empty", logfields.Path(opts.Dir))
			return []registry.Entry{}, nil
		}
		return nil, fmt.Errorf("cannot read directory %s: %w", opts.Dir, err)
	}

	out := []registry.Entry{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if f.IsDir() {
			continue
		}
		ext := filepath.Ext(f.Name())
		if !slices.Contains(opts.Extensions, ext) {
			continue
		}
		name := strings.TrimSuffix(f.Name(), ext)

		b, err := os.ReadFile(filepath.Join(opts.Dir, f.Name()))
		if err != nil {
			logger.Warn("Skipping unreadable source file",
				logfields.Entry(name), logfields.Path(filepath.Join(opts.Dir, f.Name())), logfields.Error(err))
			continue
		}
		content := string(b)

		desc, ok := ExtractDescription(content)
		if !ok {
			desc = fallbackDescription(opts.Kind, name)
		}

		rel := path.Join(filepath.ToSlash(opts.RelDir), f.Name())
		out = append(out, registry.Entry{
			Name:                 name,
			Description:          desc,
			Category:             opts.Category,
			Version:              opts.Version,
			Files:                []registry.FileRef{{Type: opts.Kind, Path: rel, Target: rel}},
			Dependencies:         []string{},
			InternalDependencies: FindInternalDependencies(content, opts.Dedupe),
		})
	}
	return out, nil
}

// Build scans both source directories named by cfg and returns a fresh index.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*registry.Index, error) {
	logger = logfields.OrDiscard(logger)
	idx := registry.New(cfg.SchemaRef)

	sources := []Options{
		{Dir: cfg.HooksPath(), RelDir: cfg.HooksDir, Kind: registry.KindHook, Category: cfg.HookCategory},
		{Dir: cfg.UtilsPath(), RelDir: cfg.UtilsDir, Kind: registry.KindUtil},
	}
	for _, opts := range sources {
		opts.Extensions = cfg.Extensions
		opts.Dedupe = cfg.DedupeDependencies
		opts.Version = cfg.EntryVersion
		opts.Logger = logger

		entries, err := ScanDir(ctx, opts)
		if err != nil {
			return nil, err
		}
		es := idx.Entries(opts.Kind.Category())
		for _, e := range entries {
			es.Set(e)
		}
		logger.Debug("Scanned source directory",
			logfields.Category(string(opts.Kind.Category())), logfields.Count(len(entries)))
	}
	return idx, nil
}

// Run builds the index and overwrites cfg.IndexPath with it.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*registry.Index, error) {
	logger = logfields.OrDiscard(logger)
	start := time.Now()

	idx, err := Build(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := registry.Write(cfg.IndexPath, idx); err != nil {
		return nil, err
	}
	logger.Info("Registry index generated",
		logfields.Path(cfg.IndexPath),
		slog.Int("hooks", idx.Hooks.Len()),
		slog.Int("utils", idx.Utils.Len()),
		logfields.DurationMS(time.Since(start).Milliseconds()))
	return idx, nil
}
