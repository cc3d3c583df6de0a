package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/logfields"
)

// DefaultDebounce collapses bursts of file events (editors often write twice).
const DefaultDebounce = 300 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Run      Options
	Debounce time.Duration
	// OnRun is called after every pipeline run, from the watch goroutine.
	OnRun func(*Result, error)
	// OnReady is called once the watches are registered.
	OnReady func(dirs []string)
}

// Relevant reports whether ev should trigger a rebuild: a change to a
// qualifying source file, or the creation/removal of a source directory.
func Relevant(cfg *config.Config, ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	dirs := []string{cfg.HooksPath(), cfg.UtilsPath()}
	if slices.Contains(dirs, name) {
		return true
	}
	if !slices.Contains(dirs, filepath.Dir(name)) {
		return false
	}
	return slices.Contains(cfg.Extensions, filepath.Ext(name))
}

// Watch re-runs the pipeline whenever sources under the hooks or utils
// directory change. Runs happen one at a time on the calling goroutine.
// It returns nil when ctx is cancelled.
func Watch(ctx context.Context, cfg *config.Config, opts WatchOptions) error {
	logger := logfields.OrDiscard(opts.Run.Logger)
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create file watcher: %w", err)
	}
	defer w.Close()

	// The source root is watched too so a hooks/ or utils/ directory created
	// later gets picked up.
	sourceDirs := []string{cfg.HooksPath(), cfg.UtilsPath()}
	var watched []string
	for _, dir := range append([]string{cfg.SourceRoot}, sourceDirs...) {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			logger.Debug("Not watching missing directory", logfields.Path(dir))
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("cannot watch %s: %w", dir, err)
		}
		watched = append(watched, dir)
	}
	if opts.OnReady != nil {
		opts.OnReady(watched)
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			name := filepath.Clean(ev.Name)
			if ev.Has(fsnotify.Create) && slices.Contains(sourceDirs, name) {
				if err := w.Add(name); err != nil {
					logger.Warn("Cannot watch new source directory", logfields.Path(name), logfields.Error(err))
				}
			}
			if !Relevant(cfg, ev) {
				continue
			}
			logger.Debug("Source change detected", logfields.Path(name), "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("File watcher error", logfields.Error(err))

		case <-fire:
			fire = nil
			res, err := Run(ctx, cfg, opts.Run)
			if err != nil {
				logger.Error("Rebuild failed", logfields.Error(err))
			}
			if opts.OnRun != nil {
				opts.OnRun(res, err)
			}
		}
	}
}
