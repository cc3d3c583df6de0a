// Package pipeline sequences the indexer and the doc renderer, guards runs
// with a file lock and re-runs them when sources change.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/logfields"
	"github.com/kamusis/regdoc/internal/registry"
	"github.com/kamusis/regdoc/internal/render"
	"github.com/kamusis/regdoc/internal/scan"
)

// Stage selects which parts of the pipeline to run.
type Stage int

const (
	StageIndex Stage = 1 << iota
	StageDocs

	StageAll = StageIndex | StageDocs
)

// DefaultLockTimeout bounds how long a run waits for a concurrent one.
const DefaultLockTimeout = 30 * time.Second

// Options configures a pipeline run.
type Options struct {
	Stages      Stage
	LockTimeout time.Duration
	// NoLock skips the advisory lock; concurrent runs then race and the last
	// writer wins.
	NoLock bool
	Logger *slog.Logger
}

// Result carries the outputs of the stages that ran.
type Result struct {
	Index *registry.Index
	Docs  *render.Result
}

// Run executes the selected stages in order: index, then docs.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Result, error) {
	logger := logfields.OrDiscard(opts.Logger)
	if opts.Stages == 0 {
		opts.Stages = StageAll
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = DefaultLockTimeout
	}

	if !opts.NoLock {
		release, err := AcquireLock(ctx, cfg.LockPath(), opts.LockTimeout)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	res := &Result{}
	if opts.Stages&StageIndex != 0 {
		idx, err := scan.Run(ctx, cfg, logger.With(logfields.Stage("index")))
		if err != nil {
			return nil, err
		}
		res.Index = idx
	}
	if opts.Stages&StageDocs != 0 {
		docs, err := render.Run(ctx, cfg, logger.With(logfields.Stage("docs")))
		if err != nil {
			return nil, err
		}
		res.Docs = docs
	}
	return res, nil
}
