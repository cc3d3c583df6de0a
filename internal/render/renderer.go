// Package render implements the doc renderer: it reads the index document,
// re-parses each entry's leading block comment and writes one markdown page
// per entry, a per-category overview and the navigation manifest.
package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/kamusis/regdoc/internal/config"
	"github.com/kamusis/regdoc/internal/jsdoc"
	"github.com/kamusis/regdoc/internal/logfields"
	"github.com/kamusis/regdoc/internal/mdcheck"
	"github.com/kamusis/regdoc/internal/registry"
)

// OverviewFile is the per-category landing page.
const OverviewFile = "index.md"

// Skip reasons.
const (
	ReasonNoFile      = "no file record"
	ReasonMissingFile = "source file missing"
	ReasonUnreadable  = "source file unreadable"
	ReasonNoComment   = "no doc comment"
)

// Skipped records an entry left out of the rendered site.
type Skipped struct {
	Category registry.Category
	Entry    string
	Reason   string
}

// Result summarizes one renderer run.
type Result struct {
	Rendered map[registry.Category][]string
	Skipped  []Skipped
	Sidebar  Sidebar
}

// Count returns the number of rendered pages across categories.
func (r *Result) Count() int {
	n := 0
	for _, names := range r.Rendered {
		n += len(names)
	}
	return n
}

// Renderer turns an index into documentation pages.
type Renderer struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New returns a Renderer for cfg. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Renderer {
	return &Renderer{cfg: cfg, logger: logfields.OrDiscard(logger)}
}

// Run loads the index at cfg.IndexPath and renders it. A missing index is
// returned as registry.ErrIndexNotFound before anything is written.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Result, error) {
	idx, err := registry.Load(cfg.IndexPath)
	if err != nil {
		return nil, err
	}
	return New(cfg, logger).Render(ctx, idx)
}

// Render writes pages for every renderable entry of idx. Entry-level problems
// are logged and skipped; write failures abort the run.
func (r *Renderer) Render(ctx context.Context, idx *registry.Index) (*Result, error) {
	start := time.Now()
	res := &Result{
		Rendered: map[registry.Category][]string{},
		Sidebar:  Sidebar{},
	}

	for _, c := range registry.Categories {
		aliases := idx.Entries(c).Aliases()
		for _, key := range slices.Sorted(maps.Keys(aliases)) {
			r.logger.Warn("Index key does not match entry name, using the name",
				logfields.Category(string(c)), slog.String("key", key), logfields.Entry(aliases[key]))
		}

		items := []NavItem{}
		for _, e := range idx.Entries(c).All() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			ok, reason, err := r.renderEntry(c, e)
			if err != nil {
				return nil, err
			}
			if !ok {
				res.Skipped = append(res.Skipped, Skipped{Category: c, Entry: e.Name, Reason: reason})
				continue
			}
			res.Rendered[c] = append(res.Rendered[c], e.Name)
			items = append(items, NavItem{Text: e.Name, Link: EntryLink(c, e.Name)})
		}

		if err := r.writeOverview(c, items); err != nil {
			return nil, err
		}
		nav := append([]NavItem{{Text: "Overview", Link: RoutePrefix(c)}}, items...)
		res.Sidebar[RoutePrefix(c)] = []NavGroup{{Text: Title(c), Items: nav}}
	}

	if err := WriteSidebar(r.cfg.DocsRoot, res.Sidebar); err != nil {
		return nil, err
	}
	r.logger.Info("Documentation generated",
		logfields.Path(r.cfg.DocsRoot),
		logfields.Count(res.Count()),
		slog.Int("skipped", len(res.Skipped)),
		logfields.DurationMS(time.Since(start).Milliseconds()))
	return res, nil
}

// Inspect locates and parses the doc comment of e. reason is empty when the
// entry would be rendered; otherwise it is one of the Reason constants and
// err carries the underlying read error, if any.
func Inspect(cfg *config.Config, c registry.Category, e registry.Entry) (data jsdoc.DocData, src, reason string, err error) {
	file, ok := e.PrimaryFile(c.Kind())
	if !ok {
		return jsdoc.DocData{}, "", ReasonNoFile, nil
	}
	src = filepath.Join(cfg.SourceRoot, filepath.FromSlash(file.Path))
	content, err := os.ReadFile(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return jsdoc.DocData{}, src, ReasonMissingFile, nil
		}
		return jsdoc.DocData{}, src, ReasonUnreadable, err
	}
	data, ok = jsdoc.Parse(string(content))
	if !ok {
		return jsdoc.DocData{}, src, ReasonNoComment, nil
	}
	return data, src, "", nil
}

// renderEntry writes one page. It returns ok=false with a reason when the
// entry is skipped; err is only set for write failures.
func (r *Renderer) renderEntry(c registry.Category, e registry.Entry) (bool, string, error) {
	log := r.logger.With(logfields.Category(string(c)), logfields.Entry(e.Name))

	data, src, reason, err := Inspect(r.cfg, c, e)
	switch reason {
	case "":
	case ReasonNoFile:
		log.Warn("No file found for entry")
		return false, reason, nil
	case ReasonMissingFile:
		log.Warn("File not found", logfields.Path(src))
		return false, reason, nil
	case ReasonUnreadable:
		log.Warn("Cannot read source file", logfields.Path(src), logfields.Error(err))
		return false, reason, nil
	default:
		log.Info("Skipping entry without doc comment", logfields.Path(src))
		return false, reason, nil
	}

	doc := NewDoc(c.Kind(), e, data)
	md := Markdown(r.cfg.InstallCommand, doc)
	r.checkParamTable(log, doc, md)

	dir := filepath.Join(r.cfg.DocsRoot, string(c))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, "", fmt.Errorf("cannot create docs dir %s: %w", dir, err)
	}
	out := filepath.Join(dir, e.Name+".md")
	if err := os.WriteFile(out, []byte(md), 0o644); err != nil {
		return false, "", fmt.Errorf("cannot write %s: %w", out, err)
	}
	log.Debug("Generated page", logfields.Path(out))
	return true, "", nil
}

// checkParamTable warns when the parameters table of md does not survive a
// GFM parse.
func (r *Renderer) checkParamTable(log *slog.Logger, doc Doc, md string) {
	if !ParamTableOK(doc, md) {
		log.Warn("Parameters table does not parse back as written")
	}
}

// ParamTableOK re-reads the parameters table of md with a GFM parser and
// reports whether every row comes back cell for cell.
func ParamTableOK(doc Doc, md string) bool {
	if len(doc.Params) == 0 {
		return true
	}
	want := make([][]string, 0, len(doc.Params))
	for _, p := range doc.Params {
		want = append(want, paramRow(p))
	}
	tbl, ok := mdcheck.FindTable(mdcheck.Tables([]byte(md)), "Name", "Type", "Description")
	return ok && mdcheck.RowsMatch(tbl, want)
}

func (r *Renderer) writeOverview(c registry.Category, items []NavItem) error {
	dir := filepath.Join(r.cfg.DocsRoot, string(c))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create docs dir %s: %w", dir, err)
	}
	p := filepath.Join(dir, OverviewFile)
	if err := os.WriteFile(p, []byte(Overview(Title(c), items)), 0o644); err != nil {
		return fmt.Errorf("cannot write overview %s: %w", p, err)
	}
	return nil
}
