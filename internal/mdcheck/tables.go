// Package mdcheck inspects rendered markdown with a GFM parser so generated
// documents can be checked the way the site generator will read them.
package mdcheck

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Table is a GFM table as a parser sees it. Cells hold raw source text
// (escapes preserved), trimmed.
type Table struct {
	Header []string
	Rows   [][]string
}

// Tables returns every GFM table in src, in document order.
func Tables(src []byte) []Table {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	var out []Table
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		tbl, ok := n.(*extast.Table)
		if !ok {
			return gmast.WalkContinue, nil
		}
		var t Table
		for row := tbl.FirstChild(); row != nil; row = row.NextSibling() {
			cells := rowCells(row, src)
			switch row.(type) {
			case *extast.TableHeader:
				t.Header = cells
			case *extast.TableRow:
				t.Rows = append(t.Rows, cells)
			}
		}
		out = append(out, t)
		return gmast.WalkSkipChildren, nil
	})
	return out
}

func rowCells(row gmast.Node, src []byte) []string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		var buf bytes.Buffer
		lines := c.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		cells = append(cells, string(bytes.TrimSpace(buf.Bytes())))
	}
	return cells
}

// FindTable returns the first table whose header equals header.
func FindTable(tables []Table, header ...string) (Table, bool) {
	for _, t := range tables {
		if equal(t.Header, header) {
			return t, true
		}
	}
	return Table{}, false
}

// RowsMatch reports whether t's body rows equal want cell for cell.
func RowsMatch(t Table, want [][]string) bool {
	if len(t.Rows) != len(want) {
		return false
	}
	for i := range want {
		if !equal(t.Rows[i], want[i]) {
			return false
		}
	}
	return true
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
