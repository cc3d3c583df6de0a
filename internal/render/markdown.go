package render

import (
	"fmt"
	"strings"

	"github.com/kamusis/regdoc/internal/jsdoc"
	"github.com/kamusis/regdoc/internal/registry"
)

// Doc is everything needed to render one entry's page.
type Doc struct {
	Name                 string
	Kind                 registry.Kind
	Description          string
	Params               []jsdoc.Param
	Returns              *jsdoc.Returns
	Dependencies         []string
	InternalDependencies []string
}

// NewDoc merges parsed comment data with the entry's index metadata.
// The comment description wins; the index description fills in when it is empty.
func NewDoc(kind registry.Kind, e registry.Entry, data jsdoc.DocData) Doc {
	desc := data.Description
	if desc == "" {
		desc = e.Description
	}
	return Doc{
		Name:                 e.Name,
		Kind:                 kind,
		Description:          desc,
		Params:               data.Params,
		Returns:              data.Returns,
		Dependencies:         e.Dependencies,
		InternalDependencies: e.InternalDependencies,
	}
}

// EscapeCell makes s safe inside a GFM table cell: pipes are escaped and
// line breaks flattened.
func EscapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.TrimSpace(s)
}

func codeCell(s string) string {
	s = EscapeCell(s)
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

// paramRow returns the cells written for p, in table column order.
func paramRow(p jsdoc.Param) []string {
	return []string{codeCell(p.Name), codeCell(p.Type), EscapeCell(p.Description)}
}

// Markdown renders d. Sections appear in fixed order: title, description,
// usage, dependencies (when any), API (when any params or returns).
func Markdown(installCmd string, d Doc) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", d.Name)
	fmt.Fprintf(&b, "%s\n\n", d.Description)

	b.WriteString("## Usage\n\n")
	fmt.Fprintf(&b, "```bash\n%s %s %s\n```\n\n", strings.TrimSpace(installCmd), d.Kind, d.Name)

	if len(d.Dependencies) > 0 || len(d.InternalDependencies) > 0 {
		b.WriteString("## Dependencies\n\n")
		writeDeps(&b, "NPM Dependencies", d.Dependencies)
		writeDeps(&b, "Internal Dependencies", d.InternalDependencies)
	}

	if len(d.Params) > 0 || d.Returns != nil {
		b.WriteString("## API\n\n")

		if len(d.Params) > 0 {
			b.WriteString("### Parameters\n\n")
			b.WriteString("| Name | Type | Description |\n")
			b.WriteString("| :--- | :--- | :--- |\n")
			for _, p := range d.Params {
				cells := paramRow(p)
				fmt.Fprintf(&b, "| %s | %s | %s |\n", cells[0], cells[1], cells[2])
			}
			b.WriteString("\n")
		}

		if d.Returns != nil {
			b.WriteString("### Returns\n\n")
			if d.Returns.Type != "" {
				fmt.Fprintf(&b, "**Type**: %s\n\n", codeCell(d.Returns.Type))
			}
			if d.Returns.Description != "" {
				fmt.Fprintf(&b, "%s\n\n", d.Returns.Description)
			}
		}
	}

	return b.String()
}

func writeDeps(b *strings.Builder, title string, deps []string) {
	if len(deps) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s**:\n", title)
	for _, dep := range deps {
		fmt.Fprintf(b, "- `%s`\n", dep)
	}
	b.WriteString("\n")
}

// Overview renders the category landing page listing every rendered entry.
func Overview(title string, items []NavItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Overview\n\n", title)
	for _, it := range items {
		fmt.Fprintf(&b, "- [%s](%s)\n", it.Text, it.Link)
	}
	return b.String()
}
