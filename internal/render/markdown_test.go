package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamusis/regdoc/internal/jsdoc"
	"github.com/kamusis/regdoc/internal/mdcheck"
	"github.com/kamusis/regdoc/internal/registry"
)

func TestMarkdown_FullLayout(t *testing.T) {
	d := Doc{
		Name:                 "useDebounce",
		Kind:                 registry.KindHook,
		Description:          "Delays updating a value.",
		Params:               []jsdoc.Param{{Name: "value", Type: "T", Description: "The value."}},
		Returns:              &jsdoc.Returns{Type: "T", Description: "The debounced value."},
		Dependencies:         []string{},
		InternalDependencies: []string{"utils/isBrowser"},
	}

	want := "# useDebounce\n\n" +
		"Delays updating a value.\n\n" +
		"## Usage\n\n" +
		"```bash\nnpx dev-tookit add hook useDebounce\n```\n\n" +
		"## Dependencies\n\n" +
		"**Internal Dependencies**:\n" +
		"- `utils/isBrowser`\n\n" +
		"## API\n\n" +
		"### Parameters\n\n" +
		"| Name | Type | Description |\n" +
		"| :--- | :--- | :--- |\n" +
		"| `value` | `T` | The value. |\n\n" +
		"### Returns\n\n" +
		"**Type**: `T`\n\n" +
		"The debounced value.\n\n"
	assert.Equal(t, want, Markdown("npx dev-tookit add", d))
}

func TestMarkdown_OmitsEmptySections(t *testing.T) {
	md := Markdown("kit add", Doc{Name: "isIOS", Kind: registry.KindUtil, Description: "Detects iOS."})

	assert.Equal(t, "# isIOS\n\nDetects iOS.\n\n## Usage\n\n```bash\nkit add util isIOS\n```\n\n", md)
	assert.NotContains(t, md, "## Dependencies")
	assert.NotContains(t, md, "## API")
}

func TestMarkdown_ExternalBeforeInternal(t *testing.T) {
	md := Markdown("kit add", Doc{
		Name:                 "x",
		Kind:                 registry.KindUtil,
		Dependencies:         []string{"dayjs"},
		InternalDependencies: []string{"utils/y"},
	})
	ext := strings.Index(md, "**NPM Dependencies**")
	in := strings.Index(md, "**Internal Dependencies**")
	require.NotEqual(t, -1, ext)
	require.NotEqual(t, -1, in)
	assert.Less(t, ext, in)
}

func TestMarkdown_ReturnsOnly(t *testing.T) {
	md := Markdown("kit add", Doc{Name: "x", Kind: registry.KindUtil, Returns: &jsdoc.Returns{Type: "string | null"}})
	assert.Contains(t, md, "## API\n\n### Returns\n\n**Type**: `string \\| null`\n\n")
	assert.NotContains(t, md, "### Parameters")
}

func TestMarkdown_EscapesPipesInTable(t *testing.T) {
	d := Doc{
		Name: "getUrlParam",
		Kind: registry.KindUtil,
		Params: []jsdoc.Param{
			{Name: "key", Type: "string | null", Description: "Either a | b,\nor nothing."},
			{Name: "url", Type: "string", Description: "The URL."},
		},
	}
	md := Markdown("kit add", d)
	assert.Contains(t, md, "| `key` | `string \\| null` | Either a \\| b, or nothing. |\n")

	tbl, ok := mdcheck.FindTable(mdcheck.Tables([]byte(md)), "Name", "Type", "Description")
	require.True(t, ok)
	require.Len(t, tbl.Rows, 2)
	for _, row := range tbl.Rows {
		assert.Len(t, row, 3)
	}
	assert.True(t, mdcheck.RowsMatch(tbl, [][]string{paramRow(d.Params[0]), paramRow(d.Params[1])}))
}

func TestNewDoc_DescriptionFallback(t *testing.T) {
	e := registry.Entry{Name: "x", Description: "From index", InternalDependencies: []string{"utils/y"}}

	d := NewDoc(registry.KindUtil, e, jsdoc.DocData{})
	assert.Equal(t, "From index", d.Description)
	assert.Equal(t, []string{"utils/y"}, d.InternalDependencies)

	d = NewDoc(registry.KindUtil, e, jsdoc.DocData{Description: "From comment"})
	assert.Equal(t, "From comment", d.Description)
}

func TestOverview(t *testing.T) {
	got := Overview("Utils", []NavItem{{Text: "a", Link: "/utils/a"}, {Text: "b", Link: "/utils/b"}})
	assert.Equal(t, "# Utils Overview\n\n- [a](/utils/a)\n- [b](/utils/b)\n", got)
	assert.Equal(t, "# Hooks Overview\n\n", Overview("Hooks", nil))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Hooks", Title(registry.CategoryHooks))
	assert.Equal(t, "Utils", Title(registry.CategoryUtils))
}
