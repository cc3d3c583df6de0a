package mdcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const doc = "# title\n\n" +
	"| Name | Type | Description |\n" +
	"| :--- | :--- | :--- |\n" +
	"| `a` | `string \\| null` | left \\| right |\n" +
	"| `b` | `number` | plain |\n\n" +
	"trailing text\n"

func TestTables_EscapedPipesStayInCell(t *testing.T) {
	tables := Tables([]byte(doc))
	require.Len(t, tables, 1)

	tbl := tables[0]
	assert.Equal(t, []string{"Name", "Type", "Description"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{"`a`", "`string \\| null`", "left \\| right"}, tbl.Rows[0])
	assert.True(t, RowsMatch(tbl, [][]string{
		{"`a`", "`string \\| null`", "left \\| right"},
		{"`b`", "`number`", "plain"},
	}))
}

func TestTables_UnescapedPipeBreaksRow(t *testing.T) {
	broken := "| Name | Type | Description |\n" +
		"| :--- | :--- | :--- |\n" +
		"| `a` | `string` | left | right |\n"
	tbl, ok := FindTable(Tables([]byte(broken)), "Name", "Type", "Description")
	require.True(t, ok)
	assert.False(t, RowsMatch(tbl, [][]string{{"`a`", "`string`", "left | right"}}))
}

func TestFindTable_NoMatch(t *testing.T) {
	_, ok := FindTable(Tables([]byte("no tables here\n")), "Name")
	assert.False(t, ok)
}
