// File: internal/classify/table_test.go
package classify_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

func row(tag string, cells ...*schemas.ParsedElement) *schemas.ParsedElement {
	return &schemas.ParsedElement{TagName: tag, Children: cells}
}

func cell(tag, text string) *schemas.ParsedElement {
	return &schemas.ParsedElement{TagName: tag, TextContent: text}
}

func TestClassify_NativeTable(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "tbl", TagName: "table", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("tr", cell("th", "Name"), cell("th", "Qty")),
			row("tr", cell("td", "Widget"), cell("td", "3")),
		},
	})

	require.Equal(t, schemas.PrimitiveTable, prim.Type)
	require.NotNil(t, prim.Table)
	// Table content is fully captured by the grid; no independent children.
	assert.Empty(t, prim.Children)

	assert.Equal(t, 2, prim.Table.NumCols)
	require.Len(t, prim.Table.Rows, 2)
	assert.Equal(t, "Name", prim.Table.Rows[0].Cells[0].Text)
	assert.True(t, prim.Table.Rows[0].Cells[0].IsHeader)
	assert.Equal(t, "Widget", prim.Table.Rows[1].Cells[0].Text)
	assert.False(t, prim.Table.Rows[1].Cells[1].IsHeader)
}

func TestClassify_TableSectionsFlatten(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "tbl", TagName: "table", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("thead", row("tr", cell("th", "H1"), cell("th", "H2"))),
			row("tbody",
				row("tr", cell("td", "a"), cell("td", "b")),
				row("tr", cell("td", "c"), cell("td", "d")),
			),
			row("tfoot", row("tr", cell("td", "f1"), cell("td", "f2"))),
		},
	})

	require.NotNil(t, prim.Table)
	require.Len(t, prim.Table.Rows, 4)
	assert.Equal(t, "H1", prim.Table.Rows[0].Cells[0].Text)
	assert.Equal(t, "f2", prim.Table.Rows[3].Cells[1].Text)
}

func TestClassify_RegularDivGridIsTable(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "grid", TagName: "div", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("div", cell("div", "a"), cell("div", "b")),
			row("div", cell("div", "c"), cell("div", "d")),
		},
	})

	require.Equal(t, schemas.PrimitiveTable, prim.Type)
	assert.Equal(t, 2, prim.Table.NumCols)
}

func TestClassify_IrregularGridIsNotTable(t *testing.T) {
	testCases := []struct {
		name string
		el   *schemas.ParsedElement
	}{
		{
			name: "single row",
			el: &schemas.ParsedElement{
				ID: "g", TagName: "div", Position: box(6, 3),
				Children: []*schemas.ParsedElement{
					row("div", cell("div", "a"), cell("div", "b")),
				},
			},
		},
		{
			name: "single column",
			el: &schemas.ParsedElement{
				ID: "g", TagName: "div", Position: box(6, 3),
				Children: []*schemas.ParsedElement{
					row("div", cell("div", "a")),
					row("div", cell("div", "b")),
				},
			},
		},
		{
			name: "ragged rows",
			el: &schemas.ParsedElement{
				ID: "g", TagName: "div", Position: box(6, 3),
				Children: []*schemas.ParsedElement{
					row("div", cell("div", "a"), cell("div", "b")),
					row("div", cell("div", "c"), cell("div", "d"), cell("div", "e")),
				},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			prim, _ := classifyOne(t, tc.el)
			assert.Equal(t, schemas.PrimitiveRect, prim.Type)
		})
	}
}

func TestExtractTable_PadsRaggedNativeRows(t *testing.T) {
	// Native tables are extracted even when ragged; short rows are padded.
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "tbl", TagName: "table", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("tr", cell("td", "a"), cell("td", "b"), cell("td", "c")),
			row("tr", cell("td", "d")),
		},
	})

	require.NotNil(t, prim.Table)
	assert.Equal(t, 3, prim.Table.NumCols)
	require.Len(t, prim.Table.Rows[1].Cells, 3)
	assert.Equal(t, "d", prim.Table.Rows[1].Cells[0].Text)
	assert.Empty(t, prim.Table.Rows[1].Cells[2].Text)
}

func TestExtractTable_HeaderHeuristics(t *testing.T) {
	boldCell := cell("td", "Bold")
	boldCell.Styles = schemas.StyleMap{"font-weight": "700"}

	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "tbl", TagName: "table", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("tr", cell("td", "First"), cell("td", "Row")),
			row("tr", boldCell, cell("td", "Plain")),
		},
	})

	require.NotNil(t, prim.Table)
	// First-row cells are headers by position.
	assert.True(t, prim.Table.Rows[0].Cells[0].IsHeader)
	assert.True(t, prim.Table.Rows[0].Cells[1].IsHeader)
	// Weight >= 600 marks a header anywhere.
	assert.True(t, prim.Table.Rows[1].Cells[0].IsHeader)
	assert.False(t, prim.Table.Rows[1].Cells[1].IsHeader)
}

func TestExtractTable_FullStructure(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "tbl", TagName: "table", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("tr", cell("th", "K"), cell("th", "V")),
			row("tr", cell("td", "a"), cell("td", "1")),
		},
	})

	want := &schemas.TableData{
		NumCols: 2,
		Rows: []schemas.TableRow{
			{Cells: []schemas.TableCell{
				{Text: "K", IsHeader: true},
				{Text: "V", IsHeader: true},
			}},
			{Cells: []schemas.TableCell{
				{Text: "a"},
				{Text: "1"},
			}},
		},
	}
	if diff := cmp.Diff(want, prim.Table); diff != "" {
		t.Errorf("extracted table mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractTable_CellTextDescends(t *testing.T) {
	wrapped := &schemas.ParsedElement{
		TagName: "td",
		Children: []*schemas.ParsedElement{
			{TagName: "span", TextContent: "nested"},
		},
	}

	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "tbl", TagName: "table", Position: box(6, 3),
		Children: []*schemas.ParsedElement{
			row("tr", wrapped, cell("td", "own")),
			row("tr", cell("td", "x"), cell("td", "y")),
		},
	})

	require.NotNil(t, prim.Table)
	assert.Equal(t, "nested", prim.Table.Rows[0].Cells[0].Text)
}
