// File: internal/classify/table.go
// Description: Table detection and extraction. Native table markup is always
// a table; div grids qualify when the structure is perfectly regular: every
// row has the same number of cells, at least 2x2. Regularity alone is
// accepted as sufficient signal.

package classify

import (
	"strings"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// nativeTableTags always classify as a table.
var nativeTableTags = map[string]bool{"table": true}

// tableStructureTags mark children that look table-like inside a native
// table or a candidate grid.
var tableStructureTags = map[string]bool{
	"thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true,
}

// isTable applies decision rule 1: native table tag, or a regular grid of at
// least 2 rows by 2 equal columns.
func (c *Classifier) isTable(el *schemas.ParsedElement) bool {
	if nativeTableTags[el.TagName] {
		return true
	}
	for _, child := range el.Children {
		if tableStructureTags[child.TagName] {
			return true
		}
	}
	rows := el.Children
	if len(rows) < 2 {
		return false
	}

	cols := len(rows[0].Children)
	if cols < 2 {
		return false
	}
	for _, row := range rows[1:] {
		if len(row.Children) != cols {
			return false
		}
	}

	// Either the cells carry table-like markers, or the grid is perfectly
	// regular; both are accepted.
	return true
}

// extractTable expands a table-classified element into TableData. Header
// detection uses explicit header-cell tags, bold weight, or a first-row
// heuristic.
func extractTable(el *schemas.ParsedElement) *schemas.TableData {
	data := &schemas.TableData{}

	for _, rowEl := range tableRows(el) {
		row := schemas.TableRow{}
		for _, cellEl := range rowEl.Children {
			row.Cells = append(row.Cells, schemas.TableCell{
				Text:     cellText(cellEl),
				IsHeader: isHeaderCell(cellEl, len(data.Rows) == 0),
				Styles:   cellEl.Styles,
			})
		}
		if len(row.Cells) == 0 && rowEl.TextContent != "" {
			// A row with no cell children still contributes its own text.
			row.Cells = append(row.Cells, schemas.TableCell{
				Text:     rowEl.TextContent,
				IsHeader: isHeaderCell(rowEl, len(data.Rows) == 0),
				Styles:   rowEl.Styles,
			})
		}
		data.Rows = append(data.Rows, row)
		if len(row.Cells) > data.NumCols {
			data.NumCols = len(row.Cells)
		}
	}

	// Pad every row to exactly NumCols cells.
	for i := range data.Rows {
		for len(data.Rows[i].Cells) < data.NumCols {
			data.Rows[i].Cells = append(data.Rows[i].Cells, schemas.TableCell{})
		}
	}
	return data
}

// tableRows flattens thead/tbody/tfoot sections into an ordered row list.
func tableRows(el *schemas.ParsedElement) []*schemas.ParsedElement {
	var rows []*schemas.ParsedElement
	for _, child := range el.Children {
		switch child.TagName {
		case "thead", "tbody", "tfoot":
			rows = append(rows, child.Children...)
		case "colgroup", "caption":
			// structural, not rows
		default:
			rows = append(rows, child)
		}
	}
	return rows
}

// cellText returns the cell's own text, falling back to the first descendant
// text when the cell only wraps inner elements.
func cellText(el *schemas.ParsedElement) string {
	if el.TextContent != "" {
		return el.TextContent
	}
	for _, child := range el.Children {
		if t := cellText(child); t != "" {
			return t
		}
	}
	return ""
}

// isHeaderCell applies the header heuristics in order.
func isHeaderCell(el *schemas.ParsedElement, firstRow bool) bool {
	if el.TagName == "th" {
		return true
	}
	if weight := strings.TrimSpace(el.Styles.Get("font-weight")); weight != "" {
		if weight == "bold" || weight == "bolder" {
			return true
		}
		if n := parseWeight(weight); n >= 600 {
			return true
		}
	}
	return firstRow
}

func parseWeight(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
