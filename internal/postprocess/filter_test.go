// File: internal/postprocess/filter_test.go
package postprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/postprocess"
)

func prim(id string, typ schemas.PrimitiveType, box schemas.Box, children ...*schemas.DrawingPrimitive) *schemas.DrawingPrimitive {
	return &schemas.DrawingPrimitive{ID: id, Type: typ, Position: box, Children: children}
}

func runFilter(t *testing.T, root *schemas.DrawingPrimitive) *schemas.RunLog {
	t.Helper()

	log := schemas.NewRunLog("test")
	err := postprocess.FilterDecorative(root, schemas.DefaultConversionOptions(), schemas.DefaultTolerances(), log)
	require.NoError(t, err)
	return log
}

func childIDs(p *schemas.DrawingPrimitive) []string {
	ids := make([]string, 0, len(p.Children))
	for _, c := range p.Children {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestFilterDecorative_RootBodyBecomesSkipContainer(t *testing.T) {
	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5},
		prim("content", schemas.PrimitiveText, schemas.Box{X: 1, Y: 1, W: 4, H: 1}),
	)
	root.SourceTag = "body"

	runFilter(t, root)

	// The root has no parent to hoist into; it survives as an invisible
	// container.
	assert.Equal(t, schemas.PrimitiveSkip, root.Type)
	require.Len(t, root.Children, 1)
	assert.Equal(t, schemas.PrimitiveText, root.Children[0].Type)
}

func TestFilterDecorative_HoistsWrapperChildrenInOrder(t *testing.T) {
	wrapper := prim("wrapper", schemas.PrimitiveRect, schemas.Box{W: 30, H: 7.5},
		prim("a", schemas.PrimitiveText, schemas.Box{X: 1, Y: 1, W: 2, H: 1}),
		prim("b", schemas.PrimitiveRect, schemas.Box{X: 1, Y: 2, W: 2, H: 1}),
	)
	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5},
		prim("before", schemas.PrimitiveText, schemas.Box{X: 0, Y: 0, W: 2, H: 1}),
		wrapper,
		prim("after", schemas.PrimitiveText, schemas.Box{X: 1, Y: 4, W: 2, H: 1}),
	)
	root.SourceTag = "body"

	log := runFilter(t, root)

	// The oversized wrapper vanishes; its children take its slot in order.
	assert.Equal(t, []string{"before", "a", "b", "after"}, childIDs(root))
	assert.Equal(t, 1, log.Count(schemas.LevelElement))
	assert.Contains(t, log.Events[0].Element.Notes, "exceeds slide")
}

func TestFilterDecorative_SignificantOversizeRemoved(t *testing.T) {
	// 1.6x the slide width: above the significant threshold, below extreme.
	big := prim("big", schemas.PrimitiveRect, schemas.Box{W: 13.333 * 1.6, H: 2},
		prim("inner", schemas.PrimitiveText, schemas.Box{X: 1, Y: 1, W: 2, H: 1}),
	)
	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5}, big)
	root.SourceTag = "body"

	runFilter(t, root)

	assert.Equal(t, []string{"inner"}, childIDs(root))
}

func TestFilterDecorative_FitsWithinRatioSurvives(t *testing.T) {
	// 1.2x the slide is within tolerance and kept.
	wide := prim("wide", schemas.PrimitiveRect, schemas.Box{W: 13.333 * 1.2, H: 2})
	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5}, wide)
	root.SourceTag = "body"

	runFilter(t, root)

	assert.Equal(t, []string{"wide"}, childIDs(root))
}

func TestFilterDecorative_NeverRemovesContentPrimitives(t *testing.T) {
	// Even grotesquely oversized text and tables are preserved.
	hugeText := prim("text", schemas.PrimitiveText, schemas.Box{W: 100, H: 50})
	hugeTable := prim("table", schemas.PrimitiveTable, schemas.Box{W: 100, H: 50})
	hugeTable.Table = &schemas.TableData{NumCols: 1, Rows: []schemas.TableRow{{Cells: []schemas.TableCell{{Text: "x"}}}}}

	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5}, hugeText, hugeTable)
	root.SourceTag = "body"

	runFilter(t, root)

	assert.Equal(t, []string{"text", "table"}, childIDs(root))
}

func TestFilterDecorative_LightBackdropRemoved(t *testing.T) {
	backdrop := prim("backdrop", schemas.PrimitiveRoundRect, schemas.Box{W: 13, H: 7.2},
		prim("kept", schemas.PrimitiveText, schemas.Box{X: 1, Y: 1, W: 3, H: 1}),
	)
	backdrop.Source = schemas.StyleMap{"border-radius": "600px"}
	backdrop.Styles.Fill.Color = "#F5F5F5"

	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5}, backdrop)
	root.SourceTag = "body"

	log := runFilter(t, root)

	assert.Equal(t, []string{"kept"}, childIDs(root))
	assert.Contains(t, log.Events[0].Element.Notes, "backdrop")
}

func TestFilterDecorative_DarkBackdropKept(t *testing.T) {
	// Same geometry but a saturated fill: deliberate design, not chrome.
	backdrop := prim("panel", schemas.PrimitiveRoundRect, schemas.Box{W: 13, H: 7.2})
	backdrop.Source = schemas.StyleMap{"border-radius": "600px"}
	backdrop.Styles.Fill.Color = "#336699"

	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5}, backdrop)
	root.SourceTag = "body"

	runFilter(t, root)

	assert.Equal(t, []string{"panel"}, childIDs(root))
}

func TestFilterDecorative_EmptyTreeIsError(t *testing.T) {
	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5})
	root.SourceTag = "body"

	log := schemas.NewRunLog("test")
	err := postprocess.FilterDecorative(root, schemas.DefaultConversionOptions(), schemas.DefaultTolerances(), log)
	assert.ErrorIs(t, err, postprocess.ErrEmptyTree)
}

func TestFilterDecorative_NilRoot(t *testing.T) {
	err := postprocess.FilterDecorative(nil, schemas.DefaultConversionOptions(), schemas.DefaultTolerances(), schemas.NewRunLog("test"))
	assert.ErrorIs(t, err, postprocess.ErrEmptyTree)
}

func TestFilterDecorative_NestedWrappersFlatten(t *testing.T) {
	inner := prim("inner-wrap", schemas.PrimitiveRect, schemas.Box{W: 40, H: 7.5},
		prim("leaf", schemas.PrimitiveText, schemas.Box{X: 1, Y: 1, W: 2, H: 1}),
	)
	outer := prim("outer-wrap", schemas.PrimitiveRect, schemas.Box{W: 30, H: 7.5}, inner)
	root := prim("body", schemas.PrimitiveRect, schemas.Box{W: 13.333, H: 7.5}, outer)
	root.SourceTag = "body"

	runFilter(t, root)

	// Children-first evaluation collapses both wrapper levels in one pass.
	assert.Equal(t, []string{"leaf"}, childIDs(root))
}
