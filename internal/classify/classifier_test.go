// File: internal/classify/classifier_test.go
package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
	"github.com/xkilldash9x/deckforge-cli/internal/classify"
)

// classifyOne runs the classifier over a single element and returns its
// primitive together with the run log.
func classifyOne(t *testing.T, el *schemas.ParsedElement) (*schemas.DrawingPrimitive, *schemas.RunLog) {
	t.Helper()

	log := schemas.NewRunLog("test")
	prim := classify.New(schemas.DefaultTolerances(), log).Tree(el)
	require.NotNil(t, prim)
	return prim, log
}

func box(w, h float64) schemas.Box { return schemas.Box{X: 1, Y: 1, W: w, H: h} }

func TestClassify_TextTags(t *testing.T) {
	for _, tag := range []string{"h1", "h3", "p", "span", "li", "blockquote", "code"} {
		prim, _ := classifyOne(t, &schemas.ParsedElement{
			ID: "el", TagName: tag, TextContent: "hello", Position: box(2, 0.5),
		})
		assert.Equal(t, schemas.PrimitiveText, prim.Type, "tag %s", tag)
		assert.Equal(t, "hello", prim.Text)
	}
}

func TestClassify_HorizontalRule(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "rule", TagName: "hr", Position: box(4, 0.02),
	})
	assert.Equal(t, schemas.PrimitiveLine, prim.Type)
}

func TestClassify_Ellipse(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "circle", TagName: "div", Position: box(2, 2.05),
		Styles: schemas.StyleMap{"border-radius": "50%", "background-color": "red"},
	})
	assert.Equal(t, schemas.PrimitiveEllipse, prim.Type)
}

func TestClassify_HalfRadiusButOblongIsRoundRect(t *testing.T) {
	// A 50% radius on a clearly non-square box is a pill, not an ellipse.
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "pill", TagName: "div", Position: box(3, 1),
		Styles: schemas.StyleMap{"border-radius": "50%"},
	})
	assert.Equal(t, schemas.PrimitiveRoundRect, prim.Type)
}

func TestClassify_RoundedCorners(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "card", TagName: "div", Position: box(3, 2),
		Styles: schemas.StyleMap{"border-radius": "8px"},
	})
	assert.Equal(t, schemas.PrimitiveRoundRect, prim.Type)

	// Zero radii do not round.
	for _, radius := range []string{"0", "0px", "0%"} {
		prim, _ := classifyOne(t, &schemas.ParsedElement{
			ID: "flat", TagName: "div", Position: box(3, 2),
			Styles: schemas.StyleMap{"border-radius": radius},
		})
		assert.Equal(t, schemas.PrimitiveRect, prim.Type, "radius %q", radius)
	}
}

func TestClassify_TriangleHack(t *testing.T) {
	prim, log := classifyOne(t, &schemas.ParsedElement{
		ID: "arrow", TagName: "div", Position: box(0.01, 0.01),
		Styles: schemas.StyleMap{
			"width":         "0",
			"height":        "0",
			"border-left":   "10px solid transparent",
			"border-right":  "10px solid transparent",
			"border-bottom": "20px solid #336699",
		},
	})
	assert.Equal(t, schemas.PrimitiveTriangle, prim.Type)

	// The pointing direction is recorded diagnostically.
	require.Equal(t, 1, log.Count(schemas.LevelElement))
	assert.Contains(t, log.Events[0].Element.Notes, "points up")
}

func TestClassify_TriangleHackComputedStyles(t *testing.T) {
	// A browser reports unset backgrounds and transparent borders as
	// zero-alpha rgba values, not keywords; the hack must still be found.
	prim, log := classifyOne(t, &schemas.ParsedElement{
		ID: "arrow", TagName: "div", Position: box(0.01, 0.01),
		Styles: schemas.StyleMap{
			"background-color": "rgba(0, 0, 0, 0)",
			"border-left":      "10px solid rgba(0, 0, 0, 0)",
			"border-right":     "10px solid rgba(0, 0, 0, 0)",
			"border-bottom":    "20px solid rgb(51, 102, 153)",
		},
	})

	assert.Equal(t, schemas.PrimitiveTriangle, prim.Type)
	require.Equal(t, 1, log.Count(schemas.LevelElement))
	assert.Contains(t, log.Events[0].Element.Notes, "points up")
}

func TestClassify_TriangleRejections(t *testing.T) {
	testCases := []struct {
		name string
		el   *schemas.ParsedElement
	}{
		{
			name: "too large",
			el: &schemas.ParsedElement{
				ID: "el", TagName: "div", Position: box(1, 1),
				Styles: schemas.StyleMap{"border-bottom": "20px solid red"},
			},
		},
		{
			name: "has background fill",
			el: &schemas.ParsedElement{
				ID: "el", TagName: "div", Position: box(0.01, 0.01),
				Styles: schemas.StyleMap{
					"background-color": "blue",
					"border-bottom":    "20px solid red",
				},
			},
		},
		{
			name: "two solid sides",
			el: &schemas.ParsedElement{
				ID: "el", TagName: "div", Position: box(0.01, 0.01),
				Styles: schemas.StyleMap{
					"border-bottom": "20px solid red",
					"border-top":    "20px solid red",
				},
			},
		},
		{
			name: "no solid side",
			el: &schemas.ParsedElement{
				ID: "el", TagName: "div", Position: box(0.01, 0.01),
				Styles: schemas.StyleMap{"border-bottom": "20px dashed red"},
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

func TestClassify_DefaultIsRect(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "plain", TagName: "div", Position: box(3, 2),
	})
	assert.Equal(t, schemas.PrimitiveRect, prim.Type)
}

func TestClassify_ShapeWithTextGetsOverlay(t *testing.T) {
	prim, log := classifyOne(t, &schemas.ParsedElement{
		ID: "banner", TagName: "div", TextContent: "Launch!", Position: box(4, 1),
		Styles: schemas.StyleMap{"background-color": "#ff0000"},
	})

	assert.Equal(t, schemas.PrimitiveRect, prim.Type)
	assert.Empty(t, prim.Text)

	// The text survives as a companion overlay child.
	require.Len(t, prim.Children, 1)
	overlay := prim.Children[0]
	assert.Equal(t, "banner-text", overlay.ID)
	assert.Equal(t, schemas.PrimitiveText, overlay.Type)
	assert.Equal(t, "Launch!", overlay.Text)
	assert.Equal(t, prim.Position, overlay.Position)

	assert.Equal(t, 1, log.Count(schemas.LevelElement))
	assert.Equal(t, schemas.StatusWarning, log.Events[0].Element.Status)
}

func TestClassify_PreservesDocumentOrder(t *testing.T) {
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "root", TagName: "body", Position: box(13, 7),
		Children: []*schemas.ParsedElement{
			{ID: "a", TagName: "h1", TextContent: "A", Position: box(6, 0.6)},
			{ID: "b", TagName: "div", Position: box(4, 2)},
			{ID: "c", TagName: "p", TextContent: "C", Position: box(5, 0.3)},
		},
	})

	require.Len(t, prim.Children, 3)
	assert.Equal(t, "a", prim.Children[0].ID)
	assert.Equal(t, "b", prim.Children[1].ID)
	assert.Equal(t, "c", prim.Children[2].ID)
}

func TestClassify_CarriesSourceStyles(t *testing.T) {
	styles := schemas.StyleMap{"background-color": "#abcdef"}
	prim, _ := classifyOne(t, &schemas.ParsedElement{
		ID: "el", TagName: "div", Position: box(2, 2), Styles: styles,
	})

	// The raw style map rides along for the later mapping stage.
	assert.Equal(t, styles, prim.Source)
	assert.Equal(t, "div", prim.SourceTag)
}
