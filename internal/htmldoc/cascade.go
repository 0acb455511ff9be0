// File: internal/htmldoc/cascade.go
// Description: Applies author stylesheets and inline styles to elements.
// Rules from <style> blocks are matched with cascadia selectors and applied in
// (specificity, source order) precedence; inline declarations always win over
// sheet declarations of equal importance.

package htmldoc

import (
	"sort"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// cssRule is one compiled qualified rule from an author stylesheet.
type cssRule struct {
	sel          cascadia.Sel
	declarations []*css.Declaration
	order        int // source order across all sheets
}

// styleResolver holds the compiled author rules for one document.
type styleResolver struct {
	rules []cssRule
}

// newStyleResolver parses and compiles all <style> sheet texts. Unparseable
// sheets and selectors are skipped; a malformed stylesheet never fails the
// whole conversion.
func newStyleResolver(sheets []string) *styleResolver {
	r := &styleResolver{}
	order := 0
	for _, sheet := range sheets {
		parsed, err := parser.Parse(sheet)
		if err != nil {
			continue
		}
		for _, rule := range parsed.Rules {
			if rule.Kind != css.QualifiedRule {
				continue
			}
			for _, selText := range rule.Selectors {
				sel, err := cascadia.Parse(strings.TrimSpace(selText))
				if err != nil {
					continue
				}
				r.rules = append(r.rules, cssRule{
					sel:          sel,
					declarations: rule.Declarations,
					order:        order,
				})
				order++
			}
		}
	}
	return r
}

// resolve computes the flat style map for one element node: matching sheet
// rules in cascade order, then inline style declarations on top.
func (r *styleResolver) resolve(n *html.Node) schemas.StyleMap {
	styles := schemas.StyleMap{}
	important := map[string]bool{}

	matched := make([]cssRule, 0, 4)
	for _, rule := range r.rules {
		if rule.sel.Match(n) {
			matched = append(matched, rule)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		si, sj := matched[i].sel.Specificity(), matched[j].sel.Specificity()
		if si != sj {
			return si.Less(sj)
		}
		return matched[i].order < matched[j].order
	})
	for _, rule := range matched {
		applyDeclarations(styles, important, rule.declarations)
	}

	if inline := attrValue(n, "style"); inline != "" {
		if decls, err := parser.ParseDeclarations(inline); err == nil {
			// Inline styles outrank sheet rules of equal importance; a sheet
			// declaration marked !important still wins over a plain inline one.
			applyDeclarations(styles, important, decls)
		}
	}

	if len(styles) == 0 {
		return nil
	}
	return styles
}

// applyDeclarations writes declarations into the map, honoring !important.
func applyDeclarations(styles schemas.StyleMap, important map[string]bool, decls []*css.Declaration) {
	for _, d := range decls {
		prop := strings.ToLower(strings.TrimSpace(d.Property))
		if prop == "" {
			continue
		}
		if important[prop] && !d.Important {
			continue
		}
		styles[prop] = strings.TrimSpace(d.Value)
		if d.Important {
			important[prop] = true
		}
	}
}

// attrValue returns the value of the named attribute, or "".
func attrValue(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
