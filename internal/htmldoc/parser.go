// File: internal/htmldoc/parser.go
// Description: Parses an HTML/CSS fragment into the element tree consumed by
// the layout engine and classifier. Geometry is left zeroed; it is filled in
// later by either the accurate geometry source or the fallback layout
// simulator.

package htmldoc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/xkilldash9x/deckforge-cli/api/schemas"
)

// ErrNoElements indicates the markup contained nothing convertible.
var ErrNoElements = errors.New("htmldoc: no parseable elements in input")

// Tags that never produce output elements. Their style sheet content is still
// collected before the tree walk.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"meta":     true,
	"link":     true,
	"title":    true,
	"noscript": true,
	"template": true,
	"br":       true,
}

// Document is the parsed element tree plus bookkeeping.
type Document struct {
	// Root is the body element; its children are the top-level content.
	Root *schemas.ParsedElement
	// ElementCount is the number of elements in the tree, root included.
	ElementCount int
}

// Parse builds the element tree for an HTML fragment or full document.
// net/html normalizes fragments into a full html/head/body structure, so the
// returned root is always the body element.
func Parse(markup string) (*Document, error) {
	node, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("htmldoc: parsing markup: %w", err)
	}

	body := findElement(node, "body")
	if body == nil {
		return nil, ErrNoElements
	}

	resolver := newStyleResolver(collectStyleSheets(node))

	p := &treeBuilder{resolver: resolver, counters: map[string]int{}}
	root := p.build(body)
	if root == nil || (len(root.Children) == 0 && root.TextContent == "") {
		return nil, ErrNoElements
	}

	return &Document{Root: root, ElementCount: p.count}, nil
}

// treeBuilder walks the html node tree and emits ParsedElements.
type treeBuilder struct {
	resolver *styleResolver
	counters map[string]int
	count    int
}

func (p *treeBuilder) build(n *html.Node) *schemas.ParsedElement {
	if n.Type != html.ElementNode {
		return nil
	}
	tag := strings.ToLower(n.Data)
	if skippedTags[tag] {
		return nil
	}

	styles := p.resolver.resolve(n)
	if strings.EqualFold(styles.Get("display"), "none") {
		return nil
	}

	el := &schemas.ParsedElement{
		ID:          p.elementID(n, tag),
		TagName:     tag,
		TextContent: directText(n),
		Styles:      styles,
	}
	p.count++

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := p.build(c); child != nil {
			el.Children = append(el.Children, child)
		}
	}
	return el
}

// elementID prefers the markup's own id attribute and otherwise assigns a
// stable per-tag counter in document order.
func (p *treeBuilder) elementID(n *html.Node, tag string) string {
	if id := attrValue(n, "id"); id != "" {
		return id
	}
	p.counters[tag]++
	return fmt.Sprintf("%s-%d", tag, p.counters[tag])
}

// directText concatenates the element's own text node children, with
// whitespace collapsed. Descendant element text is deliberately excluded.
func directText(n *html.Node) string {
	var parts []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			if t := collapseWhitespace(c.Data); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collectStyleSheets gathers the text of every <style> element in the
// document, in source order.
func collectStyleSheets(n *html.Node) []string {
	var sheets []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "style") {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			if b.Len() > 0 {
				sheets = append(sheets, b.String())
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sheets
}

// findElement locates the first element with the given tag.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}
