package render

import (
	"strings"

	"golang.org/x/net/html"
)

// shouldSkipElement returns true for elements that never belong in help
// text or in extracted content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "iframe", "object", "embed":
		return true
	}
	return false
}

// stripActive removes skipped elements below n.
func stripActive(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode && shouldSkipElement(c.Data) {
			n.RemoveChild(c)
		} else {
			stripActive(c)
		}
		c = next
	}
}

// findClass finds every element carrying class, in document order.
func findClass(n *html.Node, class string) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, class) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	getTextContentRecursive(n, &result)
	return result.String()
}

func getTextContentRecursive(n *html.Node, result *strings.Builder) {
	if n.Type == html.TextNode {
		result.WriteString(n.Data)
	}
	if n.Type == html.ElementNode && shouldSkipElement(n.Data) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		getTextContentRecursive(c, result)
	}
}

// ContentText returns the prose of a rendered report: the text of each
// block of the content area, separated by blank lines. Title, author,
// equations and empty blocks are left out.
func ContentText(page *html.Node) string {
	content := findClass(page, "content")
	if len(content) == 0 {
		return ""
	}
	var parts []string
	for c := content[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || hasClass(c, "title") || hasClass(c, "author") || hasClass(c, "equation") {
			continue
		}
		if text := blockText(c); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n\n")
}

// blockText flattens a block element. List items are joined with a space.
func blockText(n *html.Node) string {
	if n.Data != "ul" && n.Data != "ol" {
		return getTextContent(n)
	}
	var items []string
	for li := n.FirstChild; li != nil; li = li.NextSibling {
		if li.Type == html.ElementNode {
			items = append(items, getTextContent(li))
		}
	}
	return strings.Join(items, " ")
}
