package pipeline

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NormalizeHTML parses content and renders it back so that two documents
// with the same structure compare equal as strings. Attributes are sorted,
// whitespace runs in text collapse to one space and whitespace-only text
// between elements is dropped. Text inside pre keeps its whitespace.
func NormalizeHTML(content string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		normalizeNode(n, false)
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) == "" {
			continue
		}
		if err := html.Render(&buf, n); err != nil {
			return "", fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

func normalizeNode(n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if !pre {
			n.Data = collapseSpace(n.Data)
		}
	case html.ElementNode:
		slices.SortFunc(n.Attr, func(a, b html.Attribute) int {
			return strings.Compare(a.Key, b.Key)
		})
		pre = pre || n.DataAtom == atom.Pre
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		normalizeNode(c, pre)
		if c.Type == html.TextNode && (c.Data == "" || (!pre && c.Data == " " && betweenBlocks(c))) {
			n.RemoveChild(c)
		}
		c = next
	}
}

// collapseSpace replaces every run of HTML whitespace with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if isHTMLSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

func isHTMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

// betweenBlocks reports whether a whitespace text node sits next to a
// block-level element, where it has no rendering effect.
func betweenBlocks(n *html.Node) bool {
	return isBlock(n.PrevSibling) || isBlock(n.NextSibling) ||
		(n.PrevSibling == nil && isBlock(n.Parent)) || (n.NextSibling == nil && isBlock(n.Parent))
}

func isBlock(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	switch n.DataAtom {
	case atom.P, atom.Div, atom.Blockquote, atom.Ul, atom.Ol, atom.Li, atom.Pre,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Hr, atom.Table,
		atom.Thead, atom.Tbody, atom.Tr, atom.Td, atom.Th, atom.Section, atom.Body:
		return true
	}
	return false
}
