package mdast

import "strings"

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func Walk(n *Node, fn func(n *Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, fn)
	}
}

// ToString returns the plain-text content of n: literal values of leaves,
// image alt text, and the concatenated content of children.
func ToString(n *Node) string {
	var b strings.Builder
	writeString(&b, n)
	return b.String()
}

func writeString(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch {
	case n.Value != "":
		b.WriteString(n.Value)
		return
	case n.Alt != "":
		b.WriteString(n.Alt)
		return
	}
	for _, c := range n.Children {
		writeString(b, c)
	}
}

// RemovePosition clears positional info from n and its descendants.
func RemovePosition(n *Node) *Node {
	Walk(n, func(c *Node) bool {
		c.Position = nil
		return true
	})
	return n
}

// Equal reports whether a and b describe the same tree. Positions are
// compared only when both sides carry them.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Value != b.Value || a.Depth != b.Depth ||
		a.Ordered != b.Ordered || a.Start != b.Start || a.Spread != b.Spread ||
		a.Lang != b.Lang || a.Meta != b.Meta || a.URL != b.URL ||
		a.Title != b.Title || a.Alt != b.Alt || a.Identifier != b.Identifier ||
		a.Label != b.Label || a.ReferenceType != b.ReferenceType {
		return false
	}
	if a.Position != nil && b.Position != nil && *a.Position != *b.Position {
		return false
	}
	if len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
