package mdast

import (
	"strconv"
	"strings"
)

// Dump renders n as a compact single-line description, for diagnostics and
// test failure messages: paragraph[text("a "),delete[text("b")]].
func Dump(n *Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("<nil>")
		return
	}
	b.WriteString(n.Kind.String())
	switch n.Kind {
	case KindText, KindInlineCode, KindHTML, KindCode:
		b.WriteString("(" + strconv.Quote(n.Value) + ")")
	case KindHeading:
		b.WriteString("(" + strconv.Itoa(n.Depth) + ")")
	case KindLink, KindImage:
		b.WriteString("(" + strconv.Quote(n.URL))
		if n.Title != "" {
			b.WriteString(" " + strconv.Quote(n.Title))
		}
		b.WriteString(")")
	case KindLinkReference, KindImageReference:
		b.WriteString("(" + strconv.Quote(n.Identifier) + " " + string(n.ReferenceType) + ")")
	}
	if len(n.Children) == 0 {
		return
	}
	b.WriteByte('[')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		dump(b, c)
	}
	b.WriteByte(']')
}
