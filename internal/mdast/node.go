// Package mdast defines the Markdown syntax tree shared by the parser and
// the serializer.
//
// The tree is variant-tagged: every node is a *Node whose Kind selects which
// of the optional fields are meaningful. Handlers on both sides of the
// pipeline dispatch on Kind.
package mdast

// Kind discriminates node variants.
type Kind uint8

// Node kinds. KindCount must stay last.
const (
	KindRoot Kind = iota
	KindParagraph
	KindHeading
	KindThematicBreak
	KindBlockquote
	KindList
	KindListItem
	KindCode
	KindHTML
	KindText
	KindEmphasis
	KindStrong
	KindDelete
	KindInlineCode
	KindBreak
	KindLink
	KindImage
	KindLinkReference
	KindImageReference
	KindCount
)

var kindNames = [KindCount]string{
	KindRoot:           "root",
	KindParagraph:      "paragraph",
	KindHeading:        "heading",
	KindThematicBreak:  "thematicBreak",
	KindBlockquote:     "blockquote",
	KindList:           "list",
	KindListItem:       "listItem",
	KindCode:           "code",
	KindHTML:           "html",
	KindText:           "text",
	KindEmphasis:       "emphasis",
	KindStrong:         "strong",
	KindDelete:         "delete",
	KindInlineCode:     "inlineCode",
	KindBreak:          "break",
	KindLink:           "link",
	KindImage:          "image",
	KindLinkReference:  "linkReference",
	KindImageReference: "imageReference",
}

// String returns the mdast type name of the kind.
func (k Kind) String() string {
	if k >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// IsPhrasing reports whether nodes of this kind are inline content.
func (k Kind) IsPhrasing() bool {
	switch k {
	case KindText, KindEmphasis, KindStrong, KindDelete, KindInlineCode,
		KindBreak, KindLink, KindImage, KindLinkReference, KindImageReference, KindHTML:
		return true
	}
	return false
}

// ReferenceType describes how a reference node names its definition.
type ReferenceType string

// Reference types.
const (
	ReferenceShortcut  ReferenceType = "shortcut"
	ReferenceCollapsed ReferenceType = "collapsed"
	ReferenceFull      ReferenceType = "full"
)

// Point is a place in the source document. Line and Column are 1-based,
// Offset is a 0-based byte offset.
type Point struct {
	Line   int
	Column int
	Offset int
}

// Position is the source span a node was built from.
type Position struct {
	Start Point
	End   Point
}

// Node is one element of the syntax tree.
type Node struct {
	Kind     Kind
	Children []*Node

	// Value holds the literal content of text, inlineCode, code and html.
	Value string

	// Depth is the heading rank (1-6).
	Depth int

	// List fields.
	Ordered bool
	Start   int
	Spread  bool

	// Code fields.
	Lang string
	Meta string

	// Resource fields for link and image.
	URL   string
	Title string
	Alt   string

	// Association fields for references.
	Identifier    string
	Label         string
	ReferenceType ReferenceType

	// Position is nil when positional info was not requested.
	Position *Position
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Tail returns the last child of n, or nil.
func (n *Node) Tail() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[len(n.Children)-1]
}

// IndexOf returns the index of child in n.Children, or -1.
func (n *Node) IndexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}
