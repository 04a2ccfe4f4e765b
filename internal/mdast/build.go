package mdast

// Constructors for hand-built trees. None of them set a Position.

// Root builds a document root.
func Root(children ...*Node) *Node {
	return &Node{Kind: KindRoot, Children: children}
}

// Paragraph builds a paragraph.
func Paragraph(children ...*Node) *Node {
	return &Node{Kind: KindParagraph, Children: children}
}

// Heading builds a heading of rank depth, 1 to 6.
func Heading(depth int, children ...*Node) *Node {
	return &Node{Kind: KindHeading, Depth: depth, Children: children}
}

// Text builds a literal text leaf.
func Text(value string) *Node {
	return &Node{Kind: KindText, Value: value}
}

// Emphasis builds an emphasis span.
func Emphasis(children ...*Node) *Node {
	return &Node{Kind: KindEmphasis, Children: children}
}

// Strong builds a strong span.
func Strong(children ...*Node) *Node {
	return &Node{Kind: KindStrong, Children: children}
}

// Delete builds a struck-through span.
func Delete(children ...*Node) *Node {
	return &Node{Kind: KindDelete, Children: children}
}

// InlineCode builds a code span holding value verbatim.
func InlineCode(value string) *Node {
	return &Node{Kind: KindInlineCode, Value: value}
}

// Link builds a link; title may be empty.
func Link(url, title string, children ...*Node) *Node {
	return &Node{Kind: KindLink, URL: url, Title: title, Children: children}
}

// Image builds an image; title may be empty.
func Image(url, title, alt string) *Node {
	return &Node{Kind: KindImage, URL: url, Title: title, Alt: alt}
}

// LinkReference builds a link to the definition named identifier.
func LinkReference(identifier string, rt ReferenceType, children ...*Node) *Node {
	return &Node{Kind: KindLinkReference, Identifier: identifier, ReferenceType: rt, Children: children}
}

// Break builds a hard line break.
func Break() *Node {
	return &Node{Kind: KindBreak}
}
