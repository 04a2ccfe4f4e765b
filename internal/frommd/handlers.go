package frommd

import "github.com/alnah/go-mdstrike/internal/mdast"

func defaultExtension() Extension {
	return Extension{
		CanContainEols: []mdast.Kind{
			mdast.KindParagraph,
			mdast.KindHeading,
			mdast.KindEmphasis,
			mdast.KindStrong,
			mdast.KindLink,
			mdast.KindImage,
		},
		Enter: map[string]Handle{
			TokenParagraph:     opener(func(*Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindParagraph} }),
			TokenHeading:       opener(func(t *Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindHeading, Depth: t.Depth} }),
			TokenThematicBreak: opener(func(*Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindThematicBreak} }),
			TokenBlockQuote:    opener(func(*Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindBlockquote} }),
			TokenList:          opener(newList),
			TokenListItem:      opener(func(t *Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindListItem, Spread: t.Spread} }),
			TokenCodeFenced:    opener(newCode),
			TokenCodeIndented:  opener(newCode),
			TokenHTMLFlow:      opener(newHTML),
			TokenHTMLText:      opener(newHTML),
			TokenEmphasis:      opener(func(*Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindEmphasis} }),
			TokenStrong:        opener(func(*Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindStrong} }),
			TokenCodeText:      opener(func(t *Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindInlineCode, Value: t.Value} }),
			TokenHardBreak:     opener(func(*Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindBreak} }),
			TokenLink:          opener(newLink),
			TokenAutolink:      opener(newLink),
			TokenImage:         opener(func(t *Token) *mdast.Node { return &mdast.Node{Kind: mdast.KindImage, URL: t.Destination, Title: t.Title} }),
			TokenData:          onData,
			TokenLineEnding:    onLineEnding,
		},
		Exit: map[string]Handle{
			TokenParagraph:     closer,
			TokenHeading:       closer,
			TokenThematicBreak: closer,
			TokenBlockQuote:    closer,
			TokenList:          closer,
			TokenListItem:      closer,
			TokenCodeFenced:    closer,
			TokenCodeIndented:  closer,
			TokenHTMLFlow:      closer,
			TokenHTMLText:      closer,
			TokenEmphasis:      closer,
			TokenStrong:        closer,
			TokenCodeText:      closer,
			TokenHardBreak:     closer,
			TokenLink:          closer,
			TokenAutolink:      closer,
			TokenImage:         onExitImage,
		},
	}
}

// opener returns an enter handler pushing the node built by fn.
func opener(fn func(t *Token) *mdast.Node) Handle {
	return func(c *Context, t *Token) error {
		c.Enter(fn(t), t)
		return nil
	}
}

func closer(c *Context, t *Token) error {
	_, err := c.Exit(t)
	return err
}

func newList(t *Token) *mdast.Node {
	return &mdast.Node{Kind: mdast.KindList, Ordered: t.Ordered, Start: t.ListStart, Spread: t.Spread}
}

func newCode(t *Token) *mdast.Node {
	return &mdast.Node{Kind: mdast.KindCode, Value: t.Value, Lang: t.Lang, Meta: t.Meta}
}

func newHTML(t *Token) *mdast.Node {
	return &mdast.Node{Kind: mdast.KindHTML, Value: t.Value}
}

func newLink(t *Token) *mdast.Node {
	return &mdast.Node{Kind: mdast.KindLink, URL: t.Destination, Title: t.Title}
}

// onData merges consecutive data into one text node.
func onData(c *Context, t *Token) error {
	if t.Value == "" {
		return nil
	}
	if tail := c.Current().Tail(); tail != nil && tail.Kind == mdast.KindText {
		tail.Value += t.Value
		if tail.Position != nil {
			tail.Position.End = t.End
		}
		return nil
	}
	c.Enter(&mdast.Node{Kind: mdast.KindText, Value: t.Value}, t)
	_, err := c.Exit(t)
	return err
}

func onLineEnding(c *Context, t *Token) error {
	if !c.CanContainEols() {
		return nil
	}
	eol := *t
	eol.Type = TokenData
	eol.Value = "\n"
	return onData(c, &eol)
}

// onExitImage folds the collected description into Alt.
func onExitImage(c *Context, t *Token) error {
	n, err := c.Exit(t)
	if err != nil {
		return err
	}
	n.Alt = mdast.ToString(n)
	n.Children = nil
	return nil
}
