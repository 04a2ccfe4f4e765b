// Package frommd compiles a stream of tokenizer events into an mdast tree.
//
// The compiler owns the construction stack. Handlers keyed by token type
// decide which nodes to push on enter and pop on exit; extensions add
// handlers for constructs the default set does not know about.
package frommd

import "github.com/alnah/go-mdstrike/internal/mdast"

// EventKind tells whether a token is being entered or exited.
type EventKind uint8

const (
	EnterEvent EventKind = iota
	ExitEvent
)

func (k EventKind) String() string {
	if k == EnterEvent {
		return "enter"
	}
	return "exit"
}

// Token types produced by the tokenizer.
const (
	TokenParagraph     = "paragraph"
	TokenHeading       = "heading"
	TokenThematicBreak = "thematicBreak"
	TokenBlockQuote    = "blockQuote"
	TokenList          = "list"
	TokenListItem      = "listItem"
	TokenCodeFenced    = "codeFenced"
	TokenCodeIndented  = "codeIndented"
	TokenHTMLFlow      = "htmlFlow"
	TokenHTMLText      = "htmlText"
	TokenData          = "data"
	TokenLineEnding    = "lineEnding"
	TokenHardBreak     = "hardBreak"
	TokenEmphasis      = "emphasis"
	TokenStrong        = "strong"
	TokenCodeText      = "codeText"
	TokenLink          = "link"
	TokenImage         = "image"
	TokenAutolink      = "autolink"
	TokenStrikethrough = "strikethrough"
)

// Token is one recognized construct with its source span. Which payload
// fields are set depends on Type.
type Token struct {
	Type  string
	Start mdast.Point
	End   mdast.Point

	// Value is the literal content of data, code and html tokens.
	Value string

	Depth     int
	Ordered   bool
	ListStart int
	Spread    bool

	Lang string
	Meta string

	Destination string
	Title       string
}

// Event pairs a token with the direction of traversal.
type Event struct {
	Kind  EventKind
	Token *Token
}

// Enter and Exit build events.
func Enter(t *Token) Event { return Event{Kind: EnterEvent, Token: t} }
func Exit(t *Token) Event  { return Event{Kind: ExitEvent, Token: t} }
