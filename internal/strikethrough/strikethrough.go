// Package strikethrough adds GFM strikethrough to the Markdown tree
// pipeline: ~~text~~ is read into a delete node and written back out,
// with literal tildes escaped wherever they could open a span.
package strikethrough

import (
	"github.com/alnah/go-mdstrike/internal/frommd"
	"github.com/alnah/go-mdstrike/internal/mdast"
	"github.com/alnah/go-mdstrike/internal/tomd"
)

// Construct is the name the serializer stack carries while inside a
// delete node.
const Construct tomd.ConstructName = "strikethrough"

// FromMarkdown returns the extension that turns strikethrough tokens into
// delete nodes. Line endings inside a delete are kept in its text.
func FromMarkdown() frommd.Extension {
	return frommd.Extension{
		CanContainEols: []mdast.Kind{mdast.KindDelete},
		Enter: map[string]frommd.Handle{
			frommd.TokenStrikethrough: enterStrikethrough,
		},
		Exit: map[string]frommd.Handle{
			frommd.TokenStrikethrough: exitStrikethrough,
		},
	}
}

// ToMarkdown returns the extension that writes delete nodes as ~~text~~
// and escapes "~" in phrasing.
//
// A tilde right next to a delimiter run outside the text is written as
// "&#x7E;": the tokenizer never opens or closes a run that follows a
// tilde, escaped or not.
func ToMarkdown() tomd.Extension {
	phrasing := []tomd.ConstructName{tomd.ConstructPhrasing}
	return tomd.Extension{
		Constructs: []tomd.ConstructName{Construct},
		Unsafe: []tomd.UnsafePattern{
			{
				Character:      "~",
				InConstruct:    phrasing,
				NotInConstruct: tomd.ConstructsWithoutPhrasingSpans(),
			},
			{
				Character:      "~",
				Before:         "~",
				Encode:         true,
				InConstruct:    phrasing,
				NotInConstruct: tomd.ConstructsWithoutPhrasingSpans(),
			},
			{
				Character:      "~",
				After:          "~",
				Encode:         true,
				InConstruct:    phrasing,
				NotInConstruct: tomd.ConstructsWithoutPhrasingSpans(),
			},
		},
		Handlers: map[mdast.Kind]tomd.Handler{
			mdast.KindDelete: {Handle: handleDelete, Peek: peekDelete},
		},
	}
}

func enterStrikethrough(c *frommd.Context, t *frommd.Token) error {
	c.Enter(&mdast.Node{Kind: mdast.KindDelete}, t)
	return nil
}

func exitStrikethrough(c *frommd.Context, t *frommd.Token) error {
	_, err := c.Exit(t)
	return err
}

func handleDelete(node, _ *mdast.Node, state *tomd.State, info tomd.Info) (string, error) {
	tracker := tomd.NewTracker(info)
	exit := state.Enter(Construct)
	defer exit()

	value := tracker.Move("~~")
	// The inner text ends before a "~", so a trailing tilde in it is escaped.
	inner, err := state.ContainerPhrasing(node, tracker.Info(value, "~"))
	if err != nil {
		return "", err
	}
	value += tracker.Move(inner)
	value += tracker.Move("~~")
	return value, nil
}

func peekDelete(_, _ *mdast.Node, _ *tomd.State) string {
	return "~"
}
