package tomd

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

var trailingEOL = regexp.MustCompile(`(\r?\n|\r)$`)

// ContainerPhrasing serializes the inline children of parent. Each child
// is told the character before it (the end of the previous output) and
// after it (the peeked start of the next sibling, or info.After for the
// last child), so it can escape markers that would fuse with its
// neighbours.
func (s *State) ContainerPhrasing(parent *mdast.Node, info Info) (string, error) {
	children := parent.Children
	s.indexStack = append(s.indexStack, -1)
	defer func() { s.indexStack = s.indexStack[:len(s.indexStack)-1] }()

	tracker := NewTracker(info)
	before := info.Before
	results := make([]string, 0, len(children))

	for i, child := range children {
		s.indexStack[len(s.indexStack)-1] = i

		after := info.After
		if i+1 < len(children) {
			after = firstChar(s.peek(children[i+1], parent, tracker.Info("", "")))
		}

		// html right after a line ending could be read as an html block.
		if len(results) > 0 && (before == "\r" || before == "\n") && child.Kind == mdast.KindHTML {
			results[len(results)-1] = trailingEOL.ReplaceAllString(results[len(results)-1], " ")
			before = " "
			tracker = NewTracker(info)
			tracker.Move(strings.Join(results, ""))
		}

		out, err := s.Handle(child, parent, tracker.Info(before, after))
		if err != nil {
			return "", err
		}
		results = append(results, tracker.Move(out))
		before = lastChar(out)
	}
	return strings.Join(results, ""), nil
}

// ContainerFlow serializes the block children of parent, separated by
// blank lines or single line endings depending on the parent.
func (s *State) ContainerFlow(parent *mdast.Node, info Info) (string, error) {
	children := parent.Children
	s.indexStack = append(s.indexStack, -1)
	defer func() { s.indexStack = s.indexStack[:len(s.indexStack)-1] }()

	tracker := NewTracker(info)
	var b strings.Builder

	for i, child := range children {
		s.indexStack[len(s.indexStack)-1] = i

		out, err := s.Handle(child, parent, tracker.Info("\n", "\n"))
		if err != nil {
			return "", err
		}
		b.WriteString(tracker.Move(out))

		if child.Kind != mdast.KindList {
			s.bulletLastUsed = ""
		}
		if i < len(children)-1 {
			b.WriteString(tracker.Move(s.between(child, children[i+1], parent)))
		}
	}
	return b.String(), nil
}

// between returns the separator between two sibling blocks.
func (s *State) between(left, right, parent *mdast.Node) string {
	if parent.Kind != mdast.KindList && parent.Kind != mdast.KindListItem {
		return "\n\n"
	}
	if left.Kind == mdast.KindParagraph &&
		(right.Kind == mdast.KindParagraph || (right.Kind == mdast.KindHeading && s.headingAsSetext(right))) {
		return "\n\n"
	}
	if parent.Spread {
		return "\n\n"
	}
	return "\n"
}

func firstChar(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

func lastChar(s string) string {
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[len(s)-size:]
}
