package tomd

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

func handleText(node, _ *mdast.Node, s *State, info Info) (string, error) {
	return s.Safe(node.Value, SafeConfig{Before: info.Before, After: info.After}), nil
}

func handleEmphasis(node, _ *mdast.Node, s *State, info Info) (string, error) {
	return s.attention(ConstructEmphasis, string(s.serializer.options.Emphasis), node, info)
}

func peekEmphasis(_, _ *mdast.Node, s *State) string {
	return string(s.serializer.options.Emphasis)
}

func handleStrong(node, _ *mdast.Node, s *State, info Info) (string, error) {
	marker := string(s.serializer.options.Strong)
	return s.attention(ConstructStrong, marker+marker, node, info)
}

func peekStrong(_, _ *mdast.Node, s *State) string {
	return string(s.serializer.options.Strong)
}

// attention wraps the phrasing children of node in marker.
func (s *State) attention(name ConstructName, marker string, node *mdast.Node, info Info) (string, error) {
	return s.within(name, func() (string, error) {
		tracker := NewTracker(info)
		value := tracker.Move(marker)
		inner, err := s.ContainerPhrasing(node, tracker.Info(value, marker[:1]))
		if err != nil {
			return "", err
		}
		value += tracker.Move(inner)
		value += tracker.Move(marker)
		return value, nil
	})
}

func handleInlineCode(node, _ *mdast.Node, s *State, _ Info) (string, error) {
	value := node.Value
	sequence := "`"
	for {
		re := regexp.MustCompile("(^|[^`])" + sequence + "([^`]|$)")
		if !re.MatchString(value) {
			break
		}
		sequence += "`"
	}

	// Pad when the content would otherwise lose a space or touch the fence.
	if strings.TrimLeft(value, " \r\n") != "" &&
		((startsWithAny(value, " \r\n") && endsWithAny(value, " \r\n")) ||
			strings.HasPrefix(value, "`") || strings.HasSuffix(value, "`")) {
		value = " " + value + " "
	}

	// A line ending followed by a block marker would start a new block.
	for _, p := range s.serializer.unsafe {
		if !p.AtBreak {
			continue
		}
		for {
			loc := p.re.FindStringIndex(value)
			if loc == nil {
				break
			}
			pos := loc[0]
			if value[pos] == '\n' && pos > 0 && value[pos-1] == '\r' {
				pos--
			}
			value = value[:pos] + " " + value[loc[0]+1:]
		}
	}
	return sequence + value + sequence, nil
}

func peekInlineCode(_, _ *mdast.Node, _ *State) string {
	return "`"
}

func startsWithAny(s, chars string) bool {
	return s != "" && strings.IndexByte(chars, s[0]) >= 0
}

func endsWithAny(s, chars string) bool {
	return s != "" && strings.IndexByte(chars, s[len(s)-1]) >= 0
}

func handleBreak(_, _ *mdast.Node, s *State, info Info) (string, error) {
	for _, p := range s.serializer.unsafe {
		if p.Character == "\n" && p.inScope(s.stack) {
			if strings.ContainsAny(info.Before, " \t") {
				return "", nil
			}
			return " ", nil
		}
	}
	return "\\\n", nil
}
