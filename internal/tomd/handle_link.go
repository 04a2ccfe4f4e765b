package tomd

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

var (
	// Destinations containing controls or spaces need the <...> form.
	needsLiteralDestination = regexp.MustCompile(`[\x00- \x7f]`)
	autolinkScheme          = regexp.MustCompile(`(?i)^[a-z][a-z+.-]+:`)
	autolinkForbidden       = regexp.MustCompile(`[\x00- <>\x7f]`)
)

func handleLink(node, _ *mdast.Node, s *State, info Info) (string, error) {
	tracker := NewTracker(info)

	if s.linkAsAutolink(node) {
		restore := s.isolate()
		defer restore()
		return s.within(ConstructAutolink, func() (string, error) {
			value := tracker.Move("<")
			inner, err := s.ContainerPhrasing(node, tracker.Info(value, ">"))
			if err != nil {
				return "", err
			}
			value += tracker.Move(inner)
			value += tracker.Move(">")
			return value, nil
		})
	}

	return s.within(ConstructLink, func() (string, error) {
		value := tracker.Move("[")
		label, err := s.within(ConstructLabel, func() (string, error) {
			return s.ContainerPhrasing(node, tracker.Info(value, "]("))
		})
		if err != nil {
			return "", err
		}
		value += tracker.Move(label)
		value += tracker.Move("](")
		value += s.resource(tracker, value, node)
		value += tracker.Move(")")
		return value, nil
	})
}

func peekLink(node, _ *mdast.Node, s *State) string {
	if s.linkAsAutolink(node) {
		return "<"
	}
	return "["
}

func handleImage(node, _ *mdast.Node, s *State, info Info) (string, error) {
	tracker := NewTracker(info)
	return s.within(ConstructImage, func() (string, error) {
		value := tracker.Move("![")
		alt, _ := s.within(ConstructLabel, func() (string, error) {
			return s.Safe(node.Alt, SafeConfig{Before: value, After: "]"}), nil
		})
		value += tracker.Move(alt)
		value += tracker.Move("](")
		value += s.resource(tracker, value, node)
		value += tracker.Move(")")
		return value, nil
	})
}

func peekImage(_, _ *mdast.Node, _ *State) string {
	return "!"
}

// resource serializes the destination and optional title of a link or
// image, up to but excluding the closing paren.
func (s *State) resource(tracker *Tracker, before string, node *mdast.Node) string {
	value := before
	start := len(value)

	if (node.URL == "" && node.Title != "") || needsLiteralDestination.MatchString(node.URL) {
		value += tracker.Move("<")
		dest, _ := s.within(ConstructDestinationLiteral, func() (string, error) {
			return s.Safe(node.URL, SafeConfig{Before: value, After: ">"}), nil
		})
		value += tracker.Move(dest)
		value += tracker.Move(">")
	} else {
		after := ")"
		if node.Title != "" {
			after = " "
		}
		dest, _ := s.within(ConstructDestinationRaw, func() (string, error) {
			return s.Safe(node.URL, SafeConfig{Before: value, After: after}), nil
		})
		value += tracker.Move(dest)
	}

	if node.Title != "" {
		quote := string(s.serializer.options.Quote)
		titleConstruct := ConstructTitleQuote
		if quote == "'" {
			titleConstruct = ConstructTitleApostrophe
		}
		value += tracker.Move(" " + quote)
		title, _ := s.within(titleConstruct, func() (string, error) {
			return s.Safe(node.Title, SafeConfig{Before: value, After: quote}), nil
		})
		value += tracker.Move(title)
		value += tracker.Move(quote)
	}
	return value[start:]
}

// linkAsAutolink reports whether node can be written as <url>.
func (s *State) linkAsAutolink(node *mdast.Node) bool {
	if s.serializer.options.ResourceLink || node.URL == "" || node.Title != "" {
		return false
	}
	if len(node.Children) != 1 || node.Children[0].Kind != mdast.KindText {
		return false
	}
	raw := mdast.ToString(node)
	if raw != node.URL && "mailto:"+raw != node.URL {
		return false
	}
	return autolinkScheme.MatchString(node.URL) && !autolinkForbidden.MatchString(node.URL)
}

func handleLinkReference(node, _ *mdast.Node, s *State, info Info) (string, error) {
	tracker := NewTracker(info)
	return s.within(ConstructLinkReference, func() (string, error) {
		value := tracker.Move("[")
		text, err := s.within(ConstructLabel, func() (string, error) {
			return s.ContainerPhrasing(node, tracker.Info(value, "]"))
		})
		if err != nil {
			return "", err
		}
		value += tracker.Move(text + "][")
		return s.closeReference(tracker, value, text, node), nil
	})
}

func peekReference(_, _ *mdast.Node, _ *State) string {
	return "["
}

func handleImageReference(node, _ *mdast.Node, s *State, info Info) (string, error) {
	tracker := NewTracker(info)
	return s.within(ConstructImageReference, func() (string, error) {
		value := tracker.Move("![")
		alt, _ := s.within(ConstructLabel, func() (string, error) {
			return s.Safe(node.Alt, SafeConfig{Before: value, After: "]"}), nil
		})
		value += tracker.Move(alt + "][")
		return s.closeReference(tracker, value, alt, node), nil
	})
}

// closeReference appends the reference part of a link or image reference.
// value ends in "][" on entry.
func (s *State) closeReference(tracker *Tracker, value, text string, node *mdast.Node) string {
	restore := s.isolate()
	reference, _ := s.within(ConstructReference, func() (string, error) {
		return s.Safe(associationID(node), SafeConfig{Before: value, After: "]"}), nil
	})
	restore()

	switch {
	case node.ReferenceType == mdast.ReferenceFull || text == "" || text != reference:
		value += tracker.Move(reference + "]")
	case node.ReferenceType == mdast.ReferenceShortcut:
		value = value[:len(value)-1]
	default:
		value += tracker.Move("]")
	}
	return value
}

// associationID prefers the source label over the normalized identifier.
func associationID(node *mdast.Node) string {
	if node.Label != "" || node.Identifier == "" {
		return node.Label
	}
	return strings.TrimSpace(node.Identifier)
}
