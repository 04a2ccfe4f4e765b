package tomd

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

func defaultExtension() Extension {
	return Extension{
		Constructs: defaultConstructs,
		Unsafe:     defaultUnsafe(),
		Handlers: map[mdast.Kind]Handler{
			mdast.KindRoot:           {Handle: handleRoot},
			mdast.KindParagraph:      {Handle: handleParagraph},
			mdast.KindHeading:        {Handle: handleHeading},
			mdast.KindThematicBreak:  {Handle: handleThematicBreak},
			mdast.KindBlockquote:     {Handle: handleBlockquote},
			mdast.KindList:           {Handle: handleList},
			mdast.KindListItem:       {Handle: handleListItem},
			mdast.KindCode:           {Handle: handleCode},
			mdast.KindHTML:           {Handle: handleHTML, Peek: peekHTML},
			mdast.KindText:           {Handle: handleText},
			mdast.KindEmphasis:       {Handle: handleEmphasis, Peek: peekEmphasis},
			mdast.KindStrong:         {Handle: handleStrong, Peek: peekStrong},
			mdast.KindInlineCode:     {Handle: handleInlineCode, Peek: peekInlineCode},
			mdast.KindBreak:          {Handle: handleBreak},
			mdast.KindLink:           {Handle: handleLink, Peek: peekLink},
			mdast.KindImage:          {Handle: handleImage, Peek: peekImage},
			mdast.KindLinkReference:  {Handle: handleLinkReference, Peek: peekReference},
			mdast.KindImageReference: {Handle: handleImageReference, Peek: peekImage},
		},
	}
}

func handleRoot(node, _ *mdast.Node, s *State, info Info) (string, error) {
	for _, c := range node.Children {
		if c.Kind.IsPhrasing() {
			return s.ContainerPhrasing(node, info)
		}
	}
	return s.ContainerFlow(node, info)
}

func handleParagraph(node, _ *mdast.Node, s *State, info Info) (string, error) {
	return s.within(ConstructParagraph, func() (string, error) {
		return s.within(ConstructPhrasing, func() (string, error) {
			return s.ContainerPhrasing(node, info)
		})
	})
}

func handleHeading(node, _ *mdast.Node, s *State, info Info) (string, error) {
	rank := min(max(node.Depth, 1), 6)
	tracker := NewTracker(info)

	if s.headingAsSetext(node) {
		return s.within(ConstructHeadingSetext, func() (string, error) {
			value, err := s.within(ConstructPhrasing, func() (string, error) {
				return s.ContainerPhrasing(node, tracker.Info("\n", "\n"))
			})
			if err != nil {
				return "", err
			}
			underline := "-"
			if rank == 1 {
				underline = "="
			}
			last := value[strings.LastIndexAny(value, "\r\n")+1:]
			return value + "\n" + strings.Repeat(underline, max(utf8.RuneCountInString(last), 1)), nil
		})
	}

	sequence := strings.Repeat("#", rank)
	return s.within(ConstructHeadingAtx, func() (string, error) {
		value, err := s.within(ConstructPhrasing, func() (string, error) {
			tracker.Move(sequence + " ")
			return s.ContainerPhrasing(node, tracker.Info("# ", "\n"))
		})
		if err != nil {
			return "", err
		}
		if value == "" {
			return sequence, nil
		}
		// Leading whitespace would be eaten by the heading marker.
		if value[0] == ' ' || value[0] == '\t' {
			value = fmt.Sprintf("&#x%X;", value[0]) + value[1:]
		}
		return sequence + " " + value, nil
	})
}

// headingAsSetext reports whether a heading needs the underlined form,
// which is the only one that can span lines.
func (s *State) headingAsSetext(node *mdast.Node) bool {
	if node.Depth >= 3 || mdast.ToString(node) == "" {
		return false
	}
	if s.serializer.options.Setext {
		return true
	}
	multiline := false
	mdast.Walk(node, func(n *mdast.Node) bool {
		if n.Kind == mdast.KindBreak || strings.ContainsAny(n.Value, "\r\n") {
			multiline = true
		}
		return !multiline
	})
	return multiline
}

func handleThematicBreak(_, _ *mdast.Node, s *State, _ Info) (string, error) {
	return strings.Repeat(string(s.serializer.options.Rule), 3), nil
}

func handleBlockquote(node, _ *mdast.Node, s *State, info Info) (string, error) {
	return s.within(ConstructBlockquote, func() (string, error) {
		tracker := NewTracker(info)
		tracker.Move("> ")
		tracker.Shift(2)
		value, err := s.ContainerFlow(node, tracker.Current())
		if err != nil {
			return "", err
		}
		return IndentLines(value, func(line string, _ int, blank bool) string {
			if blank {
				return ">"
			}
			return "> " + line
		}), nil
	})
}

func handleList(node, parent *mdast.Node, s *State, info Info) (string, error) {
	return s.within(ConstructList, func() (string, error) {
		opts := s.serializer.options
		saved := s.bulletCurrent

		var bullet, other string
		if node.Ordered {
			bullet = string(opts.BulletOrdered)
			other = "."
			if bullet == "." {
				other = ")"
			}
		} else {
			bullet = string(opts.Bullet)
			other = "*"
			if bullet == "*" {
				other = "-"
			}
		}

		// Two adjacent lists with the same marker would merge.
		useOther := parent != nil && s.bulletLastUsed != "" && bullet == s.bulletLastUsed
		// A bullet equal to the rule marker turns "* * *" items into rules.
		if !node.Ordered && string(opts.Rule) == bullet {
			for _, item := range node.Children {
				if len(item.Children) > 0 && item.Children[0].Kind == mdast.KindThematicBreak {
					useOther = true
					break
				}
			}
		}
		if useOther {
			bullet = other
		}

		s.bulletCurrent = bullet
		value, err := s.ContainerFlow(node, info)
		s.bulletLastUsed = bullet
		s.bulletCurrent = saved
		return value, err
	})
}

func handleListItem(node, parent *mdast.Node, s *State, info Info) (string, error) {
	bullet := s.bulletCurrent
	if bullet == "" {
		bullet = string(s.serializer.options.Bullet)
	}
	if parent != nil && parent.Kind == mdast.KindList && parent.Ordered {
		bullet = strconv.Itoa(parent.Start+max(parent.IndexOf(node), 0)) + bullet
	}

	size := len(bullet) + 1
	tracker := NewTracker(info)
	tracker.Move(bullet + strings.Repeat(" ", size-len(bullet)))
	tracker.Shift(size)

	return s.within(ConstructListItem, func() (string, error) {
		value, err := s.ContainerFlow(node, tracker.Current())
		if err != nil {
			return "", err
		}
		return IndentLines(value, func(line string, index int, blank bool) string {
			if index > 0 {
				if blank {
					return ""
				}
				return strings.Repeat(" ", size) + line
			}
			if blank {
				return bullet
			}
			return bullet + strings.Repeat(" ", size-len(bullet)) + line
		}), nil
	})
}

func handleCode(node, _ *mdast.Node, s *State, info Info) (string, error) {
	marker := s.serializer.options.Fence
	langConstruct, metaConstruct := ConstructCodeFencedLangGraveAccent, ConstructCodeFencedMetaGraveAccent
	if marker == '~' {
		langConstruct, metaConstruct = ConstructCodeFencedLangTilde, ConstructCodeFencedMetaTilde
	}

	raw := node.Value
	sequence := strings.Repeat(string(marker), max(longestStreak(raw, marker)+1, 3))
	tracker := NewTracker(info)

	return s.within(ConstructCodeFenced, func() (string, error) {
		value := tracker.Move(sequence)
		if node.Lang != "" {
			lang, _ := s.within(langConstruct, func() (string, error) {
				return s.Safe(node.Lang, SafeConfig{Before: value, After: " ", Encode: "`"}), nil
			})
			value += tracker.Move(lang)
		}
		if node.Lang != "" && node.Meta != "" {
			value += tracker.Move(" ")
			meta, _ := s.within(metaConstruct, func() (string, error) {
				return s.Safe(node.Meta, SafeConfig{Before: value, After: "\n", Encode: "`"}), nil
			})
			value += tracker.Move(meta)
		}
		value += tracker.Move("\n")
		if raw != "" {
			value += tracker.Move(raw + "\n")
		}
		value += tracker.Move(sequence)
		return value, nil
	})
}

// longestStreak returns the longest run of c in value.
func longestStreak(value string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(value); i++ {
		if value[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}

func handleHTML(node, _ *mdast.Node, _ *State, _ Info) (string, error) {
	return node.Value, nil
}

func peekHTML(_, _ *mdast.Node, _ *State) string {
	return "<"
}
