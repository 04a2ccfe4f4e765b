package tomd

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// UnsafePattern marks a character that must be escaped when it would
// otherwise be read as markup.
//
// Before and After are regular expression fragments the surrounding text
// must match. AtBreak restricts the pattern to the start of a line.
// InConstruct limits the pattern to the given constructs (empty means
// everywhere); NotInConstruct lifts it again inside any of the given
// constructs.
//
// Encode patterns only apply at the edges of the value being escaped: the
// first character when the text before the value matches Before, the last
// when the text after it matches After. They write the character as a
// character reference, since a backslash escape still lets it join the
// delimiter run next to it.
type UnsafePattern struct {
	Character      string
	Before         string
	After          string
	AtBreak        bool
	Encode         bool
	InConstruct    []ConstructName
	NotInConstruct []ConstructName
}

type compiledPattern struct {
	UnsafePattern
	re        *regexp.Regexp
	hasBefore bool

	// Anchored at the value's edges, set for Encode patterns only.
	beforeEdge *regexp.Regexp
	afterEdge  *regexp.Regexp
}

func compilePattern(p UnsafePattern) (*compiledPattern, error) {
	var before string
	if p.AtBreak {
		before = `[\r\n][\t ]*`
	}
	if p.Before != "" {
		before += "(?:" + p.Before + ")"
	}

	var expr strings.Builder
	if before != "" {
		expr.WriteString("(" + before + ")")
	}
	expr.WriteString(regexp.QuoteMeta(p.Character))
	if p.After != "" {
		expr.WriteString("(?:" + p.After + ")")
	}

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("unsafe pattern for %q: %w", p.Character, err)
	}
	c := &compiledPattern{UnsafePattern: p, re: re, hasBefore: before != ""}
	if !p.Encode {
		return c, nil
	}

	if p.Before != "" {
		if c.beforeEdge, err = regexp.Compile("(?:" + p.Before + ")$"); err != nil {
			return nil, fmt.Errorf("unsafe pattern for %q: %w", p.Character, err)
		}
	}
	if p.After != "" {
		if c.afterEdge, err = regexp.Compile("^(?:" + p.After + ")"); err != nil {
			return nil, fmt.Errorf("unsafe pattern for %q: %w", p.Character, err)
		}
	}
	return c, nil
}

// key identifies a pattern for de-duplication.
func (p UnsafePattern) key() string {
	return fmt.Sprintf("%q|%q|%q|%t|%t|%v|%v", p.Character, p.Before, p.After, p.AtBreak, p.Encode, p.InConstruct, p.NotInConstruct)
}

// inScope reports whether the pattern applies given the construct stack.
func (p *compiledPattern) inScope(stack []ConstructName) bool {
	return listInScope(stack, p.InConstruct, true) && !listInScope(stack, p.NotInConstruct, false)
}

// edgeHits returns the positions in value[start:end] where an Encode
// pattern fires.
func (p *compiledPattern) edgeHits(value string, start, end int) []int {
	inner := value[start:end]
	var hits []int
	if p.beforeEdge != nil && strings.HasPrefix(inner, p.Character) && p.beforeEdge.MatchString(value[:start]) {
		hits = append(hits, start)
	}
	if p.afterEdge != nil && strings.HasSuffix(inner, p.Character) && p.afterEdge.MatchString(value[end:]) {
		if pos := end - len(p.Character); len(hits) == 0 || hits[0] != pos {
			hits = append(hits, pos)
		}
	}
	return hits
}

func listInScope(stack, list []ConstructName, none bool) bool {
	if len(list) == 0 {
		return none
	}
	for _, name := range list {
		if slices.Contains(stack, name) {
			return true
		}
	}
	return false
}

func in(names ...ConstructName) []ConstructName { return names }

// defaultUnsafe is the table of characters that start or end CommonMark
// constructs.
func defaultUnsafe() []UnsafePattern {
	fullPhrasingSpans := ConstructsWithoutPhrasingSpans()
	codeFencedLang := in(ConstructCodeFencedLangGraveAccent, ConstructCodeFencedLangTilde)
	lineEndingUnsafe := in(
		ConstructCodeFencedLangGraveAccent,
		ConstructCodeFencedLangTilde,
		ConstructCodeFencedMetaGraveAccent,
		ConstructCodeFencedMetaTilde,
		ConstructDestinationLiteral,
		ConstructHeadingAtx,
	)
	phrasing := in(ConstructPhrasing)

	return []UnsafePattern{
		{Character: "\t", After: `[\r\n]`, InConstruct: phrasing},
		{Character: "\t", Before: `[\r\n]`, InConstruct: phrasing},
		{Character: "\t", InConstruct: codeFencedLang},
		{Character: "\r", InConstruct: lineEndingUnsafe},
		{Character: "\n", InConstruct: lineEndingUnsafe},
		{Character: " ", After: `[\r\n]`, InConstruct: phrasing},
		{Character: " ", Before: `[\r\n]`, InConstruct: phrasing},
		{Character: " ", InConstruct: codeFencedLang},
		{Character: "!", After: `\[`, InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{Character: `"`, InConstruct: in(ConstructTitleQuote)},
		{AtBreak: true, Character: "#"},
		{Character: "#", InConstruct: in(ConstructHeadingAtx), After: `(?:[\r\n]|$)`},
		{Character: "&", After: `[#A-Za-z]`, InConstruct: phrasing},
		{Character: "'", InConstruct: in(ConstructTitleApostrophe)},
		{Character: "(", InConstruct: in(ConstructDestinationRaw)},
		{Before: `\]`, Character: "(", InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{AtBreak: true, Before: `\d+`, Character: ")"},
		{Character: ")", InConstruct: in(ConstructDestinationRaw)},
		{AtBreak: true, Character: "*", After: `(?:[ \t\r\n*])`},
		{Character: "*", InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{AtBreak: true, Character: "+", After: `(?:[ \t\r\n])`},
		{AtBreak: true, Character: "-", After: `(?:[ \t\r\n-])`},
		{AtBreak: true, Before: `\d+`, Character: ".", After: `(?:[ \t\r\n]|$)`},
		{AtBreak: true, Character: "<", After: `[!/?A-Za-z]`},
		{Character: "<", After: `[!/?A-Za-z]`, InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{Character: "<", InConstruct: in(ConstructDestinationLiteral)},
		{AtBreak: true, Character: "="},
		{AtBreak: true, Character: ">"},
		{Character: ">", InConstruct: in(ConstructDestinationLiteral)},
		{AtBreak: true, Character: "["},
		{Character: "[", InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{Character: "[", InConstruct: in(ConstructLabel, ConstructReference)},
		{Character: `\`, After: `[\r\n]`, InConstruct: phrasing},
		{Character: "]", InConstruct: in(ConstructLabel, ConstructReference)},
		{AtBreak: true, Character: "_"},
		{Character: "_", InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{AtBreak: true, Character: "`"},
		{Character: "`", InConstruct: in(ConstructCodeFencedLangGraveAccent, ConstructCodeFencedMetaGraveAccent)},
		{Character: "`", InConstruct: phrasing, NotInConstruct: fullPhrasingSpans},
		{AtBreak: true, Character: "~"},
	}
}
