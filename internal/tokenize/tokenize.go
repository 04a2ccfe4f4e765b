// Package tokenize turns Markdown source into the enter/exit event stream
// consumed by frommd.
//
// Lexical recognition is delegated to goldmark's CommonMark parser. The
// goldmark AST is walked once and every construct is reported as a token
// carrying its source span and payload; nothing here builds mdast nodes.
package tokenize

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdstrike/internal/frommd"
	"github.com/alnah/go-mdstrike/internal/mdast"
)

// Tokenizer recognizes Markdown constructs. It is safe for concurrent use.
type Tokenizer struct {
	parser parser.Parser
}

// Option configures a Tokenizer.
type Option func(*options)

type options struct {
	extensions []goldmark.Extender
}

// WithStrikethrough enables recognition of ~~double~~ (and ~single~) tilde
// spans, reported as strikethrough tokens.
func WithStrikethrough() Option {
	return func(o *options) {
		o.extensions = append(o.extensions, extension.Strikethrough)
	}
}

// New creates a CommonMark tokenizer with the requested syntax extensions.
func New(opts ...Option) *Tokenizer {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	md := goldmark.New(goldmark.WithExtensions(o.extensions...))
	return &Tokenizer{parser: md.Parser()}
}

// Tokenize parses source and returns its event stream.
func (tz *Tokenizer) Tokenize(source []byte) ([]frommd.Event, error) {
	doc := tz.parser.Parse(text.NewReader(source))
	w := &walker{source: source, lines: newLineIndex(source)}
	if err := ast.Walk(doc, w.visit); err != nil {
		return nil, fmt.Errorf("walking syntax tree: %w", err)
	}
	return w.events, nil
}

type walker struct {
	source []byte
	lines  lineIndex
	events []frommd.Event

	// open holds the token of every entered container so the exit event
	// reuses it.
	open []*frommd.Token

	// cursor is the end of the last span seen, used for constructs whose
	// span cannot be derived.
	cursor int

	// closed is the end of the last exited container.
	closed int
}

func (w *walker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		if container(n) {
			t := w.open[len(w.open)-1]
			w.open = w.open[:len(w.open)-1]
			w.closed = max(w.closed, t.End.Offset)
			w.emit(frommd.Exit(t))
		}
		return ast.WalkContinue, nil
	}

	switch n := n.(type) {
	case *ast.Document:
		return ast.WalkContinue, nil

	case *ast.Text:
		w.text(n)
		return ast.WalkContinue, nil

	case *ast.String:
		w.leaf(w.token(frommd.TokenData, n), string(n.Value))
		return ast.WalkContinue, nil

	case *ast.CodeSpan:
		w.leaf(w.token(frommd.TokenCodeText, n), codeSpanValue(n, w.source))
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		t := w.token(frommd.TokenCodeFenced, n)
		if lang := n.Language(w.source); lang != nil {
			t.Lang = unescape(lang)
			if n.Info != nil {
				info := n.Info.Segment.Value(w.source)
				t.Meta = strings.TrimSpace(unescape(info[len(lang):]))
			}
		}
		w.leaf(t, linesValue(n.Lines(), w.source))
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		w.leaf(w.token(frommd.TokenCodeIndented, n), linesValue(n.Lines(), w.source))
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock:
		value := linesValue(n.Lines(), w.source)
		if n.HasClosure() {
			value += "\n" + strings.TrimRight(string(n.ClosureLine.Value(w.source)), "\r\n")
		}
		w.leaf(w.token(frommd.TokenHTMLFlow, n), value)
		return ast.WalkSkipChildren, nil

	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(w.source))
		}
		w.leaf(w.token(frommd.TokenHTMLText, n), b.String())
		return ast.WalkSkipChildren, nil

	case *ast.AutoLink:
		t := w.token(frommd.TokenAutolink, n)
		label := string(n.Label(w.source))
		t.Destination = string(n.URL(w.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(t.Destination), "mailto:") {
			t.Destination = "mailto:" + t.Destination
		}
		w.emit(frommd.Enter(t))
		w.leaf(&frommd.Token{Type: frommd.TokenData, Start: t.Start, End: t.End}, label)
		w.emit(frommd.Exit(t))
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		w.leaf(w.token(frommd.TokenThematicBreak, n), "")
		return ast.WalkSkipChildren, nil
	}

	if typ, ok := containerType(n); ok {
		t := w.token(typ, n)
		switch n := n.(type) {
		case *ast.Heading:
			t.Depth = n.Level
		case *ast.List:
			t.Ordered = n.IsOrdered()
			t.ListStart = n.Start
			t.Spread = !n.IsTight
		case *ast.ListItem:
			if list, ok := n.Parent().(*ast.List); ok {
				t.Spread = !list.IsTight
			}
		case *ast.Link:
			t.Destination = unescape(n.Destination)
			t.Title = unescape(n.Title)
		case *ast.Image:
			t.Destination = unescape(n.Destination)
			t.Title = unescape(n.Title)
		}
		w.open = append(w.open, t)
		w.emit(frommd.Enter(t))
	}
	return ast.WalkContinue, nil
}

// container reports whether n is entered and exited around its children.
func container(n ast.Node) bool {
	_, ok := containerType(n)
	return ok
}

func containerType(n ast.Node) (string, bool) {
	switch n := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return frommd.TokenParagraph, true
	case *ast.Heading:
		return frommd.TokenHeading, true
	case *ast.Blockquote:
		return frommd.TokenBlockQuote, true
	case *ast.List:
		return frommd.TokenList, true
	case *ast.ListItem:
		return frommd.TokenListItem, true
	case *ast.Emphasis:
		if n.Level >= 2 {
			return frommd.TokenStrong, true
		}
		return frommd.TokenEmphasis, true
	case *ast.Link:
		return frommd.TokenLink, true
	case *ast.Image:
		return frommd.TokenImage, true
	case *east.Strikethrough:
		return frommd.TokenStrikethrough, true
	}
	return "", false
}

// text reports a text segment followed by the line ending that ends it, if
// any.
func (w *walker) text(n *ast.Text) {
	seg := n.Segment
	// goldmark leaves the first bytes of a partly used closing run as
	// text. The bytes actually left over are the ones after the span.
	if shift := w.closed - seg.Start; shift > 0 && seg.Stop+shift <= len(w.source) {
		seg = text.NewSegment(seg.Start+shift, seg.Stop+shift)
	}
	t := &frommd.Token{
		Type:  frommd.TokenData,
		Start: w.lines.point(seg.Start),
		End:   w.lines.point(seg.Stop),
	}
	w.leaf(t, unescape(seg.Value(w.source)))
	w.cursor = seg.Stop

	switch {
	case n.HardLineBreak():
		w.leaf(&frommd.Token{Type: frommd.TokenHardBreak, Start: t.End, End: t.End}, "")
	case n.SoftLineBreak():
		w.leaf(&frommd.Token{Type: frommd.TokenLineEnding, Start: t.End, End: t.End}, "\n")
	}
}

// leaf emits an enter/exit pair with no children.
func (w *walker) leaf(t *frommd.Token, value string) {
	t.Value = value
	w.emit(frommd.Enter(t))
	w.emit(frommd.Exit(t))
}

func (w *walker) emit(ev frommd.Event) {
	w.events = append(w.events, ev)
}

// token creates a token of typ spanning n.
func (w *walker) token(typ string, n ast.Node) *frommd.Token {
	start, stop, ok := span(n)
	if !ok {
		start, stop = w.cursor, w.cursor
	}
	start, stop = widen(n, w.source, start, stop)
	if stop > w.cursor {
		w.cursor = stop
	}
	return &frommd.Token{Type: typ, Start: w.lines.point(start), End: w.lines.point(stop)}
}

// span returns the byte range covered by n's lines and text descendants.
func span(n ast.Node) (start, stop int, ok bool) {
	merge := func(s, e int) {
		if !ok {
			start, stop, ok = s, e, true
			return
		}
		start = min(start, s)
		stop = max(stop, e)
	}

	if n.Type() == ast.TypeBlock {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			merge(lines.At(0).Start, lines.At(lines.Len()-1).Stop)
		}
	}
	switch v := n.(type) {
	case *ast.Text:
		merge(v.Segment.Start, v.Segment.Stop)
	case *ast.RawHTML:
		if v.Segments.Len() > 0 {
			merge(v.Segments.At(0).Start, v.Segments.At(v.Segments.Len()-1).Stop)
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if s, e, cok := span(c); cok {
			merge(s, e)
		}
	}
	return start, stop, ok
}

// widen extends an inline span over its opening and closing delimiter run.
func widen(n ast.Node, source []byte, start, stop int) (int, int) {
	switch n := n.(type) {
	case *east.Strikethrough:
		// Both runs lose as many tildes as the span used, which is at most
		// the shorter of the two. Leftover tildes stay in the text around.
		used := min(runBefore(source, start, "~", 2), runAfter(source, stop, "~", 2))
		return start - used, stop + used
	case *ast.Emphasis:
		return start - runBefore(source, start, "*_", n.Level), stop + runAfter(source, stop, "*_", n.Level)
	case *ast.CodeSpan:
		return start - runBefore(source, start, "`", len(source)), stop + runAfter(source, stop, "`", len(source))
	}
	return start, stop
}

// runBefore counts up to limit marker bytes ending at offset.
func runBefore(source []byte, offset int, marks string, limit int) int {
	n := 0
	for n < limit && offset-n > 0 && strings.IndexByte(marks, source[offset-n-1]) >= 0 {
		n++
	}
	return n
}

// runAfter counts up to limit marker bytes starting at offset.
func runAfter(source []byte, offset int, marks string, limit int) int {
	n := 0
	for n < limit && offset+n < len(source) && strings.IndexByte(marks, source[offset+n]) >= 0 {
		n++
	}
	return n
}

// codeSpanValue joins the raw segments of a code span, turning line endings
// into spaces.
func codeSpanValue(n *ast.CodeSpan, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch c := c.(type) {
		case *ast.Text:
			value = c.Segment.Value(source)
		case *ast.String:
			value = c.Value
		}
		if bytes.HasSuffix(value, []byte("\n")) {
			b.Write(value[:len(value)-1])
			b.WriteByte(' ')
			continue
		}
		b.Write(value)
	}
	return b.String()
}

// linesValue concatenates block lines without the final line ending.
func linesValue(lines *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.WriteString(strings.Repeat(" ", seg.Padding))
		b.Write(seg.Value(source))
	}
	return strings.TrimSuffix(strings.TrimSuffix(b.String(), "\n"), "\r")
}

// unescape resolves backslash escapes and character references.
func unescape(b []byte) string {
	if bytes.IndexAny(b, `\&`) < 0 {
		return string(b)
	}

	var out bytes.Buffer
	out.Grow(len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch {
		case c == '\\' && i+1 < len(b) && util.IsPunct(b[i+1]):
			out.WriteByte(b[i+1])
			i++
		case c == '&':
			if end := bytes.IndexByte(b[i:], ';'); end > 1 && end <= 32 {
				ref := b[i : i+end+1]
				resolved := util.ResolveEntityNames(util.ResolveNumericReferences(ref))
				if !bytes.Equal(resolved, ref) {
					out.Write(resolved)
					i += end
					continue
				}
			}
			out.WriteByte(c)
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

// lineIndex maps byte offsets to line/column points.
type lineIndex []int

func newLineIndex(source []byte) lineIndex {
	idx := lineIndex{0}
	for i, c := range source {
		if c == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (idx lineIndex) point(offset int) mdast.Point {
	lo, hi := 0, len(idx)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if idx[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return mdast.Point{Line: lo + 1, Column: offset - idx[lo] + 1, Offset: offset}
}
