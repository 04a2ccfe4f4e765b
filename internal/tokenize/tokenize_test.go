package tokenize

import (
	"strings"
	"testing"

	"github.com/alnah/go-mdstrike/internal/frommd"
	"github.com/alnah/go-mdstrike/internal/mdast"
)

// structure renders container events as "+type"/"-type" and concatenates
// data runs, which keeps tests independent of how goldmark splits text.
func structure(events []frommd.Event) string {
	var parts []string
	var data strings.Builder
	flush := func() {
		if data.Len() > 0 {
			parts = append(parts, "'"+data.String()+"'")
			data.Reset()
		}
	}
	for _, ev := range events {
		switch ev.Token.Type {
		case frommd.TokenData, frommd.TokenLineEnding:
			if ev.Kind == frommd.EnterEvent {
				data.WriteString(ev.Token.Value)
			}
			continue
		}
		flush()
		sign := "+"
		if ev.Kind == frommd.ExitEvent {
			sign = "-"
		}
		parts = append(parts, sign+ev.Token.Type)
	}
	flush()
	return strings.Join(parts, " ")
}

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []Option
		want  string
	}{
		{
			name:  "strikethrough span",
			input: "a ~~b~~ c.",
			opts:  []Option{WithStrikethrough()},
			want:  "+paragraph 'a ' +strikethrough 'b' -strikethrough ' c.' -paragraph",
		},
		{
			name:  "strikethrough across lines",
			input: "a ~~b\nc~~ d.",
			opts:  []Option{WithStrikethrough()},
			want:  "+paragraph 'a ' +strikethrough 'b\nc' -strikethrough ' d.' -paragraph",
		},
		{
			name:  "tildes stay text without the extension",
			input: "a ~~b~~ c.",
			want:  "+paragraph 'a ~~b~~ c.' -paragraph",
		},
		{
			name:  "escaped tildes are data",
			input: `a \~\~b\~\~ c.`,
			opts:  []Option{WithStrikethrough()},
			want:  "+paragraph 'a ~~b~~ c.' -paragraph",
		},
		{
			name:  "emphasis and strong",
			input: "*a* **b**",
			want:  "+paragraph +emphasis 'a' -emphasis ' ' +strong 'b' -strong -paragraph",
		},
		{
			name:  "heading",
			input: "## Title",
			want:  "+heading 'Title' -heading",
		},
		{
			name:  "link",
			input: "[x](http://a.b \"t\")",
			want:  "+paragraph +link 'x' -link -paragraph",
		},
		{
			name:  "code span",
			input: "`a`",
			want:  "+paragraph +codeText -codeText -paragraph",
		},
		{
			name:  "fenced code",
			input: "```go\nx\n```",
			want:  "+codeFenced -codeFenced",
		},
		{
			name:  "tight list",
			input: "- a\n- b",
			want:  "+list +listItem +paragraph 'a' -paragraph -listItem +listItem +paragraph 'b' -paragraph -listItem -list",
		},
		{
			name:  "blockquote",
			input: "> a",
			want:  "+blockQuote +paragraph 'a' -paragraph -blockQuote",
		},
		{
			name:  "hard break",
			input: "a\\\nb",
			want:  "+paragraph 'a' +hardBreak -hardBreak 'b' -paragraph",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			events, err := New(tt.opts...).Tokenize([]byte(tt.input))
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if got := structure(events); got != tt.want {
				t.Errorf("Tokenize(%q)\n got: %s\nwant: %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizer_Payloads(t *testing.T) {
	t.Parallel()

	events, err := New().Tokenize([]byte("# H\n\n[x](http://a.b \"t\")\n\n```go title=x\ncode\n```"))
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	found := map[string]*frommd.Token{}
	for _, ev := range events {
		if ev.Kind == frommd.EnterEvent {
			found[ev.Token.Type] = ev.Token
		}
	}

	if h := found[frommd.TokenHeading]; h == nil || h.Depth != 1 {
		t.Errorf("heading token = %+v, want depth 1", h)
	}
	if l := found[frommd.TokenLink]; l == nil || l.Destination != "http://a.b" || l.Title != "t" {
		t.Errorf("link token = %+v, want destination and title", l)
	}
	c := found[frommd.TokenCodeFenced]
	if c == nil {
		t.Fatal("no codeFenced token")
	}
	if c.Lang != "go" || c.Meta != "title=x" || c.Value != "code" {
		t.Errorf("code token lang=%q meta=%q value=%q", c.Lang, c.Meta, c.Value)
	}
}

func TestTokenizer_StrikethroughPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		wantStart int
		wantEnd   int
	}{
		{"double tildes", "a ~~b~~ c.", 2, 7},
		{"single tildes", "a ~b~ c.", 2, 5},
		{"leftover opening tilde", "a ~~b~ c", 3, 6},
		{"leftover closing tilde", "a ~b~~ c", 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			events, err := New(WithStrikethrough()).Tokenize([]byte(tt.source))
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}

			var before, after, span *frommd.Token
			exited := false
			for _, ev := range events {
				switch {
				case ev.Token.Type == frommd.TokenStrikethrough:
					span = ev.Token
					exited = ev.Kind == frommd.ExitEvent
				case ev.Token.Type != frommd.TokenData || ev.Kind != frommd.EnterEvent:
				case span == nil:
					before = ev.Token
				case exited && after == nil:
					after = ev.Token
				}
			}
			if span == nil {
				t.Fatal("no strikethrough token")
			}

			if span.Start.Offset != tt.wantStart || span.End.Offset != tt.wantEnd {
				t.Errorf("span = %d..%d, want %d..%d",
					span.Start.Offset, span.End.Offset, tt.wantStart, tt.wantEnd)
			}
			if before != nil && before.End.Offset > span.Start.Offset {
				t.Errorf("text before ends at %d, inside the span starting at %d",
					before.End.Offset, span.Start.Offset)
			}
			if after != nil && after.Start.Offset < span.End.Offset {
				t.Errorf("text after starts at %d, inside the span ending at %d",
					after.Start.Offset, span.End.Offset)
			}
		})
	}
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{`plain`, "plain"},
		{`a\~b`, "a~b"},
		{`a\b`, `a\b`},
		{`&amp;`, "&"},
		{`&#126;`, "~"},
		{`&nope`, "&nope"},
		{`\&amp;`, "&amp;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := unescape([]byte(tt.input)); got != tt.want {
				t.Errorf("unescape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLineIndex_Point(t *testing.T) {
	t.Parallel()

	idx := newLineIndex([]byte("ab\ncd\n"))
	tests := []struct {
		offset int
		want   mdast.Point
	}{
		{0, mdast.Point{Line: 1, Column: 1, Offset: 0}},
		{2, mdast.Point{Line: 1, Column: 3, Offset: 2}},
		{3, mdast.Point{Line: 2, Column: 1, Offset: 3}},
		{6, mdast.Point{Line: 3, Column: 1, Offset: 6}},
	}

	for _, tt := range tests {
		if got := idx.point(tt.offset); got != tt.want {
			t.Errorf("point(%d) = %+v, want %+v", tt.offset, got, tt.want)
		}
	}
}
