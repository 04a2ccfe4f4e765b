package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         []ConverterOption
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "heading with id",
			input:        "# Hello World",
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
			wantNot:      []string{"<!DOCTYPE html>"},
		},
		{
			name:         "GFM strikethrough",
			input:        "~~deleted~~",
			wantContains: []string{"<del>deleted</del>"},
		},
		{
			name:         "GFM table",
			input:        "| A |\n|---|\n| 1 |",
			wantContains: []string{"<table>", "<th>A</th>", "<td>1</td>"},
		},
		{
			name:         "strikethrough dialect has no tables",
			opts:         []ConverterOption{WithSyntax(SyntaxStrikethrough)},
			input:        "~~a~~\n\n| A |\n|---|\n| 1 |",
			wantContains: []string{"<del>a</del>"},
			wantNot:      []string{"<table>"},
		},
		{
			name:         "commonmark leaves tildes alone",
			opts:         []ConverterOption{WithSyntax(SyntaxCommonMark)},
			input:        "~~a~~",
			wantContains: []string{"<p>~~a~~</p>"},
			wantNot:      []string{"<del>"},
		},
		{
			name:         "soft line break is kept",
			input:        "a\nb",
			wantContains: []string{"<p>a\nb</p>"},
			wantNot:      []string{"<br"},
		},
		{
			name:         "code block is highlighted with classes",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
			wantNot:      []string{"style="},
		},
		{
			name:         "raw html is omitted",
			input:        "<div>x</div>",
			wantNot:      []string{"<div>"},
		},
		{
			name:         "document wrapper",
			opts:         []ConverterOption{WithDocument("a < b")},
			input:        "text",
			wantContains: []string{"<!DOCTYPE html>", "<title>a &lt; b</title>", "<p>text</p>"},
		},
		{
			name:         "document wrapper default title",
			opts:         []ConverterOption{WithDocument("")},
			input:        "text",
			wantContains: []string{"<title>Document</title>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewGoldmarkConverter(tt.opts...).ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("ToHTML() should not contain %q in:\n%s", not, got)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "# a")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestStyleSheet(t *testing.T) {
	t.Parallel()

	css, err := StyleSheet("")
	if err != nil {
		t.Fatalf("StyleSheet(\"\") error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("StyleSheet() missing .chroma rules:\n%s", css)
	}

	if _, err := StyleSheet("no-such-style"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("StyleSheet(unknown) error = %v, want ErrUnknownStyle", err)
	}
}
