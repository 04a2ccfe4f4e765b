package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// ErrUnknownStyle indicates a highlighting style name chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlighting style")

// DefaultStyle is the chroma style used for code highlighting CSS.
const DefaultStyle = "github"

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// Syntax selects which Markdown dialect a GoldmarkConverter understands.
type Syntax int

const (
	// SyntaxGFM is CommonMark plus every GitHub extension and footnotes.
	SyntaxGFM Syntax = iota
	// SyntaxStrikethrough is CommonMark plus ~~strikethrough~~ only, the
	// dialect the tree pipeline reads and writes.
	SyntaxStrikethrough
	// SyntaxCommonMark is plain CommonMark.
	SyntaxCommonMark
)

// ConverterOption configures a GoldmarkConverter.
type ConverterOption func(*converterConfig)

type converterConfig struct {
	syntax   Syntax
	document bool
	title    string
}

// WithSyntax selects the Markdown dialect.
func WithSyntax(s Syntax) ConverterOption {
	return func(c *converterConfig) {
		c.syntax = s
	}
}

// WithDocument wraps output in a standalone HTML5 document with the given
// title. Without it ToHTML returns the body fragment.
func WithDocument(title string) ConverterOption {
	return func(c *converterConfig) {
		c.document = true
		c.title = title
	}
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md  goldmark.Markdown
	cfg converterConfig
}

// NewGoldmarkConverter creates a GoldmarkConverter with syntax highlighting.
// The default dialect is SyntaxGFM.
func NewGoldmarkConverter(opts ...ConverterOption) *GoldmarkConverter {
	var cfg converterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	exts := []goldmark.Extender{
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes, see StyleSheet
			),
		),
	}
	switch cfg.syntax {
	case SyntaxGFM:
		exts = append(exts, extension.GFM, extension.Footnote)
	case SyntaxStrikethrough:
		exts = append(exts, extension.Strikethrough)
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		// Soft line breaks stay line breaks and raw HTML is omitted: the
		// output mirrors source structure, it is not meant to be trusted.
	)
	return &GoldmarkConverter{md: md, cfg: cfg}
}

// ToHTML converts Markdown content to HTML.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		if !c.cfg.document {
			done <- result{html: buf.String()}
			return
		}
		done <- result{html: fmt.Sprintf(htmlTemplate, escapeTitle(c.cfg.title), buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

func escapeTitle(s string) string {
	if s == "" {
		return "Document"
	}
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// StyleSheet returns the CSS for the classes chroma emits for code blocks
// under the named style.
func StyleSheet(style string) (string, error) {
	if style == "" {
		style = DefaultStyle
	}
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}

	var buf bytes.Buffer
	if err := chromahtml.New(chromahtml.WithClasses(true)).WriteCSS(&buf, s); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", style, err)
	}
	return buf.String(), nil
}

// StyleNames lists the highlighting styles StyleSheet accepts.
func StyleNames() []string {
	return styles.Names()
}
