package mdstrike

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdstrike/internal/frommd"
	"github.com/alnah/go-mdstrike/internal/pipeline"
	"github.com/alnah/go-mdstrike/internal/strikethrough"
	"github.com/alnah/go-mdstrike/internal/tokenize"
	"github.com/alnah/go-mdstrike/internal/tomd"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Processor parses and formats Markdown. Create with New. A Processor is
// immutable and safe for concurrent use.
type Processor struct {
	preprocessor pipeline.MarkdownPreprocessor
	tokenizer    *tokenize.Tokenizer
	compiler     *frommd.Compiler
	serializer   *tomd.Serializer
	renderer     pipeline.HTMLConverter
}

// New creates a Processor. Marker options are validated here; an invalid
// marker or an extension naming an unknown construct is reported as an
// error wrapping ErrInvalidOption or ErrUnknownConstruct.
func New(opts ...Option) (*Processor, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var (
		tokOpts    []tokenize.Option
		parseExts  []frommd.Extension
		serialExts []tomd.Extension
		syntax     = pipeline.SyntaxCommonMark
	)
	if cfg.strikethrough {
		tokOpts = append(tokOpts, tokenize.WithStrikethrough())
		parseExts = append(parseExts, strikethrough.FromMarkdown())
		serialExts = append(serialExts, strikethrough.ToMarkdown())
		syntax = pipeline.SyntaxStrikethrough
	}
	parseExts = append(parseExts, cfg.parseExts...)
	serialExts = append(serialExts, cfg.serializeExts...)

	serializeOpts := cfg.serialize
	serializeOpts.Extensions = serialExts
	serializer, err := tomd.New(serializeOpts)
	if err != nil {
		return nil, fmt.Errorf("configuring serializer: %w", err)
	}

	return &Processor{
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		tokenizer:    tokenize.New(tokOpts...),
		compiler: frommd.New(
			frommd.WithExtensions(parseExts...),
			frommd.WithPositions(cfg.positions),
		),
		serializer: serializer,
		renderer:   pipeline.NewGoldmarkConverter(pipeline.WithSyntax(syntax)),
	}, nil
}

// Parse reads markdown into a tree rooted at a KindRoot node.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Processor) Parse(ctx context.Context, markdown string) (root *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrParse, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := p.preprocessor.PreprocessMarkdown(ctx, markdown)
	events, err := p.tokenizer.Tokenize([]byte(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err = p.compiler.Compile(events)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return root, nil
}

// Format writes node as Markdown ending in a line ending. An empty root
// formats to the empty string.
func (p *Processor) Format(ctx context.Context, node *Node) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrFormat, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	out, err = p.serializer.Serialize(node)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFormat, err)
	}
	return out, nil
}

// Reformat parses markdown and formats the resulting tree.
func (p *Processor) Reformat(ctx context.Context, markdown string) (string, error) {
	root, err := p.Parse(ctx, markdown)
	if err != nil {
		return "", err
	}
	return p.Format(ctx, root)
}

// Check returns an error wrapping ErrNotFormatted when Reformat would
// change markdown.
func (p *Processor) Check(ctx context.Context, markdown string) error {
	out, err := p.Reformat(ctx, markdown)
	if err != nil {
		return err
	}
	if out != markdown {
		line, col := firstDifference(markdown, out)
		return fmt.Errorf("%w: first difference at %d:%d", ErrNotFormatted, line, col)
	}
	return nil
}

// VerifyRoundTrip reformats markdown and checks that the result renders
// to the same HTML as the input. The comparison ignores differences that
// do not change the rendered document, such as attribute order or
// whitespace between blocks.
func (p *Processor) VerifyRoundTrip(ctx context.Context, markdown string) error {
	out, err := p.Reformat(ctx, markdown)
	if err != nil {
		return err
	}

	before, err := p.renderNormalized(ctx, markdown)
	if err != nil {
		return err
	}
	after, err := p.renderNormalized(ctx, out)
	if err != nil {
		return err
	}

	if before != after {
		line, col := firstDifference(before, after)
		return fmt.Errorf("%w: rendered HTML differs at %d:%d", ErrRoundTrip, line, col)
	}
	return nil
}

func (p *Processor) renderNormalized(ctx context.Context, markdown string) (string, error) {
	html, err := p.renderer.ToHTML(ctx, markdown)
	if err != nil {
		return "", fmt.Errorf("rendering HTML: %w", err)
	}
	normalized, err := pipeline.NormalizeHTML(html)
	if err != nil {
		return "", fmt.Errorf("normalizing HTML: %w", err)
	}
	return normalized, nil
}

// firstDifference returns the 1-based line and byte column of the first
// byte where a and b differ.
func firstDifference(a, b string) (line, col int) {
	line, col = 1, 1
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return line, col
		}
		if a[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}
