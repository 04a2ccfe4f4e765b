package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdstrike"
	"github.com/alnah/go-mdstrike/internal/fileutil"
	"github.com/alnah/go-mdstrike/internal/mdast"
	"github.com/alnah/go-mdstrike/internal/pipeline"
	flag "github.com/spf13/pflag"
)

// dirPermissions is used for output directories: rwxr-x---.
const dirPermissions = 0o750

// htmlRenderer renders Markdown documents to HTML for the html command.
type htmlRenderer struct {
	processor  *mdstrike.Processor
	injector   pipeline.CSSInjector
	syntax     pipeline.Syntax
	standalone bool
	css        string
}

// Compile-time interface implementation check.
var _ pipeline.CSSInjector = (*pipeline.CSSInjection)(nil)

// runHTML renders files, or stdin when no paths are given.
func runHTML(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseHTMLFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printHTMLUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	cfg, err := loadConfig(&flags.common, env)
	if err != nil {
		return err
	}
	setString(&cfg.HTML.Style, flags.style)
	if flags.standalone {
		cfg.HTML.Standalone = true
	}
	if flags.noStrikethrough {
		off := false
		cfg.Format.Strikethrough = &off
	}

	p, err := mdstrike.New(processorOptions(cfg.Format)...)
	if err != nil {
		return err
	}
	r := &htmlRenderer{
		processor:  p,
		injector:   &pipeline.CSSInjection{},
		syntax:     pipeline.SyntaxGFM,
		standalone: cfg.HTML.Standalone,
	}
	if !cfg.Format.StrikethroughEnabled() {
		r.syntax = pipeline.SyntaxCommonMark
	}
	if r.standalone {
		if r.css, err = pipeline.StyleSheet(cfg.HTML.Style); err != nil {
			return err
		}
	}

	if len(paths) == 0 {
		src, err := readStdin(env)
		if err != nil {
			return err
		}
		html, err := r.render(ctx, src, "")
		if err != nil {
			return err
		}
		_, err = io.WriteString(env.Stdout, html)
		return err
	}

	files, err := discoverFiles(paths)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no Markdown files in %s", ErrNoInput, strings.Join(paths, ", "))
	}
	if flags.output != "" {
		if err := os.MkdirAll(flags.output, dirPermissions); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	results := processBatch(ctx, cfg.Workers, files, func(ctx context.Context, path string) fileResult {
		src, err := readMarkdown(path)
		if err != nil {
			return fileResult{Err: err}
		}
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		html, err := r.render(ctx, src, title)
		if err != nil {
			return fileResult{Err: err}
		}
		out := htmlOutputPath(path, flags.output)
		if err := fileutil.WriteFileAtomic(out, html); err != nil {
			return fileResult{Err: fmt.Errorf("%w: %w", ErrWriteMarkdown, err)}
		}
		return fileResult{Output: out, Changed: true}
	})

	if !flags.common.quiet {
		for _, res := range results {
			if res.Err == nil {
				fmt.Fprintf(env.Stdout, "Created %s\n", res.Output)
			}
		}
	}
	if flags.common.verbose {
		printTiming(results, "rendered", env)
	}

	return reportFailures(results, env)
}

// render converts src to HTML. Standalone documents are titled by their
// first heading, falling back to fallbackTitle.
func (r *htmlRenderer) render(ctx context.Context, src, fallbackTitle string) (string, error) {
	opts := []pipeline.ConverterOption{pipeline.WithSyntax(r.syntax)}
	if r.standalone {
		opts = append(opts, pipeline.WithDocument(r.title(ctx, src, fallbackTitle)))
	}

	html, err := pipeline.NewGoldmarkConverter(opts...).ToHTML(ctx, src)
	if err != nil {
		return "", err
	}
	if r.standalone {
		html = r.injector.InjectCSS(ctx, html, r.css)
	}
	return html, nil
}

// title returns the text of the shallowest heading in src.
func (r *htmlRenderer) title(ctx context.Context, src, fallback string) string {
	root, err := r.processor.Parse(ctx, src)
	if err != nil {
		return fallback
	}

	var best *mdast.Node
	mdast.Walk(root, func(n *mdast.Node) bool {
		if n.Kind == mdast.KindHeading {
			if best == nil || n.Depth < best.Depth {
				best = n
			}
			return false
		}
		return true
	})
	if best == nil {
		return fallback
	}
	if text := strings.TrimSpace(mdast.ToString(best)); text != "" {
		return text
	}
	return fallback
}
