package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-mdstrike"
	"github.com/alnah/go-mdstrike/internal/fileutil"
	flag "github.com/spf13/pflag"
)

// runFmt formats files, or stdin when no paths are given.
func runFmt(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseFmtFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printFmtUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	p, cfg, err := newProcessor(&flags.common, &flags.format, env)
	if err != nil {
		return err
	}
	verify := flags.verify || cfg.Check.Verify

	if len(paths) == 0 {
		if flags.write {
			return fmt.Errorf("%w: --write needs file arguments", ErrUsage)
		}
		src, err := readStdin(env)
		if err != nil {
			return err
		}
		out, err := formatSource(ctx, p, src, verify)
		if err != nil {
			return err
		}
		_, err = io.WriteString(env.Stdout, out)
		return err
	}

	files, err := discoverFiles(paths)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no Markdown files in %s", ErrNoInput, strings.Join(paths, ", "))
	}

	results := processBatch(ctx, cfg.Workers, files, func(ctx context.Context, path string) fileResult {
		src, err := readMarkdown(path)
		if err != nil {
			return fileResult{Err: err}
		}
		out, err := formatSource(ctx, p, src, verify)
		if err != nil {
			return fileResult{Err: err}
		}
		r := fileResult{Output: out, Changed: out != src}
		if flags.write && r.Changed {
			if err := fileutil.WriteFileAtomic(path, out); err != nil {
				r.Err = fmt.Errorf("%w: %w", ErrWriteMarkdown, err)
			}
		}
		return r
	})

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		switch {
		case !flags.write:
			fmt.Fprint(env.Stdout, r.Output)
		case r.Changed && !flags.common.quiet:
			fmt.Fprintf(env.Stdout, "Formatted %s\n", r.Path)
		}
	}
	if flags.common.verbose {
		printTiming(results, "formatted", env)
	}

	return reportFailures(results, env)
}

// formatSource reformats src, checking first that the result renders the
// same when verify is set.
func formatSource(ctx context.Context, p *mdstrike.Processor, src string, verify bool) (string, error) {
	if verify {
		if err := p.VerifyRoundTrip(ctx, src); err != nil {
			return "", err
		}
	}
	return p.Reformat(ctx, src)
}

// readStdin reads the whole standard input.
func readStdin(env *Environment) (string, error) {
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}
