package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdstrike"
	flag "github.com/spf13/pflag"
)

// stdinName labels standard input in reports.
const stdinName = "<stdin>"

// runCheck lists files that fmt would change.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, paths, err := parseCheckFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printCheckUsage(env.Stdout)
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

	var results []fileResult
	if len(paths) == 0 {
		src, err := readStdin(env)
		if err != nil {
			return err
		}
		r := checkSource(ctx, p, src, verify)
		r.Path = stdinName
		results = []fileResult{r}
	} else {
		files, err := discoverFiles(paths)
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		if len(files) == 0 {
			return fmt.Errorf("%w: no Markdown files in %s", ErrNoInput, strings.Join(paths, ", "))
		}
		results = processBatch(ctx, cfg.Workers, files, func(ctx context.Context, path string) fileResult {
			src, err := readMarkdown(path)
			if err != nil {
				return fileResult{Err: err}
			}
			return checkSource(ctx, p, src, verify)
		})
	}

	unformatted := 0
	for _, r := range results {
		if r.Err == nil && r.Changed {
			unformatted++
			if !flags.common.quiet {
				fmt.Fprintln(env.Stdout, r.Path)
			}
		}
	}
	if flags.common.verbose {
		printTiming(results, "checked", env)
	}

	failed := reportFailures(results, env)
	if unformatted == 0 {
		return failed
	}
	notFormatted := fmt.Errorf("%w: %d of %d files", mdstrike.ErrNotFormatted, unformatted, len(results))
	return errors.Join(failed, notFormatted)
}

// checkSource reports whether src is formatted and, when verify is set,
// whether formatting it keeps the rendered HTML.
func checkSource(ctx context.Context, p *mdstrike.Processor, src string, verify bool) fileResult {
	var r fileResult
	if err := p.Check(ctx, src); err != nil {
		if !errors.Is(err, mdstrike.ErrNotFormatted) {
			return fileResult{Err: err}
		}
		r.Changed = true
	}
	if verify {
		if err := p.VerifyRoundTrip(ctx, src); err != nil {
			return fileResult{Err: err}
		}
	}
	return r
}
