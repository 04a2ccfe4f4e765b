package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrInvalidFlag is returned when a flag value is outside its allowed set.
var ErrInvalidFlag = errors.New("invalid flag value")

// markerError reports a marker flag set to a character the serializer
// does not accept.
type markerError struct {
	flag    string
	value   string
	allowed string
}

func (e *markerError) Error() string {
	return fmt.Sprintf("%v: --%s %q", ErrInvalidFlag, e.flag, e.value)
}

func (e *markerError) Unwrap() error { return ErrInvalidFlag }

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	workers int
	quiet   bool
	verbose bool
}

// formatFlags holds serializer marker flags.
type formatFlags struct {
	quote           string
	emphasis        string
	strong          string
	bullet          string
	bulletOrdered   string
	fence           string
	rule            string
	setext          bool
	resourceLink    bool
	noStrikethrough bool
}

// fmtFlags holds all flags for the fmt command.
type fmtFlags struct {
	common commonFlags
	format formatFlags
	write  bool
	verify bool
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common commonFlags
	format formatFlags
	verify bool
}

// htmlFlags holds all flags for the html command.
type htmlFlags struct {
	common          commonFlags
	output          string
	style           string
	standalone      bool
	noStrikethrough bool
}

// configFlags holds all flags for the config command.
type configFlags struct {
	common commonFlags
	format formatFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.IntVarP(&f.workers, "workers", "j", 0, "parallel workers (0 = auto)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addFormatFlags adds marker flags to a FlagSet.
func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.StringVar(&f.quote, "quote", "", `title quote: " or '`)
	fs.StringVar(&f.emphasis, "emphasis", "", "emphasis marker: * or _")
	fs.StringVar(&f.strong, "strong", "", "strong marker: * or _")
	fs.StringVar(&f.bullet, "bullet", "", "list bullet: *, + or -")
	fs.StringVar(&f.bulletOrdered, "bullet-ordered", "", "ordered list delimiter: . or )")
	fs.StringVar(&f.fence, "fence", "", "code fence marker: ` or ~")
	fs.StringVar(&f.rule, "rule", "", "thematic break marker: *, - or _")
	fs.BoolVar(&f.setext, "setext", false, "underline rank 1 and 2 headings")
	fs.BoolVar(&f.resourceLink, "resource-link", false, "never write <autolinks>")
	fs.BoolVar(&f.noStrikethrough, "no-strikethrough", false, "treat ~~ as plain text")
}

// validate checks every marker flag that was given.
func (f *formatFlags) validate() error {
	markers := []struct {
		flag    string
		value   string
		allowed string
	}{
		{"quote", f.quote, `"'`},
		{"emphasis", f.emphasis, "*_"},
		{"strong", f.strong, "*_"},
		{"bullet", f.bullet, "*+-"},
		{"bullet-ordered", f.bulletOrdered, ".)"},
		{"fence", f.fence, "`~"},
		{"rule", f.rule, "*-_"},
	}
	for _, m := range markers {
		if m.value == "" {
			continue
		}
		if len(m.value) != 1 || !strings.Contains(m.allowed, m.value) {
			return &markerError{flag: m.flag, value: m.value, allowed: m.allowed}
		}
	}
	return nil
}

// newFlagSet creates a FlagSet that reports errors through the returned
// error only.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parse runs fs over args and wraps syntax errors in ErrUsage.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseFmtFlags parses fmt command flags and returns positional args.
func parseFmtFlags(args []string) (*fmtFlags, []string, error) {
	fs := newFlagSet("fmt")
	f := &fmtFlags{}
	fs.BoolVarP(&f.write, "write", "w", false, "rewrite files in place")
	fs.BoolVar(&f.verify, "verify", false, "refuse output that renders differently")
	addCommonFlags(fs, &f.common)
	addFormatFlags(fs, &f.format)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := newFlagSet("check")
	f := &checkFlags{}
	fs.BoolVar(&f.verify, "verify", false, "also compare rendered HTML")
	addCommonFlags(fs, &f.common)
	addFormatFlags(fs, &f.format)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseHTMLFlags parses html command flags and returns positional args.
func parseHTMLFlags(args []string) (*htmlFlags, []string, error) {
	fs := newFlagSet("html")
	f := &htmlFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.style, "style", "", "code highlighting style")
	fs.BoolVar(&f.standalone, "standalone", false, "write full documents with a stylesheet")
	fs.BoolVar(&f.noStrikethrough, "no-strikethrough", false, "treat ~~ as plain text")
	addCommonFlags(fs, &f.common)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseConfigFlags parses config command flags and returns positional args.
func parseConfigFlags(args []string) (*configFlags, []string, error) {
	fs := newFlagSet("config")
	f := &configFlags{}
	addCommonFlags(fs, &f.common)
	addFormatFlags(fs, &f.format)

	rest, err := parse(fs, args)
	return f, rest, err
}
