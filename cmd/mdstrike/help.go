package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstrike <command> [flags] [paths]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  fmt        Format markdown files")
	fmt.Fprintln(w, "  check      List files fmt would change")
	fmt.Fprintln(w, "  html       Render markdown files to HTML")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdstrike help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -j, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printFormatUsage prints the marker flags.
func printFormatUsage(w io.Writer) {
	fmt.Fprintln(w, "Markers:")
	fmt.Fprintln(w, "      --quote <c>           Title quote: \" or '")
	fmt.Fprintln(w, "      --emphasis <c>        Emphasis marker: * or _")
	fmt.Fprintln(w, "      --strong <c>          Strong marker: * or _")
	fmt.Fprintln(w, "      --bullet <c>          List bullet: *, + or -")
	fmt.Fprintln(w, "      --bullet-ordered <c>  Ordered list delimiter: . or )")
	fmt.Fprintln(w, "      --fence <c>           Code fence marker: ` or ~")
	fmt.Fprintln(w, "      --rule <c>            Thematic break marker: *, - or _")
	fmt.Fprintln(w, "      --setext              Underline rank 1 and 2 headings")
	fmt.Fprintln(w, "      --resource-link       Never write <autolinks>")
	fmt.Fprintln(w, "      --no-strikethrough    Treat ~~ as plain text")
}

// printFmtUsage prints usage for the fmt command.
func printFmtUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstrike fmt [flags] [paths]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Format markdown files. Without paths, format stdin to stdout.")
	fmt.Fprintln(w, "Directories are searched recursively, skipping hidden entries.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -w, --write               Rewrite files in place")
	fmt.Fprintln(w, "      --verify              Refuse output that renders differently")
	fmt.Fprintln(w)
	printFormatUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstrike check [flags] [paths]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List files fmt would change and exit with status 4 if there are any.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check:")
	fmt.Fprintln(w, "      --verify              Also compare rendered HTML")
	fmt.Fprintln(w)
	printFormatUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printHTMLUsage prints usage for the html command.
func printHTMLUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstrike html [flags] [paths]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files to HTML next to their source.")
	fmt.Fprintln(w, "Without paths, render stdin to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory")
	fmt.Fprintln(w, "      --standalone          Full documents with a stylesheet")
	fmt.Fprintln(w, "      --style <name>        Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --no-strikethrough    Treat ~~ as plain text")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstrike config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after applying the config file,")
	fmt.Fprintln(w, "MDSTRIKE_* environment variables and flags.")
	fmt.Fprintln(w)
	printFormatUsage(w)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "fmt":
		printFmtUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "html":
		printHTMLUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdstrike version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdstrike help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
