// Package mdstrike reads Markdown into a syntax tree and writes trees back
// out as normalized Markdown, with GFM strikethrough (~~text~~) support.
//
// # Quick Start
//
// Create a processor and reformat a document:
//
//	p, err := mdstrike.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := p.Reformat(ctx, "Some _old_ ~~text~~\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(out) // Some *old* ~~text~~
//
// # Pipeline
//
// Parsing and formatting run in these stages:
//
//  1. Source preprocessing (byte order mark, line endings)
//  2. Tokenizing via Goldmark's CommonMark parser plus its strikethrough
//     extension, reported as enter/exit events
//  3. Tree construction: events become mdast nodes, strikethrough spans
//     become delete nodes
//  4. Serialization: each node kind has a handler; literal text is escaped
//     only where it would otherwise be read as markup
//
// Parse and Format expose stages 1-3 and 4 separately, so a tree can be
// inspected or edited between them.
//
// # Options
//
// Use functional options to choose markers:
//
//	p, err := mdstrike.New(
//	    mdstrike.WithEmphasis('_'),
//	    mdstrike.WithBullet('-'),
//	    mdstrike.WithFence('~'),
//	)
//
// WithoutStrikethrough reads and writes plain CommonMark. Custom syntax
// plugs in through WithParseExtensions and WithSerializeExtensions; the
// strikethrough registrations StrikethroughFromMarkdown and
// StrikethroughToMarkdown are examples of both halves.
//
// # Verification
//
// Check reports ErrNotFormatted when Reformat would change a document.
// VerifyRoundTrip renders the document before and after reformatting to
// HTML and reports ErrRoundTrip when the two differ.
//
// A Processor is immutable once built and safe for concurrent use.
package mdstrike
