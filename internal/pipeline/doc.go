// Package pipeline renders Markdown to HTML and prepares text around the
// tree pipeline:
//   - source preprocessing (byte order mark, line endings)
//   - Markdown to HTML conversion via Goldmark with chroma highlighting
//   - stylesheet injection into standalone documents
//   - HTML normalization so renderings can be compared as strings
//
// The HTML side never sees the syntax tree. It exists to show a document
// the way a reader would, and to check that reformatting kept its meaning.
package pipeline
