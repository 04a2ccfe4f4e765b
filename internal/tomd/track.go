package tomd

import (
	"strings"
	"unicode/utf8"
)

// Point is an output cursor. Line and Column are 1-based.
type Point struct {
	Line   int
	Column int
}

// Info is what a handler knows about where its output goes: the
// characters right before and after it, and the cursor.
type Info struct {
	Before    string
	After     string
	Now       Point
	LineShift int
}

// Tracker follows the output cursor while a handler assembles its result.
type Tracker struct {
	line      int
	column    int
	lineShift int
}

// NewTracker starts a tracker at the cursor described by info.
func NewTracker(info Info) *Tracker {
	t := &Tracker{line: info.Now.Line, column: info.Now.Column, lineShift: info.LineShift}
	if t.line == 0 {
		t.line = 1
	}
	if t.column == 0 {
		t.column = 1
	}
	return t
}

// Move advances the cursor over value and returns value unchanged.
func (t *Tracker) Move(value string) string {
	lines := splitLines(value)
	tail := lines[len(lines)-1]
	t.line += len(lines) - 1
	if len(lines) == 1 {
		t.column += utf8.RuneCountInString(tail)
	} else {
		t.column = 1 + utf8.RuneCountInString(tail) + t.lineShift
	}
	return value
}

// Shift adds to the indent applied to following lines.
func (t *Tracker) Shift(n int) {
	t.lineShift += n
}

// Current returns the cursor with empty surrounding text.
func (t *Tracker) Current() Info {
	return Info{Now: Point{Line: t.line, Column: t.column}, LineShift: t.lineShift}
}

// Info returns the cursor with the given surrounding text.
func (t *Tracker) Info(before, after string) Info {
	info := t.Current()
	info.Before = before
	info.After = after
	return info
}

// splitLines splits on \r\n, \r or \n.
func splitLines(value string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(value); i++ {
		switch value[i] {
		case '\n':
			lines = append(lines, value[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, value[start:i])
			if i+1 < len(value) && value[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, value[start:])
}

// IndentLines rewrites each line of value through fn, keeping the original
// line endings. blank reports an empty line.
func IndentLines(value string, fn func(line string, index int, blank bool) string) string {
	var b strings.Builder
	start, index := 0, 0
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c != '\n' && c != '\r' {
			continue
		}
		line := value[start:i]
		b.WriteString(fn(line, index, line == ""))
		if c == '\r' && i+1 < len(value) && value[i+1] == '\n' {
			b.WriteString("\r\n")
			i++
		} else {
			b.WriteByte(c)
		}
		start = i + 1
		index++
	}
	line := value[start:]
	b.WriteString(fn(line, index, line == ""))
	return b.String()
}
