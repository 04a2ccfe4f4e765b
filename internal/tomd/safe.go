package tomd

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// SafeConfig describes the text around a value passed to Safe.
type SafeConfig struct {
	Before string
	After  string

	// Encode lists characters that are written as character references
	// instead of being backslash-escaped.
	Encode string
}

type unsafeHit struct {
	before bool
	after  bool
	encode bool
}

// Safe escapes value so that it is read back literally between Before and
// After under the current construct stack.
func (s *State) Safe(input string, cfg SafeConfig) string {
	value := cfg.Before + input + cfg.After
	inner, outer := len(cfg.Before), len(value)-len(cfg.After)
	var positions []int
	hits := make(map[int]*unsafeHit)

	for _, p := range s.serializer.unsafe {
		if !p.inScope(s.stack) {
			continue
		}
		if p.Encode {
			for _, pos := range p.edgeHits(value, inner, outer) {
				if hit, ok := hits[pos]; ok {
					hit.encode = true
					continue
				}
				positions = append(positions, pos)
				hits[pos] = &unsafeHit{encode: true}
			}
			continue
		}
		for _, m := range p.re.FindAllStringSubmatchIndex(value, -1) {
			before := p.hasBefore
			after := p.After != ""
			pos := m[0]
			if before {
				pos += m[3] - m[2]
			}
			if hit, ok := hits[pos]; ok {
				if hit.before && !before {
					hit.before = false
				}
				if hit.after && !after {
					hit.after = false
				}
				continue
			}
			positions = append(positions, pos)
			hits[pos] = &unsafeHit{before: before, after: after}
		}
	}
	sort.Ints(positions)

	start, end := inner, outer
	var b strings.Builder

	for i, pos := range positions {
		if pos < start || pos >= end {
			continue
		}

		// A character only unsafe because of its neighbour is left alone
		// when that neighbour gets escaped unconditionally.
		if pos+1 < end && i+1 < len(positions) && positions[i+1] == pos+1 &&
			hits[pos].after && !hits[pos+1].before && !hits[pos+1].after {
			continue
		}
		if i > 0 && positions[i-1] == pos-1 &&
			hits[pos].before && !hits[pos-1].before && !hits[pos-1].after {
			continue
		}

		if start != pos {
			b.WriteString(escapeBackslashes(value[start:pos], `\`))
		}
		start = pos

		c := value[pos]
		if isASCIIPunct(c) && !hits[pos].encode && strings.IndexByte(cfg.Encode, c) < 0 {
			b.WriteByte('\\')
			continue
		}
		r, size := utf8.DecodeRuneInString(value[pos:])
		fmt.Fprintf(&b, "&#x%X;", r)
		start += size
	}

	b.WriteString(escapeBackslashes(value[start:end], cfg.After))
	return b.String()
}

// escapeBackslashes doubles every backslash in value that would otherwise
// escape the punctuation following it, looking into after for the last one.
func escapeBackslashes(value, after string) string {
	whole := value + after
	var b strings.Builder
	start := 0
	for i := 0; i < len(value); i++ {
		if whole[i] == '\\' && i+1 < len(whole) && isASCIIPunct(whole[i+1]) {
			b.WriteString(value[start:i])
			b.WriteByte('\\')
			start = i
		}
	}
	b.WriteString(value[start:])
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}
