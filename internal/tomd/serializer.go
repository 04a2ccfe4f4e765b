// Package tomd serializes mdast trees back to Markdown.
//
// Node kinds are dispatched through a handler table resolved once when the
// Serializer is built. Handlers escape literal text with State.Safe, which
// consults the unsafe-pattern table under the current construct stack, and
// use a Tracker so nested content knows what surrounds it.
package tomd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

// Sentinel errors for serialization.
var (
	ErrNilNode          = errors.New("nil node")
	ErrUnknownNode      = errors.New("no handler for node")
	ErrUnknownConstruct = errors.New("unknown construct")
	ErrInvalidOption    = errors.New("invalid serializer option")
)

// HandleFunc serializes node. parent is nil for the tree root.
type HandleFunc func(node, parent *mdast.Node, state *State, info Info) (string, error)

// PeekFunc returns the first character a handler would produce, without
// producing the rest.
type PeekFunc func(node, parent *mdast.Node, state *State) string

// Handler serializes one node kind.
type Handler struct {
	Handle HandleFunc
	Peek   PeekFunc
}

// Extension adds or overrides handlers and unsafe patterns. Constructs
// declares construct names the extension enters, so patterns may refer to
// them.
type Extension struct {
	Constructs []ConstructName
	Unsafe     []UnsafePattern
	Handlers   map[mdast.Kind]Handler
}

// Options control marker choice. Zero values select the defaults.
type Options struct {
	Quote         byte // '"' or '\''
	Emphasis      byte // '*' or '_'
	Strong        byte // '*' or '_'
	Bullet        byte // '*', '+' or '-'
	BulletOrdered byte // '.' or ')'
	Fence         byte // '`' or '~'
	Rule          byte // '*', '-' or '_'
	Setext        bool // use setext headings for rank 1 and 2
	ResourceLink  bool // never use the <autolink> form
	Extensions    []Extension
}

func (o *Options) setDefaults() {
	setDefault(&o.Quote, '"')
	setDefault(&o.Emphasis, '*')
	setDefault(&o.Strong, '*')
	setDefault(&o.Bullet, '*')
	setDefault(&o.BulletOrdered, '.')
	setDefault(&o.Fence, '`')
	setDefault(&o.Rule, '*')
}

func setDefault(b *byte, v byte) {
	if *b == 0 {
		*b = v
	}
}

func (o *Options) validate() error {
	checks := []struct {
		name    string
		value   byte
		allowed string
	}{
		{"quote", o.Quote, `"'`},
		{"emphasis", o.Emphasis, "*_"},
		{"strong", o.Strong, "*_"},
		{"bullet", o.Bullet, "*+-"},
		{"bulletOrdered", o.BulletOrdered, ".)"},
		{"fence", o.Fence, "`~"},
		{"rule", o.Rule, "*-_"},
	}
	for _, c := range checks {
		if !containsByte(c.allowed, c.value) {
			return fmt.Errorf("%w: %s %q (must be one of %q)", ErrInvalidOption, c.name, c.value, c.allowed)
		}
	}
	return nil
}

func containsByte(s string, b byte) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return true
		}
	}
	return false
}

// Serializer turns trees into Markdown. It is immutable once built and
// safe for concurrent use.
type Serializer struct {
	handlers   [mdast.KindCount]Handler
	unsafe     []*compiledPattern
	constructs map[ConstructName]bool
	options    Options
}

// New builds a Serializer from the default handlers plus opts.Extensions.
// Every construct named by an unsafe pattern must be known, either to the
// defaults or through an extension's Constructs.
func New(opts Options) (*Serializer, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	s := &Serializer{
		constructs: make(map[ConstructName]bool),
		options:    opts,
	}

	exts := append([]Extension{defaultExtension()}, opts.Extensions...)
	var patterns []UnsafePattern
	seen := make(map[string]bool)
	for _, ext := range exts {
		for _, name := range ext.Constructs {
			s.constructs[name] = true
		}
		for kind, h := range ext.Handlers {
			if kind >= mdast.KindCount {
				return nil, fmt.Errorf("%w: kind %d", ErrUnknownNode, kind)
			}
			s.handlers[kind] = h
		}
		for _, p := range ext.Unsafe {
			if k := p.key(); !seen[k] {
				seen[k] = true
				patterns = append(patterns, p)
			}
		}
	}

	for _, p := range patterns {
		if err := s.checkConstructs(p); err != nil {
			return nil, err
		}
		cp, err := compilePattern(p)
		if err != nil {
			return nil, err
		}
		s.unsafe = append(s.unsafe, cp)
	}
	return s, nil
}

func (s *Serializer) checkConstructs(p UnsafePattern) error {
	for _, name := range slices.Concat(p.InConstruct, p.NotInConstruct) {
		if !s.constructs[name] {
			return fmt.Errorf("%w: %q in pattern for %q", ErrUnknownConstruct, name, p.Character)
		}
	}
	return nil
}

// Serialize returns the Markdown for node, ending in a line ending.
func (s *Serializer) Serialize(node *mdast.Node) (string, error) {
	state := &State{serializer: s}
	out, err := state.Handle(node, nil, Info{Before: "\n", After: "\n", Now: Point{Line: 1, Column: 1}})
	if err != nil {
		return "", err
	}
	if out != "" && out[len(out)-1] != '\n' && out[len(out)-1] != '\r' {
		out += "\n"
	}
	return out, nil
}

// State is the per-call serialization state passed to handlers.
type State struct {
	serializer *Serializer
	stack      []ConstructName
	indexStack []int

	bulletCurrent  string
	bulletLastUsed string
}

// Options returns the resolved serializer options.
func (s *State) Options() Options {
	return s.serializer.options
}

// Stack returns a copy of the construct stack, innermost last.
func (s *State) Stack() []ConstructName {
	return slices.Clone(s.stack)
}

// Enter pushes a construct and returns the func that pops it. Callers
// should defer the returned func so the stack stays balanced on every
// return path.
func (s *State) Enter(name ConstructName) (exit func()) {
	s.stack = append(s.stack, name)
	depth := len(s.stack)
	return func() {
		s.stack = s.stack[:depth-1]
	}
}

// within runs fn inside construct name.
func (s *State) within(name ConstructName, fn func() (string, error)) (string, error) {
	exit := s.Enter(name)
	defer exit()
	return fn()
}

// isolate empties the construct stack until the returned func runs.
func (s *State) isolate() (restore func()) {
	saved := s.stack
	s.stack = nil
	return func() {
		s.stack = saved
	}
}

// Handle serializes node with the handler registered for its kind.
func (s *State) Handle(node, parent *mdast.Node, info Info) (string, error) {
	if node == nil {
		return "", ErrNilNode
	}
	var h Handler
	if node.Kind < mdast.KindCount {
		h = s.serializer.handlers[node.Kind]
	}
	if h.Handle == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownNode, node.Kind)
	}
	return h.Handle(node, parent, s, info)
}

// peek returns the first character node would serialize to.
func (s *State) peek(node, parent *mdast.Node, info Info) string {
	if node.Kind >= mdast.KindCount {
		return ""
	}
	h := s.serializer.handlers[node.Kind]
	if h.Peek != nil {
		return h.Peek(node, parent, s)
	}
	if h.Handle == nil {
		return ""
	}
	out, err := h.Handle(node, parent, s, info)
	if err != nil {
		return ""
	}
	return firstChar(out)
}
