package frommd

import (
	"errors"
	"fmt"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

// Sentinel errors for tree construction.
var (
	ErrUnbalancedToken = errors.New("unbalanced token")
	ErrNilToken        = errors.New("event without token")
)

// Handle reacts to one token event, usually by pushing or popping a node.
type Handle func(c *Context, t *Token) error

// Extension adds constructs to the compiler.
type Extension struct {
	// CanContainEols lists node kinds in which soft line endings are kept
	// as "\n" in text. Line endings anywhere else are dropped.
	CanContainEols []mdast.Kind
	Enter          map[string]Handle
	Exit           map[string]Handle
}

// Compiler turns event streams into trees. It is immutable once built and
// safe for concurrent use.
type Compiler struct {
	canContainEols [mdast.KindCount]bool
	enter          map[string]Handle
	exit           map[string]Handle
	positions      bool
}

// Option configures a Compiler.
type Option func(*compilerOptions)

type compilerOptions struct {
	extensions []Extension
	positions  bool
}

// WithExtensions registers extensions, applied after the defaults in order.
// Later registrations override earlier handlers for the same token type.
func WithExtensions(exts ...Extension) Option {
	return func(o *compilerOptions) {
		o.extensions = append(o.extensions, exts...)
	}
}

// WithPositions controls whether nodes record their source span.
func WithPositions(on bool) Option {
	return func(o *compilerOptions) {
		o.positions = on
	}
}

// New builds a Compiler with the default CommonMark handlers plus any
// extensions.
func New(opts ...Option) *Compiler {
	o := compilerOptions{positions: true}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Compiler{
		enter:     make(map[string]Handle),
		exit:      make(map[string]Handle),
		positions: o.positions,
	}
	c.configure(defaultExtension())
	for _, ext := range o.extensions {
		c.configure(ext)
	}
	return c
}

func (c *Compiler) configure(ext Extension) {
	for _, k := range ext.CanContainEols {
		if k < mdast.KindCount {
			c.canContainEols[k] = true
		}
	}
	for typ, h := range ext.Enter {
		c.enter[typ] = h
	}
	for typ, h := range ext.Exit {
		c.exit[typ] = h
	}
}

// CanContainEols reports whether line endings are kept inside kind.
func (c *Compiler) CanContainEols(kind mdast.Kind) bool {
	return kind < mdast.KindCount && c.canContainEols[kind]
}

// Compile runs events through the handlers and returns the root node.
// Tokens without a registered handler are skipped, so their content lands
// in the enclosing node.
func (c *Compiler) Compile(events []Event) (*mdast.Node, error) {
	root := &mdast.Node{Kind: mdast.KindRoot}
	ctx := &Context{compiler: c, stack: []*mdast.Node{root}}

	for _, ev := range events {
		t := ev.Token
		if t == nil {
			return nil, ErrNilToken
		}

		var h Handle
		if ev.Kind == EnterEvent {
			h = c.enter[t.Type]
		} else {
			h = c.exit[t.Type]
		}
		if h == nil {
			continue
		}
		if err := h(ctx, t); err != nil {
			return nil, fmt.Errorf("%s %s at %d:%d: %w", ev.Kind, t.Type, t.Start.Line, t.Start.Column, err)
		}
	}

	if n := len(ctx.tokens); n > 0 {
		return nil, fmt.Errorf("%w: %s is never closed", ErrUnbalancedToken, ctx.tokens[n-1].Type)
	}

	if c.positions && len(events) > 0 {
		root.Position = &mdast.Position{
			Start: mdast.Point{Line: 1, Column: 1, Offset: 0},
			End:   events[len(events)-1].Token.End,
		}
	}
	return root, nil
}

// Context is the construction state handed to handlers.
type Context struct {
	compiler *Compiler
	stack    []*mdast.Node
	tokens   []*Token
}

// Current returns the node new children are attached to.
func (c *Context) Current() *mdast.Node {
	return c.stack[len(c.stack)-1]
}

// CanContainEols reports whether the current node keeps line endings.
func (c *Context) CanContainEols() bool {
	return c.compiler.CanContainEols(c.Current().Kind)
}

// Enter attaches n to the current node and makes it current.
func (c *Context) Enter(n *mdast.Node, t *Token) {
	c.Current().Append(n)
	c.stack = append(c.stack, n)
	c.tokens = append(c.tokens, t)
	if c.compiler.positions {
		n.Position = &mdast.Position{Start: t.Start, End: t.End}
	}
}

// Exit closes the node opened for a token of the same type and returns it.
func (c *Context) Exit(t *Token) (*mdast.Node, error) {
	n := len(c.tokens)
	if n == 0 {
		return nil, fmt.Errorf("%w: exit %s without enter", ErrUnbalancedToken, t.Type)
	}
	if open := c.tokens[n-1]; open.Type != t.Type {
		return nil, fmt.Errorf("%w: exit %s while %s is open", ErrUnbalancedToken, t.Type, open.Type)
	}

	node := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.tokens = c.tokens[:n-1]
	if node.Position != nil {
		node.Position.End = t.End
	}
	return node, nil
}
