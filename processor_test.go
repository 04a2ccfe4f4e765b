package mdstrike

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alnah/go-mdstrike/internal/mdast"
)

func newProcessor(t *testing.T, opts ...Option) *Processor {
	t.Helper()
	p, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "invalid emphasis marker",
			opts:    []Option{WithEmphasis('#')},
			wantErr: ErrInvalidOption,
		},
		{
			name:    "invalid fence marker",
			opts:    []Option{WithFence('=')},
			wantErr: ErrInvalidOption,
		},
		{
			name: "pattern with unknown construct",
			opts: []Option{WithSerializeExtensions(SerializeExtension{
				Unsafe: []UnsafePattern{{Character: "x", InConstruct: []ConstructName{"nope"}}},
			})},
			wantErr: ErrUnknownConstruct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProcessor_Reformat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  []Option
		input string
		want  string
	}{
		{
			name:  "strikethrough",
			input: "a ~~b~~ c.",
			want:  "a ~~b~~ c.\n",
		},
		{
			name:  "byte order mark and CRLF",
			input: "\ufeffa ~~b~~\r\n",
			want:  "a ~~b~~\n",
		},
		{
			name:  "literal tilde is escaped",
			input: "a \\~b\n",
			want:  "a \\~b\n",
		},
		{
			name:  "leftover tilde next to a span",
			input: "a ~~b~ c\n",
			want:  "a &#x7E;~~b~~ c\n",
		},
		{
			name:  "emphasis marker option",
			opts:  []Option{WithEmphasis('_')},
			input: "*a* ~~b~~\n",
			want:  "_a_ ~~b~~\n",
		},
		{
			name:  "without strikethrough tildes stay text",
			opts:  []Option{WithoutStrikethrough()},
			input: "a ~~b~~\n",
			want:  "a ~~b~~\n",
		},
		{
			name:  "empty document",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := newProcessor(t, tt.opts...)
			got, err := p.Reformat(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("Reformat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Reformat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProcessor_Parse(t *testing.T) {
	t.Parallel()

	t.Run("delete node", func(t *testing.T) {
		t.Parallel()
		root, err := newProcessor(t).Parse(context.Background(), "a ~~b~~ c.")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		want := `root[paragraph[text("a "),delete[text("b")],text(" c.")]]`
		if got := mdast.Dump(root); got != want {
			t.Errorf("Parse() = %s, want %s", got, want)
		}
		if root.Position == nil {
			t.Error("root has no position")
		}
	})

	t.Run("without strikethrough", func(t *testing.T) {
		t.Parallel()
		root, err := newProcessor(t, WithoutStrikethrough()).Parse(context.Background(), "a ~~b~~ c.")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		want := `root[paragraph[text("a ~~b~~ c.")]]`
		if got := mdast.Dump(root); got != want {
			t.Errorf("Parse() = %s, want %s", got, want)
		}
	})

	t.Run("positions off", func(t *testing.T) {
		t.Parallel()
		root, err := newProcessor(t, WithPositions(false)).Parse(context.Background(), "a ~~b~~ c.")
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		mdast.Walk(root, func(n *mdast.Node) bool {
			if n.Position != nil {
				t.Errorf("%s has position %+v", n.Kind, n.Position)
			}
			return true
		})
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := newProcessor(t).Parse(ctx, "a")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Parse() error = %v, want context.Canceled", err)
		}
	})
}

func TestProcessor_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		node    *Node
		want    string
		wantErr error
	}{
		{
			name: "delete",
			node: mdast.Root(mdast.Paragraph(mdast.Text("a "), mdast.Delete(mdast.Text("b")))),
			want: "a ~~b~~\n",
		},
		{
			name:    "nil node",
			wantErr: ErrNilNode,
		},
		{
			name:    "delete without strikethrough",
			opts:    []Option{WithoutStrikethrough()},
			node:    mdast.Root(mdast.Paragraph(mdast.Delete(mdast.Text("b")))),
			wantErr: ErrUnknownNode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := newProcessor(t, tt.opts...).Format(context.Background(), tt.node)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) || !errors.Is(err, ErrFormat) {
					t.Errorf("Format() error = %v, want %v wrapped in ErrFormat", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessor_Check(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"formatted", "a ~~b~~ c.\n", false},
		{"missing final line ending", "a ~~b~~ c.", true},
		{"underscore emphasis", "_a_\n", true},
		{"empty", "", false},
	}

	p := newProcessor(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := p.Check(context.Background(), tt.input)
			if tt.wantErr && !errors.Is(err, ErrNotFormatted) {
				t.Errorf("Check(%q) error = %v, want ErrNotFormatted", tt.input, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Check(%q) unexpected error: %v", tt.input, err)
			}
		})
	}
}

func TestProcessor_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	t.Run("equivalent output", func(t *testing.T) {
		t.Parallel()
		inputs := []string{
			"_a_ ~~b~~\n",
			"# ~~title~~\n\n- one\n- ~~two~~\n",
			"[x](~a \"t\") and a \\~ tilde\n",
			"a ~~b~ c\n",
			"a ~b~~ c\n",
		}
		p := newProcessor(t)
		for _, in := range inputs {
			if err := p.VerifyRoundTrip(context.Background(), in); err != nil {
				t.Errorf("VerifyRoundTrip(%q) error = %v", in, err)
			}
		}
	})

	t.Run("lossy handler is detected", func(t *testing.T) {
		t.Parallel()
		drop := SerializeExtension{Handlers: map[Kind]Handler{
			KindDelete: {Handle: func(_, _ *Node, _ *SerializeState, _ Info) (string, error) {
				return "", nil
			}},
		}}
		p := newProcessor(t, WithSerializeExtensions(drop))
		err := p.VerifyRoundTrip(context.Background(), "a ~~b~~\n")
		if !errors.Is(err, ErrRoundTrip) {
			t.Errorf("VerifyRoundTrip() error = %v, want ErrRoundTrip", err)
		}
	})
}

func TestProcessor_Concurrent(t *testing.T) {
	t.Parallel()

	p := newProcessor(t)
	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := p.Reformat(context.Background(), "*a* ~~b~~\n")
			if err != nil {
				errs <- err
				return
			}
			if out != "*a* ~~b~~\n" {
				errs <- errors.New("unexpected output " + out)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestFirstDifference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b      string
		line, col int
	}{
		{"abc", "abd", 1, 3},
		{"a\nbc", "a\nbd", 2, 2},
		{"a", "a\n", 1, 2},
		{"", "x", 1, 1},
	}
	for _, tt := range tests {
		line, col := firstDifference(tt.a, tt.b)
		if line != tt.line || col != tt.col {
			t.Errorf("firstDifference(%q, %q) = %d:%d, want %d:%d", tt.a, tt.b, line, col, tt.line, tt.col)
		}
	}
}
