package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdstrike/internal/yamlutil"
)

type markers struct {
	Emphasis string   `yaml:"emphasis"`
	Width    int      `yaml:"width"`
	Setext   bool     `yaml:"setext"`
	Ignore   []string `yaml:"ignore"`
}

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("emphasis: _\nwidth: 80\nsetext: true\nignore:\n  - vendor\n"),
			dest: &markers{},
			check: func(t *testing.T, v any) {
				m := v.(*markers)
				if m.Emphasis != "_" || m.Width != 80 || !m.Setext {
					t.Errorf("decoded = %+v", m)
				}
				if len(m.Ignore) != 1 || m.Ignore[0] != "vendor" {
					t.Errorf("Ignore = %v, want [vendor]", m.Ignore)
				}
			},
		},
		{
			name: "unknown fields ignored",
			data: []byte("emphasis: '*'\nitalics: _\n"),
			dest: &markers{},
			check: func(t *testing.T, v any) {
				if m := v.(*markers); m.Emphasis != "*" {
					t.Errorf("Emphasis = %q, want %q", m.Emphasis, "*")
				}
			},
		},
		{
			name:    "nil data",
			dest:    &markers{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &markers{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("emphasis: _"),
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, tt.dest)
		})
	}
}

func TestUnmarshal_SyntaxError(t *testing.T) {
	t.Parallel()

	err := yamlutil.Unmarshal([]byte("emphasis: [unclosed"), &markers{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want prefix 'yamlutil:'", err)
	}
}

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var m markers
	if err := yamlutil.UnmarshalStrict([]byte("emphasis: _\n"), &m); err != nil {
		t.Fatalf("known fields: unexpected error: %v", err)
	}
	if m.Emphasis != "_" {
		t.Errorf("Emphasis = %q, want %q", m.Emphasis, "_")
	}

	err := yamlutil.UnmarshalStrict([]byte("emphasis: _\nitalics: '*'\n"), &markers{})
	if err == nil {
		t.Fatal("unknown field: expected error, got nil")
	}
	if !strings.Contains(err.Error(), "italics") {
		t.Errorf("error = %q, want it to name the unknown field", err)
	}
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	data, err := yamlutil.Marshal(markers{Emphasis: "em", Width: 80, Ignore: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := string(data)
	for _, want := range []string{"emphasis: em", "width: 80", "setext: false", "ignore:\n  - a\n  - b"} {
		if !strings.Contains(got, want) {
			t.Errorf("Marshal() missing %q in:\n%s", want, got)
		}
	}

	var back markers
	if err := yamlutil.UnmarshalStrict(data, &back); err != nil {
		t.Fatalf("re-reading marshaled output: %v", err)
	}
	if back.Emphasis != "em" || back.Width != 80 || len(back.Ignore) != 2 {
		t.Errorf("re-read = %+v", back)
	}
}

// TestInputSizeLimit modifies the global MaxInputSize, so it does not run
// in parallel.
func TestInputSizeLimit(t *testing.T) {
	originalMax := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = originalMax })

	t.Run("input at limit succeeds", func(t *testing.T) {
		yamlutil.MaxInputSize = 100
		data := []byte("emphasis: _" + strings.Repeat(" ", 89))
		if err := yamlutil.Unmarshal(data, &markers{}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("input exceeding limit fails with sizes", func(t *testing.T) {
		yamlutil.MaxInputSize = 50
		data := []byte("emphasis: _" + strings.Repeat(" ", 89))
		err := yamlutil.UnmarshalStrict(data, &markers{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("error = %v, want ErrInputTooLarge", err)
		}
		if msg := err.Error(); !strings.Contains(msg, "100 bytes") || !strings.Contains(msg, "max 50") {
			t.Errorf("error = %q, want actual and max sizes", msg)
		}
	})
}
