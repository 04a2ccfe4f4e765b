package pipeline

import "testing"

func TestNormalizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "whitespace between blocks dropped",
			input: "<p>a</p>\n\n<p>b</p>\n",
			want:  "<p>a</p><p>b</p>",
		},
		{
			name:  "whitespace runs collapse",
			input: "<p>a\n   b</p>",
			want:  "<p>a b</p>",
		},
		{
			name:  "space between inline elements kept",
			input: "<p>a <em>b</em> <del>c</del></p>",
			want:  "<p>a <em>b</em> <del>c</del></p>",
		},
		{
			name:  "attributes sorted",
			input: `<a title="t" href="u">x</a>`,
			want:  `<a href="u" title="t">x</a>`,
		},
		{
			name:  "pre keeps whitespace",
			input: "<pre><code>a\n  b\n</code></pre>",
			want:  "<pre><code>a\n  b\n</code></pre>",
		},
		{
			name:  "list items",
			input: "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n",
			want:  "<ul><li>a</li><li>b</li></ul>",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeHTML(tt.input)
			if err != nil {
				t.Fatalf("NormalizeHTML() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NormalizeHTML(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeHTML_EquivalentRenderings(t *testing.T) {
	t.Parallel()

	a, err := NormalizeHTML("<p id=\"x\" class=\"y\">one\ntwo</p>\n")
	if err != nil {
		t.Fatal(err)
	}
	b, err := NormalizeHTML("<p class=\"y\" id=\"x\">one two</p>")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("normalized forms differ: %q vs %q", a, b)
	}
}
