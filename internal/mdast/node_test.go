package mdast

import "testing"

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want string
	}{
		{KindRoot, "root"},
		{KindDelete, "delete"},
		{KindLinkReference, "linkReference"},
		{KindCount, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind_IsPhrasing(t *testing.T) {
	t.Parallel()

	if !KindDelete.IsPhrasing() {
		t.Error("delete should be phrasing")
	}
	if KindParagraph.IsPhrasing() {
		t.Error("paragraph should not be phrasing")
	}
}

func TestToString(t *testing.T) {
	t.Parallel()

	tree := Paragraph(
		Text("a "),
		Delete(Text("b"), Emphasis(Text("c"))),
		Image("x.png", "", "alt"),
	)
	if got := ToString(tree); got != "a bcalt" {
		t.Errorf("ToString() = %q, want %q", got, "a bcalt")
	}
}

func TestRemovePosition(t *testing.T) {
	t.Parallel()

	tree := Paragraph(Text("a"))
	tree.Position = &Position{Start: Point{1, 1, 0}, End: Point{1, 2, 1}}
	tree.Children[0].Position = &Position{Start: Point{1, 1, 0}, End: Point{1, 2, 1}}

	RemovePosition(tree)

	Walk(tree, func(n *Node) bool {
		if n.Position != nil {
			t.Errorf("%s still has a position", n.Kind)
		}
		return true
	})
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a := Paragraph(Text("a "), Delete(Text("b")))
	b := Paragraph(Text("a "), Delete(Text("b")))
	if !Equal(a, b) {
		t.Errorf("Equal(%s, %s) = false", Dump(a), Dump(b))
	}

	c := Paragraph(Text("a "), Emphasis(Text("b")))
	if Equal(a, c) {
		t.Errorf("Equal(%s, %s) = true", Dump(a), Dump(c))
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	got := Dump(Paragraph(Text("a "), Delete(Text("b"))))
	want := `paragraph[text("a "),delete[text("b")]]`
	if got != want {
		t.Errorf("Dump() = %s, want %s", got, want)
	}
}
