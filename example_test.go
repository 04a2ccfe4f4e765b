package mdstrike_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/alnah/go-mdstrike"
)

// Example demonstrates reformatting a document with strikethrough.
func Example() {
	p, err := mdstrike.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	out, err := p.Reformat(context.Background(), "Price: ~~$10~~ _$8_, a~b")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Print(out)
	// Output: Price: ~~$10~~ *$8*, a\~b
}

// Example_check demonstrates detecting unformatted input.
func Example_check() {
	p, err := mdstrike.New(mdstrike.WithEmphasis('_'))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	err = p.Check(context.Background(), "*a* ~~b~~\n")
	fmt.Println(errors.Is(err, mdstrike.ErrNotFormatted))
	// Output: true
}

// Example_tree demonstrates walking a parsed tree.
func Example_tree() {
	p, err := mdstrike.New()
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	root, err := p.Parse(context.Background(), "a ~~b~~ c.")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, n := range root.Children[0].Children {
		fmt.Println(n.Kind)
	}
	// Output:
	// text
	// delete
	// text
}
