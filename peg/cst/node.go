// Package cst builds concrete syntax trees from parses.
//
// A Builder is a peg.Listener. It creates a Node for every named rule that
// succeeds and discards everything produced by attempts that failed, so
// the tree only reflects the path the parser finally took.
package cst

import (
	"fmt"
	"strings"

	"github.com/dhamidi/peg/input"
)

// Node is a node in the concrete syntax tree. Nodes without children carry
// the text they matched.
type Node struct {
	Kind     string
	Children []*Node
	Span     input.Span
	Text     string
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// AddChild appends a child node and extends the span to cover it.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if len(n.Children) == 1 {
		n.Span.Start = child.Span.Start
	}
	n.Span.End = child.Span.End
}

// Walk visits n and its descendants depth first. Returning false from fn
// skips the children of the node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns all descendants of n, including n, with the given kind.
func (n *Node) Find(kind string) []*Node {
	var out []*Node
	n.Walk(func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

// String renders the tree with one node per line, indented by depth.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	fmt.Fprintf(sb, "%s%s %d:%d-%d:%d", strings.Repeat("  ", depth), n.Kind,
		n.Span.Start.Line, n.Span.Start.Column, n.Span.End.Line, n.Span.End.Column)
	if n.IsLeaf() {
		fmt.Fprintf(sb, " %q", n.Text)
	}
	sb.WriteByte('\n')
	for _, c := range n.Children {
		c.write(sb, depth+1)
	}
}
