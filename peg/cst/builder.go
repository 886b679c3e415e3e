package cst

import (
	"github.com/dhamidi/peg/input"
	"github.com/dhamidi/peg/peg"
)

// RootKind is the kind of the synthetic node returned by Builder.Root when
// the parse produced more than one top-level node.
const RootKind = "root"

// Builder collects a tree while a parse runs. Nodes are only built where
// actions are enabled, so lookaheads and Disable leave no trace in the
// tree.
type Builder struct {
	frames [][]*Node
	keep   map[string]bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithRules restricts node creation to the named rules. Children of
// skipped rules are attached to the nearest kept ancestor.
func WithRules(names ...string) Option {
	return func(b *Builder) {
		b.keep = make(map[string]bool, len(names))
		for _, name := range names {
			b.keep[name] = true
		}
	}
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{frames: make([][]*Node, 1)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Builder) keeps(name string) bool {
	return b.keep == nil || b.keep[name]
}

func (b *Builder) push() {
	b.frames = append(b.frames, nil)
}

func (b *Builder) pop() []*Node {
	top := b.frames[len(b.frames)-1]
	b.frames = b.frames[:len(b.frames)-1]
	return top
}

func (b *Builder) add(nodes ...*Node) {
	i := len(b.frames) - 1
	b.frames[i] = append(b.frames[i], nodes...)
}

func (b *Builder) Start(r peg.Rule, c *peg.Context) {
	b.push()
}

func (b *Builder) Success(r peg.Rule, begin input.Mark, c *peg.Context) {
	children := b.pop()
	if !c.ActionsEnabled() {
		return
	}
	named, ok := r.(*peg.NamedRule)
	if !ok || !b.keeps(named.Name()) {
		b.add(children...)
		return
	}
	in := c.Input()
	node := &Node{
		Kind:     named.Name(),
		Children: children,
		Span:     in.Span(begin),
	}
	if len(children) == 0 {
		node.Text = string(in.Slice(begin, in.Mark()))
	}
	b.add(node)
}

func (b *Builder) Failure(r peg.Rule, begin input.Mark, c *peg.Context) {
	b.pop()
}

func (b *Builder) Raise(r peg.Rule, begin input.Mark, c *peg.Context) {
	b.pop()
}

// Nodes returns the top-level nodes built so far.
func (b *Builder) Nodes() []*Node {
	return b.frames[0]
}

// Root returns the single top-level node, or a RootKind node holding all
// top-level nodes. It returns nil if nothing was built.
func (b *Builder) Root() *Node {
	nodes := b.Nodes()
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	}
	root := &Node{Kind: RootKind}
	for _, n := range nodes {
		root.AddChild(n)
	}
	return root
}

// Parse runs r over in with a fresh Builder and returns the tree together
// with the outcome of peg.Parse. Additional parse options, such as
// actions, may be passed in opts.
func Parse(r peg.Rule, in *input.Cursor, opts ...peg.Option) (*Node, bool, error) {
	b := NewBuilder()
	ok, err := peg.Parse(r, in, append(opts, peg.WithListener(b))...)
	if !ok {
		return nil, ok, err
	}
	return b.Root(), true, nil
}
