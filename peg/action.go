package peg

import (
	"github.com/dhamidi/peg/input"
)

// Action is invoked when the named rule it is registered for succeeds.
// Returning an error aborts the parse with a ParseError wrapping it.
type Action func(m *Matched) error

// Actions maps rule names to actions. A missing entry means no action.
type Actions map[string]Action

func (a Actions) lookup(name string) Action {
	if a == nil {
		return nil
	}
	return a[name]
}

// Matched describes a successful match of a named rule.
type Matched struct {
	Rule  string
	Begin input.Mark
	End   input.Mark

	in *input.Cursor
}

// Bytes returns the matched input. The slice must not be modified.
func (m *Matched) Bytes() []byte {
	return m.in.Slice(m.Begin, m.End)
}

// Text returns the matched input as a string.
func (m *Matched) Text() string {
	return string(m.Bytes())
}

// Span returns the positions of the match.
func (m *Matched) Span() input.Span {
	return input.Span{Start: m.in.PositionAt(m.Begin), End: m.in.PositionAt(m.End)}
}

// Input returns the cursor, positioned at the end of the match.
func (m *Matched) Input() *input.Cursor {
	return m.in
}

// Listener observes every rule attempt made through Context.Match. It is
// the hook for tracing and tree building. Success is called after the
// action of a named rule has run.
type Listener interface {
	Start(r Rule, c *Context)
	Success(r Rule, begin input.Mark, c *Context)
	Failure(r Rule, begin input.Mark, c *Context)
	Raise(r Rule, begin input.Mark, c *Context)
}

// Listeners fans events out to several listeners in order.
type Listeners []Listener

func (ls Listeners) Start(r Rule, c *Context) {
	for _, l := range ls {
		l.Start(r, c)
	}
}

func (ls Listeners) Success(r Rule, begin input.Mark, c *Context) {
	for _, l := range ls {
		l.Success(r, begin, c)
	}
}

func (ls Listeners) Failure(r Rule, begin input.Mark, c *Context) {
	for _, l := range ls {
		l.Failure(r, begin, c)
	}
}

func (ls Listeners) Raise(r Rule, begin input.Mark, c *Context) {
	for _, l := range ls {
		l.Raise(r, begin, c)
	}
}

// NamedRule gives a rule an identity. Actions are looked up by the name
// and tree builders create nodes for named rules only.
type NamedRule struct {
	name string
	rule Rule
}

// Named wraps r with a name.
func Named(name string, r Rule) *NamedRule {
	return &NamedRule{name: name, rule: r}
}

// Name returns the rule name.
func (n *NamedRule) Name() string {
	return n.name
}

// Body returns the wrapped rule.
func (n *NamedRule) Body() Rule {
	return n.rule
}

func (n *NamedRule) Match(c *Context) Result {
	begin := c.in.Mark()
	res := c.Match(n.rule)
	if res != Success || !c.ActionsEnabled() {
		return res
	}
	action := c.actions.lookup(n.name)
	if action == nil {
		return Success
	}
	m := &Matched{Rule: n.name, Begin: begin, End: c.in.Mark(), in: c.in}
	if err := action(m); err != nil {
		return c.raise(n, begin, err.Error(), err)
	}
	return Success
}

func (n *NamedRule) String() string {
	return n.name
}
