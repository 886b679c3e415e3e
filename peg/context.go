package peg

import (
	"fmt"

	"github.com/dhamidi/peg/input"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("peg")

// Rule is a matching strategy. Implementations must not keep state between
// calls to Match; everything that changes during a parse lives in the
// Context.
type Rule interface {
	// Match attempts the rule at the current cursor position.
	Match(c *Context) Result
	// String describes the rule for diagnostics.
	String() string
}

// Context is the per-parse state handed to every rule: the cursor, the
// action set, the optional listener and the first global failure.
type Context struct {
	in       *input.Cursor
	actions  Actions
	listener Listener
	full     bool

	// quiet counts enclosing lookaheads; actions only run when it is zero.
	quiet int
	err   *ParseError
}

// Option configures a parse.
type Option func(*Context)

// WithActions installs the actions invoked when named rules succeed.
func WithActions(actions Actions) Option {
	return func(c *Context) {
		c.actions = actions
	}
}

// WithListener installs a listener notified of every rule attempt.
func WithListener(l Listener) Option {
	return func(c *Context) {
		c.listener = l
	}
}

// WithFullMatch requires the grammar to consume the whole input. Trailing
// input after a successful match is reported as a ParseError.
func WithFullMatch() Option {
	return func(c *Context) {
		c.full = true
	}
}

// NewContext returns a context over in. Most callers use Parse instead.
func NewContext(in *input.Cursor, opts ...Option) *Context {
	c := &Context{in: in}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Input returns the cursor being parsed.
func (c *Context) Input() *input.Cursor {
	return c.in
}

// Err returns the error recorded by the first global failure, if any.
func (c *Context) Err() *ParseError {
	return c.err
}

// ActionsEnabled reports whether actions fire at this point of the parse.
// It is false while evaluating lookahead bodies.
func (c *Context) ActionsEnabled() bool {
	return c.quiet == 0
}

// Match runs r and reports the attempt to the listener. Combinators call
// their children through Match rather than calling Rule.Match directly.
func (c *Context) Match(r Rule) Result {
	if c.listener == nil {
		return r.Match(c)
	}
	begin := c.in.Mark()
	c.listener.Start(r, c)
	res := r.Match(c)
	switch res {
	case Success:
		c.listener.Success(r, begin, c)
	case LocalFailure:
		c.listener.Failure(r, begin, c)
	default:
		c.listener.Raise(r, begin, c)
	}
	return res
}

// Raise records a global failure for rule r at mark at and returns
// GlobalFailure. Only the first recorded failure is kept; later calls
// return GlobalFailure without overwriting it.
func (c *Context) Raise(r Rule, at input.Mark, message string) Result {
	return c.raise(r, at, message, nil)
}

// Raisef is Raise with a formatted message.
func (c *Context) Raisef(r Rule, at input.Mark, format string, args ...any) Result {
	return c.raise(r, at, fmt.Sprintf(format, args...), nil)
}

func (c *Context) raise(r Rule, at input.Mark, message string, cause error) Result {
	if c.err == nil {
		c.err = &ParseError{
			Position: c.in.PositionAt(at),
			Rule:     ruleName(r),
			Message:  message,
			Line:     string(c.in.LineAt(at)),
			Err:      cause,
		}
		log.Debugf("%s: %s", c.err.Position, message)
	}
	return GlobalFailure
}

func (c *Context) silently(f func() Result) Result {
	c.quiet++
	defer func() { c.quiet-- }()
	return f()
}

func (c *Context) loudly(f func() Result) Result {
	saved := c.quiet
	c.quiet = 0
	defer func() { c.quiet = saved }()
	return f()
}

func ruleName(r Rule) string {
	if r == nil {
		return ""
	}
	return r.String()
}
