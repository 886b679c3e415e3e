// Package trace logs the progress of a parse.
package trace

import (
	"strings"

	"github.com/dhamidi/peg/input"
	"github.com/dhamidi/peg/peg"
	"github.com/tliron/commonlog"
)

// Tracer is a peg.Listener that logs every rule start, success, failure
// and raise at debug level, indented by nesting depth.
type Tracer struct {
	log   commonlog.Logger
	all   bool
	depth int
	count int
}

// Option configures a Tracer.
type Option func(*Tracer)

// WithLogger sends trace output to log instead of the "peg.trace" logger.
func WithLogger(log commonlog.Logger) Option {
	return func(t *Tracer) {
		t.log = log
	}
}

// WithAllRules traces anonymous combinators as well as named rules.
func WithAllRules() Option {
	return func(t *Tracer) {
		t.all = true
	}
}

// New returns a Tracer logging to the "peg.trace" logger.
func New(opts ...Option) *Tracer {
	t := &Tracer{log: commonlog.GetLogger("peg.trace")}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Count returns the number of rule attempts traced so far.
func (t *Tracer) Count() int {
	return t.count
}

func (t *Tracer) traced(r peg.Rule) bool {
	if t.all {
		return true
	}
	_, ok := r.(*peg.NamedRule)
	return ok
}

func (t *Tracer) indent() string {
	return strings.Repeat("  ", t.depth)
}

func (t *Tracer) Start(r peg.Rule, c *peg.Context) {
	if !t.traced(r) {
		return
	}
	t.count++
	t.log.Debugf("%s#%d start %s at %s", t.indent(), t.count, r, c.Input().Position())
	t.depth++
}

func (t *Tracer) Success(r peg.Rule, begin input.Mark, c *peg.Context) {
	t.finish(r, "success", c)
}

func (t *Tracer) Failure(r peg.Rule, begin input.Mark, c *peg.Context) {
	t.finish(r, "failure", c)
}

func (t *Tracer) Raise(r peg.Rule, begin input.Mark, c *peg.Context) {
	t.finish(r, "raise", c)
}

func (t *Tracer) finish(r peg.Rule, outcome string, c *peg.Context) {
	if !t.traced(r) {
		return
	}
	t.depth--
	t.log.Debugf("%s%s %s at %s", t.indent(), outcome, r, c.Input().Position())
}
