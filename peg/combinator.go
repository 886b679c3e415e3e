package peg

import (
	"fmt"
	"strings"
)

func describe(name string, rules ...Rule) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = ruleName(r)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

// group turns a rule list into a single rule: the rule itself when there is
// exactly one, a sequence otherwise.
func group(rules []Rule) Rule {
	if len(rules) == 1 {
		return rules[0]
	}
	return &seqRule{rules: rules}
}

type seqRule struct {
	rules []Rule
}

// Seq matches rules one after another. The first failure is returned as is;
// input consumed by earlier rules is not given back by Seq itself.
func Seq(rules ...Rule) Rule {
	return &seqRule{rules: rules}
}

func (r *seqRule) Match(c *Context) Result {
	for _, sub := range r.rules {
		if res := c.Match(sub); res != Success {
			return res
		}
	}
	return Success
}

func (r *seqRule) String() string { return describe("seq", r.rules...) }

type sorRule struct {
	rules []Rule
}

// Sor tries rules in order and returns the first success. Each alternative
// starts from the position Sor was entered at. A global failure stops the
// search.
func Sor(rules ...Rule) Rule {
	return &sorRule{rules: rules}
}

func (r *sorRule) Match(c *Context) Result {
	m := c.in.Mark()
	for _, sub := range r.rules {
		switch c.Match(sub) {
		case Success:
			return Success
		case GlobalFailure:
			return GlobalFailure
		}
		c.in.Rewind(m)
	}
	return LocalFailure
}

func (r *sorRule) String() string { return describe("sor", r.rules...) }

type starRule struct {
	rule Rule
}

// Star matches its rules, as a sequence, zero or more times. It always
// succeeds unless an iteration fails globally. An iteration that succeeds
// without consuming input ends the repetition.
func Star(rules ...Rule) Rule {
	return &starRule{rule: group(rules)}
}

func (r *starRule) Match(c *Context) Result {
	for {
		m := c.in.Mark()
		switch c.Match(r.rule) {
		case GlobalFailure:
			return GlobalFailure
		case LocalFailure:
			c.in.Rewind(m)
			return Success
		}
		if c.in.Offset() == m.Offset {
			log.Debugf("%s: %s matched empty input, stopping repetition", c.in.Position(), r)
			return Success
		}
	}
}

func (r *starRule) String() string { return describe("star", r.rule) }

// Plus matches its rules one or more times.
func Plus(rules ...Rule) Rule {
	body := group(rules)
	return &repRule{rule: body, min: 1, max: -1}
}

type optRule struct {
	rule Rule
}

// Opt matches its rules as a sequence if possible and succeeds either way.
func Opt(rules ...Rule) Rule {
	return &optRule{rule: group(rules)}
}

func (r *optRule) Match(c *Context) Result {
	m := c.in.Mark()
	switch c.Match(r.rule) {
	case GlobalFailure:
		return GlobalFailure
	case LocalFailure:
		c.in.Rewind(m)
	}
	return Success
}

func (r *optRule) String() string { return describe("opt", r.rule) }

type repRule struct {
	rule     Rule
	min, max int
	exact    bool
}

// Counts below zero are treated as zero; a negative max would otherwise
// mean unbounded.
func count(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// Rep matches its rules exactly n times in a row.
func Rep(n int, rules ...Rule) Rule {
	n = count(n)
	return &repRule{rule: group(rules), min: n, max: n}
}

// RepMin matches its rules at least min times.
func RepMin(min int, rules ...Rule) Rule {
	return &repRule{rule: group(rules), min: count(min), max: -1}
}

// RepMinMax matches its rules between min and max times and fails if the
// rules would match yet again after max repetitions.
func RepMinMax(min, max int, rules ...Rule) Rule {
	return &repRule{rule: group(rules), min: count(min), max: count(max), exact: true}
}

// RepOpt matches its rules up to max times.
func RepOpt(max int, rules ...Rule) Rule {
	return &repRule{rule: group(rules), min: 0, max: count(max)}
}

func (r *repRule) Match(c *Context) Result {
	start := c.in.Mark()
	n := 0
	for r.max < 0 || n < r.max {
		m := c.in.Mark()
		res := c.Match(r.rule)
		if res == GlobalFailure {
			return GlobalFailure
		}
		if res == LocalFailure {
			c.in.Rewind(m)
			break
		}
		n++
		if c.in.Offset() == m.Offset && n >= r.min {
			log.Debugf("%s: %s matched empty input, stopping repetition", c.in.Position(), r)
			break
		}
	}
	if n < r.min {
		c.in.Rewind(start)
		return LocalFailure
	}
	if r.exact && n == r.max {
		m := c.in.Mark()
		res := c.silently(func() Result { return c.Match(r.rule) })
		c.in.Rewind(m)
		switch res {
		case GlobalFailure:
			return GlobalFailure
		case Success:
			c.in.Rewind(start)
			return LocalFailure
		}
	}
	return Success
}

func (r *repRule) String() string {
	switch {
	case r.max < 0 && r.min == 1:
		return describe("plus", r.rule)
	case r.max < 0:
		return describe(fmt.Sprintf("rep_min<%d>", r.min), r.rule)
	case r.exact:
		return describe(fmt.Sprintf("rep_min_max<%d,%d>", r.min, r.max), r.rule)
	case r.min == r.max:
		return describe(fmt.Sprintf("rep<%d>", r.min), r.rule)
	default:
		return describe(fmt.Sprintf("rep_opt<%d>", r.max), r.rule)
	}
}

type atRule struct {
	rule   Rule
	negate bool
}

// At succeeds if its rules match, but never consumes input. Actions do not
// fire inside the lookahead.
func At(rules ...Rule) Rule {
	return &atRule{rule: group(rules)}
}

// NotAt succeeds if its rules do not match, and never consumes input.
// A global failure inside the lookahead is not negated.
func NotAt(rules ...Rule) Rule {
	return &atRule{rule: group(rules), negate: true}
}

func (r *atRule) Match(c *Context) Result {
	m := c.in.Mark()
	res := c.silently(func() Result { return c.Match(r.rule) })
	c.in.Rewind(m)
	if res == GlobalFailure {
		return GlobalFailure
	}
	return boolResult((res == Success) != r.negate)
}

func (r *atRule) String() string {
	if r.negate {
		return describe("not_at", r.rule)
	}
	return describe("at", r.rule)
}

type ifThenElseRule struct {
	cond, then, els Rule
}

// IfThenElse matches cond followed by then, or else when cond does not
// match. A failure of then after cond matched is not retried with else.
func IfThenElse(cond, then, els Rule) Rule {
	return &ifThenElseRule{cond: cond, then: then, els: els}
}

func (r *ifThenElseRule) Match(c *Context) Result {
	m := c.in.Mark()
	switch c.Match(r.cond) {
	case Success:
		return c.Match(r.then)
	case GlobalFailure:
		return GlobalFailure
	}
	c.in.Rewind(m)
	return c.Match(r.els)
}

func (r *ifThenElseRule) String() string {
	return describe("if_then_else", r.cond, r.then, r.els)
}

type untilRule struct {
	cond Rule
	body Rule
}

// Until consumes body repeatedly until cond matches, then consumes cond.
// Without body rules, any single byte is skipped per iteration.
func Until(cond Rule, body ...Rule) Rule {
	r := &untilRule{cond: cond, body: Any()}
	if len(body) > 0 {
		r.body = group(body)
	}
	return r
}

func (r *untilRule) Match(c *Context) Result {
	start := c.in.Mark()
	for {
		m := c.in.Mark()
		switch c.Match(r.cond) {
		case Success:
			return Success
		case GlobalFailure:
			return GlobalFailure
		}
		c.in.Rewind(m)
		switch c.Match(r.body) {
		case GlobalFailure:
			return GlobalFailure
		case LocalFailure:
			c.in.Rewind(start)
			return LocalFailure
		}
		if c.in.Offset() == m.Offset {
			c.in.Rewind(start)
			return LocalFailure
		}
	}
}

func (r *untilRule) String() string { return describe("until", r.cond, r.body) }

// Pad matches r surrounded by any number of pad.
func Pad(r, pad Rule) Rule {
	return Seq(Star(pad), r, Star(pad))
}

// List matches one or more r separated by sep. A trailing separator is
// left unconsumed.
func List(r, sep Rule) Rule {
	return Seq(r, Star(sep, r))
}

// ListTail is List that also accepts one trailing separator.
func ListTail(r, sep Rule) Rule {
	return Seq(List(r, sep), Opt(sep))
}

type enableRule struct {
	rule   Rule
	enable bool
}

// Disable matches its rules with actions turned off.
func Disable(rules ...Rule) Rule {
	return &enableRule{rule: group(rules)}
}

// Enable matches its rules with actions turned on, even inside a
// lookahead or Disable.
func Enable(rules ...Rule) Rule {
	return &enableRule{rule: group(rules), enable: true}
}

func (r *enableRule) Match(c *Context) Result {
	if r.enable {
		return c.loudly(func() Result { return c.Match(r.rule) })
	}
	return c.silently(func() Result { return c.Match(r.rule) })
}

func (r *enableRule) String() string {
	if r.enable {
		return describe("enable", r.rule)
	}
	return describe("disable", r.rule)
}
