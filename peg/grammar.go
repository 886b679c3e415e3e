package peg

import (
	"errors"
	"fmt"
	"sort"
)

// Grammar is a set of named rules that may reference each other by name.
// A Grammar is itself a Rule matching its start rule. Definitions must be
// complete before the first parse; afterwards the grammar is read-only and
// can be shared between goroutines.
type Grammar struct {
	// Start names the rule matched by Match.
	Start string

	defs  map[string]*NamedRule
	order []string
	calls map[string]int
	errs  []error
}

// NewGrammar returns an empty grammar starting at start.
func NewGrammar(start string) *Grammar {
	return &Grammar{
		Start: start,
		defs:  make(map[string]*NamedRule),
		calls: make(map[string]int),
	}
}

// Define adds the rule name. Redefining a name is an error reported by
// Check; the first definition is kept.
func (g *Grammar) Define(name string, r Rule) *NamedRule {
	if old, ok := g.defs[name]; ok {
		g.errs = append(g.errs, &GrammarError{Rule: name, Message: "already defined"})
		return old
	}
	def := Named(name, r)
	g.defs[name] = def
	g.order = append(g.order, name)
	return def
}

// Call returns a rule matching the definition called name. The definition
// may be added after the call is created.
func (g *Grammar) Call(name string) Rule {
	g.calls[name]++
	return &callRule{g: g, name: name}
}

// Lookup returns the definition called name, or nil.
func (g *Grammar) Lookup(name string) *NamedRule {
	return g.defs[name]
}

// Names returns rule names in definition order.
func (g *Grammar) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Match matches the start rule.
func (g *Grammar) Match(c *Context) Result {
	def := g.defs[g.Start]
	if def == nil {
		return c.Raisef(g, c.in.Mark(), "start rule %q is not defined", g.Start)
	}
	return c.Match(def)
}

func (g *Grammar) String() string {
	return g.Start
}

// Check verifies the grammar: the start rule exists, every called rule is
// defined, every defined rule is used, no rule is left recursive, and no
// repetition body can match the empty string. All problems are returned
// joined together.
func (g *Grammar) Check() error {
	errs := append([]error(nil), g.errs...)

	if g.Start == "" {
		errs = append(errs, &GrammarError{Message: "starting rule undefined"})
	} else if _, ok := g.defs[g.Start]; !ok {
		errs = append(errs, &GrammarError{Rule: g.Start, Message: "starting rule is missing"})
	}

	var missing []string
	for name := range g.calls {
		if _, ok := g.defs[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	for _, name := range missing {
		errs = append(errs, &GrammarError{Rule: name, Message: "called but not defined"})
	}

	for _, name := range g.order {
		if name != g.Start && g.calls[name] == 0 {
			errs = append(errs, &GrammarError{Rule: name, Message: "defined but never used"})
		}
	}

	a := analyze(g)
	errs = append(errs, a.errs...)

	return errors.Join(errs...)
}

// RuleInfo summarizes the analysis of one definition.
type RuleInfo struct {
	Name string
	// Nullable reports whether the rule can succeed without consuming input.
	Nullable bool
	// Calls lists the rules referenced anywhere in the definition.
	Calls []string
	// LeftCalls lists the rules that may be entered before any input is
	// consumed.
	LeftCalls []string
}

// Analyze returns per-rule information in definition order.
func (g *Grammar) Analyze() []RuleInfo {
	a := analyze(g)
	infos := make([]RuleInfo, 0, len(g.order))
	for _, name := range g.order {
		infos = append(infos, RuleInfo{
			Name:      name,
			Nullable:  a.nullable[name],
			Calls:     a.calls[name],
			LeftCalls: a.left[name],
		})
	}
	return infos
}

type callRule struct {
	g    *Grammar
	name string
}

func (r *callRule) Match(c *Context) Result {
	def := r.g.defs[r.name]
	if def == nil {
		return c.Raisef(r, c.in.Mark(), "rule %q is not defined", r.name)
	}
	return c.Match(def)
}

func (r *callRule) String() string {
	return fmt.Sprintf("call(%s)", r.name)
}
