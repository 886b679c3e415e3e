package peg

type mustRule struct {
	rule Rule
}

// Must matches each of its rules in turn and converts a local failure of
// any of them into a global failure positioned where that rule started.
// Successes and global failures pass through unchanged.
func Must(rules ...Rule) Rule {
	if len(rules) == 1 {
		return &mustRule{rule: rules[0]}
	}
	musts := make([]Rule, len(rules))
	for i, r := range rules {
		musts[i] = &mustRule{rule: r}
	}
	return &seqRule{rules: musts}
}

func (r *mustRule) Match(c *Context) Result {
	m := c.in.Mark()
	switch res := c.Match(r.rule); res {
	case LocalFailure:
		return c.Raisef(r.rule, m, "parse error matching %s", r.rule)
	default:
		return res
	}
}

func (r *mustRule) String() string { return describe("must", r.rule) }

// IfMust matches cond and then commits to rules: once cond has matched,
// failing to match rules is a global failure.
func IfMust(cond Rule, rules ...Rule) Rule {
	return Seq(cond, Must(rules...))
}

// IfMustElse matches then if cond matches and els otherwise. Both branches
// are committed.
func IfMustElse(cond, then, els Rule) Rule {
	return IfThenElse(cond, Must(then), Must(els))
}

// OptMust is an optional IfMust: if cond does not match the rule succeeds
// without consuming input.
func OptMust(cond Rule, rules ...Rule) Rule {
	return Opt(IfMust(cond, rules...))
}

// StarMust repeats IfMust until cond no longer matches.
func StarMust(cond Rule, rules ...Rule) Rule {
	return Star(IfMust(cond, rules...))
}

// ListMust matches r followed by any number of sep r pairs. Once a
// separator matched, the following r is mandatory.
func ListMust(r, sep Rule) Rule {
	return Seq(r, Star(sep, Must(r)))
}

type raiseRule struct {
	message string
}

// Raise always fails globally with message.
func Raise(message string) Rule {
	return &raiseRule{message: message}
}

func (r *raiseRule) Match(c *Context) Result {
	return c.Raise(r, c.in.Mark(), r.message)
}

func (r *raiseRule) String() string { return "raise(" + r.message + ")" }
