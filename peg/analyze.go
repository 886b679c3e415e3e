package peg

import (
	"fmt"
	"sort"
	"strings"
)

type analysis struct {
	g        *Grammar
	nullable map[string]bool
	calls    map[string][]string
	left     map[string][]string
	errs     []error
}

func analyze(g *Grammar) *analysis {
	a := &analysis{
		g:        g,
		nullable: make(map[string]bool),
		calls:    make(map[string][]string),
		left:     make(map[string][]string),
	}

	for changed := true; changed; {
		changed = false
		for _, name := range g.order {
			if !a.nullable[name] && a.isNullable(g.defs[name].rule) {
				a.nullable[name] = true
				changed = true
			}
		}
	}

	for _, name := range g.order {
		body := g.defs[name].rule
		a.calls[name] = uniq(a.collectCalls(body, nil))
		a.left[name] = uniq(a.leftCalls(body, nil))
		a.checkLoops(name, body)
	}
	a.checkLeftRecursion()
	return a
}

func children(r Rule) []Rule {
	switch r := r.(type) {
	case *seqRule:
		return r.rules
	case *sorRule:
		return r.rules
	case *starRule:
		return []Rule{r.rule}
	case *optRule:
		return []Rule{r.rule}
	case *repRule:
		return []Rule{r.rule}
	case *atRule:
		return []Rule{r.rule}
	case *mustRule:
		return []Rule{r.rule}
	case *enableRule:
		return []Rule{r.rule}
	case *NamedRule:
		return []Rule{r.rule}
	case *ifThenElseRule:
		return []Rule{r.cond, r.then, r.els}
	case *untilRule:
		return []Rule{r.cond, r.body}
	}
	return nil
}

func (a *analysis) isNullable(r Rule) bool {
	switch r := r.(type) {
	case *literalRule:
		return len(r.s) == 0
	case eofRule, bolRule:
		return true
	case constRule:
		return r.ok
	case *seqRule:
		for _, sub := range r.rules {
			if !a.isNullable(sub) {
				return false
			}
		}
		return true
	case *sorRule:
		for _, sub := range r.rules {
			if a.isNullable(sub) {
				return true
			}
		}
		return false
	case *starRule, *optRule, *atRule:
		return true
	case *repRule:
		return r.min == 0 || a.isNullable(r.rule)
	case *ifThenElseRule:
		return (a.isNullable(r.cond) && a.isNullable(r.then)) || a.isNullable(r.els)
	case *untilRule:
		return a.isNullable(r.cond)
	case *mustRule, *enableRule, *NamedRule:
		return a.isNullable(children(r)[0])
	case *callRule:
		return a.nullable[r.name]
	}
	return false
}

func (a *analysis) collectCalls(r Rule, out []string) []string {
	if call, ok := r.(*callRule); ok {
		return append(out, call.name)
	}
	for _, sub := range children(r) {
		out = a.collectCalls(sub, out)
	}
	return out
}

// leftCalls appends the rules that r may call before consuming any input.
func (a *analysis) leftCalls(r Rule, out []string) []string {
	switch r := r.(type) {
	case *callRule:
		return append(out, r.name)
	case *seqRule:
		for _, sub := range r.rules {
			out = a.leftCalls(sub, out)
			if !a.isNullable(sub) {
				break
			}
		}
		return out
	case *ifThenElseRule:
		out = a.leftCalls(r.cond, out)
		if a.isNullable(r.cond) {
			out = a.leftCalls(r.then, out)
		}
		return a.leftCalls(r.els, out)
	}
	for _, sub := range children(r) {
		out = a.leftCalls(sub, out)
	}
	return out
}

func (a *analysis) checkLoops(name string, r Rule) {
	var body Rule
	switch r := r.(type) {
	case *starRule:
		body = r.rule
	case *repRule:
		if r.max < 0 {
			body = r.rule
		}
	case *untilRule:
		body = r.body
	}
	if body != nil && a.isNullable(body) {
		a.errs = append(a.errs, &GrammarError{
			Rule:    name,
			Message: fmt.Sprintf("%s can loop without consuming input", r),
		})
	}
	for _, sub := range children(r) {
		a.checkLoops(name, sub)
	}
}

func (a *analysis) checkLeftRecursion() {
	const (
		unvisited = iota
		active
		done
	)
	state := make(map[string]int)
	var stack []string

	var visit func(name string)
	visit = func(name string) {
		state[name] = active
		stack = append(stack, name)
		for _, next := range a.left[name] {
			if _, ok := a.g.defs[next]; !ok {
				continue
			}
			switch state[next] {
			case unvisited:
				visit(next)
			case active:
				i := len(stack) - 1
				for stack[i] != next {
					i--
				}
				cycle := append(append([]string(nil), stack[i:]...), next)
				a.errs = append(a.errs, &GrammarError{
					Rule:    next,
					Message: "left recursion: " + strings.Join(cycle, " -> "),
				})
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for _, name := range a.g.order {
		if state[name] == unvisited {
			visit(name)
		}
	}
}

func uniq(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)
	out := names[:1]
	for _, n := range names[1:] {
		if n != out[len(out)-1] {
			out = append(out, n)
		}
	}
	return out
}
