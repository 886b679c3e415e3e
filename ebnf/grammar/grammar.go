// Package grammar compiles EBNF grammars, as understood by
// golang.org/x/exp/ebnf, into PEG grammars.
//
// Productions whose name starts with a lowercase letter are lexical: they
// are matched exactly as written. In all other productions the skip rule,
// white space by default, is matched before every token and before every
// reference to a lexical production.
//
// The translation is direct: alternatives become ordered choices, so the
// first alternative that matches wins even when a later one would match
// more input. Grammars written for longest-match tools may need their
// alternatives reordered.
package grammar

import (
	"fmt"
	"os"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/peg/peg"
	"golang.org/x/exp/ebnf"
)

// Grammar is a compiled EBNF grammar.
type Grammar struct {
	*peg.Grammar
	// Skip is matched between syntactic tokens.
	Skip peg.Rule
}

// Document matches the start production followed by trailing skip input
// and the end of input. Trailing garbage is a global failure.
func (g *Grammar) Document() peg.Rule {
	return peg.Seq(g.Grammar, g.Skip, peg.Must(peg.EOF()))
}

// Option configures compilation.
type Option func(*compiler)

// WithSkip replaces the default white space skipping rule. The rule is
// wrapped in a repetition.
func WithSkip(r peg.Rule) Option {
	return func(c *compiler) {
		c.skip = peg.Star(r)
	}
}

// WithoutSkip disables skipping; every production is treated as lexical.
func WithoutSkip() Option {
	return func(c *compiler) {
		c.skip = peg.Always()
	}
}

// WithoutVerify skips ebnf.Verify. Unreachable productions are then
// ignored instead of reported.
func WithoutVerify() Option {
	return func(c *compiler) {
		c.verify = false
	}
}

type compiler struct {
	src    ebnf.Grammar
	dst    *peg.Grammar
	skip   peg.Rule
	verify bool
}

// Load reads an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// CompileFile loads and compiles the grammar in filename.
func CompileFile(filename, start string, opts ...Option) (*Grammar, error) {
	src, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return Compile(src, start, opts...)
}

// Compile translates the productions reachable from start into a PEG
// grammar and checks the result.
func Compile(src ebnf.Grammar, start string, opts ...Option) (*Grammar, error) {
	c := &compiler{
		src:    src,
		dst:    peg.NewGrammar(start),
		skip:   peg.Star(peg.Space()),
		verify: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.verify {
		if err := ebnf.Verify(src, start); err != nil {
			return nil, fmt.Errorf("verify grammar: %w", err)
		}
	}
	if src[start] == nil {
		return nil, fmt.Errorf("start production %q not found in grammar", start)
	}

	for _, name := range reachable(src, start) {
		prod := src[name]
		if prod == nil {
			continue
		}
		c.dst.Define(name, c.expr(prod.Expr, IsLexical(name)))
	}

	if err := c.dst.Check(); err != nil {
		return nil, fmt.Errorf("check grammar: %w", err)
	}
	return &Grammar{Grammar: c.dst, Skip: c.skip}, nil
}

// FirstProduction returns the name of the production defined first in the
// source of g, or "" if g is empty.
func FirstProduction(g ebnf.Grammar) string {
	first := ""
	offset := -1
	for name, prod := range g {
		if off := prod.Pos().Offset; offset < 0 || off < offset {
			first, offset = name, off
		}
	}
	return first
}

// IsLexical reports whether a production name denotes a lexical
// production.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func (c *compiler) expr(x ebnf.Expression, lexical bool) peg.Rule {
	switch e := x.(type) {
	case nil:
		return peg.Always()

	case ebnf.Alternative:
		rules := make([]peg.Rule, len(e))
		for i, alt := range e {
			rules[i] = c.expr(alt, lexical)
		}
		return peg.Sor(rules...)

	case ebnf.Sequence:
		rules := make([]peg.Rule, len(e))
		for i, item := range e {
			rules[i] = c.expr(item, lexical)
		}
		return peg.Seq(rules...)

	case *ebnf.Group:
		return c.expr(e.Body, lexical)

	case *ebnf.Option:
		return peg.Opt(c.expr(e.Body, lexical))

	case *ebnf.Repetition:
		return peg.Star(c.expr(e.Body, lexical))

	case *ebnf.Token:
		return c.token(peg.Literal(e.String), lexical)

	case *ebnf.Range:
		return c.token(charRange(e.Begin.String, e.End.String), lexical)

	case *ebnf.Name:
		call := c.dst.Call(e.String)
		if IsLexical(e.String) {
			return c.token(call, lexical)
		}
		return call

	default:
		return peg.Raise(fmt.Sprintf("unsupported EBNF expression %T", x))
	}
}

func (c *compiler) token(r peg.Rule, lexical bool) peg.Rule {
	if lexical {
		return r
	}
	return peg.Seq(c.skip, r)
}

func charRange(begin, end string) peg.Rule {
	lo, _ := utf8.DecodeRuneInString(begin)
	hi, _ := utf8.DecodeRuneInString(end)
	if lo < utf8.RuneSelf && hi < utf8.RuneSelf {
		return peg.Range(byte(lo), byte(hi))
	}
	return peg.RuneRange(lo, hi)
}

// reachable returns the names of the productions reachable from start,
// sorted.
func reachable(src ebnf.Grammar, start string) []string {
	seen := map[string]bool{}
	var visit func(x ebnf.Expression)
	visit = func(x ebnf.Expression) {
		switch e := x.(type) {
		case ebnf.Alternative:
			for _, alt := range e {
				visit(alt)
			}
		case ebnf.Sequence:
			for _, item := range e {
				visit(item)
			}
		case *ebnf.Group:
			visit(e.Body)
		case *ebnf.Option:
			visit(e.Body)
		case *ebnf.Repetition:
			visit(e.Body)
		case *ebnf.Name:
			if seen[e.String] {
				return
			}
			seen[e.String] = true
			if prod := src[e.String]; prod != nil {
				visit(prod.Expr)
			}
		}
	}
	visit(&ebnf.Name{String: start})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
