package peg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dhamidi/peg/input"
)

// verifyRule matches r against s and checks the outcome and, for
// successes, the number of bytes left over.
func verifyRule(t *testing.T, r Rule, s string, want Result, remain int) {
	t.Helper()
	in := input.FromString(s, "test")
	c := NewContext(in)
	got := c.Match(r)
	if got != want {
		t.Errorf("%s on %q: got %v, want %v", r, s, got, want)
		return
	}
	if want == Success && in.Size() != remain {
		t.Errorf("%s on %q: %d bytes remaining, want %d", r, s, in.Size(), remain)
	}
}

func TestLeafRules(t *testing.T) {
	tests := []struct {
		rule   Rule
		input  string
		want   Result
		remain int
	}{
		{One('a', 'b'), "b", Success, 0},
		{One('a', 'b'), "c", LocalFailure, 1},
		{One('a'), "", LocalFailure, 0},
		{NotOne('a'), "b", Success, 0},
		{NotOne('a'), "a", LocalFailure, 1},
		{NotOne('a'), "", LocalFailure, 0},
		{Range('0', '9'), "5x", Success, 1},
		{Range('0', '9'), "x5", LocalFailure, 2},
		{NotRange('0', '9'), "x", Success, 0},
		{Ranges('a', 'f', '0', '9', '_'), "_", Success, 0},
		{Ranges('a', 'f', '0', '9', '_'), "g", LocalFailure, 1},
		{Literal("abc"), "abcd", Success, 1},
		{Literal("abc"), "ab", LocalFailure, 2},
		{Literal("abc"), "abd", LocalFailure, 3},
		{ILiteral("select"), "SeLeCt 1", Success, 2},
		{Any(), "xy", Success, 1},
		{Any(), "", LocalFailure, 0},
		{AnyRune(), "é!", Success, 1},
		{AnyRune(), "\xff", LocalFailure, 1},
		{RuneRange('α', 'ω'), "λx", Success, 1},
		{RuneRange('α', 'ω'), "a", LocalFailure, 1},
		{EOF(), "", Success, 0},
		{EOF(), "a", LocalFailure, 1},
		{EOL(), "\r\nx", Success, 1},
		{EOL(), "\nx", Success, 1},
		{EOL(), "x", LocalFailure, 1},
		{BOL(), "x", Success, 1},
		{Always(), "x", Success, 1},
		{Never(), "x", LocalFailure, 1},
		{Alpha(), "Q", Success, 0},
		{Digit(), "a", LocalFailure, 1},
		{XDigit(), "F", Success, 0},
		{Alnum(), "7", Success, 0},
		{Space(), "\n", Success, 0},
		{Blank(), "\n", LocalFailure, 1},
		{Identifier(), "_foo1 bar", Success, 4},
		{Identifier(), "1foo", LocalFailure, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%q", tt.rule, tt.input), func(t *testing.T) {
			verifyRule(t, tt.rule, tt.input, tt.want, tt.remain)
		})
	}
}

func TestLeafRules_NoMovementOnFailure(t *testing.T) {
	rules := []Rule{One('x'), NotOne('a'), Range('x', 'z'), Literal("ab"), ILiteral("AB"), EOF(), EOL(), Digit()}
	for _, r := range rules {
		in := input.FromString("a", "")
		c := NewContext(in)
		if res := c.Match(r); res != LocalFailure {
			t.Fatalf("%s: got %v, want local failure", r, res)
		}
		if in.Offset() != 0 {
			t.Errorf("%s moved the cursor to %d on failure", r, in.Offset())
		}
	}
}

func TestSeq(t *testing.T) {
	a := Literal("ab")
	b := Literal("cd")
	verifyRule(t, Seq(a, b), "abcde", Success, 1)
	verifyRule(t, Seq(a, b), "abce", LocalFailure, 0)
	verifyRule(t, Seq(a, b), "cdab", LocalFailure, 0)
	verifyRule(t, Seq(), "x", Success, 1)

	// Seq does not give back the prefix it consumed.
	in := input.FromString("abx", "")
	c := NewContext(in)
	if res := c.Match(Seq(a, b)); res != LocalFailure {
		t.Fatalf("got %v, want local failure", res)
	}
	if in.Offset() != 2 {
		t.Errorf("offset after failed seq = %d, want 2", in.Offset())
	}
}

func TestSor(t *testing.T) {
	r := Sor(Literal("ab"), Literal("a"), Literal("c"))
	verifyRule(t, r, "ab", Success, 0)
	verifyRule(t, r, "ax", Success, 1)
	verifyRule(t, r, "c", Success, 0)
	verifyRule(t, r, "x", LocalFailure, 1)
	verifyRule(t, Sor(), "x", LocalFailure, 1)
}

type probeRule struct {
	offsets []int
}

func (p *probeRule) Match(c *Context) Result {
	p.offsets = append(p.offsets, c.Input().Offset())
	return LocalFailure
}

func (p *probeRule) String() string { return "probe" }

func TestSor_RewindsBeforeEachAlternative(t *testing.T) {
	probe := &probeRule{}
	r := Sor(Seq(Literal("ab"), Literal("x")), probe)

	in := input.FromString("abc", "")
	c := NewContext(in)
	if res := c.Match(r); res != LocalFailure {
		t.Fatalf("got %v, want local failure", res)
	}
	if len(probe.offsets) != 1 || probe.offsets[0] != 0 {
		t.Errorf("second alternative saw offsets %v, want [0]", probe.offsets)
	}
	if in.Offset() != 0 {
		t.Errorf("offset after failed sor = %d, want 0", in.Offset())
	}
}

func TestGlobalFailureIsNeverSwallowed(t *testing.T) {
	fatal := Must(Literal("x"))
	tests := []Rule{
		Sor(fatal, Always()),
		Star(fatal),
		Plus(fatal),
		Opt(fatal),
		At(fatal),
		NotAt(fatal),
		Rep(2, fatal),
		Until(Literal("z"), fatal),
		IfThenElse(fatal, Always(), Always()),
		Disable(fatal),
		Seq(Always(), fatal),
	}
	for _, r := range tests {
		t.Run(r.String(), func(t *testing.T) {
			verifyRule(t, r, "y", GlobalFailure, 0)
		})
	}
}

func TestStar(t *testing.T) {
	verifyRule(t, Star(One('a')), "aaab", Success, 1)
	verifyRule(t, Star(One('a')), "b", Success, 1)
	verifyRule(t, Star(One('a')), "", Success, 0)
	verifyRule(t, Star(One('a'), One('b')), "ababa", Success, 1)
}

func TestStar_ZeroWidthBodyTerminates(t *testing.T) {
	verifyRule(t, Star(Opt(One('x'))), "y", Success, 1)
	verifyRule(t, Star(Always()), "abc", Success, 3)
	verifyRule(t, Star(At(Any())), "abc", Success, 3)
	verifyRule(t, Plus(Opt(One('x'))), "xxy", Success, 1)
}

func TestRepetitions(t *testing.T) {
	a := One('a')
	verifyRule(t, Plus(a), "aab", Success, 1)
	verifyRule(t, Plus(a), "b", LocalFailure, 1)
	verifyRule(t, Opt(a), "b", Success, 1)
	verifyRule(t, Opt(a), "ab", Success, 1)
	verifyRule(t, Rep(2, a), "aaa", Success, 1)
	verifyRule(t, Rep(2, a), "ab", LocalFailure, 2)
	verifyRule(t, RepMin(2, a), "aaaa", Success, 0)
	verifyRule(t, RepMin(2, a), "a", LocalFailure, 1)
	verifyRule(t, RepMinMax(2, 3, a), "aab", Success, 1)
	verifyRule(t, RepMinMax(2, 3, a), "aaab", Success, 1)
	verifyRule(t, RepMinMax(2, 3, a), "aaaa", LocalFailure, 4)
	verifyRule(t, RepOpt(2, a), "aaaa", Success, 2)
	verifyRule(t, RepOpt(2, a), "b", Success, 1)
}

func TestRepetitions_NegativeCounts(t *testing.T) {
	a := One('a')
	verifyRule(t, Rep(-1, a), "aaaa", Success, 4)
	verifyRule(t, RepMin(-2, a), "b", Success, 1)
	verifyRule(t, RepOpt(-1, a), "aa", Success, 2)
	verifyRule(t, RepMinMax(0, -1, a), "a", LocalFailure, 1)
}

func TestLookahead(t *testing.T) {
	verifyRule(t, NotAt(EOF()), "", LocalFailure, 0)
	verifyRule(t, NotAt(EOF()), " ", Success, 1)
	verifyRule(t, NotAt(Any()), "", Success, 0)
	verifyRule(t, NotAt(Any()), "a", LocalFailure, 1)
	verifyRule(t, NotAt(Any()), "aaaa", LocalFailure, 4)
	verifyRule(t, At(Literal("ab")), "abc", Success, 3)
	verifyRule(t, At(Literal("ab")), "ac", LocalFailure, 2)
	verifyRule(t, At(Alpha(), Alpha()), "aa1", Success, 3)

	verifyRule(t, Must(NotAt(Alpha())), "a", GlobalFailure, 1)
	verifyRule(t, Must(NotAt(Alpha(), Alpha())), "aa1", GlobalFailure, 3)
}

func TestLookahead_NeverAdvances(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "b"} {
		for _, r := range []Rule{At(Literal("ab")), NotAt(Literal("ab"))} {
			in := input.FromString(s, "")
			NewContext(in).Match(r)
			if in.Offset() != 0 {
				t.Errorf("%s on %q advanced to %d", r, s, in.Offset())
			}
		}
	}
}

func TestMust(t *testing.T) {
	verifyRule(t, Must(Literal("x")), "x", Success, 0)
	verifyRule(t, Must(Literal("x")), "y", GlobalFailure, 0)
	verifyRule(t, Must(One('a'), One('b')), "ab", Success, 0)
	verifyRule(t, Must(One('a'), One('b')), "ac", GlobalFailure, 0)
	verifyRule(t, Must(Raise("boom")), "", GlobalFailure, 0)

	ok, err := ParseString(Must(Literal("x")), "y", "test")
	if ok {
		t.Fatal("must should not match")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if perr.Position.Offset != 0 || perr.Position.Line != 1 || perr.Position.Column != 1 {
		t.Errorf("error position = %+v, want offset 0 at 1:1", perr.Position)
	}
	if got, want := err.Error(), `test:1:1: parse error matching string("x")`; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestIfMust(t *testing.T) {
	r := IfMust(One('a'), One('b'))
	verifyRule(t, r, "ab", Success, 0)
	verifyRule(t, r, "x", LocalFailure, 1)
	verifyRule(t, r, "ax", GlobalFailure, 0)

	ife := IfMustElse(One('a'), One('b'), One('c'))
	verifyRule(t, ife, "ab", Success, 0)
	verifyRule(t, ife, "c", Success, 0)
	verifyRule(t, ife, "ac", GlobalFailure, 0)
	verifyRule(t, ife, "x", GlobalFailure, 0)

	ite := IfThenElse(One('a'), One('b'), One('c'))
	verifyRule(t, ite, "ac", LocalFailure, 0)
	verifyRule(t, ite, "c", Success, 0)

	verifyRule(t, OptMust(One('a'), One('b')), "x", Success, 1)
	verifyRule(t, OptMust(One('a'), One('b')), "ax", GlobalFailure, 0)
	verifyRule(t, StarMust(One('a'), One('b')), "ababx", Success, 1)
	verifyRule(t, StarMust(One('a'), One('b')), "abax", GlobalFailure, 0)
}

func TestLists(t *testing.T) {
	item := Range('a', 'z')
	comma := One(',')

	verifyRule(t, List(item, comma), "a,b,c", Success, 0)
	verifyRule(t, List(item, comma), "a,b,", Success, 1)
	verifyRule(t, List(item, comma), ",a", LocalFailure, 2)
	verifyRule(t, ListTail(item, comma), "a,b,", Success, 0)
	verifyRule(t, ListMust(item, comma), "a,b", Success, 0)
	verifyRule(t, ListMust(item, comma), "a,b,", GlobalFailure, 0)

	_, err := ParseString(ListMust(item, comma), "a,b,", "list")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if perr.Position.Offset != 4 {
		t.Errorf("error offset = %d, want 4", perr.Position.Offset)
	}
}

func TestUntilAndPad(t *testing.T) {
	verifyRule(t, Until(Literal("*/")), "abc*/x", Success, 1)
	verifyRule(t, Until(Literal("*/")), "abc", LocalFailure, 3)
	verifyRule(t, Until(One(';'), Digit()), "12;", Success, 0)
	verifyRule(t, Until(One(';'), Digit()), "1a;", LocalFailure, 3)
	verifyRule(t, Pad(Literal("x"), Blank()), "  x \ty", Success, 1)
}

func TestLineColumnTracking(t *testing.T) {
	in := input.FromString("ab\ncd", "test", input.WithEOL(input.LF))
	r := Seq(Literal("ab"), EOL(), One('c'))
	ok, err := Parse(r, in)
	if !ok || err != nil {
		t.Fatalf("parse = %v, %v", ok, err)
	}
	pos := in.Position()
	if pos.Offset != 4 || pos.Line != 2 || pos.Column != 2 {
		t.Errorf("position = %+v, want offset 4 at 2:2", pos)
	}
}

func TestParse_Outcomes(t *testing.T) {
	ok, err := ParseString(Literal("ab"), "ab", "t")
	if !ok || err != nil {
		t.Errorf("match: got %v, %v", ok, err)
	}

	in := input.FromString("ax", "t")
	ok, err = Parse(Seq(One('a'), One('b')), in)
	if ok || err != nil {
		t.Errorf("no match: got %v, %v", ok, err)
	}
	if in.Offset() != 0 {
		t.Errorf("cursor not rewound after no match: offset %d", in.Offset())
	}

	ok, err = ParseString(Literal("ab"), "abc", "t", WithFullMatch())
	if ok || err == nil {
		t.Fatalf("full match with trailing input: got %v, %v", ok, err)
	}
	if got, want := err.Error(), `t:1:3: unexpected input after string("ab")`; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestParseError_Diagnostics(t *testing.T) {
	r := Seq(Literal("let"), Must(EOL(), Literal("x = ")), Must(Digit()))
	_, err := ParseString(r, "let\nx = y", "prog.txt")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("got %v, want *ParseError", err)
	}
	if perr.Error() != "prog.txt:2:5: parse error matching digit" {
		t.Errorf("error = %q", perr.Error())
	}
	if perr.Line != "x = y" {
		t.Errorf("line = %q", perr.Line)
	}
	if perr.Rule != "digit" {
		t.Errorf("rule = %q", perr.Rule)
	}
}
