package peg

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

type oneRule struct {
	set    []byte
	negate bool
}

// One matches a single byte contained in set.
func One(set ...byte) Rule {
	return &oneRule{set: set}
}

// NotOne matches a single byte not contained in set. It fails at the end
// of input.
func NotOne(set ...byte) Rule {
	return &oneRule{set: set, negate: true}
}

func (r *oneRule) Match(c *Context) Result {
	b, ok := c.in.Peek()
	if !ok || (bytes.IndexByte(r.set, b) >= 0) == r.negate {
		return LocalFailure
	}
	c.in.Advance(1)
	return Success
}

func (r *oneRule) String() string {
	name := "one"
	if r.negate {
		name = "not_one"
	}
	parts := make([]string, len(r.set))
	for i, b := range r.set {
		parts[i] = quoteByte(b)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

type byteRange struct {
	lo, hi byte
}

type rangeRule struct {
	ranges []byteRange
	negate bool
}

// Range matches a single byte between lo and hi inclusive.
func Range(lo, hi byte) Rule {
	return &rangeRule{ranges: []byteRange{{lo, hi}}}
}

// NotRange matches a single byte outside lo..hi. It fails at the end of
// input.
func NotRange(lo, hi byte) Rule {
	return &rangeRule{ranges: []byteRange{{lo, hi}}, negate: true}
}

// Ranges matches a single byte in any of the given ranges. The arguments
// are pairs of inclusive bounds; a trailing odd byte matches itself.
func Ranges(bounds ...byte) Rule {
	r := &rangeRule{}
	for i := 0; i < len(bounds); i += 2 {
		if i+1 < len(bounds) {
			r.ranges = append(r.ranges, byteRange{bounds[i], bounds[i+1]})
		} else {
			r.ranges = append(r.ranges, byteRange{bounds[i], bounds[i]})
		}
	}
	return r
}

func (r *rangeRule) contains(b byte) bool {
	for _, br := range r.ranges {
		if b >= br.lo && b <= br.hi {
			return true
		}
	}
	return false
}

func (r *rangeRule) Match(c *Context) Result {
	b, ok := c.in.Peek()
	if !ok || r.contains(b) == r.negate {
		return LocalFailure
	}
	c.in.Advance(1)
	return Success
}

func (r *rangeRule) String() string {
	name := "ranges"
	if r.negate {
		name = "not_range"
	}
	parts := make([]string, len(r.ranges))
	for i, br := range r.ranges {
		parts[i] = quoteByte(br.lo) + "-" + quoteByte(br.hi)
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}

type literalRule struct {
	s    []byte
	fold bool
}

// Literal matches the exact byte sequence s.
func Literal(s string) Rule {
	return &literalRule{s: []byte(s)}
}

// ILiteral matches s ignoring ASCII case.
func ILiteral(s string) Rule {
	return &literalRule{s: []byte(s), fold: true}
}

func (r *literalRule) Match(c *Context) Result {
	rest := c.in.Remaining()
	if len(rest) < len(r.s) {
		return LocalFailure
	}
	head := rest[:len(r.s)]
	if r.fold {
		if !bytes.EqualFold(head, r.s) {
			return LocalFailure
		}
	} else if !bytes.Equal(head, r.s) {
		return LocalFailure
	}
	c.in.Advance(len(r.s))
	return Success
}

func (r *literalRule) String() string {
	if r.fold {
		return fmt.Sprintf("istring(%q)", r.s)
	}
	return fmt.Sprintf("string(%q)", r.s)
}

type anyRule struct{}

// Any matches exactly one byte.
func Any() Rule {
	return anyRule{}
}

func (anyRule) Match(c *Context) Result {
	if c.in.Empty() {
		return LocalFailure
	}
	c.in.Advance(1)
	return Success
}

func (anyRule) String() string { return "any" }

type anyRuneRule struct{}

// AnyRune matches one well-formed UTF-8 encoded code point.
func AnyRune() Rule {
	return anyRuneRule{}
}

func (anyRuneRule) Match(c *Context) Result {
	r, w := c.in.PeekRune()
	if w == 0 || (r == utf8.RuneError && w == 1) {
		return LocalFailure
	}
	c.in.Advance(w)
	return Success
}

func (anyRuneRule) String() string { return "utf8::any" }

type runeRangeRule struct {
	lo, hi rune
}

// RuneRange matches one UTF-8 encoded code point between lo and hi
// inclusive.
func RuneRange(lo, hi rune) Rule {
	return &runeRangeRule{lo: lo, hi: hi}
}

func (r *runeRangeRule) Match(c *Context) Result {
	ch, w := c.in.PeekRune()
	if w == 0 || (ch == utf8.RuneError && w == 1) || ch < r.lo || ch > r.hi {
		return LocalFailure
	}
	c.in.Advance(w)
	return Success
}

func (r *runeRangeRule) String() string {
	return fmt.Sprintf("utf8::range(%q, %q)", r.lo, r.hi)
}

type eofRule struct{}

// EOF matches, without consuming, at the end of input.
func EOF() Rule {
	return eofRule{}
}

func (eofRule) Match(c *Context) Result {
	return boolResult(c.in.Empty())
}

func (eofRule) String() string { return "eof" }

type eolRule struct{}

// EOL matches one line ending according to the cursor's convention.
func EOL() Rule {
	return eolRule{}
}

func (eolRule) Match(c *Context) Result {
	n := c.in.EOLWidth()
	if n == 0 {
		return LocalFailure
	}
	c.in.Advance(n)
	return Success
}

func (eolRule) String() string { return "eol" }

type bolRule struct{}

// BOL matches, without consuming, at the beginning of a line.
func BOL() Rule {
	return bolRule{}
}

func (bolRule) Match(c *Context) Result {
	return boolResult(c.in.Mark().Column == 1)
}

func (bolRule) String() string { return "bol" }

type constRule struct {
	ok bool
}

// Always succeeds without consuming input.
func Always() Rule {
	return constRule{ok: true}
}

// Never fails locally without consuming input.
func Never() Rule {
	return constRule{}
}

func (r constRule) Match(c *Context) Result {
	return boolResult(r.ok)
}

func (r constRule) String() string {
	if r.ok {
		return "success"
	}
	return "failure"
}

type classRule struct {
	name string
	pred func(byte) bool
}

func (r *classRule) Match(c *Context) Result {
	b, ok := c.in.Peek()
	if !ok || !r.pred(b) {
		return LocalFailure
	}
	c.in.Advance(1)
	return Success
}

func (r *classRule) String() string { return r.name }

func isAlpha(b byte) bool  { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isXDigit(b byte) bool { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
func isAlnum(b byte) bool  { return isAlpha(b) || isDigit(b) }
func isBlank(b byte) bool  { return b == ' ' || b == '\t' }

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isIdentFirst(b byte) bool { return isAlpha(b) || b == '_' }
func isIdentOther(b byte) bool { return isAlnum(b) || b == '_' }

var (
	alpha      = &classRule{name: "alpha", pred: isAlpha}
	digit      = &classRule{name: "digit", pred: isDigit}
	xdigit     = &classRule{name: "xdigit", pred: isXDigit}
	alnum      = &classRule{name: "alnum", pred: isAlnum}
	space      = &classRule{name: "space", pred: isSpace}
	blank      = &classRule{name: "blank", pred: isBlank}
	identFirst = &classRule{name: "identifier_first", pred: isIdentFirst}
	identOther = &classRule{name: "identifier_other", pred: isIdentOther}
	identifier = Seq(identFirst, Star(identOther))
)

// Alpha matches an ASCII letter.
func Alpha() Rule { return alpha }

// Digit matches an ASCII decimal digit.
func Digit() Rule { return digit }

// XDigit matches an ASCII hexadecimal digit.
func XDigit() Rule { return xdigit }

// Alnum matches an ASCII letter or digit.
func Alnum() Rule { return alnum }

// Space matches ASCII white space including line endings.
func Space() Rule { return space }

// Blank matches a space or a tab.
func Blank() Rule { return blank }

// Identifier matches a C-style identifier.
func Identifier() Rule { return identifier }

func quoteByte(b byte) string {
	if b < utf8.RuneSelf {
		return fmt.Sprintf("%q", rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
