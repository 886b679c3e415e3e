package peg

import (
	"github.com/dhamidi/peg/input"
)

// Parse matches r against in.
//
// It returns (true, nil) when r matched, (false, nil) when r did not match
// and (false, err) with a *ParseError when the parse failed globally. On a
// local failure the cursor is rewound to where it was when Parse was
// called.
func Parse(r Rule, in *input.Cursor, opts ...Option) (bool, error) {
	c := NewContext(in, opts...)
	start := in.Mark()

	switch c.Match(r) {
	case Success:
		if c.full && !in.Empty() {
			c.Raisef(r, in.Mark(), "unexpected input after %s", r)
			return false, c.err
		}
		return true, nil
	case LocalFailure:
		in.Rewind(start)
		return false, nil
	default:
		if c.err == nil {
			c.Raisef(r, in.Mark(), "parse error matching %s", r)
		}
		return false, c.err
	}
}

// ParseString is Parse over an in-memory string labelled source.
func ParseString(r Rule, s, source string, opts ...Option) (bool, error) {
	return Parse(r, input.FromString(s, source), opts...)
}
