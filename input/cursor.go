package input

import (
	"bytes"
	"unicode/utf8"
)

// Cursor tracks progress through an in-memory input. The buffer is never
// modified; only the position moves.
type Cursor struct {
	data   []byte
	source string
	eol    EOL
	pos    Mark
}

// Option configures a Cursor at construction time.
type Option func(*Cursor)

// WithEOL sets the end-of-line convention used for line counting and by
// the EOL rule.
func WithEOL(e EOL) Option {
	return func(c *Cursor) {
		c.eol = e
	}
}

// WithSource overrides the source label used in positions.
func WithSource(name string) Option {
	return func(c *Cursor) {
		c.source = name
	}
}

// WithStartLine makes line numbering start at line instead of 1. It is
// useful when parsing a fragment embedded in a larger document.
func WithStartLine(line int) Option {
	return func(c *Cursor) {
		c.pos.Line = line
	}
}

func newCursor(data []byte, source string, opts ...Option) *Cursor {
	c := &Cursor{
		data:   data,
		source: source,
		eol:    LFOrCRLF,
		pos:    Mark{Line: 1, Column: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the label of the input, typically a file name.
func (c *Cursor) Source() string {
	return c.source
}

// EOL returns the end-of-line convention of the cursor.
func (c *Cursor) EOL() EOL {
	return c.eol
}

// Size returns the number of unconsumed bytes.
func (c *Cursor) Size() int {
	return len(c.data) - c.pos.Offset
}

// Empty reports whether all input has been consumed.
func (c *Cursor) Empty() bool {
	return c.pos.Offset >= len(c.data)
}

// Peek returns the current byte without consuming it. The boolean is false
// at the end of input.
func (c *Cursor) Peek() (byte, bool) {
	return c.PeekAt(0)
}

// PeekAt returns the byte i positions ahead of the cursor.
func (c *Cursor) PeekAt(i int) (byte, bool) {
	at := c.pos.Offset + i
	if i < 0 || at >= len(c.data) {
		return 0, false
	}
	return c.data[at], true
}

// PeekRune decodes the UTF-8 sequence at the cursor. It returns the rune
// and its width in bytes; the width is 0 at the end of input.
func (c *Cursor) PeekRune() (rune, int) {
	if c.Empty() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(c.data[c.pos.Offset:])
}

// HasPrefix reports whether the unconsumed input starts with p.
func (c *Cursor) HasPrefix(p []byte) bool {
	return bytes.HasPrefix(c.data[c.pos.Offset:], p)
}

// Remaining returns the unconsumed input. The slice must not be modified.
func (c *Cursor) Remaining() []byte {
	return c.data[c.pos.Offset:]
}

// Bytes returns the whole input buffer. The slice must not be modified.
func (c *Cursor) Bytes() []byte {
	return c.data
}

// EOLWidth returns the width of the line ending at the cursor under the
// cursor's convention, or 0 if the cursor is not at a line ending.
func (c *Cursor) EOLWidth() int {
	return c.eol.match(c.data, c.pos.Offset)
}

// Advance consumes n bytes, updating line and column. Advancing past the
// end of input stops at the end; n <= 0 leaves the cursor unchanged.
func (c *Cursor) Advance(n int) {
	if n <= 0 {
		return
	}
	end := c.pos.Offset + n
	if end > len(c.data) {
		end = len(c.data)
	}
	for i := c.pos.Offset; i < end; i++ {
		newline, cont := c.eol.step(c.data, i)
		switch {
		case newline:
			c.pos.Line++
			c.pos.Column = 1
		case cont:
		default:
			c.pos.Column++
		}
	}
	c.pos.Offset = end
}

// Mark captures the current position.
func (c *Cursor) Mark() Mark {
	return c.pos
}

// Rewind restores a position previously returned by Mark.
func (c *Cursor) Rewind(m Mark) {
	c.pos = m
}

// Offset returns the current byte offset.
func (c *Cursor) Offset() int {
	return c.pos.Offset
}

// Position returns the current position.
func (c *Cursor) Position() Position {
	return c.PositionAt(c.pos)
}

// PositionAt converts a mark of this cursor into a Position.
func (c *Cursor) PositionAt(m Mark) Position {
	return Position{
		Source: c.source,
		Offset: m.Offset,
		Line:   m.Line,
		Column: m.Column,
	}
}

// Slice returns the input between two marks.
func (c *Cursor) Slice(from, to Mark) []byte {
	if from.Offset > to.Offset {
		from, to = to, from
	}
	return c.data[from.Offset:to.Offset]
}

// Span returns the span between from and the current position.
func (c *Cursor) Span(from Mark) Span {
	return Span{Start: c.PositionAt(from), End: c.Position()}
}

// Line returns the full text of the line containing the cursor, without
// its line ending. It is used to render diagnostics.
func (c *Cursor) Line() []byte {
	return c.LineAt(c.pos)
}

// LineAt returns the text of the line containing m.
func (c *Cursor) LineAt(m Mark) []byte {
	start := m.Offset - (m.Column - 1)
	if start < 0 {
		start = 0
	}
	end := start
	for end < len(c.data) && c.eol.match(c.data, end) == 0 {
		end++
	}
	return c.data[start:end]
}
