// Package input provides the cursor a grammar is matched against.
//
// A Cursor is a view over an immutable byte buffer. It tracks the byte
// offset together with a 1-based line and column, and supports cheap
// save/restore through Mark and Rewind so that parsers can backtrack.
package input

import "fmt"

// Position is a location in a named source.
type Position struct {
	Source string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Source != "" {
		return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Mark is a snapshot of a cursor position. It is plain data and may be
// copied and compared freely.
type Mark struct {
	Offset int
	Line   int
	Column int
}

// Span is the half-open range of input between two marks.
type Span struct {
	Start Position
	End   Position
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", s.Start, s.End.Line, s.End.Column)
}
