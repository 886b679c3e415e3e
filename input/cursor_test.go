package input

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_LineColumnLF(t *testing.T) {
	c := FromString("ab\ncd", "test", WithEOL(LF))
	c.Advance(4)

	pos := c.Position()
	assert.Equal(t, 4, pos.Offset)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 2, pos.Column)
	assert.Equal(t, "test:2:2", pos.String())
}

func TestCursor_AdvanceNonPositive(t *testing.T) {
	c := FromString("ab\ncd", "test", WithEOL(LF))
	c.Advance(4)
	c.Advance(-2)
	c.Advance(0)

	pos := c.Position()
	assert.Equal(t, 4, pos.Offset)
	assert.Equal(t, 2, pos.Line)
	assert.Equal(t, 2, pos.Column)
}

func TestCursor_EOLConventions(t *testing.T) {
	tests := []struct {
		name   string
		eol    EOL
		input  string
		line   int
		column int
	}{
		{"lf", LF, "a\nb\nc", 3, 2},
		{"lf ignores cr", LF, "a\rb", 1, 4},
		{"cr", CR, "a\rb\rc", 3, 2},
		{"crlf", CRLF, "a\r\nb", 2, 2},
		{"crlf ignores bare lf", CRLF, "a\nb", 1, 4},
		{"lf_crlf with crlf", LFOrCRLF, "a\r\nb\nc", 3, 2},
		{"any", AnyEOL, "a\r\nb\rc\nd", 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := FromString(tt.input, "", WithEOL(tt.eol))
			c.Advance(len(tt.input))
			assert.True(t, c.Empty())
			assert.Equal(t, tt.line, c.Position().Line, "line")
			assert.Equal(t, tt.column, c.Position().Column, "column")
		})
	}
}

func TestCursor_CRLFSplitAcrossAdvances(t *testing.T) {
	for _, eol := range []EOL{CRLF, LFOrCRLF, AnyEOL} {
		t.Run(eol.String(), func(t *testing.T) {
			c := FromString("x\r\ny", "", WithEOL(eol))
			for !c.Empty() {
				c.Advance(1)
			}
			assert.Equal(t, 2, c.Position().Line)
			assert.Equal(t, 2, c.Position().Column)
		})
	}
}

func TestCursor_MarkRewind(t *testing.T) {
	c := FromString("one\ntwo\nthree", "m")
	c.Advance(2)
	m := c.Mark()

	c.Advance(7)
	require.Equal(t, 3, c.Position().Line)

	c.Rewind(m)
	assert.Equal(t, Mark{Offset: 2, Line: 1, Column: 3}, c.Mark())
	b, ok := c.Peek()
	require.True(t, ok)
	assert.Equal(t, byte('e'), b)
}

func TestCursor_PeekAtEnd(t *testing.T) {
	c := FromString("a", "")
	c.Advance(5)
	_, ok := c.Peek()
	assert.False(t, ok)
	assert.Equal(t, 1, c.Offset())
	r, w := c.PeekRune()
	assert.Equal(t, 0, w)
	assert.NotEqual(t, 'a', r)
}

func TestCursor_SliceAndLine(t *testing.T) {
	c := FromString("first\nsecond line\nthird", "")
	c.Advance(8)
	start := c.Mark()
	c.Advance(4)

	assert.Equal(t, "cond", string(c.Slice(start, c.Mark())))
	assert.Equal(t, "second line", string(c.Line()))
	assert.Equal(t, 4, c.Span(start).Len())
}

func TestCursor_EOLWidth(t *testing.T) {
	c := FromString("\r\n", "", WithEOL(LFOrCRLF))
	assert.Equal(t, 2, c.EOLWidth())

	c = FromString("\r\n", "", WithEOL(CR))
	assert.Equal(t, 1, c.EOLWidth())

	c = FromString("x", "")
	assert.Equal(t, 0, c.EOLWidth())
}

func TestParseEOL(t *testing.T) {
	for e, name := range eolNames {
		got, err := ParseEOL(strings.ToUpper(name))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}
	_, err := ParseEOL("nope")
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o644))

	c, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Source())
	assert.Equal(t, 6, c.Size())
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)

	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "open", inputErr.Op)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestFromArgs(t *testing.T) {
	args := []string{"prog", "a,b"}
	c, err := FromArgs(args, 1)
	require.NoError(t, err)
	assert.Equal(t, "argv[1]", c.Source())
	assert.Equal(t, "a,b", string(c.Remaining()))

	_, err = FromArgs(args, 2)
	assert.ErrorIs(t, err, ErrNoArgument)
}
