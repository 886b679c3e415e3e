package input

import (
	"fmt"
	"strings"
)

// EOL selects which byte sequences end a line.
type EOL int

const (
	// LFOrCRLF accepts "\n" and "\r\n". It is the default.
	LFOrCRLF EOL = iota
	// LF accepts only "\n".
	LF
	// CR accepts only "\r".
	CR
	// CRLF accepts only "\r\n".
	CRLF
	// AnyEOL accepts "\r\n", "\r" and "\n".
	AnyEOL
)

var eolNames = map[EOL]string{
	LFOrCRLF: "lf_crlf",
	LF:       "lf",
	CR:       "cr",
	CRLF:     "crlf",
	AnyEOL:   "any",
}

func (e EOL) String() string {
	if name, ok := eolNames[e]; ok {
		return name
	}
	return fmt.Sprintf("EOL(%d)", int(e))
}

// ParseEOL converts a convention name as printed by EOL.String back into
// an EOL value. Matching is case-insensitive.
func ParseEOL(s string) (EOL, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for e, name := range eolNames {
		if name == s {
			return e, nil
		}
	}
	return LFOrCRLF, fmt.Errorf("unknown end-of-line convention %q", s)
}

// match returns the width of the newline sequence starting at data[i], or
// 0 if there is none.
func (e EOL) match(data []byte, i int) int {
	if i >= len(data) {
		return 0
	}
	crlf := data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n'
	switch e {
	case LF:
		if data[i] == '\n' {
			return 1
		}
	case CR:
		if data[i] == '\r' {
			return 1
		}
	case CRLF:
		if crlf {
			return 2
		}
	case LFOrCRLF:
		if crlf {
			return 2
		}
		if data[i] == '\n' {
			return 1
		}
	case AnyEOL:
		if crlf {
			return 2
		}
		if data[i] == '\n' || data[i] == '\r' {
			return 1
		}
	}
	return 0
}

// step reports how consuming data[i] changes the line count. It returns
// newline=true when data[i] completes a line ending, and cont=true when
// data[i] is the trailing byte of a sequence whose line increment was
// already counted.
func (e EOL) step(data []byte, i int) (newline, cont bool) {
	b := data[i]
	prevCR := i > 0 && data[i-1] == '\r'
	switch e {
	case LF, LFOrCRLF:
		return b == '\n', false
	case CR:
		return b == '\r', false
	case CRLF:
		return b == '\n' && prevCR, false
	case AnyEOL:
		if b == '\r' {
			return true, false
		}
		if b == '\n' {
			if prevCR {
				return false, true
			}
			return true, false
		}
	}
	return false, false
}
