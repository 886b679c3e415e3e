package lsp

import (
	"errors"
	"fmt"
	"unicode/utf16"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/peg/input"
	"github.com/dhamidi/peg/peg"
)

// Diagnose parses text and returns the diagnostics for it. A document
// that parses cleanly has no diagnostics.
func (s *Server) Diagnose(uri protocol.DocumentUri, text string) []protocol.Diagnostic {
	in := input.FromString(text, uriToPath(uri), input.WithEOL(s.eol))
	ok, err := peg.Parse(s.grammar.Document(), in)
	switch {
	case err != nil:
		return []protocol.Diagnostic{errorDiagnostic(err)}
	case !ok:
		return []protocol.Diagnostic{newDiagnostic(protocol.Position{},
			fmt.Sprintf("input does not match %s", s.grammar.Start))}
	default:
		return []protocol.Diagnostic{}
	}
}

func errorDiagnostic(err error) protocol.Diagnostic {
	var perr *peg.ParseError
	if !errors.As(err, &perr) {
		return newDiagnostic(protocol.Position{}, err.Error())
	}
	pos := protocol.Position{
		Line:      protocol.UInteger(perr.Position.Line - 1),
		Character: utf16Column(perr.Line, perr.Position.Column),
	}
	return newDiagnostic(pos, perr.Message)
}

func newDiagnostic(pos protocol.Position, message string) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := lsName
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}

// utf16Column converts a 1-based byte column within line to the 0-based
// UTF-16 offset clients expect.
func utf16Column(line string, column int) protocol.UInteger {
	n := column - 1
	if n > len(line) {
		n = len(line)
	}
	if n < 0 {
		n = 0
	}
	return protocol.UInteger(len(utf16.Encode([]rune(line[:n]))))
}
