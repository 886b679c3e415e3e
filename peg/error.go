package peg

import (
	"fmt"

	"github.com/dhamidi/peg/input"
)

// ParseError is the error returned by Parse for a global failure. It
// renders as "source:line:column: message".
type ParseError struct {
	Position input.Position
	// Rule describes the rule that failed.
	Rule    string
	Message string
	// Line is the text of the input line containing Position.
	Line string
	// Err is the error returned by a failing action, if any.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GrammarError describes a problem with a grammar found by Grammar.Check.
type GrammarError struct {
	Rule    string
	Message string
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return fmt.Sprintf("rule %q: %s", e.Rule, e.Message)
}
