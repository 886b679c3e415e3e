package peg

import "fmt"

// Result is the outcome of matching a rule.
type Result int

const (
	// Success means the rule matched and the cursor advanced past the match.
	Success Result = iota
	// LocalFailure means the rule did not match. A sequence may have consumed
	// part of the input; the enclosing choice, repetition or lookahead rewinds
	// before trying anything else.
	LocalFailure
	// GlobalFailure means the parse cannot succeed. It propagates unchanged
	// to the caller of Parse.
	GlobalFailure
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case LocalFailure:
		return "local failure"
	case GlobalFailure:
		return "global failure"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

func boolResult(ok bool) Result {
	if ok {
		return Success
	}
	return LocalFailure
}
