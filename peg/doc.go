// Package peg executes Parsing Expression Grammars composed from small rule
// values.
//
// # Rules
//
// A grammar is a tree of Rule values built with the constructors in this
// package: leaf matchers such as One, Range and Literal, and combinators
// such as Seq, Sor, Star, Opt, At, NotAt and Must. Rules are stateless; all
// mutable state lives in the Context that is threaded through a parse.
//
//	digits := peg.Plus(peg.Digit())
//	list := peg.ListMust(digits, peg.One(','))
//	ok, err := peg.ParseString(list, "1,2,3", "example")
//
// # Results
//
// Every rule reports one of three outcomes:
//
//   - Success: the rule matched and the cursor moved past the match.
//   - LocalFailure: the rule did not match; an enclosing Sor or Star may
//     rewind and try something else.
//   - GlobalFailure: the parse is over. Must converts a LocalFailure of its
//     body into a GlobalFailure and no combinator ever turns a
//     GlobalFailure back into something recoverable.
//
// Parse reports these as (true, nil), (false, nil) and (false, *ParseError)
// respectively.
//
// # Actions
//
// Named rules carry an identity. When a named rule succeeds, the Action
// registered for its name in the Actions map is invoked with the matched
// span. Actions are not retracted on backtracking and are disabled inside
// At and NotAt. For tree building, a Listener observes the start, success
// and failure of every rule instead.
//
// # Grammars
//
// Grammar collects named definitions that may refer to each other through
// Call, which allows recursive grammars. Grammar.Check reports undefined,
// unused and left-recursive rules as well as repetitions whose body can
// match the empty string.
package peg
