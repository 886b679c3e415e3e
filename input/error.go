package input

import (
	"errors"
	"fmt"
)

// ErrNoArgument is returned by FromArgs for an index outside the argument
// list.
var ErrNoArgument = errors.New("no such argument")

// InputError reports a failure to obtain input, such as a missing file.
// It is returned by source constructors and never by grammar matching.
type InputError struct {
	Op     string
	Source string
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("unable to %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}
