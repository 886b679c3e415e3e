package input

import (
	"io"
	"os"
	"strconv"
)

// FromString returns a cursor over s labelled with source.
func FromString(s, source string, opts ...Option) *Cursor {
	return newCursor([]byte(s), source, opts...)
}

// FromBytes returns a cursor over data labelled with source. The caller
// must not modify data while the cursor is in use.
func FromBytes(data []byte, source string, opts ...Option) *Cursor {
	return newCursor(data, source, opts...)
}

// FromReader reads r to the end and returns a cursor over its content.
// Matching never performs I/O; the whole input is buffered up front.
func FromReader(r io.Reader, source string, opts ...Option) (*Cursor, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputError{Op: "read", Source: source, Err: err}
	}
	return newCursor(data, source, opts...), nil
}

// ReadFile loads the named file and returns a cursor labelled with its
// path.
func ReadFile(filename string, opts ...Option) (*Cursor, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &InputError{Op: "open", Source: filename, Err: err}
	}
	defer f.Close()

	return FromReader(f, filename, opts...)
}

// ArgSource returns the conventional label of the i-th command line
// argument.
func ArgSource(i int) string {
	return "argv[" + strconv.Itoa(i) + "]"
}

// FromArgs returns a cursor over args[i] labelled "argv[i]".
func FromArgs(args []string, i int, opts ...Option) (*Cursor, error) {
	if i < 0 || i >= len(args) {
		return nil, &InputError{Op: "argv", Source: ArgSource(i), Err: ErrNoArgument}
	}
	return newCursor([]byte(args[i]), ArgSource(i), opts...), nil
}
