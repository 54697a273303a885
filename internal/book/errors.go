package book

import "fmt"

// IndexError reports a selection index outside the current collection bounds.
type IndexError struct {
	Index int
	Size  int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("no appointment at index %d (have %d)", e.Index, e.Size)
}

// IOError reports a persistence failure. It is surfaced to the user but never
// aborts the mutation that triggered it.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s appointments: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
