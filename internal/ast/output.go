package ast

import (
	"io"
	"os"
)

// Output is the process-global sink Print renders to (spec.md §6: "the
// standard output sink for Print is process-global"), shared by both
// internal/eval and internal/compile so neither executor owns it. It
// defaults to os.Stdout; tests and embedders that need to capture rendered
// output call SetOutput first.
var Output io.Writer = os.Stdout

// SetOutput replaces the Print sink and returns the previous one, so
// callers can restore it afterward.
func SetOutput(w io.Writer) io.Writer {
	prev := Output
	Output = w
	return prev
}
