// Package errors categorizes the fatal conditions thunklang's evaluator and
// compiler can raise, per spec.md §7. Every condition is reported as a
// returned error rather than a panic, matching the "fatal and abortive"
// policy: one error return aborts the whole call, never a partial result.
package errors

import "fmt"

// Category distinguishes the three error kinds spec.md §7 names.
type Category string

const (
	// CategorySignature: a host-advertised input/output type disagrees with
	// the program's declared signature.
	CategorySignature Category = "signature"
	// CategoryStatic: a type or binding error the specializer's compile pass
	// rejects before any thunk runs.
	CategoryStatic Category = "static"
	// CategoryDynamic: a condition detected while a thunk or the evaluator
	// is actually running (e.g. a string index out of range). The evaluator
	// has no separate compile pass, so it reports its type and binding
	// errors in this category too.
	CategoryDynamic Category = "dynamic"
)

// Error is a categorized, fatal thunklang error. It always names the
// offending construct (a variable, a type, an operator) so the message is
// actionable without extra context.
type Error struct {
	Category Category
	Message  string
	Err      error // wrapped cause, if any
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a categorized error with a formatted message.
func New(category Category, format string, args ...any) *Error {
	return &Error{Category: category, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a categorized error that wraps an underlying cause, folding
// the cause's message into Message so Error() stays self-contained.
func Wrap(category Category, cause error, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...) + ": " + cause.Error(),
		Err:      cause,
	}
}

// Signaturef is shorthand for New(CategorySignature, ...).
func Signaturef(format string, args ...any) *Error { return New(CategorySignature, format, args...) }

// Staticf is shorthand for New(CategoryStatic, ...).
func Staticf(format string, args ...any) *Error { return New(CategoryStatic, format, args...) }

// Dynamicf is shorthand for New(CategoryDynamic, ...).
func Dynamicf(format string, args ...any) *Error { return New(CategoryDynamic, format, args...) }
