// Package thunklang runs thunklang programs: ASTs built directly as trees
// of ast.Node values, with no textual syntax. Two independent execution
// strategies are exposed, Evaluate and Specialize, and they are required to
// agree on every program and input both accept.
package thunklang

import (
	"github.com/thunklang/thunklang/internal/ast"
	"github.com/thunklang/thunklang/internal/compile"
	"github.com/thunklang/thunklang/internal/eval"
	thunkerrors "github.com/thunklang/thunklang/internal/errors"
)

// Evaluate tree-walks program's body once against input, re-interpreting
// every node. Input and Output may be any host type internal/ast's bridge
// understands (bool, int32/int64, float32/float64, string, ast.HostChar, a
// struct of 1 to 10 such fields, or ast.Value itself as a pass-through), and
// are checked against program's declared signature before anything runs.
func Evaluate[Input, Output any](program *ast.Program, input Input) (Output, error) {
	var zero Output

	if err := checkSignature[Input](program.Input, "input"); err != nil {
		return zero, err
	}
	if err := checkSignature[Output](program.Output, "output"); err != nil {
		return zero, err
	}

	packedInput, err := ast.Pack(input)
	if err != nil {
		return zero, thunkerrors.Wrap(thunkerrors.CategoryDynamic, err, "cannot pack input")
	}

	result, err := eval.Eval(program, packedInput)
	if err != nil {
		return zero, err
	}

	out, err := ast.Unpack[Output](result)
	if err != nil {
		return zero, thunkerrors.Wrap(thunkerrors.CategoryDynamic, err, "cannot unpack output")
	}
	return out, nil
}

// Specialize type-checks program once and returns a callable that runs the
// compiled result repeatedly with no further type dispatch. Input and
// Output follow the same host-type rules as Evaluate's.
func Specialize[Input, Output any](program *ast.Program) (func(Input) (Output, error), error) {
	if err := checkSignature[Input](program.Input, "input"); err != nil {
		return nil, err
	}
	if err := checkSignature[Output](program.Output, "output"); err != nil {
		return nil, err
	}

	compiled, err := compile.Compile(program)
	if err != nil {
		return nil, err
	}

	return func(input Input) (Output, error) {
		var zero Output

		packedInput, err := ast.Pack(input)
		if err != nil {
			return zero, thunkerrors.Wrap(thunkerrors.CategoryDynamic, err, "cannot pack input")
		}

		result, err := compiled.Run(packedInput)
		if err != nil {
			return zero, err
		}

		out, err := ast.Unpack[Output](result)
		if err != nil {
			return zero, thunkerrors.Wrap(thunkerrors.CategoryDynamic, err, "cannot unpack output")
		}
		return out, nil
	}, nil
}

// checkSignature rejects a host type T that advertises a guest Type
// disagreeing with declared. T advertising nothing (the ast.Value
// pass-through case) is always accepted, matching spec.md §6.
func checkSignature[T any](declared ast.Type, side string) error {
	advertised, ok := ast.GuestType[T]()
	if !ok {
		return nil
	}
	if !advertised.Equal(declared) {
		return thunkerrors.Signaturef("invalid invocation: generic parameter %q must be %s, got %s", side, declared, advertised)
	}
	return nil
}
