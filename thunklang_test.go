package thunklang

import (
	"bytes"
	"testing"

	"github.com/thunklang/thunklang/internal/ast"
	"github.com/thunklang/thunklang/internal/examples"
)

func TestEvaluateIdentity(t *testing.T) {
	prog := &ast.Program{Input: ast.Int, Output: ast.Int, Body: ast.Var{Name: ast.InputName}}
	got, err := Evaluate[int64, int64](prog, 41)
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if got != 41 {
		t.Errorf("Evaluate() = %d, want 41", got)
	}
}

func TestSpecializeIdentity(t *testing.T) {
	prog := &ast.Program{Input: ast.Int, Output: ast.Int, Body: ast.Var{Name: ast.InputName}}
	run, err := Specialize[int64, int64](prog)
	if err != nil {
		t.Fatalf("Specialize() error: %v", err)
	}
	got, err := run(41)
	if err != nil {
		t.Fatalf("run() error: %v", err)
	}
	if got != 41 {
		t.Errorf("run() = %d, want 41", got)
	}
}

func TestEvaluateRejectsSignatureMismatch(t *testing.T) {
	prog := &ast.Program{Input: ast.Int, Output: ast.Int, Body: ast.Var{Name: ast.InputName}}
	if _, err := Evaluate[bool, int64](prog, true); err == nil {
		t.Error("a bool input against an int-declared program should be rejected before running")
	}
}

func TestSpecializeRejectsSignatureMismatch(t *testing.T) {
	prog := &ast.Program{Input: ast.Int, Output: ast.Int, Body: ast.Var{Name: ast.InputName}}
	if _, err := Specialize[int64, bool](prog); err == nil {
		t.Error("an output type advertised as bool against an int-declared program should be rejected before compiling")
	}
}

type pair struct {
	A int64
	B int64
}

func TestTupleHostBridge(t *testing.T) {
	prog := &ast.Program{
		Input:  ast.Tuple(ast.Int, ast.Int),
		Output: ast.Int,
		Body: ast.Binary{
			Op:  ast.OpAdd,
			LHS: ast.ExtractTuple{Expr: ast.Var{Name: ast.InputName}, Idx: 0},
			RHS: ast.ExtractTuple{Expr: ast.Var{Name: ast.InputName}, Idx: 1},
		},
	}

	got, err := Evaluate[pair, int64](prog, pair{A: 3, B: 4})
	if err != nil {
		t.Fatalf("Evaluate() error: %v", err)
	}
	if got != 7 {
		t.Errorf("Evaluate() = %d, want 7", got)
	}
}

// TestFibonacciDualEquivalence is P1 for a concrete program: evaluate and
// specialize must produce identical results for every accepted input.
func TestFibonacciDualEquivalence(t *testing.T) {
	prog := examples.Fibonacci()
	run, err := Specialize[int64, int64](prog)
	if err != nil {
		t.Fatalf("Specialize() error: %v", err)
	}

	for n := int64(0); n <= 20; n++ {
		evaluated, err := Evaluate[int64, int64](prog, n)
		if err != nil {
			t.Fatalf("Evaluate(%d) error: %v", n, err)
		}
		compiled, err := run(n)
		if err != nil {
			t.Fatalf("run(%d) error: %v", n, err)
		}
		if evaluated != compiled {
			t.Errorf("fib(%d): evaluate=%d, specialize=%d", n, evaluated, compiled)
		}
	}
}

// TestMandelbrotDualEquivalence is P1 for the Mandelbrot program: both
// executors must print byte-identical output sequences.
func TestMandelbrotDualEquivalence(t *testing.T) {
	prog := examples.Mandelbrot()
	input := examples.MandelbrotInput{
		ViewportWidth: 20, ViewportHeight: 10,
		X1: -2.05, Y1: -1.12, X2: 0.47, Y2: 1.12,
		MaxIterations: 50,
	}

	var evalBuf bytes.Buffer
	restore := ast.SetOutput(&evalBuf)
	if _, err := Evaluate[examples.MandelbrotInput, struct{}](prog, input); err != nil {
		ast.SetOutput(restore)
		t.Fatalf("Evaluate() error: %v", err)
	}
	ast.SetOutput(restore)

	run, err := Specialize[examples.MandelbrotInput, struct{}](prog)
	if err != nil {
		t.Fatalf("Specialize() error: %v", err)
	}

	var compileBuf bytes.Buffer
	restore = ast.SetOutput(&compileBuf)
	if _, err := run(input); err != nil {
		ast.SetOutput(restore)
		t.Fatalf("run() error: %v", err)
	}
	ast.SetOutput(restore)

	if evalBuf.String() != compileBuf.String() {
		t.Errorf("evaluate and specialize printed different output:\nevaluate:\n%s\nspecialize:\n%s", evalBuf.String(), compileBuf.String())
	}
}
