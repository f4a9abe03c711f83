package compile

import (
	"bytes"
	"testing"

	"github.com/thunklang/thunklang/internal/ast"
	"github.com/thunklang/thunklang/internal/examples"
)

func mustCompile(t *testing.T, prog *ast.Program) *Compiled {
	t.Helper()
	c, err := Compile(prog)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return c
}

func TestCompileIdentity(t *testing.T) {
	prog := &ast.Program{Input: ast.Int, Output: ast.Int, Body: ast.Var{Name: ast.InputName}}
	c := mustCompile(t, prog)

	result, err := c.Run(ast.IntValue{V: 7})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if result.(ast.IntValue).V != 7 {
		t.Errorf("Run() = %v, want 7", result)
	}
}

func TestCompileRejectsDuplicateDeclare(t *testing.T) {
	prog := &ast.Program{
		Input:  ast.Unit,
		Output: ast.Unit,
		Body: ast.Block{Children: []ast.Node{
			ast.Declare{Name: "x", Value: ast.Const{Value: ast.IntValue{V: 1}}},
			ast.Declare{Name: "x", Value: ast.Const{Value: ast.IntValue{V: 2}}},
		}},
	}
	if _, err := Compile(prog); err == nil {
		t.Error("a duplicate Declare should be a compile-time error")
	}
}

func TestCompileRejectsAssignToInput(t *testing.T) {
	prog := &ast.Program{
		Input:  ast.Int,
		Output: ast.Int,
		Body: ast.Block{Children: []ast.Node{
			ast.Assign{Name: ast.InputName, Value: ast.Const{Value: ast.IntValue{V: 1}}},
			ast.Var{Name: ast.InputName},
		}},
	}
	if _, err := Compile(prog); err == nil {
		t.Error("assigning to input should be a compile-time error")
	}
}

func TestCompileRejectsOutputTypeMismatch(t *testing.T) {
	prog := &ast.Program{Input: ast.Int, Output: ast.Bool, Body: ast.Var{Name: ast.InputName}}
	if _, err := Compile(prog); err == nil {
		t.Error("a body whose type disagrees with the declared output should fail to compile")
	}
}

func TestCompileRejectsUnknownVariable(t *testing.T) {
	prog := &ast.Program{Input: ast.Unit, Output: ast.Int, Body: ast.Var{Name: "nope"}}
	if _, err := Compile(prog); err == nil {
		t.Error("referencing an undeclared variable should fail to compile")
	}
}

func TestCompileExtractArrayOutOfBoundsIsRuntimeError(t *testing.T) {
	prog := &ast.Program{
		Input:  ast.Unit,
		Output: ast.Char,
		Body: ast.ExtractArray{
			Expr: ast.Const{Value: ast.StrValue{V: "ab"}},
			Idx:  ast.Const{Value: ast.IntValue{V: 99}},
		},
	}
	c := mustCompile(t, prog)
	if _, err := c.Run(ast.UnitValue{}); err == nil {
		t.Error("an out-of-bounds ExtractArray index should fail at run time")
	}
}

func TestCompilePrintRendersToOutput(t *testing.T) {
	var buf bytes.Buffer
	restore := ast.SetOutput(&buf)
	defer ast.SetOutput(restore)

	prog := &ast.Program{
		Input:  ast.Unit,
		Output: ast.Unit,
		Body: ast.Print{Children: []ast.Node{
			ast.Const{Value: ast.StrValue{V: "a"}},
			ast.Const{Value: ast.StrValue{V: "b"}},
		}},
	}
	c := mustCompile(t, prog)
	if _, err := c.Run(ast.UnitValue{}); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if buf.String() != "ab" {
		t.Errorf("Print output = %q, want %q", buf.String(), "ab")
	}
}

func TestCompileFibonacci(t *testing.T) {
	prog := examples.Fibonacci()
	c := mustCompile(t, prog)

	cases := []struct{ n, want int64 }{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {10, 55}, {50, 12586269025},
	}
	for _, tc := range cases {
		result, err := c.Run(ast.IntValue{V: tc.n})
		if err != nil {
			t.Fatalf("Run(fib, %d) error: %v", tc.n, err)
		}
		if result.(ast.IntValue).V != tc.want {
			t.Errorf("fib(%d) = %v, want %d", tc.n, result, tc.want)
		}
	}
}
