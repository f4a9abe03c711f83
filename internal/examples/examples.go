// Package examples builds ready-to-run Program fixtures, grounded
// node-for-node on the reference implementation's own example programs.
// They exist for three reasons: documentation by example, smoke tests, and
// fixtures for cmd/thunklang's CLI subcommands.
package examples

import "github.com/thunklang/thunklang/internal/ast"

func v(n int64) ast.Node { return ast.Const{Value: ast.IntValue{V: n}} }

func variable(name ast.Name) ast.Node { return ast.Var{Name: name} }

func binary(op ast.Op, lhs, rhs ast.Node) ast.Node {
	return ast.Binary{Op: op, LHS: lhs, RHS: rhs}
}

// Fibonacci returns a program computing the nth Fibonacci number
// iteratively: input is the 0-based index n, output is fib(n).
//
//	var x = 0
//	var y = 1
//	var z = 1
//	var n = input
//	while n > 0 {
//	    x = y
//	    y = z
//	    z = x + y
//	    n = n - 1
//	}
//	x
func Fibonacci() *ast.Program {
	return &ast.Program{
		Input:  ast.Int,
		Output: ast.Int,
		Body: ast.Block{Children: []ast.Node{
			ast.Declare{Name: "x", Value: v(0)},
			ast.Declare{Name: "y", Value: v(1)},
			ast.Declare{Name: "z", Value: v(1)},
			ast.Declare{Name: "n", Value: variable(ast.InputName)},
			ast.While{
				Cond: binary(ast.OpGt, variable("n"), v(0)),
				Body: ast.Block{Children: []ast.Node{
					ast.Assign{Name: "x", Value: variable("y")},
					ast.Assign{Name: "y", Value: variable("z")},
					ast.Assign{Name: "z", Value: binary(ast.OpAdd, variable("x"), variable("y"))},
					ast.Assign{Name: "n", Value: binary(ast.OpSub, variable("n"), v(1))},
				}},
			},
			variable("x"),
		}},
	}
}

// MandelbrotInput is the host-side argument struct Mandelbrot's program
// advertises as its Tuple input: a viewport size, a complex-plane window,
// and an iteration budget.
type MandelbrotInput struct {
	ViewportWidth  int64
	ViewportHeight int64
	X1             float32
	Y1             float32
	X2             float32
	Y2             float32
	MaxIterations  int64
}

const mandelbrotRamp = "#%=-:,. "

// Mandelbrot returns a program that prints an ASCII-art render of the
// Mandelbrot set to the Print sink (ast.Output), one row per println, and
// returns Unit. Escape-time per pixel is mapped onto mandelbrotRamp, darkest
// character first.
//
//	for viewport_y in 0..viewport_height {
//	    y0 = y1 + (y2-y1) * (viewport_y/viewport_height)
//	    for viewport_x in 0..viewport_width {
//	        x0 = x1 + (x2-x1) * (viewport_x/viewport_width)
//	        x, y, iterations = 0.0, 0.0, max_iterations
//	        while x*x+y*y <= 4.0 && iterations > 0 {
//	            xtemp = x*x - y*y + x0
//	            y = 2.0*x*y + y0
//	            x = xtemp
//	            iterations = iterations - 1
//	        }
//	        print(ramp[8 * iterations/max_iterations])
//	    }
//	    print("\n")
//	}
func Mandelbrot() *ast.Program {
	inputTy := ast.Tuple(ast.Int, ast.Int, ast.Float, ast.Float, ast.Float, ast.Float, ast.Int)

	extract := func(idx int) ast.Node {
		return ast.ExtractTuple{Expr: variable(ast.InputName), Idx: idx}
	}
	toFloat := func(n ast.Node) ast.Node { return ast.Cast{Expr: n, Target: ast.Float} }
	toInt := func(n ast.Node) ast.Node { return ast.Cast{Expr: n, Target: ast.Int} }
	fv := func(f float32) ast.Node { return ast.Const{Value: ast.FloatValue{V: f}} }

	innerLoop := ast.While{
		Cond: binary(ast.OpAnd,
			binary(ast.OpLtEq,
				binary(ast.OpAdd,
					binary(ast.OpMul, variable("x"), variable("x")),
					binary(ast.OpMul, variable("y"), variable("y")),
				),
				fv(4.0),
			),
			binary(ast.OpGt, variable("iterations"), v(0)),
		),
		Body: ast.Block{Children: []ast.Node{
			ast.Declare{Name: "xtemp", Value: binary(ast.OpAdd,
				binary(ast.OpSub,
					binary(ast.OpMul, variable("x"), variable("x")),
					binary(ast.OpMul, variable("y"), variable("y")),
				),
				variable("x0"),
			)},
			ast.Assign{Name: "y", Value: binary(ast.OpAdd,
				binary(ast.OpMul, fv(2.0), binary(ast.OpMul, variable("x"), variable("y"))),
				variable("y0"),
			)},
			ast.Assign{Name: "x", Value: variable("xtemp")},
			ast.Assign{Name: "iterations", Value: binary(ast.OpSub, variable("iterations"), v(1))},
		}},
	}

	columnLoop := ast.While{
		Cond: binary(ast.OpLt, variable("viewport_x"), variable("viewport_width")),
		Body: ast.Block{Children: []ast.Node{
			ast.Declare{Name: "x0", Value: binary(ast.OpAdd,
				variable("x1"),
				binary(ast.OpMul,
					binary(ast.OpSub, variable("x2"), variable("x1")),
					binary(ast.OpDiv, toFloat(variable("viewport_x")), toFloat(variable("viewport_width"))),
				),
			)},
			ast.Declare{Name: "x", Value: fv(0.0)},
			ast.Declare{Name: "y", Value: fv(0.0)},
			ast.Declare{Name: "iterations", Value: variable("max_iterations")},
			innerLoop,
			ast.Print{Children: []ast.Node{
				ast.ExtractArray{
					Expr: ast.Const{Value: ast.StrValue{V: mandelbrotRamp}},
					Idx: toInt(binary(ast.OpMul, fv(8.0),
						binary(ast.OpDiv, toFloat(variable("iterations")), toFloat(variable("max_iterations"))),
					)),
				},
			}},
			ast.Assign{Name: "viewport_x", Value: binary(ast.OpAdd, variable("viewport_x"), v(1))},
		}},
	}

	rowLoop := ast.While{
		Cond: binary(ast.OpLt, variable("viewport_y"), variable("viewport_height")),
		Body: ast.Block{Children: []ast.Node{
			ast.Declare{Name: "y0", Value: binary(ast.OpAdd,
				variable("y1"),
				binary(ast.OpMul,
					binary(ast.OpSub, variable("y2"), variable("y1")),
					binary(ast.OpDiv, toFloat(variable("viewport_y")), toFloat(variable("viewport_height"))),
				),
			)},
			ast.Declare{Name: "viewport_x", Value: v(0)},
			columnLoop,
			ast.Print{Children: []ast.Node{ast.Const{Value: ast.StrValue{V: "\n"}}}},
			ast.Assign{Name: "viewport_y", Value: binary(ast.OpAdd, variable("viewport_y"), v(1))},
		}},
	}

	return &ast.Program{
		Input:  inputTy,
		Output: ast.Unit,
		Body: ast.Block{Children: []ast.Node{
			ast.Declare{Name: "viewport_width", Value: extract(0)},
			ast.Declare{Name: "viewport_height", Value: extract(1)},
			ast.Declare{Name: "x1", Value: extract(2)},
			ast.Declare{Name: "y1", Value: extract(3)},
			ast.Declare{Name: "x2", Value: extract(4)},
			ast.Declare{Name: "y2", Value: extract(5)},
			ast.Declare{Name: "max_iterations", Value: extract(6)},
			ast.Declare{Name: "viewport_y", Value: v(0)},
			rowLoop,
		}},
	}
}
