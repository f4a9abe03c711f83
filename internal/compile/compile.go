// Package compile implements thunklang's specializing compiler: a single
// ahead-of-invocation walk that type-checks a Program's body and produces a
// tree of composed closures ("thunks") a later invocation runs directly,
// with no further type dispatch. internal/eval implements the other
// execution strategy; both must agree on every program that compiles (P1).
package compile

import (
	"github.com/thunklang/thunklang/internal/ast"
	thunkerrors "github.com/thunklang/thunklang/internal/errors"
	"github.com/thunklang/thunklang/internal/ops"
)

// Thunk is a compiled node: given the call's RuntimeContext, it produces a
// Value whose reflected Type equals the Type the compiler associated with
// the node at compile time, or the first runtime-only dynamic error (a
// string index out of bounds, or a failed write to the Print sink — the
// failures the compile pass cannot rule out ahead of time). Thunks are composed by capture: a parent thunk
// owns the child thunks it invokes and short-circuits on their error.
type Thunk func(*RuntimeContext) (ast.Value, error)

// RuntimeContext is the flat, fixed-size value stack one invocation runs
// against. Slot 0 always holds the packed input.
type RuntimeContext struct {
	stack []ast.Value
}

func newRuntimeContext(size int, input ast.Value) *RuntimeContext {
	stack := make([]ast.Value, size)
	for i := range stack {
		stack[i] = ast.UnitValue{}
	}
	stack[0] = input
	return &RuntimeContext{stack: stack}
}

// compilationContext is the compile-time twin of RuntimeContext: the
// ordered list of slot types allocated so far, and the name-to-slot map.
// Scoping is flat — there are no nested lexical scopes, so allocate never
// reclaims a slot and a name always resolves to the same slot for the rest
// of the compile pass once declared.
type compilationContext struct {
	stack []ast.Type
	vars  map[ast.Name]int
}

func newCompilationContext(input ast.Type) *compilationContext {
	ctx := &compilationContext{vars: map[ast.Name]int{}}
	ctx.allocate(ast.InputName, input)
	return ctx
}

func (c *compilationContext) allocate(name ast.Name, ty ast.Type) (int, error) {
	if _, exists := c.vars[name]; exists {
		return 0, thunkerrors.Staticf("variable %q has already been defined", name)
	}
	id := len(c.stack)
	c.stack = append(c.stack, ty)
	c.vars[name] = id
	return id, nil
}

// Compiled is a specialized program: a thunk ready to run, plus the stack
// size an invocation must allocate.
type Compiled struct {
	Thunk     Thunk
	StackSize int
}

// Compile type-checks prog's body and produces a Compiled program, or the
// first static type error encountered. prog.Output is checked against the
// body's inferred type before returning.
func Compile(prog *ast.Program) (*Compiled, error) {
	ctx := newCompilationContext(prog.Input)

	ty, thunk, err := compileNode(prog.Body, ctx)
	if err != nil {
		return nil, err
	}
	if !ty.Equal(prog.Output) {
		return nil, thunkerrors.Staticf("program declared to return %s, but in reality it returns %s", prog.Output, ty)
	}

	return &Compiled{Thunk: thunk, StackSize: len(ctx.stack)}, nil
}

// Run executes a Compiled program against a packed input Value.
func (c *Compiled) Run(input ast.Value) (ast.Value, error) {
	rc := newRuntimeContext(c.StackSize, input)
	return c.Thunk(rc)
}

func compileNode(node ast.Node, ctx *compilationContext) (ast.Type, Thunk, error) {
	switch n := node.(type) {
	case ast.Const:
		return compileConst(n)
	case ast.Var:
		return compileVar(n, ctx)
	case ast.ExtractTuple:
		return compileExtractTuple(n, ctx)
	case ast.ExtractArray:
		return compileExtractArray(n, ctx)
	case ast.Cast:
		return compileCast(n, ctx)
	case ast.Binary:
		return compileBinary(n, ctx)
	case ast.Declare:
		return compileDeclare(n, ctx)
	case ast.Assign:
		return compileAssign(n, ctx)
	case ast.While:
		return compileWhile(n, ctx)
	case ast.Print:
		return compilePrint(n, ctx)
	case ast.Block:
		return compileBlock(n, ctx)
	default:
		return ast.Type{}, nil, thunkerrors.Staticf("unknown node type %T", node)
	}
}

func compileConst(n ast.Const) (ast.Type, Thunk, error) {
	value := n.Value
	return value.TypeOf(), func(*RuntimeContext) (ast.Value, error) {
		return value.Clone(), nil
	}, nil
}

func compileVar(n ast.Var, ctx *compilationContext) (ast.Type, Thunk, error) {
	id, ok := ctx.vars[n.Name]
	if !ok {
		return ast.Type{}, nil, thunkerrors.Staticf("unknown variable: %s", n.Name)
	}
	ty := ctx.stack[id]
	return ty, func(rc *RuntimeContext) (ast.Value, error) {
		return rc.stack[id].Clone(), nil
	}, nil
}

func compileExtractTuple(n ast.ExtractTuple, ctx *compilationContext) (ast.Type, Thunk, error) {
	ty, thunk, err := compileNode(n.Expr, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	if ty.Kind != ast.KindTuple {
		return ast.Type{}, nil, thunkerrors.Staticf("invalid type: %s is not a tuple", ty)
	}
	if n.Idx < 0 || n.Idx >= len(ty.Elems) {
		return ast.Type{}, nil, thunkerrors.Staticf("invalid subscript: tuple %s doesn't have element .%d", ty, n.Idx)
	}
	elemTy := ty.Elems[n.Idx]
	idx := n.Idx
	return elemTy, func(rc *RuntimeContext) (ast.Value, error) {
		v, err := thunk(rc)
		if err != nil {
			return nil, err
		}
		return v.(ast.TupleValue).Elems[idx].Clone(), nil
	}, nil
}

func compileExtractArray(n ast.ExtractArray, ctx *compilationContext) (ast.Type, Thunk, error) {
	exprTy, exprThunk, err := compileNode(n.Expr, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	idxTy, idxThunk, err := compileNode(n.Idx, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	if !exprTy.Equal(ast.Str) {
		return ast.Type{}, nil, thunkerrors.Staticf("invalid type: expected str, got %s", exprTy)
	}
	if !idxTy.Equal(ast.Int) {
		return ast.Type{}, nil, thunkerrors.Staticf("invalid type: expected int, got %s", idxTy)
	}

	return ast.Char, func(rc *RuntimeContext) (ast.Value, error) {
		ev, err := exprThunk(rc)
		if err != nil {
			return nil, err
		}
		iv, err := idxThunk(rc)
		if err != nil {
			return nil, err
		}
		runes := []rune(ev.(ast.StrValue).V)
		idx := iv.(ast.IntValue).V
		if idx < 0 || idx >= int64(len(runes)) {
			return nil, thunkerrors.Dynamicf("index out of bounds")
		}
		return ast.CharValue{V: runes[idx]}, nil
	}, nil
}

func compileCast(n ast.Cast, ctx *compilationContext) (ast.Type, Thunk, error) {
	sourceTy, exprThunk, err := compileNode(n.Expr, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}

	switch {
	case sourceTy.Equal(ast.Int) && n.Target.Equal(ast.Float):
		return ast.Float, func(rc *RuntimeContext) (ast.Value, error) {
			v, err := exprThunk(rc)
			if err != nil {
				return nil, err
			}
			return ast.FloatValue{V: float32(v.(ast.IntValue).V)}, nil
		}, nil
	case sourceTy.Equal(ast.Float) && n.Target.Equal(ast.Int):
		return ast.Int, func(rc *RuntimeContext) (ast.Value, error) {
			v, err := exprThunk(rc)
			if err != nil {
				return nil, err
			}
			return ast.IntValue{V: int64(v.(ast.FloatValue).V)}, nil
		}, nil
	default:
		return ast.Type{}, nil, thunkerrors.Staticf("cannot cast %s to %s", sourceTy, n.Target)
	}
}

func compileBinary(n ast.Binary, ctx *compilationContext) (ast.Type, Thunk, error) {
	lhsTy, lhsThunk, err := compileNode(n.LHS, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	rhsTy, rhsThunk, err := compileNode(n.RHS, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}

	cell, ok := ops.Lookup(lhsTy, n.Op, rhsTy)
	if !ok {
		return ast.Type{}, nil, ops.UnknownOperationError(thunkerrors.CategoryStatic, lhsTy, n.Op, rhsTy)
	}
	apply := cell.Apply
	return cell.Result, func(rc *RuntimeContext) (ast.Value, error) {
		lv, err := lhsThunk(rc)
		if err != nil {
			return nil, err
		}
		rv, err := rhsThunk(rc)
		if err != nil {
			return nil, err
		}
		return apply(lv, rv), nil
	}, nil
}

func compileDeclare(n ast.Declare, ctx *compilationContext) (ast.Type, Thunk, error) {
	ty, valueThunk, err := compileNode(n.Value, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	id, err := ctx.allocate(n.Name, ty)
	if err != nil {
		return ast.Type{}, nil, err
	}
	return ast.Unit, func(rc *RuntimeContext) (ast.Value, error) {
		v, err := valueThunk(rc)
		if err != nil {
			return nil, err
		}
		rc.stack[id] = v
		return ast.UnitValue{}, nil
	}, nil
}

func compileAssign(n ast.Assign, ctx *compilationContext) (ast.Type, Thunk, error) {
	if n.Name == ast.InputName {
		return ast.Type{}, nil, thunkerrors.Staticf("%q variable is read-only", ast.InputName)
	}

	id, ok := ctx.vars[n.Name]
	if !ok {
		return ast.Type{}, nil, thunkerrors.Staticf("unknown variable: %s", n.Name)
	}
	slotTy := ctx.stack[id]

	valueTy, valueThunk, err := compileNode(n.Value, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	if !valueTy.Equal(slotTy) {
		return ast.Type{}, nil, thunkerrors.Staticf("type mismatch: cannot assign %s to %s", valueTy, slotTy)
	}

	return ast.Unit, func(rc *RuntimeContext) (ast.Value, error) {
		v, err := valueThunk(rc)
		if err != nil {
			return nil, err
		}
		rc.stack[id] = v
		return ast.UnitValue{}, nil
	}, nil
}

func compileWhile(n ast.While, ctx *compilationContext) (ast.Type, Thunk, error) {
	condTy, condThunk, err := compileNode(n.Cond, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}
	if !condTy.Equal(ast.Bool) {
		return ast.Type{}, nil, thunkerrors.Staticf("type mismatch: loop's condition was expected to be bool, got %s", condTy)
	}

	_, bodyThunk, err := compileNode(n.Body, ctx)
	if err != nil {
		return ast.Type{}, nil, err
	}

	return ast.Unit, func(rc *RuntimeContext) (ast.Value, error) {
		for {
			cv, err := condThunk(rc)
			if err != nil {
				return nil, err
			}
			if !cv.(ast.BoolValue).V {
				return ast.UnitValue{}, nil
			}
			if _, err := bodyThunk(rc); err != nil {
				return nil, err
			}
		}
	}, nil
}

func compilePrint(n ast.Print, ctx *compilationContext) (ast.Type, Thunk, error) {
	thunks := make([]Thunk, len(n.Children))
	for i, child := range n.Children {
		_, thunk, err := compileNode(child, ctx)
		if err != nil {
			return ast.Type{}, nil, err
		}
		thunks[i] = thunk
	}

	return ast.Unit, func(rc *RuntimeContext) (ast.Value, error) {
		for _, thunk := range thunks {
			v, err := thunk(rc)
			if err != nil {
				return nil, err
			}
			if err := v.Render(ast.Output); err != nil {
				return nil, thunkerrors.Wrap(thunkerrors.CategoryDynamic, err, "print failed")
			}
		}
		return ast.UnitValue{}, nil
	}, nil
}

func compileBlock(n ast.Block, ctx *compilationContext) (ast.Type, Thunk, error) {
	thunks := make([]Thunk, len(n.Children))
	resultTy := ast.Unit
	for i, child := range n.Children {
		ty, thunk, err := compileNode(child, ctx)
		if err != nil {
			return ast.Type{}, nil, err
		}
		thunks[i] = thunk
		resultTy = ty
	}

	return resultTy, func(rc *RuntimeContext) (ast.Value, error) {
		var result ast.Value = ast.UnitValue{}
		for _, thunk := range thunks {
			v, err := thunk(rc)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	}, nil
}
