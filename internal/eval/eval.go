// Package eval implements thunklang's tree-walking evaluator: the direct,
// un-optimized execution strategy that walks a Program's body once per
// call, re-interpreting every node. internal/compile implements the other
// strategy; both must agree on every program that compiles (P1).
package eval

import (
	"github.com/thunklang/thunklang/internal/ast"
	thunkerrors "github.com/thunklang/thunklang/internal/errors"
	"github.com/thunklang/thunklang/internal/ops"
)

// environment is the flat name → value binding table a call evaluates
// against. There are no nested lexical scopes (spec.md §4.4's slot
// allocator is flat, and the evaluator mirrors that even though it has no
// slots of its own).
type environment map[ast.Name]ast.Value

// Eval evaluates prog's body against input, already packed into a guest
// Value, returning the body's result or the first fatal error encountered.
func Eval(prog *ast.Program, input ast.Value) (ast.Value, error) {
	declared := map[ast.Name]bool{ast.InputName: true}
	if err := checkDuplicateDeclares(prog.Body, declared); err != nil {
		return nil, err
	}

	env := environment{ast.InputName: input}
	return evalNode(prog.Body, env)
}

// checkDuplicateDeclares walks prog's body once, statically, the same way
// internal/compile's compilationContext.allocate walks it: each Declare
// node is visited exactly once regardless of how many times a While body
// containing it later re-executes at run time, so re-declaring inside a
// loop is fine (it's the same occurrence writing the same binding again)
// while two sibling Declares of the same name is not (two distinct
// occurrences claiming one name). Without this static pass, evalDeclare
// would have to tell those two cases apart dynamically and could not.
func checkDuplicateDeclares(node ast.Node, declared map[ast.Name]bool) error {
	switch n := node.(type) {
	case ast.Const, ast.Var:
		return nil
	case ast.ExtractTuple:
		return checkDuplicateDeclares(n.Expr, declared)
	case ast.ExtractArray:
		if err := checkDuplicateDeclares(n.Expr, declared); err != nil {
			return err
		}
		return checkDuplicateDeclares(n.Idx, declared)
	case ast.Cast:
		return checkDuplicateDeclares(n.Expr, declared)
	case ast.Binary:
		if err := checkDuplicateDeclares(n.LHS, declared); err != nil {
			return err
		}
		return checkDuplicateDeclares(n.RHS, declared)
	case ast.Declare:
		if err := checkDuplicateDeclares(n.Value, declared); err != nil {
			return err
		}
		if declared[n.Name] {
			return thunkerrors.Dynamicf("variable %q has already been defined", n.Name)
		}
		declared[n.Name] = true
		return nil
	case ast.Assign:
		return checkDuplicateDeclares(n.Value, declared)
	case ast.While:
		if err := checkDuplicateDeclares(n.Cond, declared); err != nil {
			return err
		}
		return checkDuplicateDeclares(n.Body, declared)
	case ast.Print:
		for _, child := range n.Children {
			if err := checkDuplicateDeclares(child, declared); err != nil {
				return err
			}
		}
		return nil
	case ast.Block:
		for _, child := range n.Children {
			if err := checkDuplicateDeclares(child, declared); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func evalNode(node ast.Node, env environment) (ast.Value, error) {
	switch n := node.(type) {
	case ast.Const:
		return n.Value.Clone(), nil
	case ast.Var:
		return evalVar(n, env)
	case ast.ExtractTuple:
		return evalExtractTuple(n, env)
	case ast.ExtractArray:
		return evalExtractArray(n, env)
	case ast.Cast:
		return evalCast(n, env)
	case ast.Binary:
		return evalBinary(n, env)
	case ast.Declare:
		return evalDeclare(n, env)
	case ast.Assign:
		return evalAssign(n, env)
	case ast.While:
		return evalWhile(n, env)
	case ast.Print:
		return evalPrint(n, env)
	case ast.Block:
		return evalBlock(n, env)
	default:
		return nil, thunkerrors.Dynamicf("unknown node type %T", node)
	}
}

func evalVar(n ast.Var, env environment) (ast.Value, error) {
	v, ok := env[n.Name]
	if !ok {
		return nil, thunkerrors.Dynamicf("cannot find variable %q", n.Name)
	}
	return v.Clone(), nil
}

func evalExtractTuple(n ast.ExtractTuple, env environment) (ast.Value, error) {
	v, err := evalNode(n.Expr, env)
	if err != nil {
		return nil, err
	}
	tv, ok := v.(ast.TupleValue)
	if !ok {
		return nil, thunkerrors.Dynamicf("invalid type: %s is not a tuple", v.TypeOf())
	}
	if n.Idx < 0 || n.Idx >= len(tv.Elems) {
		return nil, thunkerrors.Dynamicf("invalid subscript: tuple %s doesn't have element .%d", v.TypeOf(), n.Idx)
	}
	return tv.Elems[n.Idx].Clone(), nil
}

func evalExtractArray(n ast.ExtractArray, env environment) (ast.Value, error) {
	ev, err := evalNode(n.Expr, env)
	if err != nil {
		return nil, err
	}
	sv, ok := ev.(ast.StrValue)
	if !ok {
		return nil, thunkerrors.Dynamicf("invalid type: expected str, got %s", ev.TypeOf())
	}

	iv, err := evalNode(n.Idx, env)
	if err != nil {
		return nil, err
	}
	idx, ok := iv.(ast.IntValue)
	if !ok {
		return nil, thunkerrors.Dynamicf("invalid type: expected int, got %s", iv.TypeOf())
	}

	runes := []rune(sv.V)
	if idx.V < 0 || idx.V >= int64(len(runes)) {
		return nil, thunkerrors.Dynamicf("index out of bounds")
	}
	return ast.CharValue{V: runes[idx.V]}, nil
}

func evalCast(n ast.Cast, env environment) (ast.Value, error) {
	v, err := evalNode(n.Expr, env)
	if err != nil {
		return nil, err
	}

	switch {
	case v.TypeOf().Equal(ast.Int) && n.Target.Equal(ast.Float):
		return ast.FloatValue{V: float32(v.(ast.IntValue).V)}, nil
	case v.TypeOf().Equal(ast.Float) && n.Target.Equal(ast.Int):
		return ast.IntValue{V: int64(v.(ast.FloatValue).V)}, nil
	default:
		return nil, thunkerrors.Dynamicf("cannot cast %s to %s", v.TypeOf(), n.Target)
	}
}

func evalBinary(n ast.Binary, env environment) (ast.Value, error) {
	lhs, err := evalNode(n.LHS, env)
	if err != nil {
		return nil, err
	}
	rhs, err := evalNode(n.RHS, env)
	if err != nil {
		return nil, err
	}

	cell, ok := ops.Lookup(lhs.TypeOf(), n.Op, rhs.TypeOf())
	if !ok {
		return nil, ops.UnknownOperationError(thunkerrors.CategoryDynamic, lhs.TypeOf(), n.Op, rhs.TypeOf())
	}
	return cell.Apply(lhs, rhs), nil
}

func evalDeclare(n ast.Declare, env environment) (ast.Value, error) {
	v, err := evalNode(n.Value, env)
	if err != nil {
		return nil, err
	}
	env[n.Name] = v
	return ast.UnitValue{}, nil
}

func evalAssign(n ast.Assign, env environment) (ast.Value, error) {
	if n.Name == ast.InputName {
		return nil, thunkerrors.Dynamicf("%q variable is read-only", ast.InputName)
	}

	curr, ok := env[n.Name]
	if !ok {
		return nil, thunkerrors.Dynamicf("cannot find variable %q", n.Name)
	}

	v, err := evalNode(n.Value, env)
	if err != nil {
		return nil, err
	}

	if !v.TypeOf().Equal(curr.TypeOf()) {
		return nil, thunkerrors.Dynamicf("cannot assign %s to a variable of type %s", v.TypeOf(), curr.TypeOf())
	}

	env[n.Name] = v
	return ast.UnitValue{}, nil
}

func evalWhile(n ast.While, env environment) (ast.Value, error) {
	for {
		cv, err := evalNode(n.Cond, env)
		if err != nil {
			return nil, err
		}
		bv, ok := cv.(ast.BoolValue)
		if !ok {
			return nil, thunkerrors.Dynamicf("invalid type: loop's condition was expected to be bool, got %s", cv.TypeOf())
		}
		if !bv.V {
			return ast.UnitValue{}, nil
		}
		if _, err := evalNode(n.Body, env); err != nil {
			return nil, err
		}
	}
}

func evalPrint(n ast.Print, env environment) (ast.Value, error) {
	for _, child := range n.Children {
		v, err := evalNode(child, env)
		if err != nil {
			return nil, err
		}
		if err := v.Render(ast.Output); err != nil {
			return nil, thunkerrors.Wrap(thunkerrors.CategoryDynamic, err, "print failed")
		}
	}
	return ast.UnitValue{}, nil
}

func evalBlock(n ast.Block, env environment) (ast.Value, error) {
	var result ast.Value = ast.UnitValue{}
	for _, child := range n.Children {
		v, err := evalNode(child, env)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}
