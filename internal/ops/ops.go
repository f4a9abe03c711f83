// Package ops holds the binary operator dispatch table shared by the
// evaluator (internal/eval) and the compiler (internal/compile): one table,
// so the two execution strategies can never disagree about what a given
// (operand type, operator, operand type) triple means (spec.md §4.5, and
// P1 — dual equivalence — depends on it).
package ops

import (
	"math"

	"github.com/thunklang/thunklang/internal/ast"
	thunkerrors "github.com/thunklang/thunklang/internal/errors"
)

// Fn computes a binary operator's result given both already-evaluated
// operands. Operands are guaranteed to match the Cell's declared operand
// kind by the time Fn runs; Fn itself never type-checks.
type Fn func(lhs, rhs ast.Value) ast.Value

// Cell is one entry of the dispatch table: the result type an operator
// produces for a given pair of equal operand kinds, plus the function that
// computes it.
type Cell struct {
	Result ast.Type
	Apply  Fn
}

type key struct {
	Operand ast.Kind
	Op      ast.Op
}

var table = map[key]Cell{
	{ast.KindBool, ast.OpAnd}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.BoolValue).V && r.(ast.BoolValue).V}
	}},
	{ast.KindBool, ast.OpOr}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.BoolValue).V || r.(ast.BoolValue).V}
	}},
	{ast.KindBool, ast.OpEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.BoolValue).V == r.(ast.BoolValue).V}
	}},
	{ast.KindBool, ast.OpNeq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.BoolValue).V != r.(ast.BoolValue).V}
	}},

	{ast.KindInt, ast.OpAdd}: {ast.Int, func(l, r ast.Value) ast.Value {
		return ast.IntValue{V: l.(ast.IntValue).V + r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpSub}: {ast.Int, func(l, r ast.Value) ast.Value {
		return ast.IntValue{V: l.(ast.IntValue).V - r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpMul}: {ast.Int, func(l, r ast.Value) ast.Value {
		return ast.IntValue{V: l.(ast.IntValue).V * r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpDiv}: {ast.Int, func(l, r ast.Value) ast.Value {
		return ast.IntValue{V: l.(ast.IntValue).V / r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpMod}: {ast.Int, func(l, r ast.Value) ast.Value {
		return ast.IntValue{V: l.(ast.IntValue).V % r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.IntValue).V == r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpNeq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.IntValue).V != r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpGt}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.IntValue).V > r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpGtEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.IntValue).V >= r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpLt}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.IntValue).V < r.(ast.IntValue).V}
	}},
	{ast.KindInt, ast.OpLtEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.IntValue).V <= r.(ast.IntValue).V}
	}},

	{ast.KindFloat, ast.OpAdd}: {ast.Float, func(l, r ast.Value) ast.Value {
		return ast.FloatValue{V: l.(ast.FloatValue).V + r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpSub}: {ast.Float, func(l, r ast.Value) ast.Value {
		return ast.FloatValue{V: l.(ast.FloatValue).V - r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpMul}: {ast.Float, func(l, r ast.Value) ast.Value {
		return ast.FloatValue{V: l.(ast.FloatValue).V * r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpDiv}: {ast.Float, func(l, r ast.Value) ast.Value {
		return ast.FloatValue{V: l.(ast.FloatValue).V / r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpMod}: {ast.Float, func(l, r ast.Value) ast.Value {
		lv, rv := l.(ast.FloatValue).V, r.(ast.FloatValue).V
		return ast.FloatValue{V: float32(math.Mod(float64(lv), float64(rv)))}
	}},
	{ast.KindFloat, ast.OpEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.FloatValue).V == r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpNeq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.FloatValue).V != r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpGt}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.FloatValue).V > r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpGtEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.FloatValue).V >= r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpLt}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.FloatValue).V < r.(ast.FloatValue).V}
	}},
	{ast.KindFloat, ast.OpLtEq}: {ast.Bool, func(l, r ast.Value) ast.Value {
		return ast.BoolValue{V: l.(ast.FloatValue).V <= r.(ast.FloatValue).V}
	}},
}

// Lookup finds the dispatch cell for (lhsType, op, rhsType). Both operand
// types must be identical and must be one of Bool, Int, or Float — every
// other combination (including any Tuple, Str, Char, or Unit operand, and
// any mismatched pair) is not in the table and returns ok == false, the
// signal both internal/eval and internal/compile turn into a CategoryStatic
// (compiler) or CategoryDynamic (evaluator) error.
func Lookup(lhsType ast.Type, op ast.Op, rhsType ast.Type) (Cell, bool) {
	if !lhsType.Equal(rhsType) {
		return Cell{}, false
	}
	cell, ok := table[key{lhsType.Kind, op}]
	return cell, ok
}

// UnknownOperationError builds the CategoryStatic/CategoryDynamic-flavored
// message both executors use when Lookup fails, so the wording stays
// identical between them (P1).
func UnknownOperationError(category thunkerrors.Category, lhsType ast.Type, op ast.Op, rhsType ast.Type) *thunkerrors.Error {
	return thunkerrors.New(category, "unknown operation %s %s %s", lhsType, op, rhsType)
}
