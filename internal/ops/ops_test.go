package ops

import (
	"math"
	"testing"

	"github.com/thunklang/thunklang/internal/ast"
)

func TestLookupIntArithmetic(t *testing.T) {
	cell, ok := Lookup(ast.Int, ast.OpAdd, ast.Int)
	if !ok {
		t.Fatal("Lookup(int, +, int) should be defined")
	}
	if !cell.Result.Equal(ast.Int) {
		t.Errorf("result type = %s, want int", cell.Result)
	}
	got := cell.Apply(ast.IntValue{V: 2}, ast.IntValue{V: 3})
	if got.(ast.IntValue).V != 5 {
		t.Errorf("2 + 3 = %v, want 5", got)
	}
}

func TestLookupComparisonReturnsBool(t *testing.T) {
	cell, ok := Lookup(ast.Float, ast.OpLt, ast.Float)
	if !ok {
		t.Fatal("Lookup(float, <, float) should be defined")
	}
	if !cell.Result.Equal(ast.Bool) {
		t.Errorf("result type = %s, want bool", cell.Result)
	}
	got := cell.Apply(ast.FloatValue{V: 1}, ast.FloatValue{V: 2})
	if !got.(ast.BoolValue).V {
		t.Errorf("1.0 < 2.0 should be true")
	}
}

func TestLookupRejectsMismatchedOperands(t *testing.T) {
	if _, ok := Lookup(ast.Int, ast.OpAdd, ast.Float); ok {
		t.Error("Lookup(int, +, float) should be undefined")
	}
}

func TestLookupRejectsUnsupportedKinds(t *testing.T) {
	unsupported := []ast.Type{ast.Str, ast.Char, ast.Unit, ast.Tuple(ast.Int)}
	for _, ty := range unsupported {
		if _, ok := Lookup(ty, ast.OpAdd, ty); ok {
			t.Errorf("Lookup(%s, +, %s) should be undefined", ty, ty)
		}
	}
}

func TestLookupRejectsUndefinedOperatorForKind(t *testing.T) {
	if _, ok := Lookup(ast.Bool, ast.OpAdd, ast.Bool); ok {
		t.Error("Lookup(bool, +, bool) should be undefined")
	}
}

func TestFloatMod(t *testing.T) {
	cell, ok := Lookup(ast.Float, ast.OpMod, ast.Float)
	if !ok {
		t.Fatal("Lookup(float, %, float) should be defined")
	}
	got := cell.Apply(ast.FloatValue{V: 5.5}, ast.FloatValue{V: 2})
	if got.(ast.FloatValue).V != 1.5 {
		t.Errorf("5.5 %% 2.0 = %v, want 1.5", got)
	}
}

func TestFloatModIEEESemantics(t *testing.T) {
	cell, ok := Lookup(ast.Float, ast.OpMod, ast.Float)
	if !ok {
		t.Fatal("Lookup(float, %, float) should be defined")
	}

	cases := []struct {
		name    string
		l, r    float32
		wantNaN bool
		want    float32
	}{
		{name: "mod by zero is NaN", l: 1.0, r: 0.0, wantNaN: true},
		{name: "infinity is NaN", l: float32(math.Inf(1)), r: 2.0, wantNaN: true},
		// 3e19 exceeds int64's range (~9.2e18), the classic failure mode of
		// computing remainder via int64(x/y)*y; it's still an exact integer
		// in float32 (every float32 past 2^24 is), so mod 1.0 is exactly 0.
		{name: "large magnitude doesn't overflow int64", l: 3e19, r: 1.0, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := cell.Apply(ast.FloatValue{V: tc.l}, ast.FloatValue{V: tc.r}).(ast.FloatValue).V
			if tc.wantNaN {
				if !math.IsNaN(float64(got)) {
					t.Errorf("%v %% %v = %v, want NaN", tc.l, tc.r, got)
				}
				return
			}
			if got != tc.want {
				t.Errorf("%v %% %v = %v, want %v", tc.l, tc.r, got, tc.want)
			}
		})
	}
}
