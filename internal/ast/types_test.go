package ast

import "testing"

func TestTypeEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"int==int", Int, Int, true},
		{"int!=float", Int, Float, false},
		{"tuple same shape", Tuple(Int, Str), Tuple(Int, Str), true},
		{"tuple different shape", Tuple(Int, Str), Tuple(Str, Int), false},
		{"tuple different arity", Tuple(Int), Tuple(Int, Int), false},
		{"nested tuple", Tuple(Tuple(Int, Bool), Char), Tuple(Tuple(Int, Bool), Char), true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.equal {
				t.Errorf("%s.Equal(%s) = %v, want %v", c.a, c.b, got, c.equal)
			}
		})
	}
}

func TestTypeString(t *testing.T) {
	if got, want := Tuple(Int, Str).String(), "tuple(int, str)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := Unit.String(), "unit"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
