package ast

// Program is the root of a thunklang program: its declared input/output
// types and its body. Programs are constructed directly as trees — there is
// no textual syntax to parse them from.
type Program struct {
	Input  Type
	Output Type
	Body   Node
}
