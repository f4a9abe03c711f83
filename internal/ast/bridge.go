package ast

import (
	"fmt"
	"reflect"
)

// HostChar stands in for a host "char". Go's rune is only a type alias for
// int32, so a plain int32 argument would be indistinguishable by reflection
// from a host value meant to advertise Char; HostChar is a distinct named
// type so GuestType/Pack/Unpack can tell the two apart. A bare int32 (or
// int64) advertises Int; a HostChar advertises Char.
type HostChar int32

var (
	valueType    = reflect.TypeOf((*Value)(nil)).Elem()
	hostCharType = reflect.TypeOf(HostChar(0))
)

// GuestType reports the guest Type that host type T advertises, and whether
// T advertises a type at all. T == Value is the "pass-through" case: it
// declines to advertise, so Evaluate/Specialize skip the signature check for
// that side of the call. A host struct with 1 to 10 exported fields, each
// itself advertising, advertises the corresponding Tuple type; a struct with
// zero fields advertises Unit.
func GuestType[T any]() (Type, bool) {
	var zero T
	return guestTypeOf(reflect.TypeOf(&zero).Elem())
}

func guestTypeOf(rt reflect.Type) (Type, bool) {
	if rt == valueType {
		return Type{}, false
	}

	switch rt.Kind() {
	case reflect.Bool:
		return Bool, true
	case reflect.Int32:
		if rt == hostCharType {
			return Char, true
		}
		return Int, true
	case reflect.Int64:
		return Int, true
	case reflect.Float32:
		return Float, true
	case reflect.Float64:
		return Float, true
	case reflect.String:
		return Str, true
	case reflect.Struct:
		n := rt.NumField()
		if n == 0 {
			return Unit, true
		}
		if n > 10 {
			return Type{}, false
		}
		elems := make([]Type, n)
		for i := 0; i < n; i++ {
			field := rt.Field(i)
			if !field.IsExported() {
				return Type{}, false
			}
			et, ok := guestTypeOf(field.Type)
			if !ok {
				// Tuples containing non-advertising elements (e.g. a bare
				// Value field) are themselves not advertised, rather than a
				// hard failure: thunklang simply skips the pre-call
				// signature check for that argument, same as the bare
				// pass-through case above.
				return Type{}, false
			}
			elems[i] = et
		}
		return Tuple(elems...), true
	default:
		return Type{}, false
	}
}

// Pack converts a host value of type T into a guest Value. T == Value packs
// unchanged (the pass-through case). A host struct with 1 to 10 exported
// fields packs into a Tuple; an empty struct packs into Unit.
func Pack[T any](v T) (Value, error) {
	return packReflect(reflect.ValueOf(v))
}

func packReflect(rv reflect.Value) (Value, error) {
	if !rv.IsValid() {
		return UnitValue{}, nil
	}

	if val, ok := rv.Interface().(Value); ok {
		return val, nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		return BoolValue{V: rv.Bool()}, nil
	case reflect.Int32:
		if rv.Type() == hostCharType {
			return CharValue{V: rune(rv.Int())}, nil
		}
		return IntValue{V: rv.Int()}, nil
	case reflect.Int64:
		return IntValue{V: rv.Int()}, nil
	case reflect.Float32:
		return FloatValue{V: float32(rv.Float())}, nil
	case reflect.Float64:
		return FloatValue{V: float32(rv.Float())}, nil
	case reflect.String:
		return StrValue{V: rv.String()}, nil
	case reflect.Struct:
		n := rv.NumField()
		if n == 0 {
			return UnitValue{}, nil
		}
		if n > 10 {
			return nil, fmt.Errorf("thunklang: host tuple %s has %d fields, at most 10 are supported", rv.Type(), n)
		}
		elems := make([]Value, n)
		for i := 0; i < n; i++ {
			elem, err := packReflect(rv.Field(i))
			if err != nil {
				return nil, err
			}
			elems[i] = elem
		}
		return TupleValue{Elems: elems}, nil
	default:
		return nil, fmt.Errorf("thunklang: unsupported host type %s", rv.Type())
	}
}

// Unpack converts a guest Value into host type T, erroring if v's variant
// does not match T's shape (a dynamic error per spec.md §7). T == Value
// unpacks unchanged.
func Unpack[T any](v Value) (T, error) {
	var zero T
	rt := reflect.TypeOf(&zero).Elem()

	rv, err := unpackReflect(v, rt)
	if err != nil {
		return zero, err
	}

	out, ok := rv.Interface().(T)
	if !ok {
		return zero, fmt.Errorf("thunklang: cannot unpack %s into %s", v.TypeOf(), rt)
	}
	return out, nil
}

func unpackReflect(v Value, rt reflect.Type) (reflect.Value, error) {
	if rt == valueType {
		return reflect.ValueOf(v), nil
	}

	switch rt.Kind() {
	case reflect.Bool:
		bv, ok := v.(BoolValue)
		if !ok {
			return reflect.Value{}, mismatchError(Bool, v)
		}
		return reflect.ValueOf(bv.V), nil

	case reflect.Int32:
		if rt == hostCharType {
			cv, ok := v.(CharValue)
			if !ok {
				return reflect.Value{}, mismatchError(Char, v)
			}
			return reflect.ValueOf(HostChar(cv.V)), nil
		}
		iv, ok := v.(IntValue)
		if !ok {
			return reflect.Value{}, mismatchError(Int, v)
		}
		return reflect.ValueOf(int32(iv.V)), nil

	case reflect.Int64:
		iv, ok := v.(IntValue)
		if !ok {
			return reflect.Value{}, mismatchError(Int, v)
		}
		return reflect.ValueOf(iv.V), nil

	case reflect.Float32:
		fv, ok := v.(FloatValue)
		if !ok {
			return reflect.Value{}, mismatchError(Float, v)
		}
		return reflect.ValueOf(fv.V), nil

	case reflect.Float64:
		fv, ok := v.(FloatValue)
		if !ok {
			return reflect.Value{}, mismatchError(Float, v)
		}
		return reflect.ValueOf(float64(fv.V)), nil

	case reflect.String:
		sv, ok := v.(StrValue)
		if !ok {
			return reflect.Value{}, mismatchError(Str, v)
		}
		return reflect.ValueOf(sv.V), nil

	case reflect.Struct:
		n := rt.NumField()
		if n == 0 {
			if _, ok := v.(UnitValue); !ok {
				return reflect.Value{}, mismatchError(Unit, v)
			}
			return reflect.New(rt).Elem(), nil
		}

		tv, ok := v.(TupleValue)
		if !ok || len(tv.Elems) != n {
			return reflect.Value{}, fmt.Errorf("thunklang: cannot unpack %s into a %d-field host tuple", v.TypeOf(), n)
		}

		out := reflect.New(rt).Elem()
		for i := 0; i < n; i++ {
			fv, err := unpackReflect(tv.Elems[i], rt.Field(i).Type)
			if err != nil {
				return reflect.Value{}, err
			}
			out.Field(i).Set(fv)
		}
		return out, nil

	default:
		return reflect.Value{}, fmt.Errorf("thunklang: unsupported host type %s", rt)
	}
}

func mismatchError(want Type, got Value) error {
	return fmt.Errorf("thunklang: expected a %s value, got %s", want, got.TypeOf())
}
