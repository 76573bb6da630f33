package ndarray

import (
	"fmt"
	"reflect"
	"time"

	"github.com/x448/float16"

	"github.com/reoring/gondarray/dtype"
)

// FromAny coerces an arbitrary Go value into an Array, best effort:
// existing arrays pass through, nested slices become n-d arrays with an
// inferred element kind, anything scalar becomes a rank-0 array. Ragged
// nesting is an error.
func FromAny(v any) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}
	dims, flat, err := walk(v)
	if err != nil {
		return nil, err
	}
	// A bare value of an unrecognized type is not an array; inside a
	// list it would be an object-array element, on its own it is junk.
	if len(dims) == 0 && KindOf(flat[0]) == dtype.Object {
		return nil, fmt.Errorf("ndarray: cannot coerce %T to an array", v)
	}
	return New(inferKind(v, flat), dims, flat)
}

// FromAnyAs is FromAny with a caller-supplied element kind, used when
// reconstructing arrays from round-trip descriptors that record a dtype.
func FromAnyAs(kind dtype.Kind, v any) (*Array, error) {
	if a, ok := v.(*Array); ok && a.kind == kind {
		return a, nil
	}
	dims, flat, err := walk(v)
	if err != nil {
		return nil, err
	}
	return New(kind, dims, flat)
}

// Coercible reports whether FromAny would accept v, without building the
// buffer. Used by the generic backend's cheap check.
func Coercible(v any) bool {
	if _, ok := v.(*Array); ok {
		return true
	}
	dims, flat, err := walk(v)
	if err != nil {
		return false
	}
	if len(dims) == 0 && KindOf(flat[0]) == dtype.Object {
		return false
	}
	return true
}

// walk flattens nested slices into row-major order, returning the
// discovered dims. Dims come from a first-element descent; every sibling
// must agree or the input is ragged.
func walk(v any) (dims []int, flat []any, err error) {
	rv := reflect.ValueOf(v)
	for level := rv; isList(level); {
		dims = append(dims, level.Len())
		if level.Len() == 0 {
			break
		}
		level = elem(level.Index(0))
	}
	flat = make([]any, 0, sizeOf(dims))
	flat, err = fill(rv, dims, 0, flat)
	if err != nil {
		return nil, nil, err
	}
	return dims, flat, nil
}

func fill(rv reflect.Value, dims []int, level int, flat []any) ([]any, error) {
	if level == len(dims) {
		if isList(rv) {
			return nil, fmt.Errorf("ndarray: ragged input: unexpected nesting below level %d", level)
		}
		if !rv.IsValid() {
			return nil, fmt.Errorf("ndarray: nil element at level %d", level)
		}
		return append(flat, rv.Interface()), nil
	}
	if !isList(rv) {
		return nil, fmt.Errorf("ndarray: ragged input: expected a list at level %d, got %v", level, rv.Kind())
	}
	if rv.Len() != dims[level] {
		return nil, fmt.Errorf("ndarray: ragged input: level %d has %d elements, expected %d", level, rv.Len(), dims[level])
	}
	var err error
	for i := 0; i < rv.Len(); i++ {
		flat, err = fill(elem(rv.Index(i)), dims, level+1, flat)
		if err != nil {
			return nil, err
		}
	}
	return flat, nil
}

func isList(rv reflect.Value) bool {
	if !rv.IsValid() {
		return false
	}
	k := rv.Kind()
	return k == reflect.Slice || k == reflect.Array
}

// elem unwraps interface values so JSON-decoded []any nests walk cleanly.
func elem(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func sizeOf(dims []int) int {
	n := 1
	for _, d := range dims {
		n *= d
	}
	return n
}

// KindOf maps a scalar Go value to its dtype kind, Object for anything
// without a dedicated kind.
func KindOf(v any) dtype.Kind {
	switch v.(type) {
	case bool:
		return dtype.Bool
	case int8:
		return dtype.Int8
	case int16:
		return dtype.Int16
	case int32:
		return dtype.Int32
	case int, int64:
		return dtype.Int64
	case uint8:
		return dtype.Uint8
	case uint16:
		return dtype.Uint16
	case uint32:
		return dtype.Uint32
	case uint, uint64:
		return dtype.Uint64
	case float16.Float16:
		return dtype.Float16
	case float32:
		return dtype.Float32
	case float64:
		return dtype.Float64
	case complex64:
		return dtype.Complex64
	case complex128:
		return dtype.Complex128
	case string:
		return dtype.String
	case time.Time:
		return dtype.Time
	}
	return dtype.Object
}

// inferKind picks the element kind for a coerced array: the common kind of
// the elements, numeric promotion across mixed numeric kinds, Object when
// elements disagree beyond that. Empty inputs fall back to the static
// slice element type, or Float64 when that is unknown.
func inferKind(v any, flat []any) dtype.Kind {
	if len(flat) == 0 {
		if k := staticKind(v); k != dtype.Object {
			return k
		}
		return dtype.Float64
	}
	kind := KindOf(flat[0])
	for _, e := range flat[1:] {
		k := KindOf(e)
		if k == kind {
			continue
		}
		kind = promote(kind, k)
		if kind == dtype.Object {
			break
		}
	}
	return kind
}

func promote(a, b dtype.Kind) dtype.Kind {
	switch {
	case a.IsComplex() && b.IsNumeric(), b.IsComplex() && a.IsNumeric():
		return dtype.Complex128
	case a.IsFloat() && b.IsNumeric(), b.IsFloat() && a.IsNumeric():
		return dtype.Float64
	case a.IsInteger() && b.IsInteger():
		return dtype.Int64
	}
	return dtype.Object
}

// staticKind resolves the innermost static element type of a (possibly
// nested) slice type.
func staticKind(v any) dtype.Kind {
	t := reflect.TypeOf(v)
	for t != nil && (t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	if t == nil {
		return dtype.Object
	}
	return KindOf(reflect.New(t).Elem().Interface())
}
