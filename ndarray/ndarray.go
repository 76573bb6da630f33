// Package ndarray provides the plain in-memory N-dimensional array used as
// the common denominator of the validation engine: the generic backend
// coerces loosely-typed input into an *Array, and compact serialization
// renders one back out as nested lists.
//
// An Array is a flat, contiguously stored, row-major buffer typed by a
// dtype.Kind, plus its dimensions. It deliberately exposes a small,
// enumerated capability set (dims, element access, nested conversion,
// equality) rather than a full numeric API.
package ndarray

import (
	"fmt"
	"strings"
	"time"

	"github.com/x448/float16"

	"github.com/reoring/gondarray/dtype"
)

// Array is an immutable in-memory n-d array. The zero value is invalid;
// use New, FromAny, or FromAnyAs.
type Array struct {
	kind dtype.Kind
	dims []int
	data any // flat typed slice, length = product of dims (1 for scalars)
}

// New builds an array of the given kind and dims from a flat list of
// elements. Elements are converted to the kind, best effort.
func New(kind dtype.Kind, dims []int, flat []any) (*Array, error) {
	n := 1
	for _, d := range dims {
		if d < 0 {
			return nil, fmt.Errorf("ndarray: negative dimension %d", d)
		}
		n *= d
	}
	if len(flat) != n {
		return nil, fmt.Errorf("ndarray: %d elements do not fill dims %v (need %d)", len(flat), dims, n)
	}
	buf := alloc(kind, n)
	for i, v := range flat {
		if err := set(buf, kind, i, v); err != nil {
			return nil, err
		}
	}
	return &Array{kind: kind, dims: append([]int(nil), dims...), data: buf}, nil
}

// Kind returns the element type of the array.
func (a *Array) Kind() dtype.Kind { return a.kind }

// Dims returns a copy of the array dimensions. Scalars have no dims.
func (a *Array) Dims() []int { return append([]int(nil), a.dims...) }

// Rank returns the number of axes.
func (a *Array) Rank() int { return len(a.dims) }

// Size returns the total number of elements.
func (a *Array) Size() int {
	n := 1
	for _, d := range a.dims {
		n *= d
	}
	return n
}

// IsScalar reports whether the array is rank 0.
func (a *Array) IsScalar() bool { return len(a.dims) == 0 }

// At returns the element at the given indices, one per axis, as a plain Go
// value.
func (a *Array) At(indices ...int) (any, error) {
	if len(indices) != len(a.dims) {
		return nil, fmt.Errorf("ndarray: got %d indices for rank %d", len(indices), len(a.dims))
	}
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= a.dims[i] {
			return nil, fmt.Errorf("ndarray: index %d out of range for axis %d (dim %d)", idx, i, a.dims[i])
		}
		off = off*a.dims[i] + idx
	}
	return get(a.data, a.kind, off), nil
}

// Flat returns element i of the underlying row-major buffer.
func (a *Array) Flat(i int) any { return get(a.data, a.kind, i) }

// Equal reports whether two arrays have the same kind, dims, and elements.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.kind != b.kind || len(a.dims) != len(b.dims) {
		return false
	}
	for i := range a.dims {
		if a.dims[i] != b.dims[i] {
			return false
		}
	}
	n := a.Size()
	for i := 0; i < n; i++ {
		if !elemEqual(a.Flat(i), b.Flat(i)) {
			return false
		}
	}
	return true
}

// ToNested converts the array to nested []any lists of plain Go values,
// the compact JSON-compatible form. Scalars return the bare element.
func (a *Array) ToNested() any {
	v, _ := a.nested(0, 0, a.Size())
	return v
}

// nested builds the slice for axis level covering flat range [off, off+n).
func (a *Array) nested(level, off, n int) (any, int) {
	if level == len(a.dims) {
		return jsonValue(a.Flat(off)), off + 1
	}
	dim := a.dims[level]
	sub := 0
	if dim > 0 {
		sub = n / dim
	}
	out := make([]any, dim)
	for i := 0; i < dim; i++ {
		out[i], off = a.nested(level+1, off, sub)
	}
	return out, off
}

// String renders like "(uint8)[2 3]".
func (a *Array) String() string {
	parts := make([]string, len(a.dims))
	for i, d := range a.dims {
		parts[i] = fmt.Sprint(d)
	}
	return "(" + a.kind.String() + ")[" + strings.Join(parts, " ") + "]"
}

// jsonValue maps stored elements to JSON-friendly plain values.
func jsonValue(v any) any {
	switch t := v.(type) {
	case float16.Float16:
		return float64(t.Float32())
	case complex64:
		return []any{float64(real(t)), float64(imag(t))}
	case complex128:
		return []any{real(t), imag(t)}
	case time.Time:
		return t.Format(time.RFC3339Nano)
	}
	return v
}

func elemEqual(x, y any) bool {
	switch xt := x.(type) {
	case time.Time:
		yt, ok := y.(time.Time)
		return ok && xt.Equal(yt)
	}
	return x == y
}
