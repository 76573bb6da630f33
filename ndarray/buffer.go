package ndarray

import (
	"fmt"
	"math"
	"time"

	"github.com/x448/float16"

	"github.com/reoring/gondarray/dtype"
)

// alloc returns the flat typed buffer for a kind.
func alloc(kind dtype.Kind, n int) any {
	switch kind {
	case dtype.Bool:
		return make([]bool, n)
	case dtype.Int8:
		return make([]int8, n)
	case dtype.Int16:
		return make([]int16, n)
	case dtype.Int32:
		return make([]int32, n)
	case dtype.Int64:
		return make([]int64, n)
	case dtype.Uint8:
		return make([]uint8, n)
	case dtype.Uint16:
		return make([]uint16, n)
	case dtype.Uint32:
		return make([]uint32, n)
	case dtype.Uint64:
		return make([]uint64, n)
	case dtype.Float16:
		return make([]float16.Float16, n)
	case dtype.Float32:
		return make([]float32, n)
	case dtype.Float64:
		return make([]float64, n)
	case dtype.Complex64:
		return make([]complex64, n)
	case dtype.Complex128:
		return make([]complex128, n)
	case dtype.String:
		return make([]string, n)
	case dtype.Time:
		return make([]time.Time, n)
	default:
		return make([]any, n)
	}
}

// set converts v to the buffer kind and stores it at index i.
func set(buf any, kind dtype.Kind, i int, v any) error {
	switch b := buf.(type) {
	case []bool:
		t, ok := v.(bool)
		if !ok {
			return convErr(kind, v)
		}
		b[i] = t
	case []int8:
		n, err := toInt(kind, v, math.MinInt8, math.MaxInt8)
		if err != nil {
			return err
		}
		b[i] = int8(n)
	case []int16:
		n, err := toInt(kind, v, math.MinInt16, math.MaxInt16)
		if err != nil {
			return err
		}
		b[i] = int16(n)
	case []int32:
		n, err := toInt(kind, v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return err
		}
		b[i] = int32(n)
	case []int64:
		n, err := toInt(kind, v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return err
		}
		b[i] = n
	case []uint8:
		n, err := toInt(kind, v, 0, math.MaxUint8)
		if err != nil {
			return err
		}
		b[i] = uint8(n)
	case []uint16:
		n, err := toInt(kind, v, 0, math.MaxUint16)
		if err != nil {
			return err
		}
		b[i] = uint16(n)
	case []uint32:
		n, err := toInt(kind, v, 0, math.MaxUint32)
		if err != nil {
			return err
		}
		b[i] = uint32(n)
	case []uint64:
		n, err := toUint(kind, v)
		if err != nil {
			return err
		}
		b[i] = n
	case []float16.Float16:
		f, err := toFloat(kind, v)
		if err != nil {
			return err
		}
		b[i] = float16.Fromfloat32(float32(f))
	case []float32:
		f, err := toFloat(kind, v)
		if err != nil {
			return err
		}
		b[i] = float32(f)
	case []float64:
		f, err := toFloat(kind, v)
		if err != nil {
			return err
		}
		b[i] = f
	case []complex64:
		c, err := toComplex(kind, v)
		if err != nil {
			return err
		}
		b[i] = complex64(c)
	case []complex128:
		c, err := toComplex(kind, v)
		if err != nil {
			return err
		}
		b[i] = c
	case []string:
		s, ok := v.(string)
		if !ok {
			return convErr(kind, v)
		}
		b[i] = s
	case []time.Time:
		switch t := v.(type) {
		case time.Time:
			b[i] = t
		case string:
			parsed, err := time.Parse(time.RFC3339Nano, t)
			if err != nil {
				return convErr(kind, v)
			}
			b[i] = parsed
		default:
			return convErr(kind, v)
		}
	case []any:
		b[i] = v
	default:
		return fmt.Errorf("ndarray: unsupported buffer %T", buf)
	}
	return nil
}

// get returns element i of the flat buffer as a plain value.
func get(buf any, kind dtype.Kind, i int) any {
	switch b := buf.(type) {
	case []bool:
		return b[i]
	case []int8:
		return b[i]
	case []int16:
		return b[i]
	case []int32:
		return b[i]
	case []int64:
		return b[i]
	case []uint8:
		return b[i]
	case []uint16:
		return b[i]
	case []uint32:
		return b[i]
	case []uint64:
		return b[i]
	case []float16.Float16:
		return b[i]
	case []float32:
		return b[i]
	case []float64:
		return b[i]
	case []complex64:
		return b[i]
	case []complex128:
		return b[i]
	case []string:
		return b[i]
	case []time.Time:
		return b[i]
	case []any:
		return b[i]
	}
	return nil
}

func convErr(kind dtype.Kind, v any) error {
	return fmt.Errorf("ndarray: cannot represent %T value %v as %s", v, v, kind)
}

func intValue(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	}
	return 0, false
}

func uintValue(v any) (uint64, bool) {
	switch t := v.(type) {
	case uint:
		return uint64(t), true
	case uint8:
		return uint64(t), true
	case uint16:
		return uint64(t), true
	case uint32:
		return uint64(t), true
	case uint64:
		return t, true
	}
	return 0, false
}

func floatValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float16.Float16:
		return float64(t.Float32()), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// numeric reads any scalar numeric Go value as a float64. Integers above
// 2^53 lose precision here, so integer conversions must take the exact
// paths in toInt/toUint and never go through numeric.
func numeric(v any) (float64, bool) {
	if n, ok := intValue(v); ok {
		return float64(n), true
	}
	if u, ok := uintValue(v); ok {
		return float64(u), true
	}
	return floatValue(v)
}

func toInt(kind dtype.Kind, v any, min, max int64) (int64, error) {
	if n, ok := intValue(v); ok {
		if n < min || n > max {
			return 0, convErr(kind, v)
		}
		return n, nil
	}
	if u, ok := uintValue(v); ok {
		if u > uint64(max) {
			return 0, convErr(kind, v)
		}
		n := int64(u)
		if n < min {
			return 0, convErr(kind, v)
		}
		return n, nil
	}
	f, ok := floatValue(v)
	if !ok || f != math.Trunc(f) {
		return 0, convErr(kind, v)
	}
	// Integral floats in [-2^63, 2^63) convert to int64 exactly; range-check
	// in the integer domain afterwards.
	if f < -(1<<63) || f >= 1<<63 {
		return 0, convErr(kind, v)
	}
	n := int64(f)
	if n < min || n > max {
		return 0, convErr(kind, v)
	}
	return n, nil
}

func toUint(kind dtype.Kind, v any) (uint64, error) {
	if u, ok := uintValue(v); ok {
		return u, nil
	}
	if n, ok := intValue(v); ok {
		if n < 0 {
			return 0, convErr(kind, v)
		}
		return uint64(n), nil
	}
	f, ok := floatValue(v)
	if !ok || f != math.Trunc(f) || f < 0 || f >= 1<<64 {
		return 0, convErr(kind, v)
	}
	return uint64(f), nil
}

func toFloat(kind dtype.Kind, v any) (float64, error) {
	f, ok := numeric(v)
	if !ok {
		return 0, convErr(kind, v)
	}
	return f, nil
}

func toComplex(kind dtype.Kind, v any) (complex128, error) {
	switch t := v.(type) {
	case complex64:
		return complex128(t), nil
	case complex128:
		return t, nil
	}
	if f, ok := numeric(v); ok {
		return complex(f, 0), nil
	}
	return 0, convErr(kind, v)
}
