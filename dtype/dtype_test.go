package dtype_test

import (
	"errors"
	"math"
	"testing"

	"github.com/reoring/gondarray/dtype"
)

func TestKind_Families(t *testing.T) {
	if !dtype.Int16.IsSigned() || !dtype.Int16.IsInteger() || dtype.Int16.IsFloat() {
		t.Fatalf("int16 family predicates wrong")
	}
	if !dtype.Uint8.IsUnsigned() || dtype.Uint8.IsSigned() {
		t.Fatalf("uint8 family predicates wrong")
	}
	if !dtype.Float16.IsFloat() || !dtype.Complex64.IsComplex() {
		t.Fatalf("float/complex predicates wrong")
	}
	if !dtype.Integer.Contains(dtype.Uint32) || dtype.Integer.Contains(dtype.Float32) {
		t.Fatalf("Integer family membership wrong")
	}
	if !dtype.Number.Contains(dtype.Complex128) || dtype.Number.Contains(dtype.String) {
		t.Fatalf("Number family membership wrong")
	}
}

func TestKind_Bounds(t *testing.T) {
	min, max, ok := dtype.Uint8.Bounds()
	if !ok || min != 0 || max != 255 {
		t.Fatalf("uint8 bounds: %v %v %v", min, max, ok)
	}
	if _, _, ok := dtype.Float32.Bounds(); ok {
		t.Fatalf("floats have no integer bounds")
	}
}

func TestKind_Bounds64BitSaturation(t *testing.T) {
	min, max, ok := dtype.Int64.Bounds()
	if !ok || min != -(1 << 63) {
		t.Fatalf("int64 min: %v %v", min, ok)
	}
	if max >= 1<<63 {
		t.Fatalf("int64 max must stay below 2^63, got %v", max)
	}
	if int64(max) > math.MaxInt64-1 {
		t.Fatalf("int64 max must convert back in range, got %v", max)
	}
	_, umax, ok := dtype.Uint64.Bounds()
	if !ok || umax >= 1<<64 {
		t.Fatalf("uint64 max must stay below 2^64, got %v", umax)
	}
}

func TestSpec_LeafMatch(t *testing.T) {
	s := dtype.Of(dtype.Uint8)
	if !s.Matches(dtype.Uint8) || s.Matches(dtype.Uint16) {
		t.Fatalf("leaf match wrong")
	}
}

func TestSpec_FamilySubtypeMatch(t *testing.T) {
	// "int | float": int16 passes as a member of the generic integer family.
	s := dtype.MustParse("int | float")
	if !s.Matches(dtype.Int16) {
		t.Fatalf("int16 should match int | float")
	}
	if !s.Matches(dtype.Float64) {
		t.Fatalf("float64 should match int | float")
	}
	if s.Matches(dtype.String) || s.Matches(dtype.Complex64) {
		t.Fatalf("string/complex should not match int | float")
	}
}

func TestSpec_UnionFlattening(t *testing.T) {
	nested := dtype.Union(dtype.Union(dtype.Of(dtype.Int8), dtype.Of(dtype.Int16)), dtype.Of(dtype.Float32))
	flat := dtype.Union(dtype.Of(dtype.Int8), dtype.Of(dtype.Int16), dtype.Of(dtype.Float32))
	if !nested.Equal(flat) {
		t.Fatalf("Union(Union(a,b),c) should equal Union(a,b,c): %q vs %q",
			nested.Canonical(), flat.Canonical())
	}
	for _, k := range []dtype.Kind{dtype.Int8, dtype.Int16, dtype.Float32} {
		if nested.Matches(k) != flat.Matches(k) {
			t.Fatalf("flattened union should match identically for %s", k)
		}
	}
}

func TestSpec_UnionDeduplicates(t *testing.T) {
	s := dtype.Union(dtype.Of(dtype.Uint8), dtype.Of(dtype.Uint8))
	if s.IsUnion() {
		t.Fatalf("duplicate members should collapse to the single leaf, got %q", s.Canonical())
	}
}

func TestSpec_UnionWithAnyCollapses(t *testing.T) {
	s := dtype.Union(dtype.Of(dtype.Uint8), dtype.Any())
	if !s.IsAny() {
		t.Fatalf("union containing any should collapse to any")
	}
}

func TestSpec_AnyMatchesEverything(t *testing.T) {
	s := dtype.Any()
	for _, k := range []dtype.Kind{dtype.Bool, dtype.Uint64, dtype.Float16, dtype.String, dtype.Object} {
		if !s.Matches(k) {
			t.Fatalf("any should match %s", k)
		}
	}
}

func TestParse(t *testing.T) {
	s, err := dtype.Parse("uint8 | float32")
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !s.Matches(dtype.Uint8) || !s.Matches(dtype.Float32) || s.Matches(dtype.Int8) {
		t.Fatalf("parsed union matches wrong kinds")
	}
	if s.Canonical() != "uint8 | float32" {
		t.Fatalf("canonical: %q", s.Canonical())
	}
}

func TestParse_Unknown(t *testing.T) {
	_, err := dtype.Parse("uint8 | quux")
	if err == nil {
		t.Fatalf("expected error")
	}
	var syn *dtype.SyntaxError
	if !errors.As(err, &syn) || syn.Token != "quux" {
		t.Fatalf("expected *SyntaxError naming quux, got %v", err)
	}
}

func TestCanonical_IsSpecIdentity(t *testing.T) {
	a := dtype.MustParse("int8 | uint8")
	b := dtype.Union(dtype.Of(dtype.Int8), dtype.Of(dtype.Uint8))
	if a.Canonical() != b.Canonical() {
		t.Fatalf("equivalent declarations should share a canonical form")
	}
	c := dtype.MustParse("uint8 | int8") // different order, different spec
	if a.Canonical() == c.Canonical() {
		t.Fatalf("member order is part of the identity")
	}
}
