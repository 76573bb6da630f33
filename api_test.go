package gondarray_test

import (
	"context"
	"testing"

	gondarray "github.com/reoring/gondarray"
	"github.com/reoring/gondarray/dtype"
	"github.com/reoring/gondarray/ndarray"
)

func TestValidate_ShapeAndDtypePass(t *testing.T) {
	spec := gondarray.MustSpec("3, *", "uint8")
	out, err := gondarray.Validate(context.Background(), [][]uint8{{1, 2}, {3, 4}, {5, 6}}, spec)
	if err != nil {
		t.Fatalf("validate err: %v", err)
	}
	a, ok := out.(*ndarray.Array)
	if !ok {
		t.Fatalf("expected *ndarray.Array, got %T", out)
	}
	if a.Kind() != dtype.Uint8 || a.Rank() != 2 {
		t.Fatalf("validated array: %s", a)
	}
}

func TestValidate_ShapeMismatchCitesAxis(t *testing.T) {
	spec := gondarray.MustSpec("3, *", "uint8")
	_, err := gondarray.Validate(context.Background(), [][]uint8{{1}, {2}, {3}, {4}}, spec)
	if err == nil {
		t.Fatalf("expected shape mismatch")
	}
	iss, ok := gondarray.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	it := iss[0]
	if it.Code != gondarray.CodeShapeMismatch {
		t.Fatalf("code: %s", it.Code)
	}
	if it.Path != "/0" {
		t.Fatalf("path should name the failing axis, got %q", it.Path)
	}
	if it.Params["axis"] != 0 || it.Params["expected"] != "3, *" {
		t.Fatalf("params: %v", it.Params)
	}
}

func TestValidate_RankMismatch(t *testing.T) {
	spec := gondarray.MustSpec("3, *", "any")
	_, err := gondarray.Validate(context.Background(), []uint8{1, 2, 3}, spec)
	if !gondarray.HasCode(err, gondarray.CodeShapeMismatch) {
		t.Fatalf("expected shape mismatch for rank, got %v", err)
	}
	iss, _ := gondarray.AsIssues(err)
	if iss[0].Path != "/" {
		t.Fatalf("rank mismatch has no axis, path should be /: %q", iss[0].Path)
	}
}

func TestValidate_DtypeMismatch(t *testing.T) {
	spec := gondarray.MustSpec("*, ...", "uint8")
	if _, err := gondarray.Validate(context.Background(), []uint8{1, 2}, spec); err != nil {
		t.Fatalf("uint8 should pass: %v", err)
	}
	_, err := gondarray.Validate(context.Background(), []float64{1, 2}, spec)
	if !gondarray.HasCode(err, gondarray.CodeDtypeMismatch) {
		t.Fatalf("expected dtype mismatch, got %v", err)
	}
	iss, _ := gondarray.AsIssues(err)
	if iss[0].Params["expected"] != "uint8" || iss[0].Params["got"] != "float64" {
		t.Fatalf("params: %v", iss[0].Params)
	}
}

func TestValidate_GenericDtypeFamily(t *testing.T) {
	spec := gondarray.MustSpec("...", "int")
	for _, v := range []any{[]int8{1}, []uint32{1}, []int{1, 2, 3}} {
		if _, err := gondarray.Validate(context.Background(), v, spec); err != nil {
			t.Fatalf("%T should satisfy the integer family: %v", v, err)
		}
	}
	if _, err := gondarray.Validate(context.Background(), []float32{1}, spec); err == nil {
		t.Fatalf("float32 should not satisfy the integer family")
	}
}

func TestValidate_NoBackend(t *testing.T) {
	spec := gondarray.MustSpec("...", "any")
	_, err := gondarray.Validate(context.Background(), func() {}, spec)
	if !gondarray.HasCode(err, gondarray.CodeNoBackend) {
		t.Fatalf("expected no_backend, got %v", err)
	}
}

func TestValidate_RawJSON(t *testing.T) {
	spec := gondarray.MustSpec("2, 2", "float")
	out, err := gondarray.Validate(context.Background(), []byte(`[[1.5, 2], [3, 4]]`), spec)
	if err != nil {
		t.Fatalf("validate err: %v", err)
	}
	if out.(*ndarray.Array).Kind() != dtype.Float64 {
		t.Fatalf("JSON numbers decode to float64, got %s", out.(*ndarray.Array).Kind())
	}

	_, err = gondarray.Validate(context.Background(), []byte(`[[1,`), spec)
	if !gondarray.HasCode(err, gondarray.CodeDeserializeError) {
		t.Fatalf("expected deserialize_error for malformed JSON, got %v", err)
	}
}

func TestValidate_MemoryDescriptor(t *testing.T) {
	spec := gondarray.MustSpec("2", "uint8")
	desc := map[string]any{
		"type":  "memory",
		"dtype": "uint8",
		"array": []any{1.0, 2.0},
	}
	out, err := gondarray.Validate(context.Background(), desc, spec)
	if err != nil {
		t.Fatalf("validate err: %v", err)
	}
	a := out.(*ndarray.Array)
	if a.Kind() != dtype.Uint8 {
		t.Fatalf("descriptor dtype should win over JSON numerics, got %s", a.Kind())
	}
}

func TestValidate_ObjectSampling(t *testing.T) {
	type opaque struct{ S string }
	spec := gondarray.MustSpec("*", "string")
	// First element is a string; the stray opaque value sits beyond the
	// default sample of one.
	in := []any{"ok", opaque{"not a string"}}
	if _, err := gondarray.Validate(context.Background(), in, spec); err != nil {
		t.Fatalf("default sampling checks only the first element: %v", err)
	}
	_, err := gondarray.Validate(context.Background(), in, spec, gondarray.ValidateOpt{ObjectSample: -1})
	if !gondarray.HasCode(err, gondarray.CodeDtypeMismatch) {
		t.Fatalf("exhaustive sampling should find the stray element, got %v", err)
	}
	iss, _ := gondarray.AsIssues(err)
	if iss[0].Path != "/1" {
		t.Fatalf("issue should point at the offending element: %q", iss[0].Path)
	}
}

func TestValidate_Scalar(t *testing.T) {
	spec := gondarray.MustSpec("", "float")
	if _, err := gondarray.Validate(context.Background(), 2.5, spec); err != nil {
		t.Fatalf("scalar against empty shape: %v", err)
	}
	if _, err := gondarray.Validate(context.Background(), []float64{2.5}, spec); err == nil {
		t.Fatalf("rank-1 input should fail the scalar shape")
	}
}

func TestIs(t *testing.T) {
	spec := gondarray.MustSpec("3", "int")
	if !gondarray.Is(context.Background(), []int{1, 2, 3}, spec) {
		t.Fatalf("expected pass")
	}
	if gondarray.Is(context.Background(), []int{1, 2}, spec) {
		t.Fatalf("expected fail")
	}
}

func TestNewSpec_SyntaxErrors(t *testing.T) {
	_, err := gondarray.NewSpec("2, oops!", "uint8")
	if !gondarray.HasCode(err, gondarray.CodeShapeSyntax) {
		t.Fatalf("expected shape_syntax, got %v", err)
	}
	_, err = gondarray.NewSpec("2", "quux")
	if !gondarray.HasCode(err, gondarray.CodeDtypeSyntax) {
		t.Fatalf("expected dtype_syntax, got %v", err)
	}
}

func TestSpecHash_StructuralIdentity(t *testing.T) {
	a := gondarray.MustSpec("2, 3", "int8 | uint8")
	b := gondarray.MustSpec("2,3", "int8|uint8")
	if a.Hash() != b.Hash() {
		t.Fatalf("whitespace variants should hash equally")
	}
	c := gondarray.MustSpec("2, 3", "uint8 | int8")
	if a.Hash() == c.Hash() {
		t.Fatalf("different member order is a different spec")
	}
}
