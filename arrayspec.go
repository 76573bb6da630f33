package gondarray

import (
	"strconv"

	"github.com/cespare/xxhash"

	"github.com/reoring/gondarray/dtype"
	"github.com/reoring/gondarray/shape"
)

// ArraySpec pairs a shape constraint with a dtype constraint. It is the
// unit a caller declares, immutable once constructed, created at
// model-definition time and shared freely across validation calls. Its
// structural hash is the identity used for schema deduplication.
type ArraySpec struct {
	shape shape.Spec
	dt    dtype.Spec
}

// NewSpec parses both constraint expressions into an ArraySpec. Grammar
// failures surface as Issues with CodeShapeSyntax / CodeDtypeSyntax.
func NewSpec(shapeExpr, dtypeExpr string) (ArraySpec, error) {
	ss, err := shape.Parse(shapeExpr)
	if err != nil {
		return ArraySpec{}, Issues{Issue{Path: "/", Code: CodeShapeSyntax, Message: err.Error(), Cause: err}}
	}
	ds, err := dtype.Parse(dtypeExpr)
	if err != nil {
		return ArraySpec{}, Issues{Issue{Path: "/", Code: CodeDtypeSyntax, Message: err.Error(), Cause: err}}
	}
	return ArraySpec{shape: ss, dt: ds}, nil
}

// MustSpec is NewSpec for statically known expressions; it panics on error.
func MustSpec(shapeExpr, dtypeExpr string) ArraySpec {
	s, err := NewSpec(shapeExpr, dtypeExpr)
	if err != nil {
		panic(err)
	}
	return s
}

// SpecOf builds an ArraySpec from already-parsed constraints.
func SpecOf(s shape.Spec, d dtype.Spec) ArraySpec {
	return ArraySpec{shape: s, dt: d}
}

// Shape returns the shape constraint.
func (s ArraySpec) Shape() shape.Spec { return s.shape }

// Dtype returns the dtype constraint.
func (s ArraySpec) Dtype() dtype.Spec { return s.dt }

// String renders both constraints, e.g. `shape "3, *" dtype "uint8"`.
func (s ArraySpec) String() string {
	return "shape " + strconv.Quote(s.shape.String()) + " dtype " + strconv.Quote(s.dt.Canonical())
}

// Hash returns the structural content hash of the spec. Equal specs hash
// equally regardless of how their constraints were declared.
func (s ArraySpec) Hash() uint64 {
	return xxhash.Sum64String(s.shape.String() + "\x00" + s.dt.Canonical())
}
