package gondarray

import (
	"context"
	"fmt"
	"strconv"

	"github.com/reoring/gondarray/dtype"
	"github.com/reoring/gondarray/i18n"
	"github.com/reoring/gondarray/ndarray"
	"github.com/reoring/gondarray/shape"
)

// runPipeline drives a matched interface through the validation lifecycle:
// deserialize -> before-validation -> dtype -> after-dtype hook -> shape ->
// after-validation. The first failing stage aborts the call; the pipeline
// never falls back to a different interface after a match.
func runPipeline(ctx context.Context, iface Interface, v any, spec ArraySpec, opt ValidateOpt) (any, error) {
	v, err := iface.Deserialize(v)
	if err != nil {
		return nil, toIssues(CodeDeserializeError, err)
	}

	v, err = iface.BeforeValidation(ctx, v)
	if err != nil {
		return nil, toIssues(CodeCoerceError, err)
	}

	if err := checkDtype(iface, v, spec, opt); err != nil {
		return nil, err
	}

	if hook, ok := iface.(AfterDtypeHook); ok {
		if v, err = hook.AfterValidateDtype(v); err != nil {
			return nil, toIssues(CodeCoerceError, err)
		}
	}

	if err := checkShape(iface, v, spec); err != nil {
		return nil, err
	}

	v, err = iface.AfterValidation(ctx, v)
	if err != nil {
		return nil, toIssues(CodeCoerceError, err)
	}
	return v, nil
}

// checkDtype runs the interface's own dtype validation when provided,
// otherwise the default: obtain the concrete kind and test it against the
// spec. Object-typed arrays are checked by sampling representative
// elements when the interface exposes them.
func checkDtype(iface Interface, v any, spec ArraySpec, opt ValidateOpt) error {
	if dv, ok := iface.(DtypeValidator); ok {
		return dv.ValidateDtype(v, spec.Dtype(), opt)
	}

	kind, err := iface.DtypeOf(v)
	if err != nil {
		return toIssues(CodeDtypeMismatch, err)
	}
	want := spec.Dtype()
	if want.Matches(kind) {
		return nil
	}
	if kind == dtype.Object && !want.IsAny() {
		if sampler, ok := iface.(ElementSampler); ok {
			return sampleObjectDtype(sampler, v, want, opt)
		}
	}
	return raiseDtype(want, kind.String())
}

// sampleObjectDtype checks a bounded number of elements of an object-typed
// array. The default samples only the first element; exhaustive checking
// is opt-in because its cost is unbounded.
func sampleObjectDtype(sampler ElementSampler, v any, want dtype.Spec, opt ValidateOpt) error {
	elems, err := sampler.SampleElements(v, opt.sampleLimit())
	if err != nil {
		return toIssues(CodeDtypeMismatch, err)
	}
	for i, e := range elems {
		if k := ndarray.KindOf(e); !want.Matches(k) {
			return Issues{Issue{
				Path:    "/" + strconv.Itoa(i),
				Code:    CodeDtypeMismatch,
				Message: i18n.T(CodeDtypeMismatch, nil),
				Hint:    fmt.Sprintf("expected %s, got %s element", want.Canonical(), k),
				Params:  map[string]any{"expected": want.Canonical(), "got": k.String()},
			}}
		}
	}
	return nil
}

func raiseDtype(want dtype.Spec, got string) error {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeDtypeMismatch,
		Message: i18n.T(CodeDtypeMismatch, nil),
		Hint:    fmt.Sprintf("expected %s, got %s", want.Canonical(), got),
		Params:  map[string]any{"expected": want.Canonical(), "got": got},
	}}
}

// checkShape runs the interface's own shape validation when provided,
// otherwise the default positional match against the spec.
func checkShape(iface Interface, v any, spec ArraySpec) error {
	if sv, ok := iface.(ShapeValidator); ok {
		return sv.ValidateShape(v, spec.Shape())
	}
	dims, err := iface.ShapeOf(v)
	if err != nil {
		return toIssues(CodeShapeMismatch, err)
	}
	if err := spec.Shape().Match(dims); err != nil {
		return raiseShape(err, dims)
	}
	return nil
}

func raiseShape(err error, dims []int) error {
	iss := Issue{
		Path:    "/",
		Code:    CodeShapeMismatch,
		Message: i18n.T(CodeShapeMismatch, nil),
		Hint:    err.Error(),
		Cause:   err,
		Params:  map[string]any{"got": fmt.Sprint(dims)},
	}
	if mm, ok := err.(*shape.Mismatch); ok {
		iss.Params["expected"] = mm.Spec.String()
		if mm.Axis != shape.RankAxis {
			iss.Path = "/" + strconv.Itoa(mm.Axis)
			iss.Params["axis"] = mm.Axis
		}
	}
	return Issues{iss}
}
