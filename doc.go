package gondarray

// Package gondarray validates array values against declarative shape and
// dtype specifications, independent of which backend holds the array.
//
// - ArraySpec pairs a shape constraint (shape.Spec) with an element-type
//   constraint (dtype.Spec); both have small textual grammars.
// - Interface is the backend contract; a Registry matches an input value to
//   exactly one enabled Interface, with the generic in-memory backend tried
//   last because its check may materialize the value.
// - Validate drives the shared lifecycle (deserialize -> before-validation
//   -> dtype -> shape -> after-validation) and reports failures as Issues.
// - JSONSchema projects a spec into a JSON Schema fragment, including
//   self-referential $defs for unbounded-rank shapes, deduplicated by a
//   content hash of the dtype constraint.
// - Serialize renders validated arrays as compact nested lists or as
//   round-trip descriptors with interface marking and path normalization.
//
// Design policy:
// - Keep only public APIs in the root package; grammar and value types live
//   under shape/, dtype/, and ndarray/.
// - Specs and the registry are immutable/read-mostly after startup and safe
//   for concurrent validation calls.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	spec, err := gondarray.NewSpec("3, * y", "uint8")
//	arr, err := gondarray.Validate(ctx, input, spec)
//	schema, err := spec.JSONSchema()
//	out, err := gondarray.Serialize(ctx, arr, gondarray.SerializeOpt{RoundTrip: true})
