package gondarray

import (
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/reoring/gondarray/dtype"
	"github.com/reoring/gondarray/i18n"
	"github.com/reoring/gondarray/jsonschema"
	"github.com/reoring/gondarray/shape"
)

// JSONSchema projects the spec into a structural JSON Schema fragment.
//
// Bounded shapes become nested array schemas, one level per dimension,
// with minItems/maxItems from each constraint and the innermost level
// constrained by the dtype. Unbounded-tail shapes emit a self-referential
// $defs entry whose name is a content hash of the dtype constraint, so
// independently declared any-rank specs with equal dtypes share one
// definition (see SharedDefs) while different dtypes never collide.
//
// Generation is deterministic: the same spec always yields byte-identical
// encoded output. Dtypes with no JSON Schema equivalent (complex kinds)
// fail with CodeSchemaUnsupported rather than emitting a wrong schema.
func (s ArraySpec) JSONSchema() (*jsonschema.Schema, error) {
	leaf, err := dtypeLeaf(s.dt)
	if err != nil {
		return nil, err
	}

	var out *jsonschema.Schema
	var defs map[string]*jsonschema.Schema
	if s.shape.Unbounded() {
		name := defName(s.dt)
		defs = map[string]*jsonschema.Schema{
			name: {AnyOf: []*jsonschema.Schema{
				{Type: "array", Items: jsonschema.DefRef(name)},
				leaf,
			}},
		}
		out = wrapDims(s.shape, jsonschema.DefRef(name))
	} else {
		out = wrapDims(s.shape, leaf)
	}

	out.Defs = defs
	out.Dtype = s.dt.Canonical()
	return out, nil
}

// defName derives the shared $defs entry name for an unbounded-rank spec
// from a stable digest of its dtype constraint.
func defName(d dtype.Spec) string {
	return fmt.Sprintf("any-shape-array-%016x", xxhash.Sum64String(d.Canonical()))
}

// wrapDims nests one array level per fixed dimension around the innermost
// schema, outermost dimension last so it ends up at the top.
func wrapDims(ss shape.Spec, inner *jsonschema.Schema) *jsonschema.Schema {
	dims := ss.Dims()
	for i := len(dims) - 1; i >= 0; i-- {
		c := dims[i]
		level := &jsonschema.Schema{Type: "array", Items: inner, Title: c.Label}
		if c.Min != shape.Unbounded {
			n := c.Min
			level.MinItems = &n
		}
		if c.Max != shape.Unbounded {
			n := c.Max
			level.MaxItems = &n
		}
		inner = level
	}
	return inner
}

// dtypeLeaf renders the innermost element constraint.
func dtypeLeaf(d dtype.Spec) (*jsonschema.Schema, error) {
	if d.IsAny() {
		return &jsonschema.Schema{}, nil
	}
	if d.IsUnion() {
		members := d.Members()
		anyOf := make([]*jsonschema.Schema, len(members))
		for i, m := range members {
			ms, err := dtypeLeaf(m)
			if err != nil {
				return nil, err
			}
			anyOf[i] = ms
		}
		return &jsonschema.Schema{AnyOf: anyOf}, nil
	}
	if f, ok := d.Family(); ok {
		switch f {
		case dtype.Signed, dtype.Unsigned, dtype.Integer:
			return &jsonschema.Schema{Type: "integer"}, nil
		case dtype.Float, dtype.Number:
			return &jsonschema.Schema{Type: "number"}, nil
		}
		return nil, unsupportedDtype(f.String())
	}
	k, _ := d.Kind()
	switch {
	case k.IsInteger():
		out := &jsonschema.Schema{Type: "integer"}
		if min, max, ok := k.Bounds(); ok {
			out.Minimum = &min
			out.Maximum = &max
		}
		return out, nil
	case k.IsFloat():
		return &jsonschema.Schema{Type: "number"}, nil
	case k == dtype.Bool:
		return &jsonschema.Schema{Type: "boolean"}, nil
	case k == dtype.String:
		return &jsonschema.Schema{Type: "string"}, nil
	case k == dtype.Time:
		return &jsonschema.Schema{Type: "string", Format: "date-time"}, nil
	case k == dtype.Object:
		return &jsonschema.Schema{}, nil
	}
	return nil, unsupportedDtype(k.String())
}

func unsupportedDtype(name string) error {
	return Issues{Issue{
		Path:    "/",
		Code:    CodeSchemaUnsupported,
		Message: i18n.T(CodeSchemaUnsupported, nil),
		Hint:    fmt.Sprintf("%s cannot be expressed as a JSON Schema primitive", name),
		Params:  map[string]any{"dtype": name},
	}}
}

// SharedDefs strips the $defs of the given fragments and merges them into
// one map, deduplicating entries by name. Callers embedding several
// fragments into a parent schema hoist definitions this way; fragments for
// equal dtypes collapse to a single shared entry.
func SharedDefs(schemas ...*jsonschema.Schema) map[string]*jsonschema.Schema {
	merged := make(map[string]*jsonschema.Schema)
	for _, s := range schemas {
		if s == nil {
			continue
		}
		for name, def := range s.Defs {
			merged[name] = def
		}
		s.Defs = nil
	}
	return merged
}
