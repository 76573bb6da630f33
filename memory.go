package gondarray

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/reoring/gondarray/dtype"
	"github.com/reoring/gondarray/ndarray"
)

// MemoryJsonDict is the round-trip descriptor of the generic in-memory
// backend. Memory arrays have no external resource to reference, so the
// descriptor always embeds the full contents.
type MemoryJsonDict struct {
	Type  string `json:"type"`
	Dtype string `json:"dtype"`
	Array any    `json:"array"`
}

// IsValid reports whether candidate is a well-formed memory descriptor.
func (MemoryJsonDict) IsValid(candidate map[string]any) bool {
	if t, _ := candidate["type"].(string); t != "memory" {
		return false
	}
	name, _ := candidate["dtype"].(string)
	if _, ok := dtype.KindByName(name); !ok {
		return false
	}
	_, hasArray := candidate["array"]
	return hasArray
}

// ToArrayInput reconstructs the in-memory array the descriptor records.
func (d MemoryJsonDict) ToArrayInput() (any, error) {
	kind, ok := dtype.KindByName(d.Dtype)
	if !ok {
		return nil, fmt.Errorf("memory descriptor has unknown dtype %q", d.Dtype)
	}
	return ndarray.FromAnyAs(kind, d.Array)
}

// memoryInterface is the generic, loosely-typed backend of last resort: it
// accepts anything coercible to a plain in-memory array. It matches last
// (GenericPriority) because its check coerces, which would materialize a
// lazily-loaded value handled by a more specific backend.
type memoryInterface struct{}

// NewMemoryInterface returns the built-in in-memory backend.
func NewMemoryInterface() Interface { return memoryInterface{} }

func (memoryInterface) Name() string     { return "memory" }
func (memoryInterface) Priority() int    { return GenericPriority }
func (memoryInterface) Enabled() bool    { return true }
func (memoryInterface) InputTypes() []string {
	return []string{"*ndarray.Array", "nested slices", "scalars", "memory descriptor"}
}
func (memoryInterface) ReturnType() string { return "*ndarray.Array" }

func (m memoryInterface) Check(v any) bool {
	switch t := v.(type) {
	case *ndarray.Array:
		return true
	case map[string]any:
		return MemoryJsonDict{}.IsValid(t)
	}
	return ndarray.Coercible(v)
}

func (m memoryInterface) Deserialize(v any) (any, error) {
	candidate, ok := v.(map[string]any)
	if !ok || !(MemoryJsonDict{}).IsValid(candidate) {
		return v, nil
	}
	raw, err := json.Marshal(candidate)
	if err != nil {
		return nil, err
	}
	var d MemoryJsonDict
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d.ToArrayInput()
}

func (memoryInterface) BeforeValidation(_ context.Context, v any) (any, error) {
	return ndarray.FromAny(v)
}

func (memoryInterface) DtypeOf(v any) (dtype.Kind, error) {
	a, err := asArray(v)
	if err != nil {
		return dtype.Invalid, err
	}
	return a.Kind(), nil
}

func (memoryInterface) ShapeOf(v any) ([]int, error) {
	a, err := asArray(v)
	if err != nil {
		return nil, err
	}
	return a.Dims(), nil
}

func (memoryInterface) AfterValidation(_ context.Context, v any) (any, error) {
	return asArray(v)
}

func (memoryInterface) MatchesOutput(v any) bool {
	_, ok := v.(*ndarray.Array)
	return ok
}

// SampleElements exposes flat elements of object arrays for sampled dtype
// checks.
func (memoryInterface) SampleElements(v any, limit int) ([]any, error) {
	a, err := asArray(v)
	if err != nil {
		return nil, err
	}
	n := a.Size()
	if limit >= 0 && limit < n {
		n = limit
	}
	out := make([]any, n)
	for i := 0; i < n; i++ {
		out[i] = a.Flat(i)
	}
	return out, nil
}

func (m memoryInterface) ToJSON(_ context.Context, v any, opt SerializeOpt) (any, error) {
	a, err := asArray(v)
	if err != nil {
		return nil, err
	}
	nested := a.ToNested()
	if !opt.RoundTrip {
		return nested, nil
	}
	return map[string]any{
		"type":  m.Name(),
		"dtype": a.Kind().String(),
		"array": nested,
	}, nil
}

func asArray(v any) (*ndarray.Array, error) {
	a, ok := v.(*ndarray.Array)
	if !ok {
		return nil, fmt.Errorf("memory interface expects *ndarray.Array, got %T", v)
	}
	return a, nil
}
