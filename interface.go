package gondarray

import (
	"context"

	"github.com/reoring/gondarray/dtype"
	"github.com/reoring/gondarray/shape"
)

// Interface is the contract a backend implements to participate in
// validation and serialization. Implementations are stateless with respect
// to a single validation call; any open resource handle belongs to the
// value they wrap, not to the Interface. Values holding such a handle
// expose it through ResourceHolder.
//
// Check must be a cheap, side-effect-free probe: it runs during matching,
// potentially once per validation call per registered backend.
type Interface interface {
	// Name uniquely identifies the backend ("memory", "hdf5", ...).
	Name() string

	// Priority orders matching attempts, highest first. The generic
	// in-memory backend sits at GenericPriority so every more specific
	// backend is tried before anything that would materialize the value.
	Priority() int

	// Enabled reports whether the backend's runtime dependency is
	// actually present. Disabled backends are excluded from matching.
	Enabled() bool

	// InputTypes describes the raw value forms accepted before
	// validation, for error messages and introspection.
	InputTypes() []string

	// ReturnType names the type a validated value settles into.
	ReturnType() string

	// Check reports whether the backend can handle the raw input.
	Check(v any) bool

	// Deserialize reconstructs the backend-specific input form when v is
	// a well-formed round-trip descriptor of this backend; any other
	// input passes through unchanged.
	Deserialize(v any) (any, error)

	// BeforeValidation coerces raw input into the working representation.
	// This is the only pre-check stage that may touch I/O.
	BeforeValidation(ctx context.Context, v any) (any, error)

	// DtypeOf returns the concrete element kind of the working value.
	DtypeOf(v any) (dtype.Kind, error)

	// ShapeOf returns the concrete dims of the working value.
	ShapeOf(v any) ([]int, error)

	// AfterValidation produces the value actually stored; its type must
	// be the declared ReturnType.
	AfterValidation(ctx context.Context, v any) (any, error)

	// MatchesOutput reports whether v is a value this backend produced,
	// used for serialization-side dispatch.
	MatchesOutput(v any) bool

	// ToJSON renders a validated value as a JSON-compatible form: compact
	// nested lists by default, the backend's round-trip descriptor when
	// opt.RoundTrip is set.
	ToJSON(ctx context.Context, v any, opt SerializeOpt) (any, error)
}

// GenericPriority is the priority of the catch-all in-memory backend.
// Backends registering at or below it compete with full materialization.
const GenericPriority = -999

// ResourceHolder is implemented by validated values that keep an external
// resource handle open (a file, a dataset). The engine never manages these
// lifetimes: backends return values ready for use, and the caller closes
// them when done. Close must be safe to call more than once; Open
// re-acquires a handle released by Close.
type ResourceHolder interface {
	Open() error
	Close() error
}

// JsonDict is the round-trip descriptor contract: a small JSON object
// sufficient to reconstruct an equivalent value through the same backend.
type JsonDict interface {
	// IsValid reports whether candidate is a well-formed instance of this
	// descriptor shape. Used for deserialization dispatch and in tests.
	IsValid(candidate map[string]any) bool

	// ToArrayInput reconstructs the backend-specific input form.
	ToArrayInput() (any, error)
}

// Optional per-stage overrides. The pipeline performs the default dtype
// and shape checks itself; a backend implementing one of these hooks takes
// over that stage (the Normalizer/Refiner pattern).

// DtypeValidator overrides the dtype check stage.
type DtypeValidator interface {
	ValidateDtype(v any, spec dtype.Spec, opt ValidateOpt) error
}

// ShapeValidator overrides the shape check stage.
type ShapeValidator interface {
	ValidateShape(v any, spec shape.Spec) error
}

// AfterDtypeHook transforms the value between the dtype and shape stages,
// e.g. to unwrap a compound field.
type AfterDtypeHook interface {
	AfterValidateDtype(v any) (any, error)
}

// ElementSampler exposes bounded element access for object-typed arrays so
// the pipeline can sample representative elements during the dtype check.
type ElementSampler interface {
	// SampleElements returns up to limit elements; limit < 0 means all.
	SampleElements(v any, limit int) ([]any, error)
}
