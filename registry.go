package gondarray

import (
	"fmt"
	"sort"
	"sync"

	"github.com/reoring/gondarray/i18n"
)

// Registry holds the set of known backend interfaces. It is populated once
// at process start and thereafter only read during validation, so
// concurrent validation calls need no extra locking.
type Registry struct {
	mu     sync.RWMutex
	ifaces []Interface
}

// NewRegistry builds a registry over the given interfaces.
func NewRegistry(ifaces ...Interface) *Registry {
	r := &Registry{}
	for _, i := range ifaces {
		if err := r.Register(i); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a backend. Names must be unique. Matching order follows
// Priority, highest first; registration order breaks ties.
func (r *Registry) Register(iface Interface) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, known := range r.ifaces {
		if known.Name() == iface.Name() {
			return fmt.Errorf("gondarray: interface %q already registered", iface.Name())
		}
	}
	r.ifaces = append(r.ifaces, iface)
	sort.SliceStable(r.ifaces, func(i, j int) bool {
		return r.ifaces[i].Priority() > r.ifaces[j].Priority()
	})
	log.Debugf("gondarray: registered interface %s (priority %d, enabled %t)",
		iface.Name(), iface.Priority(), iface.Enabled())
	return nil
}

// Interfaces returns the known backends in matching order. Disabled
// backends are excluded unless withDisabled is set.
func (r *Registry) Interfaces(withDisabled bool) []Interface {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Interface, 0, len(r.ifaces))
	for _, i := range r.ifaces {
		if withDisabled || i.Enabled() {
			out = append(out, i)
		}
	}
	return out
}

// Lookup finds a backend by name, enabled or not.
func (r *Registry) Lookup(name string) (Interface, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, i := range r.ifaces {
		if i.Name() == name {
			return i, true
		}
	}
	return nil, false
}

// Match finds the backend whose Check accepts v, in priority order with
// the generic in-memory backend last. The returned value is v with any
// mark envelope stripped.
//
// When v carries a mark envelope, matching short-circuits to the named
// backend if it is enabled and still accepts the inner value; otherwise
// the mismatch is logged at warn level and ordinary matching proceeds.
func (r *Registry) Match(v any) (Interface, any, error) {
	if name, inner, ok := unwrapMark(v); ok {
		if iface, found := r.Lookup(name); found && iface.Enabled() && iface.Check(inner) {
			return iface, inner, nil
		}
		log.Warnf("gondarray: %s: marked interface %q no longer matches, re-matching",
			CodeMarkMismatch, name)
		v = inner
	}
	for _, iface := range r.Interfaces(false) {
		if iface.Check(v) {
			return iface, v, nil
		}
	}
	return nil, nil, Issues{Issue{
		Path:    "/",
		Code:    CodeNoBackend,
		Message: i18n.T(CodeNoBackend, nil),
		Hint:    fmt.Sprintf("no enabled interface accepts %T", v),
		Params:  map[string]any{"got": fmt.Sprintf("%T", v)},
	}}
}

// MatchOutput finds the backend that produced a validated value, for
// serialization-side dispatch.
func (r *Registry) MatchOutput(v any) (Interface, error) {
	for _, iface := range r.Interfaces(false) {
		if iface.MatchesOutput(v) {
			return iface, nil
		}
	}
	return nil, Issues{Issue{
		Path:    "/",
		Code:    CodeNoBackend,
		Message: i18n.T(CodeNoBackend, nil),
		Hint:    fmt.Sprintf("no enabled interface produced %T", v),
		Params:  map[string]any{"got": fmt.Sprintf("%T", v)},
	}}
}

// defaultRegistry carries the built-in generic backend. Additional
// backends register themselves at startup via Register.
var defaultRegistry = NewRegistry(NewMemoryInterface())

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// Register adds a backend to the process-wide registry.
func Register(iface Interface) error { return defaultRegistry.Register(iface) }

func (o ValidateOpt) registry() *Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return defaultRegistry
}

func (o SerializeOpt) registry() *Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return defaultRegistry
}
