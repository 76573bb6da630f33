package gondarray_test

import (
	"context"
	"testing"

	gondarray "github.com/reoring/gondarray"
)

func TestRegistry_PriorityOrder(t *testing.T) {
	fake := newFakeInterface()
	reg := testRegistry(fake)
	ifaces := reg.Interfaces(false)
	if len(ifaces) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(ifaces))
	}
	if ifaces[0].Name() != "fake" || ifaces[1].Name() != "memory" {
		t.Fatalf("order: %s, %s", ifaces[0].Name(), ifaces[1].Name())
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := testRegistry()
	if err := reg.Register(gondarray.NewMemoryInterface()); err == nil {
		t.Fatalf("expected duplicate-name error")
	}
}

func TestRegistry_DisabledExcluded(t *testing.T) {
	fake := newFakeInterface()
	fake.enabled = false
	reg := testRegistry(fake)
	for _, i := range reg.Interfaces(false) {
		if i.Name() == "fake" {
			t.Fatalf("disabled interface should be excluded from matching order")
		}
	}
	if len(reg.Interfaces(true)) != 2 {
		t.Fatalf("withDisabled should include it")
	}
	if _, found := reg.Lookup("fake"); !found {
		t.Fatalf("Lookup should find disabled interfaces")
	}
}

func TestRegistry_MatchPrefersSpecificBackend(t *testing.T) {
	fake := newFakeInterface()
	fa := fake.put("a.dat", []int{1, 2, 3})
	reg := testRegistry(fake)

	iface, v, err := reg.Match(fa)
	if err != nil {
		t.Fatalf("match err: %v", err)
	}
	if iface.Name() != "fake" || v != any(fa) {
		t.Fatalf("matched %s", iface.Name())
	}

	// Plain values still fall through to the generic backend.
	iface, _, err = reg.Match([]int{1})
	if err != nil || iface.Name() != "memory" {
		t.Fatalf("generic fallback: %v %v", iface, err)
	}
}

func TestRegistry_MarkShortCircuit(t *testing.T) {
	fake := newFakeInterface()
	fake.put("a.dat", []int{1, 2})
	reg := testRegistry(fake)

	envelope := map[string]any{
		"interface": map[string]any{"name": "fake", "module": "gondarray", "version": "0.1.0"},
		"value":     map[string]any{"type": "fake", "path": "a.dat"},
	}
	iface, inner, err := reg.Match(envelope)
	if err != nil {
		t.Fatalf("match err: %v", err)
	}
	if iface.Name() != "fake" {
		t.Fatalf("mark should short-circuit to the named interface, got %s", iface.Name())
	}
	if m, ok := inner.(map[string]any); !ok || m["path"] != "a.dat" {
		t.Fatalf("inner payload should be the unwrapped descriptor: %v", inner)
	}
}

func TestRegistry_MarkMismatchFallsBack(t *testing.T) {
	reg := testRegistry()
	// Envelope names an interface this registry never saw; the inner value
	// is still coercible, so ordinary matching must recover.
	envelope := map[string]any{
		"interface": map[string]any{"name": "hdf5"},
		"value":     []any{1.0, 2.0},
	}
	iface, inner, err := reg.Match(envelope)
	if err != nil {
		t.Fatalf("match err: %v", err)
	}
	if iface.Name() != "memory" {
		t.Fatalf("expected fallback to memory, got %s", iface.Name())
	}
	if _, ok := inner.([]any); !ok {
		t.Fatalf("fallback should match the unwrapped value: %T", inner)
	}
}

func TestRegistry_NoBackendNamesInputType(t *testing.T) {
	reg := testRegistry()
	_, _, err := reg.Match(struct{ X chan int }{})
	iss, ok := gondarray.AsIssues(err)
	if !ok || iss[0].Code != gondarray.CodeNoBackend {
		t.Fatalf("expected no_backend, got %v", err)
	}
	if iss[0].Params["got"] == "" {
		t.Fatalf("issue should carry the rejected input type")
	}
}

func TestValidate_ThroughFakeBackend(t *testing.T) {
	fake := newFakeInterface()
	fa := fake.put("embedding.dat", []float32{1, 2, 3, 4})
	reg := testRegistry(fake)
	spec := gondarray.MustSpec("4", "float32")

	out, err := gondarray.Validate(context.Background(), fa, spec, gondarray.ValidateOpt{Registry: reg})
	if err != nil {
		t.Fatalf("validate err: %v", err)
	}
	if _, ok := out.(*fakeArray); !ok {
		t.Fatalf("fake backend returns its own type, got %T", out)
	}

	// Descriptor input takes the deserialize path through the same backend.
	desc := map[string]any{"type": "fake", "path": "embedding.dat"}
	out, err = gondarray.Validate(context.Background(), desc, spec, gondarray.ValidateOpt{Registry: reg})
	if err != nil {
		t.Fatalf("descriptor validate err: %v", err)
	}
	if out.(*fakeArray).path != "embedding.dat" {
		t.Fatalf("reloaded value should keep its path")
	}
}
