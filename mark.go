package gondarray

// Version identifies the library in mark envelopes.
const Version = "0.1.0"

const (
	markKey      = "interface"
	markValueKey = "value"
)

// markEnvelope wraps a serialized form with the identity of the interface
// that produced it, so reload can short-circuit matching.
func markEnvelope(iface Interface, payload any) map[string]any {
	return map[string]any{
		markKey: map[string]any{
			"name":    iface.Name(),
			"module":  "gondarray",
			"version": Version,
		},
		markValueKey: payload,
	}
}

// unwrapMark detects a mark envelope, returning the recorded interface
// name and the inner payload.
func unwrapMark(v any) (name string, inner any, ok bool) {
	m, isMap := v.(map[string]any)
	if !isMap {
		return "", nil, false
	}
	meta, hasMeta := m[markKey].(map[string]any)
	inner, hasValue := m[markValueKey]
	if !hasMeta || !hasValue {
		return "", nil, false
	}
	name, _ = meta["name"].(string)
	if name == "" {
		return "", nil, false
	}
	return name, inner, true
}
