package gondarray

import (
	"context"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
)

// Validate is the primary entry point: match the raw value to a backend,
// then drive the validation lifecycle against the spec. On success it
// returns the backend's validated value (for the generic backend, an
// *ndarray.Array). Raw JSON ([]byte / json.RawMessage) is decoded first.
//
// Failures return Issues synchronously; nothing is retried internally.
// The core imposes no timeout of its own — wrap the call when the
// backend's I/O needs one.
func Validate(ctx context.Context, v any, spec ArraySpec, opts ...ValidateOpt) (any, error) {
	opt := lastOpt(opts)

	switch raw := v.(type) {
	case json.RawMessage:
		decoded, err := FromJSON(raw)
		if err != nil {
			return nil, err
		}
		v = decoded
	case []byte:
		decoded, err := FromJSON(raw)
		if err != nil {
			return nil, err
		}
		v = decoded
	}

	iface, v, err := opt.registry().Match(v)
	if err != nil {
		return nil, err
	}
	return runPipeline(ctx, iface, v, spec, opt)
}

// Is reports whether v validates against the spec.
func Is(ctx context.Context, v any, spec ArraySpec, opts ...ValidateOpt) bool {
	_, err := Validate(ctx, v, spec, opts...)
	return err == nil
}

// FromJSON decodes raw JSON into a validation input. Serialized mark
// envelopes and descriptors come back as maps the registry recognizes.
func FromJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, singleIssue(CodeDeserializeError, "input is not valid JSON")
	}
	if name := gjson.GetBytes(data, markKey+".name"); name.Exists() {
		log.Debugf("gondarray: input marked for interface %s", name.String())
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, toIssues(CodeDeserializeError, err)
	}
	return v, nil
}
