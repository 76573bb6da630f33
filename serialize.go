package gondarray

import (
	"context"
	"os"
	"path/filepath"
)

// dataKeys name descriptor fields that hold array contents. The path
// normalization walk skips them so embedded data is never traversed.
var dataKeys = map[string]struct{}{"array": {}, "value": {}}

// Serialize renders a validated array as a JSON-compatible value.
//
// The default is the compact form: nested lists of plain values, supported
// by every backend and lossy (dtype and backend identity are not
// recoverable). With opt.RoundTrip the producing backend emits its
// descriptor instead; MarkInterface wraps it in an envelope naming the
// backend, and any filesystem references in the descriptor are normalized
// per RelativeTo/AbsolutePaths (RelativeTo wins when both are set; the
// default is relative to the working directory).
func Serialize(ctx context.Context, v any, opts ...SerializeOpt) (any, error) {
	opt := lastOpt(opts)
	iface, err := opt.registry().MatchOutput(v)
	if err != nil {
		return nil, err
	}
	out, err := iface.ToJSON(ctx, v, opt)
	if err != nil {
		return nil, toIssues(CodeCoerceError, err)
	}

	if opt.DumpArray {
		if desc, ok := out.(map[string]any); ok {
			if _, has := desc["array"]; !has {
				compact, err := iface.ToJSON(ctx, v, SerializeOpt{})
				if err != nil {
					return nil, toIssues(CodeCoerceError, err)
				}
				desc["array"] = compact
			}
		}
	}

	// Lists are data; only descriptor objects carry paths to normalize.
	if desc, ok := out.(map[string]any); ok {
		switch {
		case opt.RelativeTo != "":
			relativizePaths(desc, opt.RelativeTo)
		case opt.AbsolutePaths:
			absolutizePaths(desc)
		default:
			relativizePaths(desc, ".")
		}
	}

	if opt.MarkInterface {
		out = markEnvelope(iface, out)
	}
	return out, nil
}

// relativizePaths rewrites path-like descriptor strings relative to base,
// leaving anything that does not resolve to an existing file untouched.
func relativizePaths(desc map[string]any, base string) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return
	}
	walkStrings(desc, func(s string) string {
		target, err := filepath.Abs(s)
		if err != nil {
			return s
		}
		if _, err := os.Stat(target); err != nil {
			return s
		}
		rel, err := filepath.Rel(abs, target)
		if err != nil {
			return s
		}
		return rel
	})
}

// absolutizePaths resolves path-like descriptor strings to absolute form.
func absolutizePaths(desc map[string]any) {
	walkStrings(desc, func(s string) string {
		if _, err := os.Stat(s); err != nil {
			return s
		}
		abs, err := filepath.Abs(s)
		if err != nil {
			return s
		}
		return abs
	})
}

// walkStrings applies f to every string value reachable from desc,
// skipping data-bearing keys.
func walkStrings(v any, f func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		for k, sub := range t {
			if _, skip := dataKeys[k]; skip {
				continue
			}
			t[k] = walkStrings(sub, f)
		}
		return t
	case []any:
		for i, sub := range t {
			t[i] = walkStrings(sub, f)
		}
		return t
	case string:
		return f(t)
	}
	return v
}
