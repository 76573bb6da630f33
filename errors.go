package gondarray

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by
// convention).
const (
	CodeShapeSyntax       = "shape_syntax"
	CodeShapeMismatch     = "shape_mismatch"
	CodeDtypeSyntax       = "dtype_syntax"
	CodeDtypeMismatch     = "dtype_mismatch"
	CodeNoBackend         = "no_backend"
	CodeMarkMismatch      = "mark_mismatch"
	CodeSchemaUnsupported = "schema_unsupported"
	CodeDeserializeError  = "deserialize_error"
	CodeCoerceError       = "coerce_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer into the value (for example: /1).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, expected forms, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"expected":"3",
	// "got":"4"}) for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice
// when needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an Issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	if !ok {
		return false
	}
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

func singleIssue(code, msg string) Issues {
	return Issues{Issue{Path: "/", Code: code, Message: msg}}
}

// toIssues coerces an arbitrary error into Issues, preserving existing ones.
func toIssues(code string, err error) Issues {
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{Issue{Path: "/", Code: code, Message: err.Error(), Cause: err}}
}
