package gondarray_test

import (
	"fmt"
	"strings"
	"testing"

	gondarray "github.com/reoring/gondarray"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := gondarray.Issues{
		{Path: "/0", Code: gondarray.CodeShapeMismatch, Message: "shape does not match"},
	}
	msg := iss.Error()
	if !strings.Contains(msg, "shape_mismatch at /0") {
		t.Fatalf("summary: %q", msg)
	}

	var many gondarray.Issues
	for i := 0; i < 5; i++ {
		many = gondarray.AppendIssues(many, gondarray.Issue{
			Path: fmt.Sprintf("/%d", i), Code: gondarray.CodeDtypeMismatch,
		})
	}
	msg = many.Error()
	if !strings.Contains(msg, "(total 5)") {
		t.Fatalf("long summaries should be truncated with a count: %q", msg)
	}
}

func TestAsIssues(t *testing.T) {
	var err error = gondarray.Issues{{Path: "/", Code: gondarray.CodeNoBackend}}
	iss, ok := gondarray.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("AsIssues: %v %v", iss, ok)
	}
	if _, ok := gondarray.AsIssues(fmt.Errorf("plain")); ok {
		t.Fatalf("plain errors carry no issues")
	}
	if _, ok := gondarray.AsIssues(nil); ok {
		t.Fatalf("nil carries no issues")
	}
}

func TestHasCode(t *testing.T) {
	err := error(gondarray.Issues{
		{Code: gondarray.CodeDtypeMismatch},
		{Code: gondarray.CodeShapeMismatch},
	})
	if !gondarray.HasCode(err, gondarray.CodeShapeMismatch) {
		t.Fatalf("expected shape_mismatch to be found")
	}
	if gondarray.HasCode(err, gondarray.CodeNoBackend) {
		t.Fatalf("no_backend is not present")
	}
}
