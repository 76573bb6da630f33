package shape

import (
	"strconv"
	"strings"
)

// SyntaxError reports a malformed shape expression. Token names the
// offending piece of the expression.
type SyntaxError struct {
	Expr   string
	Token  string
	Reason string
}

func (e *SyntaxError) Error() string {
	return "invalid shape expression " + strconv.Quote(e.Expr) +
		": token " + strconv.Quote(e.Token) + ": " + e.Reason
}

// Parse parses a shape expression into a Spec. The empty expression is the
// scalar spec (rank 0 only). Failures return a *SyntaxError.
func Parse(expr string) (Spec, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return New(false), nil
	}

	tokens := strings.Split(trimmed, ",")
	dims := make([]Constraint, 0, len(tokens))
	tail := false
	for i, raw := range tokens {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return Spec{}, &SyntaxError{Expr: expr, Token: raw, Reason: "empty dimension"}
		}
		if tok == "..." {
			if i != len(tokens)-1 {
				return Spec{}, &SyntaxError{Expr: expr, Token: tok, Reason: "\"...\" is only allowed as the final dimension"}
			}
			tail = true
			continue
		}
		c, err := parseDim(expr, tok)
		if err != nil {
			return Spec{}, err
		}
		dims = append(dims, c)
	}
	return New(tail, dims...), nil
}

// MustParse is Parse for statically known expressions; it panics on error.
func MustParse(expr string) Spec {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// parseDim parses one dimension token: a constraint optionally followed by
// whitespace-separated labels.
func parseDim(expr, tok string) (Constraint, error) {
	fields := strings.Fields(tok)
	c, err := parseConstraint(expr, tok, fields[0])
	if err != nil {
		return Constraint{}, err
	}
	if len(fields) > 1 {
		for _, label := range fields[1:] {
			if !isLabel(label) {
				return Constraint{}, &SyntaxError{Expr: expr, Token: tok, Reason: "label " + strconv.Quote(label) + " must be a lowercase word"}
			}
		}
		c.Label = strings.Join(fields[1:], " ")
	}
	return c, nil
}

func parseConstraint(expr, tok, field string) (Constraint, error) {
	if field == "*" {
		return Wildcard(), nil
	}
	if lo, hi, ok := strings.Cut(field, "-"); ok {
		min, err := parseBound(expr, tok, lo)
		if err != nil {
			return Constraint{}, err
		}
		max, err := parseBound(expr, tok, hi)
		if err != nil {
			return Constraint{}, err
		}
		if min != Unbounded && max != Unbounded && min > max {
			return Constraint{}, &SyntaxError{Expr: expr, Token: tok, Reason: "range min exceeds max"}
		}
		return Range(min, max), nil
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 0 {
		return Constraint{}, &SyntaxError{Expr: expr, Token: tok, Reason: "expected a size, \"*\", a range, or \"...\""}
	}
	return Exact(n), nil
}

func parseBound(expr, tok, s string) (int, error) {
	if s == "*" {
		return Unbounded, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &SyntaxError{Expr: expr, Token: tok, Reason: "range bound must be a non-negative size or \"*\""}
	}
	return n, nil
}

func isLabel(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case i > 0 && (r == '_' || r >= '0' && r <= '9'):
		default:
			return false
		}
	}
	return s != ""
}
